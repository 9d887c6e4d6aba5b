package handler

import (
	"net/http"

	"saribill/internal/service"

	"github.com/gin-gonic/gin"
)

type TrashHandler struct {
	svc service.BillService
}

func NewTrashHandler(svc service.BillService) *TrashHandler {
	return &TrashHandler{svc: svc}
}

// List godoc
// @Summary      List trashed bills
// @Tags         trash
// @Produce      json
// @Success      200  {array}  dto.TrashedBillResponse
// @Security     BearerAuth
// @Router       /v1/trash [get]
func (h *TrashHandler) List(c *gin.Context) {
	resp, err := h.svc.ListTrash(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Restore godoc
// @Summary      Restore a bill from trash
// @Description  Moves the bill back to the active collection in one transaction, keeping its identifier and viewer hash.
// @Tags         trash
// @Produce      json
// @Param        id   path      string  true  "Bill identifier"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/trash/{id}/restore [post]
func (h *TrashHandler) Restore(c *gin.Context) {
	resp, err := h.svc.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Purge godoc
// @Summary      Permanently delete a trashed bill
// @Description  Irreversible. Only bills already in the trash can be purged.
// @Tags         trash
// @Param        id  path  string  true  "Bill identifier"
// @Success      204
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/trash/{id} [delete]
func (h *TrashHandler) Purge(c *gin.Context) {
	if err := h.svc.Purge(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
