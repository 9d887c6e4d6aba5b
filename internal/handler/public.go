package handler

import (
	"net/http"

	"saribill/internal/service"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated bill viewer API.
type PublicHandler struct {
	svc service.PublicService
}

func NewPublicHandler(svc service.PublicService) *PublicHandler {
	return &PublicHandler{svc: svc}
}

// Resolve godoc
// @Summary      Resolve a public bill link
// @Description  Accepts either an 8-character viewer hash as the path segment, a legacy identifier as the path segment, or a legacy ?id= query parameter. Returns the bill plus the shop profile.
// @Tags         public
// @Produce      json
// @Param        identifier  path      string  true   "Viewer hash or legacy bill identifier"
// @Param        id          query     string  false  "Legacy identifier (takes precedence over the path)"
// @Success      200  {object}  dto.PublicBillResponse
// @Failure      400  {object}  apierror.APIError "unclassifiable request"
// @Failure      404  {object}  apierror.APIError
// @Router       /public/bills/{identifier} [get]
func (h *PublicHandler) Resolve(c *gin.Context) {
	resp, err := h.svc.Resolve(c.Request.Context(), c.Param("identifier"), c.Query("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
