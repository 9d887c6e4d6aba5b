package handler

import (
	"net/http"

	"saribill/internal/dto"
	"saribill/internal/service"

	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	svc service.BillService
}

func NewBillHandler(svc service.BillService) *BillHandler {
	return &BillHandler{svc: svc}
}

// Create godoc
// @Summary      Create a bill
// @Description  Allocates the next daily identifier and a public viewer hash, records the bill and upserts the customer.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        bill  body      dto.CreateBillRequest  true  "Bill payload"
// @Success      201   {object}  dto.BillResponse
// @Failure      409   {object}  apierror.APIError "daily sequence exhausted"
// @Failure      422   {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /v1/bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req dto.CreateBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List bills
// @Description  Pages through bills, newest business date first. Optional date range and customer phone filters.
// @Tags         bills
// @Produce      json
// @Param        from   query     string  false  "From date (YYYY-MM-DD)"
// @Param        to     query     string  false  "To date (YYYY-MM-DD)"
// @Param        phone  query     string  false  "Customer phone"
// @Param        page   query     int     false  "Page"   default(1)
// @Param        limit  query     int     false  "Limit"  default(50)
// @Success      200    {object}  dto.BillListResponse
// @Security     BearerAuth
// @Router       /v1/bills [get]
func (h *BillHandler) List(c *gin.Context) {
	var filter dto.BillFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get a bill
// @Tags         bills
// @Produce      json
// @Param        id   path      string  true  "Bill identifier"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/bills/{id} [get]
func (h *BillHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a bill
// @Description  Full replacement of the editable fields. The identifier and viewer hash never change, even when the business date does.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Bill identifier"
// @Param        bill  body      dto.UpdateBillRequest  true  "Bill payload"
// @Success      200   {object}  dto.BillResponse
// @Failure      404   {object}  apierror.APIError
// @Failure      422   {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /v1/bills/{id} [put]
func (h *BillHandler) Update(c *gin.Context) {
	var req dto.UpdateBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Move a bill to trash
// @Description  Soft delete. The bill moves to the trash in one transaction and can be restored from there.
// @Tags         bills
// @Param        id  path  string  true  "Bill identifier"
// @Success      204
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	if err := h.svc.Trash(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Share godoc
// @Summary      Share a bill link
// @Description  Queues the public viewer link for delivery over WhatsApp or email. Delivery is asynchronous.
// @Tags         bills
// @Accept       json
// @Param        id     path  string               true  "Bill identifier"
// @Param        share  body  dto.ShareBillRequest true  "Channel selection"
// @Success      202
// @Failure      404  {object}  apierror.APIError
// @Failure      422  {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /v1/bills/{id}/share [post]
func (h *BillHandler) Share(c *gin.Context) {
	var req dto.ShareBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Share(c.Request.Context(), c.Param("id"), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
