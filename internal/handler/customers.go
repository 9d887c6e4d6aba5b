package handler

import (
	"net/http"

	"saribill/internal/apierror"
	"saribill/internal/dto"
	"saribill/internal/model"
	"saribill/internal/repository"
	"saribill/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	repo    repository.CustomerRepository
	billSvc service.BillService
}

func NewCustomerHandler(repo repository.CustomerRepository, billSvc service.BillService) *CustomerHandler {
	return &CustomerHandler{repo: repo, billSvc: billSvc}
}

// List godoc
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Security     BearerAuth
// @Router       /v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponses(customers))
}

// Search godoc
// @Summary      Search customers by name prefix
// @Tags         customers
// @Produce      json
// @Param        q    query     string  true  "Name prefix"
// @Success      200  {array}   dto.CustomerResponse
// @Security     BearerAuth
// @Router       /v1/customers/search [get]
func (h *CustomerHandler) Search(c *gin.Context) {
	var filter dto.CustomerSearchFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	customers, err := h.repo.Search(c.Request.Context(), filter.Q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponses(customers))
}

// Bills godoc
// @Summary      Purchase history for a customer
// @Tags         customers
// @Produce      json
// @Param        phone  path     string  true  "Customer phone"
// @Success      200    {array}  dto.BillResponse
// @Security     BearerAuth
// @Router       /v1/customers/{phone}/bills [get]
func (h *CustomerHandler) Bills(c *gin.Context) {
	phone := c.Param("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, apierror.New("customer phone is required"))
		return
	}
	bills, err := h.billSvc.CustomerBills(c.Request.Context(), phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func toCustomerResponses(customers []model.Customer) []dto.CustomerResponse {
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		out = append(out, dto.CustomerResponse{Phone: cust.Phone, Name: cust.Name})
	}
	return out
}
