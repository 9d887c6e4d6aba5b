package handler

import (
	"net/http"

	"saribill/internal/dto"
	"saribill/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	svc service.AnalyticsService
}

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Summary godoc
// @Summary      Sales summary for a date range
// @Description  Bill count, revenue, average bill, payment-mode distribution and a per-day revenue series over the inclusive date range.
// @Tags         analytics
// @Produce      json
// @Param        from  query     string  true  "From date (YYYY-MM-DD)"
// @Param        to    query     string  true  "To date (YYYY-MM-DD)"
// @Success      200   {object}  dto.AnalyticsSummaryResponse
// @Failure      422   {object}  apierror.APIError "invalid or inverted range"
// @Security     BearerAuth
// @Router       /v1/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	var filter dto.AnalyticsFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
