package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to portfolio reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	today            func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs, today: dates.Today}
}

// registerReportingRoutes registers routes related to portfolio reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/capital-gains", h.getCapitalGains)
		reportingGroup.GET("/realized-gains", h.getRealizedGains)
		reportingGroup.GET("/commissions", h.getCommissions)
		reportingGroup.GET("/valuation", h.getValuation)
	}
}

// getCapitalGains godoc
// @Summary Capital gain summary
// @Description Open positions of taxable accounts with book value, market value and pending gain in the reporting currency
// @Tags reports
// @Produce  json
// @Success 200 {array} domain.CapitalGainSummaryRow
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/capital-gains [get]
func (h *reportingHandler) getCapitalGains(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.reportingService.CapitalGainSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to generate capital gain summary")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// getRealizedGains godoc
// @Summary Realized gains by year
// @Tags reports
// @Produce  json
// @Success 200 {array} domain.RealizedGain
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/realized-gains [get]
func (h *reportingHandler) getRealizedGains(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	gains, err := h.reportingService.RealizedGainsByYear(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to generate realized gains")
		return
	}
	c.JSON(http.StatusOK, gains)
}

// getCommissions godoc
// @Summary Commissions by year
// @Tags reports
// @Produce  json
// @Success 200 {array} domain.YearAmount
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/commissions [get]
func (h *reportingHandler) getCommissions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	amounts, err := h.reportingService.CommissionsByYear(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to generate commissions")
		return
	}
	c.JSON(http.StatusOK, amounts)
}

// getValuation godoc
// @Summary Portfolio valuation
// @Description Values every position held on the day in the reporting currency
// @Tags reports
// @Produce  json
// @Param   date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.Valuation
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "A price or exchange rate is missing"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/valuation [get]
func (h *reportingHandler) getValuation(c *gin.Context) {
	var params dto.ValuationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	day := h.today()
	if params.Date != "" {
		d, err := dates.Parse(params.Date)
		if err != nil {
			bindError(c, err)
			return
		}
		day = d
	}

	valuation, err := h.reportingService.Valuation(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, err, "Failed to generate valuation")
		return
	}
	c.JSON(http.StatusOK, valuation)
}
