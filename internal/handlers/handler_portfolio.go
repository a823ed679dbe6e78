package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/SscSPs/portfolio_tracker/internal/middleware"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/gin-gonic/gin"
)

// portfolioHandler serves the data derived by regeneration.
type portfolioHandler struct {
	accountService   portssvc.AccountSvcFacade
	portfolioService portssvc.PortfolioSvcFacade
}

func newPortfolioHandler(as portssvc.AccountSvcFacade, ps portssvc.PortfolioSvcFacade) *portfolioHandler {
	return &portfolioHandler{accountService: as, portfolioService: ps}
}

// registerPortfolioRoutes registers routes below /accounts/:accountID.
func registerPortfolioRoutes(account *gin.RouterGroup, as portssvc.AccountSvcFacade, ps portssvc.PortfolioSvcFacade) {
	h := newPortfolioHandler(as, ps)

	account.POST("/regenerate", h.regenerate)
	account.GET("/holdings", h.listHoldings)
	account.GET("/cost-basis", h.listCostBasis)
	account.GET("/issues", h.listIssues)
}

// regenerate godoc
// @Summary Regenerate an account
// @Description Rebuilds activities, holdings and cost basis of the account from its raw records
// @Tags portfolio
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} domain.RegenerationResult
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "A raw record could not be normalized"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/regenerate [post]
func (h *portfolioHandler) regenerate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if _, err := h.accountService.AuthorizeAccount(c.Request.Context(), userID, accountID); err != nil {
		respondError(c, err, "Failed to regenerate account")
		return
	}

	result, err := h.portfolioService.RegenerateAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "Failed to regenerate account")
		return
	}
	logger.Info("Account regenerated",
		slog.String("account_id", accountID),
		slog.Int("activities", result.Activities),
		slog.Int("issues", len(result.Issues)))
	c.JSON(http.StatusOK, result)
}

// listHoldings godoc
// @Summary List holding intervals
// @Description Lists holding intervals, or only those covering asOf
// @Tags portfolio
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   asOf query string false "Day (YYYY-MM-DD)"
// @Success 200 {array} domain.HoldingInterval
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/holdings [get]
func (h *portfolioHandler) listHoldings(c *gin.Context) {
	var params dto.HoldingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var asOf *time.Time
	if params.AsOf != "" {
		day, err := dates.Parse(params.AsOf)
		if err != nil {
			bindError(c, err)
			return
		}
		asOf = &day
	}

	holdings, err := h.portfolioService.ListHoldings(c.Request.Context(), c.Param("accountID"), userID, asOf)
	if err != nil {
		respondError(c, err, "Failed to list holdings")
		return
	}
	c.JSON(http.StatusOK, holdings)
}

// listCostBasis godoc
// @Summary List cost basis records
// @Tags portfolio
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   symbol query string false "Only this security"
// @Success 200 {array} domain.CostBasisRecord
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/cost-basis [get]
func (h *portfolioHandler) listCostBasis(c *gin.Context) {
	var params dto.CostBasisParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	records, err := h.portfolioService.ListCostBasis(c.Request.Context(), c.Param("accountID"), userID, params.Symbol)
	if err != nil {
		respondError(c, err, "Failed to list cost basis")
		return
	}
	c.JSON(http.StatusOK, records)
}

// listIssues godoc
// @Summary List regeneration issues
// @Description Securities the last regeneration could not fully derive
// @Tags portfolio
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} domain.RegenerationIssue
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/issues [get]
func (h *portfolioHandler) listIssues(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	issues, err := h.portfolioService.ListIssues(c.Request.Context(), c.Param("accountID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list issues")
		return
	}
	c.JSON(http.StatusOK, issues)
}
