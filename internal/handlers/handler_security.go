package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/SscSPs/portfolio_tracker/internal/middleware"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/gin-gonic/gin"
)

// defaultPriceWindow is how far back a price listing reaches without a start day.
const defaultPriceWindow = 30

// securityHandler handles securities and their prices.
type securityHandler struct {
	securityService portssvc.SecuritySvcFacade
	priceService    portssvc.PriceSvcFacade
	today           func() time.Time
}

func newSecurityHandler(ss portssvc.SecuritySvcFacade, ps portssvc.PriceSvcFacade) *securityHandler {
	return &securityHandler{securityService: ss, priceService: ps, today: dates.Today}
}

// registerSecurityRoutes registers securities, price sources and prices.
func registerSecurityRoutes(rg *gin.RouterGroup, ss portssvc.SecuritySvcFacade, ps portssvc.PriceSvcFacade) {
	h := newSecurityHandler(ss, ps)

	securities := rg.Group("/securities")
	{
		securities.POST("", h.createSecurity)
		securities.GET("", h.listSecurities)
		securities.GET("/:symbol", h.getSecurity)

		securities.POST("/:symbol/price-sources", h.createPriceSource)
		securities.GET("/:symbol/price-sources", h.listPriceSources)

		securities.POST("/:symbol/prices", h.addManualPrice)
		securities.POST("/:symbol/prices/sync", h.syncPrices)
		securities.GET("/:symbol/prices", h.listPrices)
	}
}

func symbolParam(c *gin.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
}

// createSecurity godoc
// @Summary Register a security
// @Description Registers a security and gives it its default price source
// @Tags securities
// @Accept  json
// @Produce  json
// @Param   security body dto.CreateSecurityRequest true "Security details"
// @Success 201 {object} domain.Security
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities [post]
func (h *securityHandler) createSecurity(c *gin.Context) {
	var req dto.CreateSecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	security, err := h.securityService.CreateSecurity(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create security")
		return
	}
	c.JSON(http.StatusCreated, security)
}

// listSecurities godoc
// @Summary List securities
// @Tags securities
// @Produce  json
// @Success 200 {array} domain.Security
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities [get]
func (h *securityHandler) listSecurities(c *gin.Context) {
	securities, err := h.securityService.ListSecurities(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list securities")
		return
	}
	c.JSON(http.StatusOK, securities)
}

// getSecurity godoc
// @Summary Get a security
// @Tags securities
// @Produce  json
// @Param   symbol path string true "Symbol"
// @Success 200 {object} domain.Security
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities/{symbol} [get]
func (h *securityHandler) getSecurity(c *gin.Context) {
	security, err := h.securityService.GetSecurity(c.Request.Context(), symbolParam(c))
	if err != nil {
		respondError(c, err, "Failed to get security")
		return
	}
	c.JSON(http.StatusOK, security)
}

// createPriceSource godoc
// @Summary Add a price source
// @Description Adds a source to the prices of a security. Higher priority wins on overlapping days.
// @Tags prices
// @Accept  json
// @Produce  json
// @Param   symbol path string true "Symbol"
// @Param   source body dto.CreatePriceSourceRequest true "Price source"
// @Success 201 {object} domain.PriceSource
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities/{symbol}/price-sources [post]
func (h *securityHandler) createPriceSource(c *gin.Context) {
	var req dto.CreatePriceSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	source, err := h.priceService.CreatePriceSource(c.Request.Context(), symbolParam(c), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create price source")
		return
	}
	c.JSON(http.StatusCreated, source)
}

// listPriceSources godoc
// @Summary List price sources
// @Tags prices
// @Produce  json
// @Param   symbol path string true "Symbol"
// @Success 200 {array} domain.PriceSource
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities/{symbol}/price-sources [get]
func (h *securityHandler) listPriceSources(c *gin.Context) {
	sources, err := h.priceService.ListPriceSources(c.Request.Context(), symbolParam(c))
	if err != nil {
		respondError(c, err, "Failed to list price sources")
		return
	}
	c.JSON(http.StatusOK, sources)
}

// addManualPrice godoc
// @Summary Record a price
// @Description Stores one observed price and re-merges the series of the security
// @Tags prices
// @Accept  json
// @Produce  json
// @Param   symbol path string true "Symbol"
// @Param   price body dto.ManualPriceRequest true "Observation"
// @Success 201 {object} domain.PriceObservation
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities/{symbol}/prices [post]
func (h *securityHandler) addManualPrice(c *gin.Context) {
	var req dto.ManualPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	obs, err := h.priceService.AddManualPrice(c.Request.Context(), symbolParam(c), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record price")
		return
	}
	c.JSON(http.StatusCreated, obs)
}

// syncPrices godoc
// @Summary Sync the daily prices of a security
// @Description Merges every price source over the range and replaces the stored daily prices
// @Tags prices
// @Accept  json
// @Produce  json
// @Param   symbol path string true "Symbol"
// @Param   range body dto.PriceRangeParams false "Range, defaults to 2009-01-01 through today"
// @Success 200 {object} dto.SyncPricesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No price available"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities/{symbol}/prices/sync [post]
func (h *securityHandler) syncPrices(c *gin.Context) {
	var params dto.PriceRangeParams
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&params); err != nil {
			bindError(c, err)
			return
		}
	}
	start, end, err := h.priceRange(params, domain.DefaultAccountCreationDate)
	if err != nil {
		respondError(c, err, "Invalid range")
		return
	}

	symbol := symbolParam(c)
	days, err := h.priceService.SyncPrices(c.Request.Context(), symbol, start, end)
	if err != nil {
		respondError(c, err, "Failed to sync prices")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Prices synced", slog.String("symbol", symbol), slog.Int("days", days))
	c.JSON(http.StatusOK, dto.SyncPricesResponse{Symbol: symbol, Days: days})
}

// listPrices godoc
// @Summary List daily prices
// @Tags prices
// @Produce  json
// @Param   symbol path string true "Symbol"
// @Param   start query string false "First day (YYYY-MM-DD), defaults to 30 days before end"
// @Param   end query string false "Last day (YYYY-MM-DD), defaults to today"
// @Success 200 {array} domain.DailyPrice
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities/{symbol}/prices [get]
func (h *securityHandler) listPrices(c *gin.Context) {
	var params dto.PriceRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	start, end, err := h.priceRange(params, time.Time{})
	if err != nil {
		respondError(c, err, "Invalid range")
		return
	}

	prices, err := h.priceService.ListPrices(c.Request.Context(), symbolParam(c), start, end)
	if err != nil {
		respondError(c, err, "Failed to list prices")
		return
	}
	c.JSON(http.StatusOK, prices)
}

// priceRange resolves the optional bounds. A zero defaultStart means the window before end.
func (h *securityHandler) priceRange(params dto.PriceRangeParams, defaultStart time.Time) (time.Time, time.Time, error) {
	end := h.today()
	if params.End != "" {
		d, err := dates.Parse(params.End)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewValidationError(err.Error())
		}
		end = d
	}
	start := defaultStart
	if start.IsZero() {
		start = dates.AddDays(end, -defaultPriceWindow)
	}
	if params.Start != "" {
		d, err := dates.Parse(params.Start)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewValidationError(err.Error())
		}
		start = d
	}
	return start, end, nil
}
