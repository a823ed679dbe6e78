package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/SscSPs/portfolio_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxStatementSize bounds uploaded broker statements.
const maxStatementSize = 10 << 20

// activityHandler handles raw broker records and the activities normalized from them.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

func newActivityHandler(as portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{activityService: as}
}

// registerActivityRoutes registers routes below /accounts/:accountID.
func registerActivityRoutes(account *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := newActivityHandler(activityService)

	raw := account.Group("/raw-activities")
	{
		raw.POST("", h.addRawActivity)
		raw.POST("/import", h.importStatement)
		raw.GET("", h.listRawActivities)
	}
	account.GET("/activities", h.listActivities)
}

// addRawActivity godoc
// @Summary Add a raw activity
// @Description Stores one broker record. It is normalized on the next regeneration.
// @Tags activities
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   activity body dto.CreateRawActivityRequest true "Broker record"
// @Success 201 {object} domain.RawActivity
// @Failure 400 {object} ErrorResponse "Invalid record or type unknown to the broker"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Record already imported"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/raw-activities [post]
func (h *activityHandler) addRawActivity(c *gin.Context) {
	var req dto.CreateRawActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	raw, err := h.activityService.AddRawActivity(c.Request.Context(), c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add raw activity")
		return
	}
	c.JSON(http.StatusCreated, raw)
}

// importStatement godoc
// @Summary Import a broker statement
// @Description Parses a CSV statement with the account's broker adapter. Rows already imported are skipped.
// @Tags activities
// @Accept  multipart/form-data
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   file formData file true "CSV statement"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/raw-activities/import [post]
func (h *activityHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		bindError(c, err)
		return
	}
	if header.Size > maxStatementSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Statement too large"})
		return
	}
	file, err := header.Open()
	if err != nil {
		logger.Error("Failed to open uploaded statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read statement"})
		return
	}
	defer file.Close()

	parsed, inserted, err := h.activityService.ImportCSV(c.Request.Context(), c.Param("accountID"), file, userID)
	if err != nil {
		respondError(c, err, "Failed to import statement")
		return
	}
	c.JSON(http.StatusOK, dto.ImportResponse{Parsed: parsed, Inserted: inserted})
}

// listRawActivities godoc
// @Summary List raw activities
// @Tags activities
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} domain.RawActivity
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/raw-activities [get]
func (h *activityHandler) listRawActivities(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	raws, err := h.activityService.ListRawActivities(c.Request.Context(), c.Param("accountID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list raw activities")
		return
	}
	c.JSON(http.StatusOK, raws)
}

// listActivities godoc
// @Summary List normalized activities
// @Description Activities as produced by the last regeneration
// @Tags activities
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} domain.Activity
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	activities, err := h.activityService.ListActivities(c.Request.Context(), c.Param("accountID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list activities")
		return
	}
	c.JSON(http.StatusOK, activities)
}
