package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/dto"
	"github.com/SscSPs/reconciliation_engine/internal/middleware"
	"github.com/SscSPs/reconciliation_engine/internal/utils/export"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests related to the monthly report and its overrides.
type reportHandler struct {
	reports   portssvc.MonthlyReportSvc
	overrides portssvc.OverrideSvc
}

func newReportHandler(rs portssvc.MonthlyReportSvc, ovs portssvc.OverrideSvc) *reportHandler {
	return &reportHandler{reports: rs, overrides: ovs}
}

func registerReportRoutes(rg *gin.RouterGroup, reports portssvc.MonthlyReportSvc, overrides portssvc.OverrideSvc) {
	h := newReportHandler(reports, overrides)

	monthly := rg.Group("/reports/monthly")
	{
		monthly.GET("", h.getMonthlyReport)
		monthly.GET("/export", h.exportMonthlyReport)
		monthly.GET("/override", h.getOverride)
		monthly.PUT("/override", financeOnly, h.saveOverride)
		monthly.DELETE("/override", financeOnly, h.deleteOverride)
		monthly.POST("/override/freeze", financeOnly, h.freezeMonthlyReport)
	}
}

func bindPeriod(c *gin.Context, logger *slog.Logger) (dto.PeriodQuery, bool) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Invalid period query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month are required (month 1-12)"})
		return q, false
	}
	return q, true
}

// getMonthlyReport godoc
// @Summary Monthly profit and loss
// @Description Computes the monthly report of a location. Overridden fields show both the automatic and the frozen value.
// @Tags reports
// @Produce json
// @Param location_id query string false "Location ID (all locations when omitted)"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate monthly report"
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportHandler) getMonthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	q, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("period", q.Key().String()))
	report, err := h.reports.MonthlyReport(c.Request.Context(), q.Key())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate monthly report")
		return
	}

	logger.Info("Monthly report generated", slog.Bool("overridden", report.Overridden))
	c.JSON(http.StatusOK, dto.ToMonthlyReportResponse(report))
}

// exportMonthlyReport godoc
// @Summary Export the monthly report
// @Description Downloads the monthly report as an XLSX workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param location_id query string false "Location ID (all locations when omitted)"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to export monthly report"
// @Security BearerAuth
// @Router /reports/monthly/export [get]
func (h *reportHandler) exportMonthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	q, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("period", q.Key().String()))
	report, err := h.reports.MonthlyReport(c.Request.Context(), q.Key())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export monthly report")
		return
	}

	resp := dto.ToMonthlyReportResponse(report)
	var buf bytes.Buffer
	if err := export.WriteMonthlyReport(&buf, resp); err != nil {
		logger.Error("Failed to render monthly report workbook", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export monthly report"})
		return
	}

	logger.Info("Monthly report exported", slog.Int("bytes", buf.Len()))
	c.Header("Content-Disposition", `attachment; filename="`+export.MonthlyReportFilename(resp)+`"`)
	c.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
}

// getOverride godoc
// @Summary Get a monthly override
// @Description Returns the frozen figures stored for a month
// @Tags reports
// @Produce json
// @Param location_id query string false "Location ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} domain.Override
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "No override for the month"
// @Failure 500 {object} ErrorResponse "Failed to load override"
// @Security BearerAuth
// @Router /reports/monthly/override [get]
func (h *reportHandler) getOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	q, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	override, err := h.overrides.GetOverride(c.Request.Context(), q.Key())
	if err != nil {
		respondServiceError(c, logger.With(slog.String("period", q.Key().String())), err, "Failed to load override")
		return
	}
	c.JSON(http.StatusOK, override)
}

// saveOverride godoc
// @Summary Save a monthly override
// @Description Replaces the frozen figures of a month. Omitted fields fall back to their automatic value.
// @Tags reports
// @Accept json
// @Produce json
// @Param override body dto.SaveOverrideRequest true "Override figures"
// @Success 200 {object} domain.Override
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "Superseded by a newer write"
// @Failure 500 {object} ErrorResponse "Failed to save override"
// @Security BearerAuth
// @Router /reports/monthly/override [put]
func (h *reportHandler) saveOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.SaveOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveOverride", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("period", req.Key().String()))
	override, err := h.overrides.SaveOverride(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save override")
		return
	}

	logger.Info("Override saved")
	c.JSON(http.StatusOK, override)
}

// deleteOverride godoc
// @Summary Delete a monthly override
// @Description Removes the frozen figures so the month is computed automatically again
// @Tags reports
// @Param location_id query string false "Location ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "No override for the month"
// @Failure 500 {object} ErrorResponse "Failed to delete override"
// @Security BearerAuth
// @Router /reports/monthly/override [delete]
func (h *reportHandler) deleteOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	q, ok := bindPeriod(c, logger)
	if !ok {
		return
	}
	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("period", q.Key().String()))
	if err := h.overrides.DeleteOverride(c.Request.Context(), q.Key(), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete override")
		return
	}

	logger.Info("Override deleted")
	c.Status(http.StatusNoContent)
}

// freezeMonthlyReport godoc
// @Summary Freeze the monthly report
// @Description Stores the current automatic figures of a month as its override
// @Tags reports
// @Accept json
// @Produce json
// @Param freeze body dto.FreezeOverrideRequest true "Month to freeze"
// @Success 200 {object} domain.Override
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "Superseded by a newer write"
// @Failure 500 {object} ErrorResponse "Failed to freeze monthly report"
// @Security BearerAuth
// @Router /reports/monthly/override/freeze [post]
func (h *reportHandler) freezeMonthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.FreezeOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FreezeMonthlyReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("period", req.Key().String()))
	override, err := h.overrides.FreezeMonthlyReport(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to freeze monthly report")
		return
	}

	logger.Info("Monthly report frozen")
	c.JSON(http.StatusOK, override)
}
