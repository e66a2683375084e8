package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/dto"
	"github.com/SscSPs/reconciliation_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cashHandler handles HTTP requests related to the cash drawer.
type cashHandler struct {
	cashService portssvc.CashBalanceSvc
}

func newCashHandler(cs portssvc.CashBalanceSvc) *cashHandler {
	return &cashHandler{cashService: cs}
}

func registerCashRoutes(rg *gin.RouterGroup, cashService portssvc.CashBalanceSvc) {
	h := newCashHandler(cashService)

	cash := rg.Group("/cash")
	{
		cash.GET("/live", h.getLiveCash)
	}
}

// getLiveCash godoc
// @Summary Live cash on hand
// @Description Computes the cash expected in the drawer: the latest cash cut plus every cash movement after it
// @Tags cash
// @Produce json
// @Param location_id query string true "Location ID"
// @Success 200 {object} dto.LiveCashResponse
// @Failure 400 {object} ErrorResponse "Missing location"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to compute live cash"
// @Security BearerAuth
// @Router /cash/live [get]
func (h *cashHandler) getLiveCash(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var q dto.LiveCashQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Invalid live cash query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "location_id is required"})
		return
	}

	result, err := h.cashService.LiveCash(c.Request.Context(), q.LocationID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute live cash")
		return
	}

	logger.Info("Live cash computed", slog.String("location_id", q.LocationID), slog.String("amount", result.Amount.String()))
	c.JSON(http.StatusOK, dto.ToLiveCashResponse(result))
}
