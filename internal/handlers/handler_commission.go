package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/dto"
	"github.com/SscSPs/reconciliation_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// commissionHandler handles HTTP requests related to professional commissions.
type commissionHandler struct {
	commissions portssvc.CommissionAttributorSvc
	settlement  portssvc.SettlementSvcFacade
	location    *time.Location
	now         func() time.Time
}

func newCommissionHandler(cs portssvc.CommissionAttributorSvc, ss portssvc.SettlementSvcFacade, loc *time.Location) *commissionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &commissionHandler{commissions: cs, settlement: ss, location: loc, now: time.Now}
}

func registerCommissionRoutes(rg *gin.RouterGroup, h *commissionHandler) {
	commissions := rg.Group("/commissions")
	{
		commissions.GET("/summary", h.getCommissionSummary)
		commissions.POST("/payments", financeOnly, h.recordCommissionPayment)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.DELETE("/:expense_id", financeOnly, h.deleteExpense)
	}
}

// dateRange resolves the inclusive calendar days of q into a half-open interval in the
// business time zone.
func (h *commissionHandler) dateRange(q dto.CommissionSummaryQuery) (time.Time, time.Time, error) {
	today := h.now().In(h.location)
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, h.location)
	to := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, h.location)

	var err error
	if q.From != "" {
		if from, err = time.ParseInLocation(dto.DateLayout, q.From, h.location); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if q.To != "" {
		if to, err = time.ParseInLocation(dto.DateLayout, q.To, h.location); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to.AddDate(0, 0, 1), nil
}

// getCommissionSummary godoc
// @Summary Commission summary
// @Description Totals the service, product and tip commissions paid to every professional in a date range
// @Tags commissions
// @Produce json
// @Param location_id query string false "Location ID"
// @Param from query string false "First day (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "Last day, inclusive (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.CommissionSummaryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to summarize commissions"
// @Security BearerAuth
// @Router /commissions/summary [get]
func (h *commissionHandler) getCommissionSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var q dto.CommissionSummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	from, to, err := h.dateRange(q)
	if err != nil {
		logger.Warn("Invalid date in commission summary query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("location_id", q.LocationID), slog.Time("from", from), slog.Time("to", to))
	summary, err := h.commissions.CommissionSummary(c.Request.Context(), q.LocationID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to summarize commissions")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionSummaryResponse(q.LocationID, from, to.AddDate(0, 0, -1), summary))
}

// recordCommissionPayment godoc
// @Summary Record a commission payment
// @Description Creates a commission payment expense and marks the referenced sale items and tips as paid
// @Tags commissions
// @Accept json
// @Produce json
// @Param payment body dto.RecordCommissionPaymentRequest true "Payment details"
// @Success 201 {object} dto.CommissionPaymentResponse
// @Failure 400 {object} ErrorResponse "Invalid input or reference"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "Item already paid"
// @Failure 500 {object} ErrorResponse "Failed to record commission payment"
// @Security BearerAuth
// @Router /commissions/payments [post]
func (h *commissionHandler) recordCommissionPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.RecordCommissionPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordCommissionPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("recipient", req.Recipient))
	expense, settled, err := h.settlement.RecordCommissionPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record commission payment")
		return
	}

	logger.Info("Commission payment recorded", slog.String("expense_id", expense.ExpenseID), slog.Int("settled", len(settled)))
	c.JSON(http.StatusCreated, dto.CommissionPaymentResponse{
		Expense: dto.ToExpenseResponse(expense),
		Settled: settled,
	})
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Deletes an expense. Deleting a commission payment first reverts the paid flags it set.
// @Tags expenses
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Success 200 {object} dto.DeleteExpenseResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Failure 500 {object} ErrorResponse "Failed to delete expense"
// @Security BearerAuth
// @Router /expenses/{expense_id} [delete]
func (h *commissionHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	expenseID := c.Param("expense_id")
	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("expense_id", expenseID))
	result, err := h.settlement.DeleteExpense(c.Request.Context(), expenseID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete expense")
		return
	}

	logger.Info("Expense deleted", slog.String("mode", string(result.Mode)), slog.Int("reverted", len(result.Reverted)))
	c.JSON(http.StatusOK, dto.ToDeleteExpenseResponse(result))
}
