package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/dto"
	"github.com/SscSPs/reconciliation_engine/internal/middleware"
	"github.com/SscSPs/reconciliation_engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type importHandler struct {
	importService portssvc.ImportSvc
}

func registerImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvc) {
	h := &importHandler{importService: importService}
	rg.POST("/import", middleware.RequireRole(utils.RoleIntegration, utils.RoleFinance), h.importBatch)
}

// importBatch godoc
// @Summary Import records
// @Description Writes sales, expenses, cash movements and reference data pushed by the point-of-sale and finance workflows in one transaction
// @Tags import
// @Accept json
// @Produce json
// @Param batch body dto.ImportBatchRequest true "Records to write"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Failed to import records"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /import [post]
func (h *importHandler) importBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ImportBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Import", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	clientID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("client_id", clientID))
	result, err := h.importService.Import(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to import records")
		return
	}
	c.JSON(http.StatusOK, result)
}
