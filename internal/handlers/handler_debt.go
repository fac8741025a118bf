package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	portssvc "github.com/univenta/retail_ledger_app/internal/core/ports/services"
	"github.com/univenta/retail_ledger_app/internal/dto"
	"github.com/univenta/retail_ledger_app/internal/middleware"
)

// debtHandler handles HTTP requests related to receivables and payables.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

// registerDebtRoutes registers routes related to debts. The receivables and
// payables routes are shortcuts for the kind filter.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := &debtHandler{debtService: debtService}

	debts := rg.Group("/debts")
	{
		debts.POST("", h.createDebt)
		debts.GET("", h.listDebts)
		debts.GET("/:id", h.getDebt)
		debts.POST("/:id/pay", h.payDebt)
	}

	rg.GET("/receivables", h.listKind("receivable"))
	rg.GET("/payables", h.listKind("payable"))
}

func (h *debtHandler) createDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDebt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	debt, err := h.debtService.CreateDebt(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create debt in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create debt"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToDebtResponse(debt, time.Now()))
}

func (h *debtHandler) listDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDebtsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	h.respondDebtList(c, logger, params)
}

// listKind pins the kind filter for the /receivables and /payables shortcuts.
func (h *debtHandler) listKind(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		params := dto.ListDebtsParams{
			Kind:   kind,
			Limit:  parseIntQuery(c, "limit", 20),
			Offset: parseIntQuery(c, "offset", 0),
		}
		h.respondDebtList(c, logger, params)
	}
}

func (h *debtHandler) respondDebtList(c *gin.Context, logger *slog.Logger, params dto.ListDebtsParams) {
	debts, err := h.debtService.ListDebts(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list debts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list debts"})
		return
	}

	now := time.Now()
	resp := dto.ListDebtsResponse{Debts: make([]dto.DebtResponse, 0, len(debts))}
	for i := range debts {
		resp.Debts = append(resp.Debts, dto.ToDebtResponse(&debts[i], now))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *debtHandler) getDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtID := c.Param("id")

	debt, err := h.debtService.GetDebtByID(c.Request.Context(), debtID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Debt not found"})
		} else {
			logger.Error("Failed to get debt", slog.String("error", err.Error()), slog.String("debt_id", debtID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve debt"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt, time.Now()))
}

func (h *debtHandler) payDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtID := c.Param("id")

	var req dto.PayDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	debt, err := h.debtService.PayDebt(c.Request.Context(), debtID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Debt not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to pay debt", slog.String("error", err.Error()), slog.String("debt_id", debtID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pay debt"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt, time.Now()))
}
