package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	portssvc "github.com/univenta/retail_ledger_app/internal/core/ports/services"
	"github.com/univenta/retail_ledger_app/internal/dto"
	"github.com/univenta/retail_ledger_app/internal/middleware"
)

// expenseHandler handles HTTP requests related to expenses, their payments
// and their adjustment trail.
type expenseHandler struct {
	expenseService    portssvc.ExpenseSvcFacade
	adjustmentService portssvc.AdjustmentSvcFacade
	fallbackService   portssvc.FallbackResolverSvc
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, adjustmentService portssvc.AdjustmentSvcFacade, fallbackService portssvc.FallbackResolverSvc) {
	h := &expenseHandler{
		expenseService:    expenseService,
		adjustmentService: adjustmentService,
		fallbackService:   fallbackService,
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.POST("/:id/pay", h.payExpense)
		expenses.POST("/:id/adjust", h.adjustExpense)
		expenses.POST("/:id/revert", h.revertExpense)
		expenses.GET("/:id/adjustments", h.listAdjustments)
	}

	rg.GET("/fallback/check", h.checkFallback)
}

func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, nextToken, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list expenses", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expenses"})
		}
		return
	}

	resp := dto.ListExpensesResponse{
		Expenses:  make([]dto.ExpenseResponse, 0, len(expenses)),
		NextToken: nextToken,
	}
	for i := range expenses {
		resp.Expenses = append(resp.Expenses, dto.ToExpenseResponse(&expenses[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			logger.Error("Failed to get expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// payExpense maps the two-step fallback protocol onto HTTP: a confirmation
// requirement is 409 with the fallback details, an uncoverable payment is 422
// with both balances.
func (h *expenseHandler) payExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	var req dto.PayExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	expense, err := h.expenseService.PayExpense(c.Request.Context(), expenseID, req, actorID)
	if err != nil {
		var confirmErr *apperrors.FallbackConfirmationError
		var fundsErr *apperrors.InsufficientFundsError
		switch {
		case errors.As(err, &confirmErr):
			c.JSON(http.StatusConflict, dto.FallbackConfirmationResponse{
				Error:             confirmErr.Error(),
				SourceAccountID:   confirmErr.SourceAccountID,
				SourceBalance:     confirmErr.SourceBalance,
				FallbackAccountID: confirmErr.FallbackAccountID,
				FallbackBalance:   confirmErr.FallbackBalance,
			})
		case errors.As(err, &fundsErr):
			c.JSON(http.StatusUnprocessableEntity, dto.InsufficientFundsResponse{
				Error:           fundsErr.Error(),
				AccountID:       fundsErr.AccountID,
				Balance:         fundsErr.Balance,
				Requested:       fundsErr.Requested,
				FallbackBalance: fundsErr.FallbackBalance,
			})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to pay expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pay expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) adjustExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	var req dto.AdjustExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	expense, record, err := h.adjustmentService.AdjustExpense(c.Request.Context(), expenseID, req, actorID)
	if err != nil {
		h.respondAdjustmentError(c, logger, err, expenseID)
		return
	}

	c.JSON(http.StatusOK, dto.AdjustExpenseResponse{
		Expense:    dto.ToExpenseResponse(expense),
		Adjustment: dto.ToAdjustmentResponse(record),
	})
}

func (h *expenseHandler) revertExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	var req dto.RevertExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	expense, record, err := h.adjustmentService.RevertExpense(c.Request.Context(), expenseID, req, actorID)
	if err != nil {
		h.respondAdjustmentError(c, logger, err, expenseID)
		return
	}

	c.JSON(http.StatusOK, dto.AdjustExpenseResponse{
		Expense:    dto.ToExpenseResponse(expense),
		Adjustment: dto.ToAdjustmentResponse(record),
	})
}

func (h *expenseHandler) listAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	records, err := h.adjustmentService.ListAdjustments(c.Request.Context(), expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			logger.Error("Failed to list adjustments", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list adjustments"})
		}
		return
	}

	resp := dto.ListAdjustmentsResponse{Adjustments: make([]dto.AdjustmentResponse, 0, len(records))}
	for i := range records {
		resp.Adjustments = append(resp.Adjustments, dto.ToAdjustmentResponse(&records[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *expenseHandler) checkFallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.FallbackCheckParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	check, err := h.fallbackService.CheckPayment(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to run fallback check", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run fallback check"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFallbackCheckResponse(check))
}

func (h *expenseHandler) respondAdjustmentError(c *gin.Context, logger *slog.Logger, err error, expenseID string) {
	var fundsErr *apperrors.InsufficientFundsError
	switch {
	case errors.As(err, &fundsErr):
		c.JSON(http.StatusUnprocessableEntity, dto.InsufficientFundsResponse{
			Error:           fundsErr.Error(),
			AccountID:       fundsErr.AccountID,
			Balance:         fundsErr.Balance,
			Requested:       fundsErr.Requested,
			FallbackBalance: fundsErr.FallbackBalance,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
	case errors.Is(err, apperrors.ErrNoChangeRequested):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to apply adjustment", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply adjustment"})
	}
}
