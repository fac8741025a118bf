package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portssvc "github.com/univenta/retail_ledger_app/internal/core/ports/services"
	"github.com/univenta/retail_ledger_app/internal/dto"
	"github.com/univenta/retail_ledger_app/internal/handlers"
	"github.com/univenta/retail_ledger_app/internal/middleware"
	"github.com/univenta/retail_ledger_app/internal/platform/config"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Expense), next, args.Error(2)
}
func (m *MockExpenseService) PayExpense(ctx context.Context, expenseID string, req dto.PayExpenseRequest, userID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock AdjustmentService ---
type MockAdjustmentService struct {
	mock.Mock
}

func (m *MockAdjustmentService) ListAdjustments(ctx context.Context, expenseID string) ([]domain.AdjustmentRecord, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdjustmentRecord), args.Error(1)
}
func (m *MockAdjustmentService) AdjustExpense(ctx context.Context, expenseID string, req dto.AdjustExpenseRequest, userID string) (*domain.Expense, *domain.AdjustmentRecord, error) {
	args := m.Called(ctx, expenseID, req, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).(*domain.AdjustmentRecord), args.Error(2)
}
func (m *MockAdjustmentService) RevertExpense(ctx context.Context, expenseID string, req dto.RevertExpenseRequest, userID string) (*domain.Expense, *domain.AdjustmentRecord, error) {
	args := m.Called(ctx, expenseID, req, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).(*domain.AdjustmentRecord), args.Error(2)
}

var _ portssvc.AdjustmentSvcFacade = (*MockAdjustmentService)(nil)

// --- Mock FallbackResolverService ---
type MockFallbackService struct {
	mock.Mock
}

func (m *MockFallbackService) CheckPayment(ctx context.Context, params dto.FallbackCheckParams) (*domain.FallbackCheck, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FallbackCheck), args.Error(1)
}

var _ portssvc.FallbackResolverSvc = (*MockFallbackService)(nil)

// --- Test Suite ---
type ExpenseHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockExpenseService    *MockExpenseService
	mockAdjustmentService *MockAdjustmentService
	mockFallbackService   *MockFallbackService
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.ActorMiddleware())

	suite.mockExpenseService = new(MockExpenseService)
	suite.mockAdjustmentService = new(MockAdjustmentService)
	suite.mockFallbackService = new(MockFallbackService)

	handlers.RegisterRoutes(suite.router, &config.Config{}, &portssvc.ServiceContainer{
		Expense:    suite.mockExpenseService,
		Adjustment: suite.mockAdjustmentService,
		Fallback:   suite.mockFallbackService,
	})
}

func (suite *ExpenseHandlerTestSuite) postJSON(url string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", "admin")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ExpenseHandlerTestSuite) TestPayExpense_Success() {
	expenseID := uuid.NewString()
	accountID := uuid.NewString()
	method := "cash"
	paidAt := time.Now()
	paid := &domain.Expense{
		ExpenseID:        expenseID,
		Category:         domain.CategorySupplies,
		Description:      "register tape",
		Amount:           decimal.NewFromInt(30000),
		AmountPaid:       decimal.NewFromInt(30000),
		ExpenseDate:      time.Now(),
		PaymentAccountID: &accountID,
		PaymentMethod:    &method,
		PaidAt:           &paidAt,
	}

	suite.mockExpenseService.On("PayExpense",
		mock.Anything,
		expenseID,
		mock.MatchedBy(func(r dto.PayExpenseRequest) bool {
			return r.Amount.Equal(decimal.NewFromInt(30000)) && r.AccountID == accountID && !r.UseFallback
		}),
		"admin",
	).Return(paid, nil).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/expenses/%s/pay", expenseID), dto.PayExpenseRequest{
		Amount:    decimal.NewFromInt(30000),
		AccountID: accountID,
		Method:    "cash",
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expenseID, resp.ExpenseID)
	suite.Equal(domain.ExpensePaid, resp.Status)
	suite.True(resp.IsPaid)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestPayExpense_FallbackConfirmationIs409() {
	expenseID := uuid.NewString()
	registerID := uuid.NewString()
	vaultID := uuid.NewString()

	suite.mockExpenseService.On("PayExpense", mock.Anything, expenseID, mock.Anything, mock.Anything).
		Return(nil, &apperrors.FallbackConfirmationError{
			SourceAccountID:   registerID,
			SourceBalance:     decimal.NewFromInt(50000),
			FallbackAccountID: vaultID,
			FallbackBalance:   decimal.NewFromInt(200000),
		}).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/expenses/%s/pay", expenseID), dto.PayExpenseRequest{
		Amount:    decimal.NewFromInt(80000),
		AccountID: registerID,
		Method:    "cash",
	})

	suite.Equal(http.StatusConflict, w.Code)

	var resp dto.FallbackConfirmationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(registerID, resp.SourceAccountID)
	suite.Equal(vaultID, resp.FallbackAccountID)
	suite.True(resp.SourceBalance.Equal(decimal.NewFromInt(50000)))
	suite.True(resp.FallbackBalance.Equal(decimal.NewFromInt(200000)))
}

func (suite *ExpenseHandlerTestSuite) TestPayExpense_InsufficientFundsIs422() {
	expenseID := uuid.NewString()
	registerID := uuid.NewString()
	fallbackBalance := decimal.NewFromInt(200000)

	suite.mockExpenseService.On("PayExpense", mock.Anything, expenseID, mock.Anything, mock.Anything).
		Return(nil, &apperrors.InsufficientFundsError{
			AccountID:       registerID,
			Balance:         decimal.NewFromInt(50000),
			Requested:       decimal.NewFromInt(300000),
			FallbackBalance: &fallbackBalance,
		}).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/expenses/%s/pay", expenseID), dto.PayExpenseRequest{
		Amount:    decimal.NewFromInt(300000),
		AccountID: registerID,
		Method:    "cash",
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var resp dto.InsufficientFundsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(registerID, resp.AccountID)
	suite.True(resp.Requested.Equal(decimal.NewFromInt(300000)))
	suite.Require().NotNil(resp.FallbackBalance)
	suite.True(resp.FallbackBalance.Equal(fallbackBalance))
}

func (suite *ExpenseHandlerTestSuite) TestPayExpense_MissingFieldsRejected() {
	expenseID := uuid.NewString()

	w := suite.postJSON(fmt.Sprintf("/api/v1/expenses/%s/pay", expenseID), gin.H{
		"amount": 1000,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "PayExpense",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestCheckFallback_Success() {
	registerID := uuid.NewString()
	vaultID := uuid.NewString()
	check := &domain.FallbackCheck{
		CanPay:             false,
		SourceAccountID:    registerID,
		SourceBalance:      decimal.NewFromInt(50000),
		FallbackConfigured: true,
		FallbackAccountID:  vaultID,
		FallbackBalance:    decimal.NewFromInt(200000),
		FallbackAvailable:  true,
	}

	suite.mockFallbackService.On("CheckPayment", mock.Anything, mock.MatchedBy(func(p dto.FallbackCheckParams) bool {
		return p.AccountID == registerID && p.Amount.Equal(decimal.NewFromInt(80000))
	})).Return(check, nil).Once()

	url := fmt.Sprintf("/api/v1/fallback/check?accountID=%s&amount=80000", registerID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.FallbackCheckResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.CanPay)
	suite.True(resp.FallbackAvailable)
	suite.Require().NotNil(resp.FallbackAccountID)
	suite.Equal(vaultID, *resp.FallbackAccountID)
	suite.mockFallbackService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestAdjustExpense_NoChangeIs400() {
	expenseID := uuid.NewString()

	suite.mockAdjustmentService.On("AdjustExpense", mock.Anything, expenseID, mock.Anything, "admin").
		Return(nil, nil, apperrors.NewAppError(400, "requested values match current state", apperrors.ErrNoChangeRequested)).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/expenses/%s/adjust", expenseID), gin.H{
		"description": "a long enough description",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAdjustmentService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_NotFound() {
	expenseID := uuid.NewString()
	suite.mockExpenseService.On("GetExpenseByID", mock.Anything, expenseID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/expenses/"+expenseID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Run Test Suite ---
func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
