package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/univenta/retail_ledger_app/internal/core/ports/services"
	"github.com/univenta/retail_ledger_app/internal/core/services"
	"github.com/univenta/retail_ledger_app/internal/dto"
)

// MockExpenseRepository is a mock type for the ExpenseRepositoryFacade interface
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ListExpensesFilter) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Expense), next, args.Error(2)
}

func (m *MockExpenseRepository) ApplyPayment(ctx context.Context, expenseID string, accountID string, amount decimal.Decimal, method string, paidBy string, now time.Time) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, accountID, amount, method, paidBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

// --- Test Suite Setup ---

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ExpenseSvcFacade

	registerID string
	vaultID    string
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	resolver := services.NewFallbackResolver(suite.mockAccountRepo)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockAccountRepo, resolver)
	suite.registerID = uuid.NewString()
	suite.vaultID = uuid.NewString()
}

func (suite *ExpenseServiceTestSuite) pendingExpense(amount int64) *domain.Expense {
	return &domain.Expense{
		ExpenseID:   uuid.NewString(),
		Category:    domain.CategorySupplies,
		Description: "packaging material restock",
		Amount:      decimal.NewFromInt(amount),
		AmountPaid:  decimal.Zero,
		ExpenseDate: time.Now(),
	}
}

func (suite *ExpenseServiceTestSuite) mockRegisterAndVault(registerBalance, vaultBalance int64) {
	register := &domain.BalanceAccount{
		AccountID:         suite.registerID,
		Kind:              domain.CashPrimary,
		Balance:           decimal.NewFromInt(registerBalance),
		FallbackAccountID: &suite.vaultID,
		IsActive:          true,
	}
	vault := &domain.BalanceAccount{
		AccountID: suite.vaultID,
		Kind:      domain.CashSecondary,
		Balance:   decimal.NewFromInt(vaultBalance),
		IsActive:  true,
	}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.registerID).Return(register, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.vaultID).Return(vault, nil)
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Category:    domain.CategoryRent,
		Description: "storefront rent for March",
		Amount:      decimal.NewFromInt(250000),
		ExpenseDate: time.Now(),
	}

	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, req, "clerk-1")

	suite.Require().NoError(err)
	suite.NotEmpty(expense.ExpenseID)
	suite.Equal(domain.ExpensePending, expense.Status())
	suite.True(expense.AmountPaid.IsZero())
	suite.Equal("clerk-1", expense.CreatedBy)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Category:    domain.CategoryOther,
		Description: "bad request",
		Amount:      decimal.NewFromInt(-5),
		ExpenseDate: time.Now(),
	}

	expense, err := suite.service.CreateExpense(ctx, req, "clerk-1")

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_SufficientFunds() {
	ctx := context.Background()
	expense := suite.pendingExpense(30000)
	suite.mockRegisterAndVault(50000, 200000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	paid := *expense
	paid.AmountPaid = decimal.NewFromInt(30000)
	paid.PaymentAccountID = &suite.registerID
	suite.mockExpenseRepo.On("ApplyPayment", ctx, expense.ExpenseID, suite.registerID, decimal.NewFromInt(30000), "cash", "clerk-1", mock.AnythingOfType("time.Time")).
		Return(&paid, nil).Once()

	result, err := suite.service.PayExpense(ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:    decimal.NewFromInt(30000),
		AccountID: suite.registerID,
		Method:    "cash",
	}, "clerk-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ExpensePaid, result.Status())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_RequiresFallbackConfirmation() {
	ctx := context.Background()
	expense := suite.pendingExpense(80000)
	suite.mockRegisterAndVault(50000, 200000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	result, err := suite.service.PayExpense(ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:    decimal.NewFromInt(80000),
		AccountID: suite.registerID,
		Method:    "cash",
	}, "clerk-1")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNeedsFallbackConfirmation)

	var confirmErr *apperrors.FallbackConfirmationError
	suite.Require().ErrorAs(err, &confirmErr)
	suite.Equal(suite.registerID, confirmErr.SourceAccountID)
	suite.True(confirmErr.SourceBalance.Equal(decimal.NewFromInt(50000)))
	suite.Equal(suite.vaultID, confirmErr.FallbackAccountID)
	suite.True(confirmErr.FallbackBalance.Equal(decimal.NewFromInt(200000)))

	// Nothing is debited before explicit consent.
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ApplyPayment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_ConfirmedFallbackDebitsVault() {
	ctx := context.Background()
	expense := suite.pendingExpense(80000)
	suite.mockRegisterAndVault(50000, 200000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	paid := *expense
	paid.AmountPaid = decimal.NewFromInt(80000)
	paid.PaymentAccountID = &suite.vaultID
	suite.mockExpenseRepo.On("ApplyPayment", ctx, expense.ExpenseID, suite.vaultID, decimal.NewFromInt(80000), "cash", "clerk-1", mock.AnythingOfType("time.Time")).
		Return(&paid, nil).Once()

	result, err := suite.service.PayExpense(ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:      decimal.NewFromInt(80000),
		AccountID:   suite.registerID,
		Method:      "cash",
		UseFallback: true,
	}, "clerk-1")

	suite.Require().NoError(err)
	suite.Equal(suite.vaultID, *result.PaymentAccountID)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_NeitherAccountCovers() {
	ctx := context.Background()
	expense := suite.pendingExpense(300000)
	suite.mockRegisterAndVault(50000, 200000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	result, err := suite.service.PayExpense(ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:    decimal.NewFromInt(300000),
		AccountID: suite.registerID,
		Method:    "cash",
	}, "clerk-1")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)

	var fundsErr *apperrors.InsufficientFundsError
	suite.Require().ErrorAs(err, &fundsErr)
	suite.True(fundsErr.Balance.Equal(decimal.NewFromInt(50000)))
	suite.Require().NotNil(fundsErr.FallbackBalance)
	suite.True(fundsErr.FallbackBalance.Equal(decimal.NewFromInt(200000)))
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_OverpaymentRejected() {
	ctx := context.Background()
	expense := suite.pendingExpense(30000)
	expense.AmountPaid = decimal.NewFromInt(20000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	result, err := suite.service.PayExpense(ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:    decimal.NewFromInt(15000),
		AccountID: suite.registerID,
		Method:    "cash",
	}, "clerk-1")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_AlreadyPaid() {
	ctx := context.Background()
	expense := suite.pendingExpense(30000)
	expense.AmountPaid = decimal.NewFromInt(30000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	result, err := suite.service.PayExpense(ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:    decimal.NewFromInt(1),
		AccountID: suite.registerID,
		Method:    "cash",
	}, "clerk-1")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// The confirmation retry may name the fallback account itself instead of
// keeping the original account id. The fallback has no fallback of its own,
// so consent plus a covering balance must be enough to debit it.
func (suite *ExpenseServiceTestSuite) TestPayExpense_RetryNamesFallbackAccountDirectly() {
	ctx := context.Background()
	expense := suite.pendingExpense(80000)
	suite.mockRegisterAndVault(50000, 200000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	paid := *expense
	paid.AmountPaid = decimal.NewFromInt(80000)
	paid.PaymentAccountID = &suite.vaultID
	suite.mockExpenseRepo.On("ApplyPayment", ctx, expense.ExpenseID, suite.vaultID, decimal.NewFromInt(80000), "cash", "clerk-1", mock.AnythingOfType("time.Time")).
		Return(&paid, nil).Once()

	result, err := suite.service.PayExpense(ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:      decimal.NewFromInt(80000),
		AccountID:   suite.vaultID,
		Method:      "cash",
		UseFallback: true,
	}, "clerk-1")

	suite.Require().NoError(err)
	suite.Equal(suite.vaultID, *result.PaymentAccountID)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_UseFallbackWithoutCoverage() {
	ctx := context.Background()
	expense := suite.pendingExpense(30000)
	register := &domain.BalanceAccount{
		AccountID: suite.registerID,
		Kind:      domain.CashPrimary,
		Balance:   decimal.NewFromInt(10000),
		IsActive:  true,
	}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.registerID).Return(register, nil)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	result, err := suite.service.PayExpense(ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:      decimal.NewFromInt(30000),
		AccountID:   suite.registerID,
		Method:      "cash",
		UseFallback: true,
	}, "clerk-1")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ApplyPayment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_StatusFilterPassedThrough() {
	ctx := context.Background()
	wantStatus := domain.ExpensePending
	suite.mockExpenseRepo.On("ListExpenses", ctx, mock.MatchedBy(func(f portsrepo.ListExpensesFilter) bool {
		return f.Status != nil && *f.Status == wantStatus && f.Limit == 20
	})).Return([]domain.Expense{}, nil, nil).Once()

	expenses, next, err := suite.service.ListExpenses(ctx, dto.ListExpensesParams{Status: "pending", Limit: 20})

	suite.Require().NoError(err)
	suite.Empty(expenses)
	suite.Nil(next)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
