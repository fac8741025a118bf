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
	portssvc "github.com/univenta/retail_ledger_app/internal/core/ports/services"
	"github.com/univenta/retail_ledger_app/internal/core/services"
	"github.com/univenta/retail_ledger_app/internal/dto"
)

// MockAdjustmentRepository is a mock type for the AdjustmentRepositoryFacade interface
type MockAdjustmentRepository struct {
	mock.Mock
}

func (m *MockAdjustmentRepository) FindAdjustmentsByExpenseID(ctx context.Context, expenseID string) ([]domain.AdjustmentRecord, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdjustmentRecord), args.Error(1)
}

func (m *MockAdjustmentRepository) ApplyAdjustment(ctx context.Context, expenseID string, change domain.AdjustmentChange, adjustedBy string, now time.Time) (*domain.Expense, *domain.AdjustmentRecord, error) {
	args := m.Called(ctx, expenseID, change, adjustedBy, now)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).(*domain.AdjustmentRecord), args.Error(2)
}

func (m *MockAdjustmentRepository) ApplyReversal(ctx context.Context, expenseID string, description string, revertedBy string, now time.Time) (*domain.Expense, *domain.AdjustmentRecord, error) {
	args := m.Called(ctx, expenseID, description, revertedBy, now)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).(*domain.AdjustmentRecord), args.Error(2)
}

// --- Test Suite Setup ---

type AdjustmentServiceTestSuite struct {
	suite.Suite
	mockAdjustmentRepo *MockAdjustmentRepository
	mockExpenseRepo    *MockExpenseRepository
	mockAccountRepo    *MockAccountRepository
	service            portssvc.AdjustmentSvcFacade

	registerID string
	bankID     string
}

func (suite *AdjustmentServiceTestSuite) SetupTest() {
	suite.mockAdjustmentRepo = new(MockAdjustmentRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAdjustmentService(suite.mockAdjustmentRepo, suite.mockExpenseRepo, suite.mockAccountRepo)
	suite.registerID = uuid.NewString()
	suite.bankID = uuid.NewString()
}

func (suite *AdjustmentServiceTestSuite) paidExpense(amount int64) *domain.Expense {
	method := "cash"
	paidAt := time.Now().Add(-time.Hour)
	return &domain.Expense{
		ExpenseID:        uuid.NewString(),
		Category:         domain.CategorySupplies,
		Description:      "cleaning products",
		Amount:           decimal.NewFromInt(amount),
		AmountPaid:       decimal.NewFromInt(amount),
		ExpenseDate:      time.Now().Add(-48 * time.Hour),
		PaymentAccountID: &suite.registerID,
		PaymentMethod:    &method,
		PaidAt:           &paidAt,
	}
}

// --- Test Cases ---

func (suite *AdjustmentServiceTestSuite) TestAdjustExpense_AmountCorrection() {
	ctx := context.Background()
	expense := suite.paidExpense(100000)
	newAmount := decimal.NewFromInt(90000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	adjusted := *expense
	adjusted.Amount = newAmount
	adjusted.AmountPaid = newAmount
	record := &domain.AdjustmentRecord{
		AdjustmentID:    uuid.NewString(),
		ExpenseID:       expense.ExpenseID,
		Reason:          domain.AmountCorrection,
		PreviousAmount:  decimal.NewFromInt(100000),
		NewAmount:       newAmount,
		AdjustmentDelta: decimal.NewFromInt(-10000),
	}
	suite.mockAdjustmentRepo.On("ApplyAdjustment", ctx, expense.ExpenseID, mock.MatchedBy(func(c domain.AdjustmentChange) bool {
		return c.Reason == domain.AmountCorrection && c.NewAmount != nil && c.NewAmount.Equal(newAmount) && c.NewAccountID == nil
	}), "admin", mock.AnythingOfType("time.Time")).Return(&adjusted, record, nil).Once()

	result, rec, err := suite.service.AdjustExpense(ctx, expense.ExpenseID, dto.AdjustExpenseRequest{
		NewAmount:   &newAmount,
		Description: "vendor issued a partial credit note",
	}, "admin")

	suite.Require().NoError(err)
	suite.True(result.Amount.Equal(newAmount))
	suite.True(result.IsPaid())
	suite.True(rec.AdjustmentDelta.Equal(decimal.NewFromInt(-10000)))
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestAdjustExpense_AccountCorrection() {
	ctx := context.Background()
	expense := suite.paidExpense(100000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	bank := &domain.BalanceAccount{
		AccountID: suite.bankID,
		Kind:      domain.Bank,
		Balance:   decimal.NewFromInt(500000),
		IsActive:  true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.bankID).Return(bank, nil).Once()

	adjusted := *expense
	adjusted.PaymentAccountID = &suite.bankID
	record := &domain.AdjustmentRecord{Reason: domain.AccountCorrection}
	suite.mockAdjustmentRepo.On("ApplyAdjustment", ctx, expense.ExpenseID, mock.MatchedBy(func(c domain.AdjustmentChange) bool {
		return c.Reason == domain.AccountCorrection && c.NewAmount == nil && c.NewAccountID != nil && *c.NewAccountID == suite.bankID
	}), "admin", mock.AnythingOfType("time.Time")).Return(&adjusted, record, nil).Once()

	result, rec, err := suite.service.AdjustExpense(ctx, expense.ExpenseID, dto.AdjustExpenseRequest{
		NewAccountID: &suite.bankID,
		Description:  "was actually paid by bank transfer",
	}, "admin")

	suite.Require().NoError(err)
	suite.Equal(suite.bankID, *result.PaymentAccountID)
	suite.Equal(domain.AccountCorrection, rec.Reason)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestAdjustExpense_DescriptionTooShort() {
	ctx := context.Background()
	newAmount := decimal.NewFromInt(90000)

	result, rec, err := suite.service.AdjustExpense(ctx, uuid.NewString(), dto.AdjustExpenseRequest{
		NewAmount:   &newAmount,
		Description: "typo",
	}, "admin")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindExpenseByID", mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestAdjustExpense_NothingToChange() {
	ctx := context.Background()

	result, rec, err := suite.service.AdjustExpense(ctx, uuid.NewString(), dto.AdjustExpenseRequest{
		Description: "a long enough description",
	}, "admin")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrNoChangeRequested)
}

func (suite *AdjustmentServiceTestSuite) TestAdjustExpense_SameValuesRejected() {
	ctx := context.Background()
	expense := suite.paidExpense(100000)
	sameAmount := decimal.NewFromInt(100000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	result, rec, err := suite.service.AdjustExpense(ctx, expense.ExpenseID, dto.AdjustExpenseRequest{
		NewAmount:   &sameAmount,
		Description: "no actual difference here",
	}, "admin")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrNoChangeRequested)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "ApplyAdjustment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestAdjustExpense_UnpaidRejected() {
	ctx := context.Background()
	expense := suite.paidExpense(100000)
	expense.AmountPaid = decimal.NewFromInt(40000)
	newAmount := decimal.NewFromInt(90000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	result, rec, err := suite.service.AdjustExpense(ctx, expense.ExpenseID, dto.AdjustExpenseRequest{
		NewAmount:   &newAmount,
		Description: "trying to adjust a partial payment",
	}, "admin")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdjustmentServiceTestSuite) TestRevertExpense_Success() {
	ctx := context.Background()
	expense := suite.paidExpense(100000)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	reverted := *expense
	reverted.AmountPaid = decimal.Zero
	reverted.PaymentAccountID = nil
	reverted.PaymentMethod = nil
	reverted.PaidAt = nil
	record := &domain.AdjustmentRecord{
		Reason:          domain.ErrorReversal,
		PreviousAmount:  decimal.NewFromInt(100000),
		NewAmount:       decimal.Zero,
		AdjustmentDelta: decimal.NewFromInt(-100000),
	}
	suite.mockAdjustmentRepo.On("ApplyReversal", ctx, expense.ExpenseID, "payment recorded against the wrong month", "admin", mock.AnythingOfType("time.Time")).
		Return(&reverted, record, nil).Once()

	result, rec, err := suite.service.RevertExpense(ctx, expense.ExpenseID, dto.RevertExpenseRequest{
		Description: "payment recorded against the wrong month",
	}, "admin")

	suite.Require().NoError(err)
	suite.Equal(domain.ExpensePending, result.Status())
	suite.Nil(result.PaymentAccountID)
	suite.Equal(domain.ErrorReversal, rec.Reason)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestListAdjustments_ExpenseMustExist() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(nil, apperrors.ErrNotFound).Once()

	records, err := suite.service.ListAdjustments(ctx, expenseID)

	suite.Require().Error(err)
	suite.Nil(records)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "FindAdjustmentsByExpenseID", mock.Anything, mock.Anything)
}

func TestAdjustmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdjustmentServiceTestSuite))
}
