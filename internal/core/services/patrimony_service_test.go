package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portssvc "github.com/univenta/retail_ledger_app/internal/core/ports/services"
	"github.com/univenta/retail_ledger_app/internal/core/services"
)

// MockPatrimonyReader is a mock type for the PatrimonyReader interface
type MockPatrimonyReader struct {
	mock.Mock
}

func (m *MockPatrimonyReader) SumBalancesByKind(ctx context.Context) (map[domain.AccountKind]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountKind]decimal.Decimal), args.Error(1)
}

func (m *MockPatrimonyReader) SumPendingExpenses(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPatrimonyReader) SumPendingDebts(ctx context.Context, kind domain.DebtKind) (decimal.Decimal, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPatrimonyReader) InventoryValuation(ctx context.Context) (decimal.Decimal, time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Get(1).(time.Time), args.Error(2)
}

// --- Test Suite Setup ---

type PatrimonyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPatrimonyReader
	service  portssvc.PatrimonySvc
}

func (suite *PatrimonyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPatrimonyReader)
	suite.service = services.NewPatrimonyService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *PatrimonyServiceTestSuite) TestGetPatrimony_ComposesSnapshot() {
	ctx := context.Background()
	balances := map[domain.AccountKind]decimal.Decimal{
		domain.CashPrimary:      decimal.NewFromInt(50000),
		domain.CashSecondary:    decimal.NewFromInt(200000),
		domain.Bank:             decimal.NewFromInt(300000),
		domain.AssetFixed:       decimal.NewFromInt(1200000),
		domain.LiabilityCurrent: decimal.NewFromInt(80000),
		domain.LiabilityLong:    decimal.NewFromInt(400000),
	}
	suite.mockRepo.On("SumBalancesByKind", ctx).Return(balances, nil).Once()
	suite.mockRepo.On("InventoryValuation", ctx).Return(decimal.NewFromInt(650000), time.Now(), nil).Once()
	suite.mockRepo.On("SumPendingDebts", ctx, domain.Receivable).Return(decimal.NewFromInt(90000), nil).Once()
	suite.mockRepo.On("SumPendingDebts", ctx, domain.Payable).Return(decimal.NewFromInt(120000), nil).Once()
	suite.mockRepo.On("SumPendingExpenses", ctx).Return(decimal.NewFromInt(30000), nil).Once()

	snapshot, err := suite.service.GetPatrimony(ctx)

	suite.Require().NoError(err)
	// liquid = register + vault + bank
	suite.True(snapshot.Assets.LiquidCash.Equal(decimal.NewFromInt(550000)))
	suite.True(snapshot.Assets.CurrentTotal.Equal(decimal.NewFromInt(1290000)))
	suite.True(snapshot.Assets.Total.Equal(decimal.NewFromInt(2490000)))
	suite.True(snapshot.Liabilities.CurrentTotal.Equal(decimal.NewFromInt(230000)))
	suite.True(snapshot.Liabilities.Total.Equal(decimal.NewFromInt(630000)))
	suite.True(snapshot.NetPatrimony.Equal(snapshot.Assets.Total.Sub(snapshot.Liabilities.Total)))
	suite.False(snapshot.ComputedAt.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PatrimonyServiceTestSuite) TestGetPatrimony_EmptyLedger() {
	ctx := context.Background()
	suite.mockRepo.On("SumBalancesByKind", ctx).Return(map[domain.AccountKind]decimal.Decimal{}, nil).Once()
	suite.mockRepo.On("InventoryValuation", ctx).Return(decimal.Zero, time.Time{}, nil).Once()
	suite.mockRepo.On("SumPendingDebts", ctx, mock.Anything).Return(decimal.Zero, nil).Twice()
	suite.mockRepo.On("SumPendingExpenses", ctx).Return(decimal.Zero, nil).Once()

	snapshot, err := suite.service.GetPatrimony(ctx)

	suite.Require().NoError(err)
	suite.True(snapshot.Assets.Total.IsZero())
	suite.True(snapshot.Liabilities.Total.IsZero())
	suite.True(snapshot.NetPatrimony.IsZero())
}

func (suite *PatrimonyServiceTestSuite) TestGetPatrimony_RepoErrorPropagates() {
	ctx := context.Background()
	suite.mockRepo.On("SumBalancesByKind", ctx).Return(nil, errors.New("balances query failed")).Once()

	snapshot, err := suite.service.GetPatrimony(ctx)

	suite.Require().Error(err)
	suite.Nil(snapshot)
	suite.mockRepo.AssertNotCalled(suite.T(), "SumPendingExpenses", mock.Anything)
}

func TestPatrimonyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PatrimonyServiceTestSuite))
}
