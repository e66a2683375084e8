package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/reconciliation_engine/internal/adapters/database/memory"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type CashBalanceServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.CashBalanceSvc
}

func (suite *CashBalanceServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.service = services.NewCashBalanceService(suite.store, testOptions()...)
}

func (suite *CashBalanceServiceTestSuite) seedCut(cut domain.CashCut) {
	seed(suite.T(), suite.store, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.UpsertCashCut(ctx, cut)
	})
}

func (suite *CashBalanceServiceTestSuite) seedIncome(income domain.ManualIncome) {
	seed(suite.T(), suite.store, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.UpsertManualIncome(ctx, income)
	})
}

func (suite *CashBalanceServiceTestSuite) TestLiveCash_CutPlusDelta() {
	suite.seedCut(domain.CashCut{CutID: "cut-1", LocationID: "loc-1", CutAt: jan(10, 10, 0), SystemTotal: decPtr("500")})
	seedSales(suite.T(), suite.store, cashSale("s1", "loc-1", jan(10, 14, 0), "150", serviceItem("p1", "150")))
	seedExpenses(suite.T(), suite.store, domain.Expense{ExpenseID: "e1", LocationID: "loc-1", Date: jan(10, 16, 0), Concept: "Supplies", Amount: dec("50")})

	result, err := suite.service.LiveCash(context.Background(), "loc-1")

	suite.Require().NoError(err)
	assertMoney(suite.T(), "600", result.Amount)
	suite.Equal(domain.BaselineSystemTotal, result.BaselineSource)
	suite.Equal("cut-1", result.CutID)
	suite.Equal(2, result.EventCount)
}

func (suite *CashBalanceServiceTestSuite) TestLiveCash_BoundaryEventsExcluded() {
	suite.seedCut(domain.CashCut{CutID: "cut-1", LocationID: "loc-1", CutAt: jan(10, 10, 0), SystemTotal: decPtr("500")})
	seedSales(suite.T(), suite.store,
		cashSale("before", "loc-1", jan(10, 9, 0), "70"),
		cashSale("at-cut", "loc-1", jan(10, 10, 0), "99"),
		cashSale("after", "loc-1", jan(10, 10, 1), "1"),
	)
	suite.seedIncome(domain.ManualIncome{IncomeID: "i1", LocationID: "loc-1", Date: jan(10, 10, 0), Amount: dec("40")})

	result, err := suite.service.LiveCash(context.Background(), "loc-1")

	suite.Require().NoError(err)
	assertMoney(suite.T(), "501", result.Amount)
	suite.Equal(1, result.EventCount)
}

func (suite *CashBalanceServiceTestSuite) TestLiveCash_LegacyBaseline() {
	suite.seedCut(domain.CashCut{
		CutID:                 "cut-legacy",
		LocationID:            "loc-1",
		CutAt:                 jan(5, 20, 0),
		LegacyCalculatedTotal: decPtr("300"),
		BaseFloat:             decPtr("100"),
		DeliveredAmount:       dec("-1"),
	})

	result, err := suite.service.LiveCash(context.Background(), "loc-1")

	suite.Require().NoError(err)
	assertMoney(suite.T(), "300", result.Amount)
	suite.Equal(domain.BaselineLegacyTotal, result.BaselineSource)
}

func (suite *CashBalanceServiceTestSuite) TestLiveCash_BaseFloatWhenDelivered() {
	suite.seedCut(domain.CashCut{
		CutID:                 "cut-1",
		LocationID:            "loc-1",
		CutAt:                 jan(5, 20, 0),
		LegacyCalculatedTotal: decPtr("300"),
		BaseFloat:             decPtr("100"),
		DeliveredAmount:       dec("250"),
	})
	suite.seedIncome(domain.ManualIncome{IncomeID: "i1", LocationID: "loc-1", Date: jan(6, 9, 0), Amount: dec("12.5")})

	result, err := suite.service.LiveCash(context.Background(), "loc-1")

	suite.Require().NoError(err)
	assertMoney(suite.T(), "112.5", result.Amount)
	suite.Equal(domain.BaselineBaseFloat, result.BaselineSource)
}

func (suite *CashBalanceServiceTestSuite) TestLiveCash_NoCutStartsFromZero() {
	seedSales(suite.T(), suite.store, cashSale("s1", "loc-1", jan(2, 9, 0), "20"))

	result, err := suite.service.LiveCash(context.Background(), "loc-1")

	suite.Require().NoError(err)
	assertMoney(suite.T(), "20", result.Amount)
	suite.Equal(domain.BaselineNone, result.BaselineSource)
	suite.Empty(result.CutID)
}

func (suite *CashBalanceServiceTestSuite) TestLiveCash_CashComponentOfSales() {
	suite.seedCut(domain.CashCut{CutID: "cut-1", LocationID: "loc-1", CutAt: jan(10, 8, 0), SystemTotal: decPtr("0")})

	partial := cashSale("partial", "loc-1", jan(10, 9, 0), "100")
	partial.RealPaid = decPtr("40")
	mixed := cashSale("mixed", "loc-1", jan(10, 10, 0), "100")
	mixed.PaymentMethod = domain.PaymentMixed
	mixed.MixedBreakdown = &domain.MixedBreakdown{Cash: dec("30"), Card: dec("70")}
	card := cashSale("card", "loc-1", jan(10, 11, 0), "500")
	card.PaymentMethod = domain.PaymentCard
	elsewhere := cashSale("elsewhere", "loc-2", jan(10, 12, 0), "1000")
	seedSales(suite.T(), suite.store, partial, mixed, card, elsewhere)

	result, err := suite.service.LiveCash(context.Background(), "loc-1")

	suite.Require().NoError(err)
	assertMoney(suite.T(), "70", result.Amount)
	assertMoney(suite.T(), "70", result.SalesCash)
	suite.Equal(3, result.EventCount)
}

func (suite *CashBalanceServiceTestSuite) TestLiveCash_RoundsAndIsIdempotent() {
	suite.seedCut(domain.CashCut{CutID: "cut-1", LocationID: "loc-1", CutAt: jan(10, 8, 0), SystemTotal: decPtr("10.001")})
	suite.seedIncome(domain.ManualIncome{IncomeID: "i1", LocationID: "loc-1", Date: jan(10, 9, 0), Amount: dec("0.333")})

	first, err := suite.service.LiveCash(context.Background(), "loc-1")
	suite.Require().NoError(err)
	second, err := suite.service.LiveCash(context.Background(), "loc-1")
	suite.Require().NoError(err)

	assertMoney(suite.T(), "10.33", first.Amount)
	suite.Equal(first.Amount.String(), second.Amount.String())
	suite.Equal(first.EventCount, second.EventCount)
}

func (suite *CashBalanceServiceTestSuite) TestLiveCash_AllLocationsUsesGlobalLatestCut() {
	suite.seedCut(domain.CashCut{CutID: "old", LocationID: "loc-1", CutAt: jan(3, 8, 0), SystemTotal: decPtr("1000")})
	suite.seedCut(domain.CashCut{CutID: "new", LocationID: "loc-2", CutAt: jan(4, 8, 0), SystemTotal: decPtr("200")})
	seedSales(suite.T(), suite.store,
		cashSale("s1", "loc-1", jan(3, 9, 0), "5"),
		cashSale("s2", "loc-1", jan(4, 9, 0), "7"),
	)

	result, err := suite.service.LiveCash(context.Background(), "")

	suite.Require().NoError(err)
	suite.Equal("new", result.CutID)
	assertMoney(suite.T(), "207", result.Amount)
}

func TestCashBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashBalanceServiceTestSuite))
}
