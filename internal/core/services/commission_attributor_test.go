package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/reconciliation_engine/internal/adapters/database/memory"
	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type CommissionAttributorTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.CommissionAttributorSvc
}

func (suite *CommissionAttributorTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.service = services.NewCommissionAttributor(suite.store, testOptions()...)
}

func (suite *CommissionAttributorTestSuite) TestSummarize_LabelledComment() {
	expenses := []domain.Expense{{
		ExpenseID: "e1",
		Concept:   "Commission",
		Recipient: "profA",
		Amount:    dec("96.85"),
		Comment:   "Service Commission: $70.00, Product Commission: $26.85, Tip: $0.00",
	}}

	got := suite.service.Summarize(expenses, nil)

	suite.Require().Contains(got, "profA")
	assertMoney(suite.T(), "70", got["profA"].ServiceCommission)
	assertMoney(suite.T(), "26.85", got["profA"].ProductCommission)
	assertMoney(suite.T(), "0", got["profA"].Tip)
}

func (suite *CommissionAttributorTestSuite) TestSummarize_FallbackBucket() {
	expenses := []domain.Expense{{ExpenseID: "e1", Concept: "Commission", Recipient: "profB", Amount: dec("40")}}

	got := suite.service.Summarize(expenses, nil)

	suite.Require().Contains(got, "profB")
	assertMoney(suite.T(), "40", got["profB"].ServiceCommission)
	assertMoney(suite.T(), "0", got["profB"].ProductCommission)
	assertMoney(suite.T(), "0", got["profB"].Tip)
}

func (suite *CommissionAttributorTestSuite) TestSummarize_ResolvesProfessionalNames() {
	professionals := []domain.Professional{{ProfessionalID: "p1", Name: "Ana"}}
	expenses := []domain.Expense{
		{ExpenseID: "e1", Concept: "commission", Recipient: "p1", Amount: dec("10")},
		{ExpenseID: "e2", Concept: "Weekly COMMISSIONS", Recipient: "p1", Amount: dec("5")},
		{ExpenseID: "e3", Concept: "Commission", Recipient: "Luis", Amount: dec("7")},
	}

	got := suite.service.Summarize(expenses, professionals)

	suite.Len(got, 2)
	assertMoney(suite.T(), "15", got["Ana"].ServiceCommission)
	assertMoney(suite.T(), "7", got["Luis"].ServiceCommission)
	suite.NotContains(got, "p1")
}

func (suite *CommissionAttributorTestSuite) TestSummarize_SkipsOtherExpensesAndZeroTotals() {
	expenses := []domain.Expense{
		{ExpenseID: "e1", Concept: "Rent", Recipient: "landlord", Amount: dec("900")},
		{ExpenseID: "e2", Concept: "Commission", Recipient: "ghost", Amount: dec("0")},
		{ExpenseID: "e3", Concept: "Commission", Recipient: "even", Amount: dec("10")},
		{ExpenseID: "e4", Concept: "Commission", Recipient: "even", Amount: dec("-10")},
	}

	got := suite.service.Summarize(expenses, nil)

	suite.Empty(got)
}

func (suite *CommissionAttributorTestSuite) TestSummarize_TypedBreakdownWinsOverComment() {
	expenses := []domain.Expense{{
		ExpenseID: "e1",
		Concept:   "Commission",
		Category:  domain.CategoryCommissionPayment,
		Recipient: "p1",
		Amount:    dec("12"),
		Comment:   "Service Commission: $99.00",
		Breakdown: &domain.CommissionBreakdown{Service: dec("5"), Product: dec("4"), Tip: dec("3")},
	}}

	got := suite.service.Summarize(expenses, nil)

	assertMoney(suite.T(), "5", got["p1"].ServiceCommission)
	assertMoney(suite.T(), "4", got["p1"].ProductCommission)
	assertMoney(suite.T(), "3", got["p1"].Tip)
}

func (suite *CommissionAttributorTestSuite) TestCommissionSummary_RangeAndRounding() {
	seed(suite.T(), suite.store, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.UpsertProfessional(ctx, domain.Professional{ProfessionalID: "p1", LocationID: "loc-1", Name: "Ana"})
	})
	seedExpenses(suite.T(), suite.store,
		domain.Expense{ExpenseID: "in-1", LocationID: "loc-1", Date: jan(10, 9, 0), Concept: "Commission", Recipient: "p1", Amount: dec("33.333")},
		domain.Expense{ExpenseID: "in-2", LocationID: "loc-1", Date: jan(11, 9, 0), Concept: "Commission", Recipient: "p1", Amount: dec("10")},
		domain.Expense{ExpenseID: "out", LocationID: "loc-1", Date: jan(12, 0, 0), Concept: "Commission", Recipient: "p1", Amount: dec("1000")},
		domain.Expense{ExpenseID: "other-loc", LocationID: "loc-2", Date: jan(10, 9, 0), Concept: "Commission", Recipient: "p1", Amount: dec("1000")},
	)

	got, err := suite.service.CommissionSummary(context.Background(), "loc-1", jan(10, 0, 0), jan(12, 0, 0))

	suite.Require().NoError(err)
	suite.Require().Contains(got, "Ana")
	suite.Equal("43.33", got["Ana"].ServiceCommission.StringFixed(2))
}

func (suite *CommissionAttributorTestSuite) TestCommissionSummary_InvalidRange() {
	got, err := suite.service.CommissionSummary(context.Background(), "loc-1", jan(12, 0, 0), jan(12, 0, 0))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(got)
}

func TestCommissionAttributorTestSuite(t *testing.T) {
	suite.Run(t, new(CommissionAttributorTestSuite))
}
