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

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/dto"
	"github.com/SscSPs/reconciliation_engine/internal/handlers"
	"github.com/SscSPs/reconciliation_engine/internal/platform/config"
	"github.com/SscSPs/reconciliation_engine/internal/utils"
	"github.com/SscSPs/reconciliation_engine/internal/utils/export"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mocks ---

type MockCashService struct{ mock.Mock }

func (m *MockCashService) LiveCash(ctx context.Context, locationID string) (*domain.LiveCashResult, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LiveCashResult), args.Error(1)
}

type MockCommissionService struct{ mock.Mock }

func (m *MockCommissionService) Summarize(expenses []domain.Expense, professionals []domain.Professional) map[string]domain.CommissionSummary {
	args := m.Called(expenses, professionals)
	return args.Get(0).(map[string]domain.CommissionSummary)
}

func (m *MockCommissionService) CommissionSummary(ctx context.Context, locationID string, from, to time.Time) (map[string]domain.CommissionSummary, error) {
	args := m.Called(ctx, locationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.CommissionSummary), args.Error(1)
}

type MockSettlementService struct{ mock.Mock }

func (m *MockSettlementService) RecordCommissionPayment(ctx context.Context, req dto.RecordCommissionPaymentRequest, userID string) (*domain.Expense, []domain.SettlementRef, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).([]domain.SettlementRef), args.Error(2)
}

func (m *MockSettlementService) ReverseCommissionPayment(ctx context.Context, tx portsrepo.StoreTx, expense domain.Expense) (*domain.ReversalResult, error) {
	args := m.Called(ctx, tx, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReversalResult), args.Error(1)
}

func (m *MockSettlementService) DeleteExpense(ctx context.Context, expenseID string, userID string) (*domain.ReversalResult, error) {
	args := m.Called(ctx, expenseID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReversalResult), args.Error(1)
}

type MockReportService struct{ mock.Mock }

func (m *MockReportService) MonthlyReport(ctx context.Context, key domain.PeriodKey) (*domain.MonthlyReport, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyReport), args.Error(1)
}

type MockOverrideService struct{ mock.Mock }

func (m *MockOverrideService) GetOverride(ctx context.Context, key domain.PeriodKey) (*domain.Override, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Override), args.Error(1)
}

func (m *MockOverrideService) SaveOverride(ctx context.Context, req dto.SaveOverrideRequest, userID string) (*domain.Override, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Override), args.Error(1)
}

func (m *MockOverrideService) DeleteOverride(ctx context.Context, key domain.PeriodKey, userID string) error {
	return m.Called(ctx, key, userID).Error(0)
}

func (m *MockOverrideService) FreezeMonthlyReport(ctx context.Context, req dto.FreezeOverrideRequest, userID string) (*domain.Override, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Override), args.Error(1)
}

type MockImportService struct{ mock.Mock }

func (m *MockImportService) Import(ctx context.Context, req dto.ImportBatchRequest) (*dto.ImportResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportResult), args.Error(1)
}

var (
	_ portssvc.CashBalanceSvc          = (*MockCashService)(nil)
	_ portssvc.CommissionAttributorSvc = (*MockCommissionService)(nil)
	_ portssvc.SettlementSvcFacade     = (*MockSettlementService)(nil)
	_ portssvc.MonthlyReportSvc        = (*MockReportService)(nil)
	_ portssvc.OverrideSvc             = (*MockOverrideService)(nil)
	_ portssvc.ImportSvc               = (*MockImportService)(nil)
)

// --- Test Suite ---

type HandlersTestSuite struct {
	suite.Suite
	router     *gin.Engine
	jwtSecret  string
	cash       *MockCashService
	commission *MockCommissionService
	settlement *MockSettlementService
	reports    *MockReportService
	overrides  *MockOverrideService
	importer   *MockImportService
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.cash = new(MockCashService)
	suite.commission = new(MockCommissionService)
	suite.settlement = new(MockSettlementService)
	suite.reports = new(MockReportService)
	suite.overrides = new(MockOverrideService)
	suite.importer = new(MockImportService)

	cfg := &config.Config{
		IsProduction:     true,
		JWTSecret:        suite.jwtSecret,
		APIKeys:          map[string]string{"pos-sync": "pos-key"},
		BusinessLocation: time.UTC,
	}
	container := &portssvc.ServiceContainer{
		CashBalance: suite.cash,
		Commissions: suite.commission,
		Settlement:  suite.settlement,
		Reports:     suite.reports,
		Overrides:   suite.overrides,
		Import:      suite.importer,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container, nil)
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.cash.AssertExpectations(suite.T())
	suite.commission.AssertExpectations(suite.T())
	suite.settlement.AssertExpectations(suite.T())
	suite.reports.AssertExpectations(suite.T())
	suite.overrides.AssertExpectations(suite.T())
	suite.importer.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) generateTestToken(userID, role string) string {
	token, err := utils.GenerateJWT(userID, role, suite.jwtSecret, time.Hour)
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *HandlersTestSuite) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) authed(method, path string, body any) *httptest.ResponseRecorder {
	return suite.do(method, path, body, map[string]string{"Authorization": "Bearer " + suite.generateTestToken("user-1", utils.RoleFinance)})
}

func decodeBody[T any](suite *HandlersTestSuite, w *httptest.ResponseRecorder) T {
	var out T
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// --- Test Cases ---

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestLiveCash_Unauthorized() {
	w := suite.do(http.MethodGet, "/api/v1/cash/live?location_id=loc-1", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestLiveCash_MissingLocation() {
	w := suite.authed(http.MethodGet, "/api/v1/cash/live", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestLiveCash_Success() {
	suite.cash.On("LiveCash", mock.Anything, "loc-1").Return(&domain.LiveCashResult{
		LocationID:     "loc-1",
		Amount:         decimal.RequireFromString("1350.25"),
		Baseline:       decimal.RequireFromString("1000"),
		BaselineSource: domain.BaselineSystemTotal,
		CutID:          "cut-9",
		EventCount:     4,
	}, nil).Once()

	w := suite.authed(http.MethodGet, "/api/v1/cash/live?location_id=loc-1", nil)
	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[dto.LiveCashResponse](suite, w)
	suite.True(resp.Amount.Equal(decimal.RequireFromString("1350.25")))
	suite.Equal(domain.BaselineSystemTotal, resp.BaselineSource)
	suite.Equal("cut-9", resp.CutID)
	suite.Equal(4, resp.EventCount)
}

func (suite *HandlersTestSuite) TestLiveCash_InternalErrorIsNotLeaked() {
	suite.cash.On("LiveCash", mock.Anything, "loc-1").Return(nil, fmt.Errorf("dial tcp: connection refused")).Once()

	w := suite.authed(http.MethodGet, "/api/v1/cash/live?location_id=loc-1", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	resp := decodeBody[handlers.ErrorResponse](suite, w)
	suite.Equal("Failed to compute live cash", resp.Error)
}

func (suite *HandlersTestSuite) TestCommissionSummary_InclusiveDays() {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	suite.commission.On("CommissionSummary", mock.Anything, "loc-1",
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(from) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(to) }),
	).Return(map[string]domain.CommissionSummary{
		"Ana": {ServiceCommission: decimal.RequireFromString("70"), ProductCommission: decimal.RequireFromString("26.85")},
	}, nil).Once()

	w := suite.authed(http.MethodGet, "/api/v1/commissions/summary?location_id=loc-1&from=2024-03-01&to=2024-03-31", nil)
	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[dto.CommissionSummaryResponse](suite, w)
	suite.Equal("2024-03-01", resp.From)
	suite.Equal("2024-03-31", resp.To)
	suite.Require().Len(resp.Recipients, 1)
	suite.True(resp.Recipients[0].Total.Equal(decimal.RequireFromString("96.85")))
}

func (suite *HandlersTestSuite) TestCommissionSummary_BadDate() {
	w := suite.authed(http.MethodGet, "/api/v1/commissions/summary?from=03/01/2024", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestRecordCommissionPayment_Created() {
	body := map[string]any{
		"locationID": "loc-1",
		"recipient":  "profA",
		"date":       "2024-03-05T18:00:00Z",
		"service":    "70",
		"product":    "26.85",
		"itemRefs":   []map[string]any{{"saleID": "s1", "itemIndex": 0}},
		"tipRefs":    []string{"s1"},
	}
	expense := &domain.Expense{
		ExpenseID:  "e1",
		LocationID: "loc-1",
		Concept:    "Commission",
		Category:   domain.CategoryCommissionPayment,
		Recipient:  "profA",
		Amount:     decimal.RequireFromString("96.85"),
	}
	settled := []domain.SettlementRef{{Kind: domain.RefItem, SaleID: "s1"}, {Kind: domain.RefTip, SaleID: "s1"}}
	suite.settlement.On("RecordCommissionPayment", mock.Anything,
		mock.MatchedBy(func(req dto.RecordCommissionPaymentRequest) bool {
			return req.Recipient == "profA" && req.Product.Equal(decimal.RequireFromString("26.85")) && len(req.ItemRefs) == 1
		}), "user-1").Return(expense, settled, nil).Once()

	w := suite.authed(http.MethodPost, "/api/v1/commissions/payments", body)
	suite.Equal(http.StatusCreated, w.Code)
	resp := decodeBody[dto.CommissionPaymentResponse](suite, w)
	suite.Equal("e1", resp.Expense.ExpenseID)
	suite.Len(resp.Settled, 2)
}

func (suite *HandlersTestSuite) TestRecordCommissionPayment_MissingRecipient() {
	w := suite.authed(http.MethodPost, "/api/v1/commissions/payments", map[string]any{"locationID": "loc-1", "date": "2024-03-05T18:00:00Z"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestRecordCommissionPayment_AlreadyPaid() {
	suite.settlement.On("RecordCommissionPayment", mock.Anything, mock.Anything, "user-1").
		Return(nil, nil, fmt.Errorf("item 0 of sale s1: %w", apperrors.ErrConflict)).Once()

	w := suite.authed(http.MethodPost, "/api/v1/commissions/payments", map[string]any{
		"locationID": "loc-1", "recipient": "profA", "date": "2024-03-05T18:00:00Z", "service": "10",
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestDeleteExpense() {
	suite.settlement.On("DeleteExpense", mock.Anything, "e1", "user-1").Return(&domain.ReversalResult{
		ExpenseID: "e1",
		Mode:      domain.ReversalHeuristic,
	}, nil).Once()
	suite.settlement.On("DeleteExpense", mock.Anything, "missing", "user-1").
		Return(nil, fmt.Errorf("expense missing: %w", apperrors.ErrNotFound)).Once()

	w := suite.authed(http.MethodDelete, "/api/v1/expenses/e1", nil)
	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[dto.DeleteExpenseResponse](suite, w)
	suite.Equal(domain.ReversalHeuristic, resp.Mode)
	suite.NotNil(resp.Reverted)

	w = suite.authed(http.MethodDelete, "/api/v1/expenses/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func sampleReport(key domain.PeriodKey) *domain.MonthlyReport {
	revenue := decimal.RequireFromString("5000")
	return &domain.MonthlyReport{
		Period:         key,
		ServiceRevenue: domain.NewReportValue(decimal.RequireFromString("4800"), &revenue),
		Overridden:     true,
		Commissions:    map[string]domain.CommissionSummary{},
	}
}

func (suite *HandlersTestSuite) TestMonthlyReport() {
	key := domain.PeriodKey{LocationID: "loc-1", Year: 2024, Month: 3}
	suite.reports.On("MonthlyReport", mock.Anything, key).Return(sampleReport(key), nil).Once()

	w := suite.authed(http.MethodGet, "/api/v1/reports/monthly?location_id=loc-1&year=2024&month=3", nil)
	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[dto.MonthlyReportResponse](suite, w)
	suite.True(resp.Overridden)
	suite.Require().NotEmpty(resp.Lines)
	suite.Equal("serviceRevenue", resp.Lines[0].Key)
	suite.Require().NotNil(resp.Lines[0].Override)
	suite.True(resp.Lines[0].Effective.Equal(decimal.RequireFromString("5000")))
}

func (suite *HandlersTestSuite) TestMonthlyReport_BadMonth() {
	w := suite.authed(http.MethodGet, "/api/v1/reports/monthly?year=2024&month=13", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestExportMonthlyReport() {
	key := domain.PeriodKey{Year: 2024, Month: 3}
	suite.reports.On("MonthlyReport", mock.Anything, key).Return(sampleReport(key), nil).Once()

	w := suite.authed(http.MethodGet, "/api/v1/reports/monthly/export?year=2024&month=3", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(export.XLSXContentType, w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "monthly-report-all-2024-03.xlsx")
	suite.NotZero(w.Body.Len())
}

func (suite *HandlersTestSuite) TestOverrideRoutes() {
	key := domain.PeriodKey{LocationID: "loc-1", Year: 2024, Month: 3}
	stored := &domain.Override{Period: key, UpdatedBy: "user-1"}

	suite.overrides.On("GetOverride", mock.Anything, key).Return(nil, fmt.Errorf("override %s: %w", key, apperrors.ErrNotFound)).Once()
	suite.overrides.On("SaveOverride", mock.Anything, mock.MatchedBy(func(req dto.SaveOverrideRequest) bool {
		return req.Key() == key && req.ServiceRevenue != nil
	}), "user-1").Return(stored, nil).Once()
	suite.overrides.On("DeleteOverride", mock.Anything, key, "user-1").Return(nil).Once()

	w := suite.authed(http.MethodGet, "/api/v1/reports/monthly/override?location_id=loc-1&year=2024&month=3", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.authed(http.MethodPut, "/api/v1/reports/monthly/override", map[string]any{
		"locationID": "loc-1", "year": 2024, "month": 3, "serviceRevenue": "5000",
	})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.authed(http.MethodDelete, "/api/v1/reports/monthly/override?location_id=loc-1&year=2024&month=3", nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlersTestSuite) TestFreeze_Superseded() {
	suite.overrides.On("FreezeMonthlyReport", mock.Anything, dto.FreezeOverrideRequest{LocationID: "loc-1", Year: 2024, Month: 3}, "user-1").
		Return(nil, fmt.Errorf("freeze 2024-03@loc-1: %w", apperrors.ErrSuperseded)).Once()

	w := suite.authed(http.MethodPost, "/api/v1/reports/monthly/override/freeze", map[string]any{
		"locationID": "loc-1", "year": 2024, "month": 3,
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestImport_APIKey() {
	suite.importer.On("Import", mock.Anything, mock.MatchedBy(func(req dto.ImportBatchRequest) bool {
		return len(req.ManualIncomes) == 1
	})).Return(&dto.ImportResult{ManualIncomes: 1}, nil).Once()

	body := map[string]any{"manualIncomes": []map[string]any{{
		"incomeID": "i1", "locationID": "loc-1", "date": "2024-03-02T10:00:00Z", "amount": "20",
	}}}
	w := suite.do(http.MethodPost, "/api/v1/import", body, map[string]string{"X-API-Key": "pos-key"})
	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[dto.ImportResult](suite, w)
	suite.Equal(1, resp.ManualIncomes)
}

func (suite *HandlersTestSuite) TestImport_UnknownAPIKey() {
	w := suite.do(http.MethodPost, "/api/v1/import", map[string]any{}, map[string]string{"X-API-Key": "wrong"})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestViewerCannotWrite() {
	viewer := map[string]string{"Authorization": "Bearer " + suite.generateTestToken("user-2", utils.RoleViewer)}

	w := suite.do(http.MethodDelete, "/api/v1/expenses/e1", nil, viewer)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/reports/monthly/override/freeze", map[string]any{
		"locationID": "loc-1", "year": 2024, "month": 3,
	}, viewer)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/import", map[string]any{}, viewer)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlersTestSuite) TestAPIKeyCannotRecordPayments() {
	w := suite.do(http.MethodPost, "/api/v1/commissions/payments", map[string]any{}, map[string]string{"X-API-Key": "pos-key"})
	suite.Equal(http.StatusForbidden, w.Code)
}
