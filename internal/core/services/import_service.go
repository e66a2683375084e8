package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/dto"
)

type importService struct {
	BaseService
	store portsrepo.TransactionManager
}

// NewImportService creates the batch ingester for sales, expenses and reference data.
func NewImportService(store portsrepo.TransactionManager, options ...BaseServiceOption) portssvc.ImportSvc {
	return &importService{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

var _ portssvc.ImportSvc = (*importService)(nil)

// Import validates the whole batch and then upserts it in a single transaction. Expenses
// without a category are classified on the way in.
func (s *importService) Import(ctx context.Context, req dto.ImportBatchRequest) (*dto.ImportResult, error) {
	if req.IsEmpty() {
		return nil, apperrors.Validationf("import batch is empty")
	}
	if err := s.validateBatch(req); err != nil {
		return nil, err
	}

	now := s.Now()
	err := s.store.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		for _, p := range req.Professionals {
			if err := tx.UpsertProfessional(ctx, p); err != nil {
				return fmt.Errorf("professional %s: %w", p.ProfessionalID, err)
			}
		}
		for _, p := range req.Products {
			if err := tx.UpsertProduct(ctx, p); err != nil {
				return fmt.Errorf("product %s: %w", p.ProductID, err)
			}
		}
		for _, ac := range req.AdminCommissions {
			if err := tx.UpsertAdminCommission(ctx, ac); err != nil {
				return fmt.Errorf("admin commission %s: %w", ac.AdminID, err)
			}
		}
		for _, sale := range req.Sales {
			if err := tx.UpsertSale(ctx, sale); err != nil {
				return fmt.Errorf("sale %s: %w", sale.SaleID, err)
			}
		}
		for _, e := range req.Expenses {
			if e.Category == "" {
				e.Category = domain.ClassifyLegacyExpense(e.Concept, e.Recipient)
			}
			if e.CreatedAt.IsZero() {
				e.CreatedAt = now
			}
			if err := tx.UpsertExpense(ctx, e); err != nil {
				return fmt.Errorf("expense %s: %w", e.ExpenseID, err)
			}
		}
		for _, in := range req.ManualIncomes {
			if err := tx.UpsertManualIncome(ctx, in); err != nil {
				return fmt.Errorf("manual income %s: %w", in.IncomeID, err)
			}
		}
		for _, cut := range req.CashCuts {
			if err := tx.UpsertCashCut(ctx, cut); err != nil {
				return fmt.Errorf("cash cut %s: %w", cut.CutID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to import batch")
		return nil, fmt.Errorf("failed to import batch: %w", err)
	}

	result := &dto.ImportResult{
		Sales:            len(req.Sales),
		Expenses:         len(req.Expenses),
		ManualIncomes:    len(req.ManualIncomes),
		CashCuts:         len(req.CashCuts),
		Professionals:    len(req.Professionals),
		Products:         len(req.Products),
		AdminCommissions: len(req.AdminCommissions),
	}
	s.LogInfo(ctx, "Imported batch",
		slog.Int("sales", result.Sales),
		slog.Int("expenses", result.Expenses),
		slog.Int("manual_incomes", result.ManualIncomes),
		slog.Int("cash_cuts", result.CashCuts))
	return result, nil
}

func (s *importService) validateBatch(req dto.ImportBatchRequest) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	for i, sale := range req.Sales {
		switch {
		case sale.SaleID == "":
			add("sales[%d]: missing saleID", i)
		case sale.SoldAt.IsZero():
			add("sales[%d]: missing soldAt", i)
		case !sale.PaymentMethod.IsValid():
			add("sales[%d]: unknown payment method %q", i, sale.PaymentMethod)
		case sale.PaymentMethod == domain.PaymentMixed && sale.MixedBreakdown == nil:
			add("sales[%d]: mixed payment without breakdown", i)
		case sale.Total.IsNegative():
			add("sales[%d]: negative total", i)
		}
		for j, item := range sale.Items {
			if item.Kind != domain.ItemService && item.Kind != domain.ItemProduct {
				add("sales[%d].items[%d]: unknown kind %q", i, j, item.Kind)
			}
			if item.Quantity < 0 {
				add("sales[%d].items[%d]: negative quantity", i, j)
			}
		}
	}
	for i, e := range req.Expenses {
		switch {
		case e.ExpenseID == "":
			add("expenses[%d]: missing expenseID", i)
		case e.Date.IsZero():
			add("expenses[%d]: missing date", i)
		case e.Category != "" && !e.Category.IsValid():
			add("expenses[%d]: unknown category %q", i, e.Category)
		}
	}
	for i, in := range req.ManualIncomes {
		if in.IncomeID == "" || in.Date.IsZero() {
			add("manualIncomes[%d]: incomeID and date are required", i)
		}
	}
	for i, cut := range req.CashCuts {
		if cut.CutID == "" || cut.CutAt.IsZero() {
			add("cashCuts[%d]: cutID and cutAt are required", i)
		}
	}
	for i, p := range req.Professionals {
		if p.ProfessionalID == "" {
			add("professionals[%d]: missing professionalID", i)
		}
		if p.DefaultProductCommission != nil {
			if err := p.DefaultProductCommission.Validate(); err != nil {
				add("professionals[%d]: %v", i, err)
			}
		}
		for productID, rule := range p.ProductCommissions {
			if err := rule.Validate(); err != nil {
				add("professionals[%d].productCommissions[%s]: %v", i, productID, err)
			}
		}
	}
	for i, p := range req.Products {
		if p.ProductID == "" {
			add("products[%d]: missing productID", i)
		}
		if p.DefaultCommission != nil {
			if err := p.DefaultCommission.Validate(); err != nil {
				add("products[%d]: %v", i, err)
			}
		}
	}
	for i, ac := range req.AdminCommissions {
		if ac.AdminID == "" {
			add("adminCommissions[%d]: missing adminID", i)
		}
		if err := ac.Period.Validate(); err != nil {
			add("adminCommissions[%d]: %v", i, err)
		}
		for _, rule := range []*domain.CommissionRule{ac.Service, ac.Product} {
			if rule == nil {
				continue
			}
			if err := rule.Validate(); err != nil {
				add("adminCommissions[%d]: %v", i, err)
			}
		}
	}

	if len(problems) > 0 {
		return apperrors.Validationf("%s", strings.Join(problems, "; "))
	}
	return nil
}
