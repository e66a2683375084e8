package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/dto"
	"github.com/go-playground/validator/v10"
)

const defaultCommissionConcept = "Commission"

type settlementService struct {
	BaseService
	store    portsrepo.TransactionStore
	validate *validator.Validate
}

// NewSettlementService creates the commission settlement ledger.
func NewSettlementService(store portsrepo.TransactionStore, options ...BaseServiceOption) portssvc.SettlementSvcFacade {
	return &settlementService{
		BaseService: newBaseService(options...),
		store:       store,
		validate:    newValidator(),
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// RecordCommissionPayment validates every reference against the current sale state, flips
// the flags to paid and inserts the expense. Any failure leaves the store untouched.
func (s *settlementService) RecordCommissionPayment(ctx context.Context, req dto.RecordCommissionPaymentRequest, userID string) (*domain.Expense, []domain.SettlementRef, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, nil, apperrors.Validationf("%s", validationMessage(err))
	}
	if req.Date.IsZero() {
		return nil, nil, apperrors.Validationf("date is required")
	}
	breakdown := req.Breakdown()
	if breakdown.Service.IsNegative() || breakdown.Product.IsNegative() || breakdown.Tip.IsNegative() {
		return nil, nil, apperrors.Validationf("commission amounts must not be negative")
	}
	if breakdown.Total().IsZero() {
		return nil, nil, apperrors.Validationf("commission payment must have a non-zero amount")
	}
	settlement := req.Settlement()
	if err := checkDuplicateRefs(settlement); err != nil {
		return nil, nil, err
	}

	concept := strings.TrimSpace(req.Concept)
	if concept == "" {
		concept = defaultCommissionConcept
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		comment = FormatLegacyCommissionComment(breakdown)
	}
	now := s.Now()
	expense := domain.Expense{
		ExpenseID:  s.NewID(),
		LocationID: req.LocationID,
		Date:       req.Date,
		Concept:    concept,
		Category:   domain.CategoryCommissionPayment,
		Recipient:  req.Recipient,
		Amount:     breakdown.Total(),
		Comment:    comment,
		Breakdown:  &breakdown,
		Settlement: &settlement,
		CreatedAt:  now,
	}

	var settled []domain.SettlementRef
	err := s.store.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		settled = settled[:0]
		sales := make(map[string]*domain.Sale)
		load := func(saleID string) (*domain.Sale, error) {
			if sale, ok := sales[saleID]; ok {
				return sale, nil
			}
			sale, err := tx.GetSale(ctx, saleID)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.Validationf("sale %s not found", saleID)
			}
			if err != nil {
				return nil, err
			}
			if req.LocationID != "" && sale.LocationID != req.LocationID {
				return nil, apperrors.Validationf("sale %s belongs to location %s", saleID, sale.LocationID)
			}
			sales[saleID] = sale
			return sale, nil
		}

		for _, ref := range settlement.ItemRefs {
			sale, err := load(ref.SaleID)
			if err != nil {
				return err
			}
			if ref.ItemIndex < 0 || ref.ItemIndex >= len(sale.Items) {
				return apperrors.Validationf("sale %s has no item %d", ref.SaleID, ref.ItemIndex)
			}
			item := &sale.Items[ref.ItemIndex]
			if item.ProfessionalID != req.Recipient {
				return apperrors.Validationf("item %d of sale %s belongs to %s", ref.ItemIndex, ref.SaleID, item.ProfessionalID)
			}
			if item.CommissionPaid {
				return fmt.Errorf("%w: commission of item %d of sale %s is already paid", apperrors.ErrConflict, ref.ItemIndex, ref.SaleID)
			}
			item.CommissionPaid = true
			settled = append(settled, domain.SettlementRef{Kind: domain.RefItem, SaleID: ref.SaleID, ItemIndex: ref.ItemIndex})
		}
		for _, saleID := range settlement.TipRefs {
			sale, err := load(saleID)
			if err != nil {
				return err
			}
			if !sale.HasItemsFor(req.Recipient) {
				return apperrors.Validationf("sale %s has no items for %s", saleID, req.Recipient)
			}
			if sale.TipPaid {
				return fmt.Errorf("%w: tip of sale %s is already paid", apperrors.ErrConflict, saleID)
			}
			sale.TipPaid = true
			settled = append(settled, domain.SettlementRef{Kind: domain.RefTip, SaleID: saleID})
		}

		if err := saveSales(ctx, tx, sales); err != nil {
			return err
		}
		return tx.CreateExpense(ctx, expense)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to record commission payment",
				slog.String("recipient", req.Recipient),
				slog.String("user_id", userID))
		}
		return nil, nil, fmt.Errorf("failed to record commission payment: %w", err)
	}

	s.LogInfo(ctx, "Commission payment recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("recipient", expense.Recipient),
		slog.String("amount", expense.Amount.String()),
		slog.Int("settled_refs", len(settled)),
		slog.String("user_id", userID))
	return &expense, settled, nil
}

// ReverseCommissionPayment undoes what a commission payment settled. Payments created with
// structured linkage are reversed exactly. Older payments fall back to flipping every paid
// item of the recipient on sales of the payment's day, which also reverts other same-day
// payments to that professional.
func (s *settlementService) ReverseCommissionPayment(ctx context.Context, tx portsrepo.StoreTx, expense domain.Expense) (*domain.ReversalResult, error) {
	if expense.Settlement != nil {
		return s.reverseStructured(ctx, tx, expense)
	}
	return s.reverseHeuristic(ctx, tx, expense)
}

func (s *settlementService) reverseStructured(ctx context.Context, tx portsrepo.StoreTx, expense domain.Expense) (*domain.ReversalResult, error) {
	result := &domain.ReversalResult{ExpenseID: expense.ExpenseID, Mode: domain.ReversalStructured}
	sales := make(map[string]*domain.Sale)
	missing := make(map[string]bool)
	dirty := make(map[string]*domain.Sale)

	load := func(saleID string) (*domain.Sale, error) {
		if sale, ok := sales[saleID]; ok {
			return sale, nil
		}
		if missing[saleID] {
			return nil, nil
		}
		sale, err := tx.GetSale(ctx, saleID)
		if errors.Is(err, apperrors.ErrNotFound) {
			missing[saleID] = true
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load sale %s: %w", saleID, err)
		}
		sales[saleID] = sale
		return sale, nil
	}

	for _, ref := range expense.Settlement.ItemRefs {
		sale, err := load(ref.SaleID)
		if err != nil {
			return nil, err
		}
		if sale == nil {
			result.Skipped = append(result.Skipped, domain.SettlementRef{Kind: domain.RefItem, SaleID: ref.SaleID, ItemIndex: ref.ItemIndex, Reason: "sale not found"})
			continue
		}
		if ref.ItemIndex < 0 || ref.ItemIndex >= len(sale.Items) {
			result.Skipped = append(result.Skipped, domain.SettlementRef{Kind: domain.RefItem, SaleID: ref.SaleID, ItemIndex: ref.ItemIndex, Reason: "item index out of range"})
			continue
		}
		if !sale.Items[ref.ItemIndex].CommissionPaid {
			continue
		}
		sale.Items[ref.ItemIndex].CommissionPaid = false
		dirty[sale.SaleID] = sale
		result.Reverted = append(result.Reverted, domain.SettlementRef{Kind: domain.RefItem, SaleID: ref.SaleID, ItemIndex: ref.ItemIndex})
	}
	for _, saleID := range expense.Settlement.TipRefs {
		sale, err := load(saleID)
		if err != nil {
			return nil, err
		}
		if sale == nil {
			result.Skipped = append(result.Skipped, domain.SettlementRef{Kind: domain.RefTip, SaleID: saleID, Reason: "sale not found"})
			continue
		}
		if !sale.TipPaid {
			continue
		}
		sale.TipPaid = false
		dirty[sale.SaleID] = sale
		result.Reverted = append(result.Reverted, domain.SettlementRef{Kind: domain.RefTip, SaleID: saleID})
	}

	if err := saveSales(ctx, tx, dirty); err != nil {
		return nil, err
	}
	for _, ref := range result.Skipped {
		s.LogWarn(ctx, "Settlement reference skipped during reversal",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("kind", string(ref.Kind)),
			slog.String("sale_id", ref.SaleID),
			slog.Int("item_index", ref.ItemIndex),
			slog.String("reason", ref.Reason))
	}
	return result, nil
}

func (s *settlementService) reverseHeuristic(ctx context.Context, tx portsrepo.StoreTx, expense domain.Expense) (*domain.ReversalResult, error) {
	result := &domain.ReversalResult{ExpenseID: expense.ExpenseID, Mode: domain.ReversalHeuristic}
	dayStart := domain.StartOfDay(expense.Date, s.Location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	sales, err := tx.ListSales(ctx, portsrepo.QueryFilter{From: &dayStart, To: &dayEnd})
	if err != nil {
		return nil, fmt.Errorf("failed to load sales of %s: %w", dayStart.Format("2006-01-02"), err)
	}

	dirty := make(map[string]*domain.Sale)
	for i := range sales {
		sale := &sales[i]
		for idx := range sale.Items {
			item := &sale.Items[idx]
			if item.ProfessionalID != expense.Recipient || !item.CommissionPaid {
				continue
			}
			item.CommissionPaid = false
			dirty[sale.SaleID] = sale
			result.Reverted = append(result.Reverted, domain.SettlementRef{Kind: domain.RefItem, SaleID: sale.SaleID, ItemIndex: idx})
		}
		if sale.TipPaid && sale.HasItemsFor(expense.Recipient) {
			sale.TipPaid = false
			dirty[sale.SaleID] = sale
			result.Reverted = append(result.Reverted, domain.SettlementRef{Kind: domain.RefTip, SaleID: sale.SaleID})
		}
	}

	if err := saveSales(ctx, tx, dirty); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Legacy commission payment reversed by day and recipient",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("recipient", expense.Recipient),
		slog.String("day", dayStart.Format("2006-01-02")),
		slog.Int("reverted", len(result.Reverted)))
	return result, nil
}

// DeleteExpense removes an expense. Commission payments are reversed first in the same
// transaction; if anything fails nothing is written.
func (s *settlementService) DeleteExpense(ctx context.Context, expenseID string, userID string) (*domain.ReversalResult, error) {
	if strings.TrimSpace(expenseID) == "" {
		return nil, apperrors.Validationf("expense id is required")
	}

	var result *domain.ReversalResult
	err := s.store.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		expense, err := tx.GetExpense(ctx, expenseID)
		if err != nil {
			return err
		}
		result = &domain.ReversalResult{ExpenseID: expenseID, Mode: domain.ReversalNone}
		if expense.IsCommissionPayment() {
			result, err = s.ReverseCommissionPayment(ctx, tx, *expense)
			if err != nil {
				return err
			}
		}
		return tx.DeleteExpense(ctx, expenseID)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to delete expense",
			slog.String("expense_id", expenseID),
			slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}

	s.LogInfo(ctx, "Expense deleted",
		slog.String("expense_id", expenseID),
		slog.String("mode", string(result.Mode)),
		slog.Int("reverted", len(result.Reverted)),
		slog.Int("skipped", len(result.Skipped)),
		slog.String("user_id", userID))
	return result, nil
}

// saveSales writes sales in id order so concurrent transactions lock rows consistently.
func saveSales(ctx context.Context, tx portsrepo.StoreTx, sales map[string]*domain.Sale) error {
	ids := make([]string, 0, len(sales))
	for id := range sales {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := tx.SaveSaleFlags(ctx, *sales[id]); err != nil {
			return fmt.Errorf("failed to save sale %s: %w", id, err)
		}
	}
	return nil
}

func checkDuplicateRefs(s domain.StructuredSettlement) error {
	seen := make(map[domain.ItemRef]bool, len(s.ItemRefs))
	for _, ref := range s.ItemRefs {
		if seen[ref] {
			return apperrors.Validationf("item %d of sale %s is referenced twice", ref.ItemIndex, ref.SaleID)
		}
		seen[ref] = true
	}
	tips := make(map[string]bool, len(s.TipRefs))
	for _, saleID := range s.TipRefs {
		if tips[saleID] {
			return apperrors.Validationf("tip of sale %s is referenced twice", saleID)
		}
		tips[saleID] = true
	}
	return nil
}
