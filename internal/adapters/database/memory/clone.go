package memory

import (
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// The store hands out and keeps private copies so callers can never mutate stored state.

func cloneSale(s domain.Sale) domain.Sale {
	if s.Items != nil {
		s.Items = append([]domain.LineItem(nil), s.Items...)
	}
	if s.MixedBreakdown != nil {
		mb := *s.MixedBreakdown
		s.MixedBreakdown = &mb
	}
	return s
}

func cloneExpense(e domain.Expense) domain.Expense {
	if e.Breakdown != nil {
		b := *e.Breakdown
		e.Breakdown = &b
	}
	if e.Settlement != nil {
		st := domain.StructuredSettlement{
			ItemRefs: append([]domain.ItemRef(nil), e.Settlement.ItemRefs...),
			TipRefs:  append([]string(nil), e.Settlement.TipRefs...),
		}
		e.Settlement = &st
	}
	return e
}

func cloneProfessional(p domain.Professional) domain.Professional {
	if p.ProductCommissions != nil {
		rules := make(map[string]domain.CommissionRule, len(p.ProductCommissions))
		for k, v := range p.ProductCommissions {
			rules[k] = v
		}
		p.ProductCommissions = rules
	}
	if p.DefaultProductCommission != nil {
		r := *p.DefaultProductCommission
		p.DefaultProductCommission = &r
	}
	return p
}

func cloneProduct(p domain.Product) domain.Product {
	if p.DefaultCommission != nil {
		r := *p.DefaultCommission
		p.DefaultCommission = &r
	}
	return p
}

func cloneAdminCommission(a domain.AdminCommission) domain.AdminCommission {
	if a.Service != nil {
		r := *a.Service
		a.Service = &r
	}
	if a.Product != nil {
		r := *a.Product
		a.Product = &r
	}
	return a
}

func cloneOverride(o domain.Override) domain.Override {
	if o.AdminCommissions != nil {
		admins := make(map[string]domain.AdminCommissionOverride, len(o.AdminCommissions))
		for k, v := range o.AdminCommissions {
			admins[k] = v
		}
		o.AdminCommissions = admins
	}
	if o.ExpenseCategories != nil {
		cats := make(map[domain.ExpenseCategory]decimal.Decimal, len(o.ExpenseCategories))
		for k, v := range o.ExpenseCategories {
			cats[k] = v
		}
		o.ExpenseCategories = cats
	}
	return o
}
