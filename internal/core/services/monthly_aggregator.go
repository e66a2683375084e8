package services

import (
	"sort"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// monthInputs is everything one monthly report reads from the store.
type monthInputs struct {
	Sales         []domain.Sale
	Expenses      []domain.Expense
	Professionals []domain.Professional
	Products      []domain.Product
	Admins        []domain.AdminCommission
	Override      *domain.Override
}

// monthFigures are the unrounded automatic values of steps 1 to 4.
type monthFigures struct {
	ServiceRevenue                decimal.Decimal
	ProductRevenue                decimal.Decimal
	Reinvestment                  decimal.Decimal
	ProductProfessionalCommission decimal.Decimal
	ServiceCommissions            decimal.Decimal // service + tip buckets
	ProductCommissions            decimal.Decimal
	Categories                    map[domain.ExpenseCategory]decimal.Decimal
	Commissions                   map[string]domain.CommissionSummary
}

// reportCategories are always present in a report, even when zero.
var reportCategories = []domain.ExpenseCategory{
	domain.CategoryCommissionPayment,
	domain.CategoryPayroll,
	domain.CategoryFixedCost,
	domain.CategoryOther,
}

// aggregateMonth computes revenue, product costs and attributed commissions.
func aggregateMonth(in monthInputs, attribute func([]domain.Expense, []domain.Professional) map[string]domain.CommissionSummary) monthFigures {
	fig := monthFigures{Categories: make(map[domain.ExpenseCategory]decimal.Decimal, len(reportCategories))}

	profs := make(map[string]*domain.Professional, len(in.Professionals))
	for i := range in.Professionals {
		profs[in.Professionals[i].ProfessionalID] = &in.Professionals[i]
	}
	products := make(map[string]*domain.Product, len(in.Products))
	for i := range in.Products {
		products[in.Products[i].ProductID] = &in.Products[i]
	}

	for _, sale := range in.Sales {
		ratio := sale.PaymentRatio()
		for _, item := range sale.Items {
			revenue := item.NetRevenue(ratio)
			if item.Kind != domain.ItemProduct {
				fig.ServiceRevenue = fig.ServiceRevenue.Add(revenue)
				continue
			}
			fig.ProductRevenue = fig.ProductRevenue.Add(revenue)

			product := products[item.ProductID]
			qty := decimal.NewFromInt(int64(item.Quantity))
			unitCost := decimal.Zero
			switch {
			case item.PurchaseCost != nil:
				unitCost = *item.PurchaseCost
			case product != nil:
				unitCost = product.PurchaseCost
			}
			fig.Reinvestment = fig.Reinvestment.Add(unitCost.Mul(qty))

			if rule := domain.ResolveProductCommission(profs[item.ProfessionalID], product, item.ProductID); rule != nil {
				flat := rule.Value.Mul(qty).Mul(ratio)
				fig.ProductProfessionalCommission = fig.ProductProfessionalCommission.Add(rule.Apply(revenue, flat))
			}
		}
	}

	for _, e := range in.Expenses {
		cat := e.EffectiveCategory()
		fig.Categories[cat] = fig.Categories[cat].Add(e.Amount)
	}

	fig.Commissions = attribute(in.Expenses, in.Professionals)
	for _, c := range fig.Commissions {
		fig.ServiceCommissions = fig.ServiceCommissions.Add(c.ServiceCommission).Add(c.Tip)
		fig.ProductCommissions = fig.ProductCommissions.Add(c.ProductCommission)
	}
	return fig
}

func pick(auto decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return auto
}

// derived reports a value computed from other figures: auto from automatic inputs,
// effective from the displayed ones.
func derived(auto, effective decimal.Decimal) domain.ReportValue {
	return domain.ReportValue{Auto: domain.Round2(auto), Effective: domain.Round2(effective)}
}

// adminShare applies an administrator rule to a subtotal. Percentages follow the sign of the
// subtotal, so a loss month yields a negative share.
func adminShare(rule *domain.CommissionRule, subtotal decimal.Decimal) decimal.Decimal {
	if rule == nil {
		return decimal.Zero
	}
	return rule.Apply(subtotal, rule.Value)
}

// buildMonthlyReport runs steps 5 to 8: operating expense, subtotals, administrator
// commissions and the override merge. Overridden inputs flow into every value derived from
// them so the effective column stays consistent.
func buildMonthlyReport(key domain.PeriodKey, fig monthFigures, admins []domain.AdminCommission, ov *domain.Override) *domain.MonthlyReport {
	var o domain.Override
	if ov != nil {
		o = *ov
	}
	r := &domain.MonthlyReport{
		Period:            key,
		Overridden:        ov != nil,
		OverrideNote:      o.Note,
		ExpenseCategories: make(map[domain.ExpenseCategory]domain.ReportValue, len(reportCategories)),
		Commissions:       make(map[string]domain.CommissionSummary, len(fig.Commissions)),
	}
	for name, c := range fig.Commissions {
		r.Commissions[name] = c.Rounded()
	}

	effCategories := make(map[domain.ExpenseCategory]decimal.Decimal, len(reportCategories))
	for _, cat := range reportCategories {
		var override *decimal.Decimal
		if v, ok := o.ExpenseCategories[cat]; ok {
			override = &v
		}
		effCategories[cat] = pick(fig.Categories[cat], override)
		r.ExpenseCategories[cat] = domain.NewReportValue(fig.Categories[cat], override)
	}

	// steps 1 and 2
	effServiceRevenue := pick(fig.ServiceRevenue, o.ServiceRevenue)
	effProductRevenue := pick(fig.ProductRevenue, o.ProductRevenue)
	effReinvestment := pick(fig.Reinvestment, o.Reinvestment)
	effPPC := pick(fig.ProductProfessionalCommission, o.ProductProfessionalCommission)
	r.ServiceRevenue = domain.NewReportValue(fig.ServiceRevenue, o.ServiceRevenue)
	r.ProductRevenue = domain.NewReportValue(fig.ProductRevenue, o.ProductRevenue)
	r.Reinvestment = domain.NewReportValue(fig.Reinvestment, o.Reinvestment)
	r.ProductProfessionalCommission = domain.NewReportValue(fig.ProductProfessionalCommission, o.ProductProfessionalCommission)

	autoProductSubtotal := fig.ProductRevenue.Sub(fig.Reinvestment).Sub(fig.ProductProfessionalCommission)
	effProductSubtotal := effProductRevenue.Sub(effReinvestment).Sub(effPPC)
	r.ProductSubtotal = derived(autoProductSubtotal, effProductSubtotal)

	// steps 3 and 4
	effServiceCommissions := pick(fig.ServiceCommissions, o.ServiceCommissions)
	r.ServiceCommissions = domain.NewReportValue(fig.ServiceCommissions, o.ServiceCommissions)
	r.ProductCommissions = domain.NewReportValue(fig.ProductCommissions, nil)
	autoPayroll, effPayroll := fig.Categories[domain.CategoryPayroll], effCategories[domain.CategoryPayroll]
	autoFixed, effFixed := fig.Categories[domain.CategoryFixedCost], effCategories[domain.CategoryFixedCost]
	r.Payroll = r.ExpenseCategories[domain.CategoryPayroll]
	r.FixedCosts = r.ExpenseCategories[domain.CategoryFixedCost]

	// step 5: product commissions paid out are already charged to the product side
	autoServiceExpense := fig.ServiceCommissions.Add(fig.ProductCommissions).Add(autoPayroll).Add(autoFixed).Sub(fig.ProductProfessionalCommission)
	effServiceExpense := effServiceCommissions.Add(fig.ProductCommissions).Add(effPayroll).Add(effFixed).Sub(effPPC)
	if o.ServiceExpense != nil {
		effServiceExpense = *o.ServiceExpense
		r.ServiceExpense = domain.NewReportValue(autoServiceExpense, o.ServiceExpense)
	} else {
		r.ServiceExpense = derived(autoServiceExpense, effServiceExpense)
	}

	// step 6
	autoServiceSubtotal := fig.ServiceRevenue.Sub(autoServiceExpense)
	effServiceSubtotal := effServiceRevenue.Sub(effServiceExpense)
	r.ServiceSubtotal = derived(autoServiceSubtotal, effServiceSubtotal)

	// step 7
	autoNetService, effNetService := autoServiceSubtotal, effServiceSubtotal
	autoNetProduct, effNetProduct := autoProductSubtotal, effProductSubtotal
	r.AdminCommissions = make([]domain.AdminCommissionLine, 0, len(admins))
	seen := make(map[string]bool, len(admins))
	for _, a := range sortedAdmins(admins) {
		seen[a.AdminID] = true
		aov := o.AdminCommissions[a.AdminID]
		autoSvc, effSvc := adminShare(a.Service, autoServiceSubtotal), adminShare(a.Service, effServiceSubtotal)
		autoProd, effProd := adminShare(a.Product, autoProductSubtotal), adminShare(a.Product, effProductSubtotal)
		line := domain.AdminCommissionLine{AdminID: a.AdminID, AdminName: a.AdminName}
		line.Service, effSvc = adminValue(autoSvc, effSvc, aov.Service)
		line.Product, effProd = adminValue(autoProd, effProd, aov.Product)
		r.AdminCommissions = append(r.AdminCommissions, line)

		autoNetService, effNetService = autoNetService.Sub(autoSvc), effNetService.Sub(effSvc)
		autoNetProduct, effNetProduct = autoNetProduct.Sub(autoProd), effNetProduct.Sub(effProd)
	}
	// administrators frozen in the override but no longer configured
	orphanIDs := make([]string, 0)
	for adminID := range o.AdminCommissions {
		if !seen[adminID] {
			orphanIDs = append(orphanIDs, adminID)
		}
	}
	sort.Strings(orphanIDs)
	for _, adminID := range orphanIDs {
		aov := o.AdminCommissions[adminID]
		line := domain.AdminCommissionLine{AdminID: adminID, AdminName: adminID}
		var effSvc, effProd decimal.Decimal
		line.Service, effSvc = adminValue(decimal.Zero, decimal.Zero, aov.Service)
		line.Product, effProd = adminValue(decimal.Zero, decimal.Zero, aov.Product)
		r.AdminCommissions = append(r.AdminCommissions, line)
		effNetService, effNetProduct = effNetService.Sub(effSvc), effNetProduct.Sub(effProd)
	}
	r.NetServiceUtility = derived(autoNetService, effNetService)
	r.NetProductUtility = derived(autoNetProduct, effNetProduct)
	return r
}

func adminValue(auto, effective decimal.Decimal, override *decimal.Decimal) (domain.ReportValue, decimal.Decimal) {
	if override != nil {
		return domain.NewReportValue(auto, override), *override
	}
	return derived(auto, effective), effective
}

func sortedAdmins(admins []domain.AdminCommission) []domain.AdminCommission {
	out := append([]domain.AdminCommission(nil), admins...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AdminName != out[j].AdminName {
			return out[i].AdminName < out[j].AdminName
		}
		return out[i].AdminID < out[j].AdminID
	})
	return out
}

// freezeOverride snapshots the automatic column of a report as an override document.
func freezeOverride(r *domain.MonthlyReport) domain.Override {
	ptr := func(v domain.ReportValue) *decimal.Decimal {
		d := v.Auto
		return &d
	}
	o := domain.Override{
		Period:                        r.Period,
		ServiceRevenue:                ptr(r.ServiceRevenue),
		ServiceExpense:                ptr(r.ServiceExpense),
		ServiceCommissions:            ptr(r.ServiceCommissions),
		ProductRevenue:                ptr(r.ProductRevenue),
		Reinvestment:                  ptr(r.Reinvestment),
		ProductProfessionalCommission: ptr(r.ProductProfessionalCommission),
		AdminCommissions:              make(map[string]domain.AdminCommissionOverride, len(r.AdminCommissions)),
		ExpenseCategories:             make(map[domain.ExpenseCategory]decimal.Decimal, len(r.ExpenseCategories)),
	}
	for _, line := range r.AdminCommissions {
		o.AdminCommissions[line.AdminID] = domain.AdminCommissionOverride{Service: ptr(line.Service), Product: ptr(line.Product)}
	}
	for cat, v := range r.ExpenseCategories {
		o.ExpenseCategories[cat] = v.Auto
	}
	return o
}
