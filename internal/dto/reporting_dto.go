package dto

import (
	"sort"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Report sections, in display order.
const (
	SectionService  = "service"
	SectionProduct  = "product"
	SectionAdmin    = "admin"
	SectionNet      = "net"
	SectionCategory = "expenseCategory"
)

// ReportLineResponse is one figure of the monthly report.
type ReportLineResponse struct {
	Section   string           `json:"section"`
	Key       string           `json:"key"`
	Label     string           `json:"label"`
	Auto      decimal.Decimal  `json:"auto"`
	Override  *decimal.Decimal `json:"override,omitempty"`
	Effective decimal.Decimal  `json:"effective"`
}

// MonthlyReportResponse represents the monthly profit and loss report response
type MonthlyReportResponse struct {
	LocationID   string                        `json:"locationID,omitempty"`
	Year         int                           `json:"year"`
	Month        int                           `json:"month"`
	Overridden   bool                          `json:"overridden"`
	OverrideNote string                        `json:"overrideNote,omitempty"`
	Lines        []ReportLineResponse          `json:"lines"`
	Commissions  []RecipientCommissionResponse `json:"commissions"`
}

func line(section, key, label string, v domain.ReportValue) ReportLineResponse {
	return ReportLineResponse{
		Section:   section,
		Key:       key,
		Label:     label,
		Auto:      v.Auto,
		Override:  v.Override,
		Effective: v.Effective,
	}
}

// ReportLines flattens a report into display order.
func ReportLines(r *domain.MonthlyReport) []ReportLineResponse {
	lines := []ReportLineResponse{
		line(SectionService, "serviceRevenue", "Service revenue", r.ServiceRevenue),
		line(SectionService, "serviceCommissions", "Service commissions", r.ServiceCommissions),
		line(SectionService, "productCommissions", "Product commissions paid", r.ProductCommissions),
		line(SectionService, "payroll", "Payroll", r.Payroll),
		line(SectionService, "fixedCosts", "Fixed costs", r.FixedCosts),
		line(SectionService, "serviceExpense", "Service expense", r.ServiceExpense),
		line(SectionService, "serviceSubtotal", "Service subtotal", r.ServiceSubtotal),
		line(SectionProduct, "productRevenue", "Product revenue", r.ProductRevenue),
		line(SectionProduct, "reinvestment", "Reinvestment", r.Reinvestment),
		line(SectionProduct, "productProfessionalCommission", "Professional product commission", r.ProductProfessionalCommission),
		line(SectionProduct, "productSubtotal", "Product subtotal", r.ProductSubtotal),
	}
	for _, ac := range r.AdminCommissions {
		name := ac.AdminName
		if name == "" {
			name = ac.AdminID
		}
		lines = append(lines,
			line(SectionAdmin, "admin."+ac.AdminID+".service", name+" (service)", ac.Service),
			line(SectionAdmin, "admin."+ac.AdminID+".product", name+" (product)", ac.Product),
		)
	}
	lines = append(lines,
		line(SectionNet, "netServiceUtility", "Net service utility", r.NetServiceUtility),
		line(SectionNet, "netProductUtility", "Net product utility", r.NetProductUtility),
	)

	cats := make([]string, 0, len(r.ExpenseCategories))
	for cat := range r.ExpenseCategories {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)
	for _, cat := range cats {
		lines = append(lines, line(SectionCategory, "category."+cat, cat, r.ExpenseCategories[domain.ExpenseCategory(cat)]))
	}
	return lines
}

// ToMonthlyReportResponse converts a domain report to its DTO.
func ToMonthlyReportResponse(r *domain.MonthlyReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		LocationID:   r.Period.LocationID,
		Year:         r.Period.Year,
		Month:        r.Period.Month,
		Overridden:   r.Overridden,
		OverrideNote: r.OverrideNote,
		Lines:        ReportLines(r),
		Commissions:  RecipientRows(r.Commissions),
	}
}
