package export

import (
	"fmt"
	"io"

	"github.com/SscSPs/reconciliation_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the monthly report workbook.
const (
	ReportSheet      = "Report"
	CommissionsSheet = "Commissions"
)

// XLSXContentType is the media type of the exported workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	reportHeadings     = []any{"Section", "Key", "Label", "Auto", "Override", "Effective"}
	commissionHeadings = []any{"Recipient", "Service commission", "Product commission", "Tip", "Total"}
)

// MonthlyReportFilename names the attachment for a report.
func MonthlyReportFilename(r dto.MonthlyReportResponse) string {
	loc := r.LocationID
	if loc == "" {
		loc = "all"
	}
	return fmt.Sprintf("monthly-report-%s-%04d-%02d.xlsx", loc, r.Year, r.Month)
}

// WriteMonthlyReport renders the report lines and the per-recipient commissions as a
// two-sheet workbook.
func WriteMonthlyReport(w io.Writer, r dto.MonthlyReportResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(CommissionsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := setRow(f, ReportSheet, 1, reportHeadings); err != nil {
		return err
	}
	for i, l := range r.Lines {
		var override any
		if l.Override != nil {
			override = money(*l.Override)
		}
		row := []any{l.Section, l.Key, l.Label, money(l.Auto), override, money(l.Effective)}
		if err := setRow(f, ReportSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := setRow(f, CommissionsSheet, 1, commissionHeadings); err != nil {
		return err
	}
	for i, c := range r.Commissions {
		row := []any{c.Recipient, money(c.ServiceCommission), money(c.ProductCommission), money(c.Tip), money(c.Total)}
		if err := setRow(f, CommissionsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNo, err)
	}
	return nil
}

// money keeps cents exact in the cell value.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
