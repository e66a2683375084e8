package export

import (
	"bytes"
	"testing"

	"github.com/SscSPs/reconciliation_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteMonthlyReport(t *testing.T) {
	override := decimal.RequireFromString("1500")
	report := dto.MonthlyReportResponse{
		LocationID: "loc-1",
		Year:       2024,
		Month:      3,
		Lines: []dto.ReportLineResponse{
			{Section: dto.SectionService, Key: "serviceRevenue", Label: "Service revenue", Auto: decimal.RequireFromString("1234.5"), Effective: decimal.RequireFromString("1234.5")},
			{Section: dto.SectionService, Key: "serviceExpense", Label: "Service expense", Auto: decimal.RequireFromString("900"), Override: &override, Effective: override},
		},
		Commissions: []dto.RecipientCommissionResponse{
			{Recipient: "Ana", ServiceCommission: decimal.RequireFromString("70"), ProductCommission: decimal.RequireFromString("26.85"), Tip: decimal.Zero, Total: decimal.RequireFromString("96.85")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMonthlyReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Section", "Key", "Label", "Auto", "Override", "Effective"}, rows[0])
	assert.Equal(t, "serviceRevenue", rows[1][1])
	assert.Equal(t, "1234.5", rows[1][3])
	assert.Equal(t, "", rows[1][4])
	assert.Equal(t, "1500", rows[2][4])

	commissions, err := f.GetRows(CommissionsSheet)
	require.NoError(t, err)
	require.Len(t, commissions, 2)
	assert.Equal(t, []string{"Ana", "70", "26.85", "0", "96.85"}, commissions[1])
}

func TestMonthlyReportFilename(t *testing.T) {
	assert.Equal(t, "monthly-report-all-2024-03.xlsx", MonthlyReportFilename(dto.MonthlyReportResponse{Year: 2024, Month: 3}))
	assert.Equal(t, "monthly-report-loc-1-2024-11.xlsx", MonthlyReportFilename(dto.MonthlyReportResponse{LocationID: "loc-1", Year: 2024, Month: 11}))
}
