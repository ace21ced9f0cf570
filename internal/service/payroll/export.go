package payroll

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet     = "Payroll"
	unassignedArea  = "Unassigned"
	exportDateStyle = "2006-01-02"
)

var exportHeader = []string{
	"EMPLOYEE ID", "EMPLOYEE NAME", "DESIGNATION", "BASIC MONTHLY SALARY", "# OF DAYS",
	"TOTAL BASIC PAY", "OVERTIME PAY", "ALLOWANCES", "TOTAL ADDITIONS",
	"ATTENDANCE DED.", "MANDATORY", "VOLUNTARY", "TOTAL DEDUCTIONS", "NET PAY",
}

type areaRows struct {
	Area string
	Rows []payroll.PayrollRow
}

// groupByArea buckets rows by area, areas sorted by name with employees in
// input order. Rows without an area are grouped last.
func groupByArea(rows []payroll.PayrollRow) []areaRows {
	index := make(map[string]int)
	var groups []areaRows
	for _, r := range rows {
		area := strings.TrimSpace(r.Area)
		if area == "" {
			area = unassignedArea
		}
		i, ok := index[area]
		if !ok {
			i = len(groups)
			index[area] = i
			groups = append(groups, areaRows{Area: area})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if (groups[i].Area == unassignedArea) != (groups[j].Area == unassignedArea) {
			return groups[j].Area == unassignedArea
		}
		return groups[i].Area < groups[j].Area
	})
	return groups
}

// ExportWorkbook renders computed rows as an XLSX workbook grouped by area,
// each group followed by a subtotal line and a blank separator.
func ExportWorkbook(cal Calendar, rows []payroll.PayrollRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#161B2C"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(exportHeader))
	setRow := func(row int, values []any) {
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(exportSheet, cell, v)
		}
	}

	_ = f.SetCellValue(exportSheet, "A1", "PAYROLL REPORT")
	_ = f.SetCellValue(exportSheet, "A2", fmt.Sprintf("Cutoff %s to %s (%d days)",
		cal.Start().Format(exportDateStyle), cal.End().Format(exportDateStyle), cal.TotalDays()))
	_ = f.SetCellStyle(exportSheet, "A1", "A1", bold)

	headerRow := 4
	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	setRow(headerRow, header)
	_ = f.SetCellStyle(exportSheet, "A4", fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	row := headerRow + 1
	var grand payroll.ReportTotals
	for _, g := range groupByArea(rows) {
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), strings.ToUpper(g.Area))
		_ = f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), bold)
		row++

		var sub payroll.ReportTotals
		for _, r := range g.Rows {
			setRow(row, []any{
				r.EmployeeID,
				r.Name,
				derefString(r.Designation),
				money2(r.BasicSalary),
				r.ReportedDays,
				money2(r.GrossPay),
				money2(r.OvertimePay),
				money2(r.FixedAdditions),
				money2(r.TotalAdditions),
				money2(r.AttendanceDeduction),
				money2(r.MandatoryDeductions),
				money2(r.VoluntaryDeductions),
				money2(r.TotalDeductions),
				money2(r.NetPay),
			})
			_ = f.SetCellStyle(exportSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%s%d", lastCol, row), money)
			sub.Add(r)
			grand.Add(r)
			row++
		}

		writeTotals(f, row, fmt.Sprintf("%s SUBTOTAL (%d)", strings.ToUpper(g.Area), sub.Employees), sub, bold)
		row += 2 // blank separator
	}
	writeTotals(f, row, fmt.Sprintf("GRAND TOTAL (%d)", grand.Employees), grand, bold)

	widths := map[string]float64{"A": 14, "B": 28, "C": 20, "D": 20, "E": 10}
	for col, w := range widths {
		_ = f.SetColWidth(exportSheet, col, col, w)
	}
	_ = f.SetColWidth(exportSheet, "F", lastCol, 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTotals(f *excelize.File, row int, label string, t payroll.ReportTotals, style int) {
	_ = f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), label)
	_ = f.SetCellValue(exportSheet, fmt.Sprintf("F%d", row), money2(t.GrossPay))
	_ = f.SetCellValue(exportSheet, fmt.Sprintf("I%d", row), money2(t.TotalAdditions))
	_ = f.SetCellValue(exportSheet, fmt.Sprintf("M%d", row), money2(t.TotalDeductions))
	_ = f.SetCellValue(exportSheet, fmt.Sprintf("N%d", row), money2(t.NetPay))
	_ = f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("N%d", row), style)
}

func money2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
