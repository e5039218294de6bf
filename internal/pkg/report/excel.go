// Package report renders faculty activity reports as Excel workbooks.
package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// ActivityRow is a flattened activity record for the report sheet.
type ActivityRow struct {
	Title       string
	Type        string
	Status      string
	Credits     int
	StudentName string
	Department  string
	Date        string
}

// Workbook builds the multi-sheet report file.
type Workbook struct {
	file *excelize.File
}

// NewWorkbook creates the report workbook with an Activities sheet and
// summary sheets for type, department and month breakdowns.
func NewWorkbook(rows []ActivityRow, byType, byDepartment, byMonth map[string]int) (*Workbook, error) {
	f := excelize.NewFile()

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	if err := f.SetSheetName("Sheet1", "Activities"); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []string{"Title", "Type", "Status", "Credits", "Student", "Department", "Date"}
	for col, h := range header {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr("Activities", cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(header)) + "1"
	_ = f.SetCellStyle("Activities", "A1", end, bold)
	_ = f.AutoFilter("Activities", "A1:"+end, nil)

	for r, row := range rows {
		line := r + 2
		_ = f.SetCellStr("Activities", fmt.Sprintf("A%d", line), row.Title)
		_ = f.SetCellStr("Activities", fmt.Sprintf("B%d", line), row.Type)
		_ = f.SetCellStr("Activities", fmt.Sprintf("C%d", line), row.Status)
		_ = f.SetCellInt("Activities", fmt.Sprintf("D%d", line), int64(row.Credits))
		_ = f.SetCellStr("Activities", fmt.Sprintf("E%d", line), row.StudentName)
		_ = f.SetCellStr("Activities", fmt.Sprintf("F%d", line), row.Department)
		_ = f.SetCellStr("Activities", fmt.Sprintf("G%d", line), row.Date)
	}
	for c := 1; c <= len(header); c++ {
		_ = f.SetColWidth("Activities", colName(c), colName(c), 18)
	}

	summaries := []struct {
		sheet  string
		label  string
		counts map[string]int
	}{
		{"By Type", "Activity Type", byType},
		{"By Department", "Department", byDepartment},
		{"By Month", "Month", byMonth},
	}
	for _, s := range summaries {
		if _, err := f.NewSheet(s.sheet); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", s.sheet, err)
		}
		_ = f.SetCellStr(s.sheet, "A1", s.label)
		_ = f.SetCellStr(s.sheet, "B1", "Count")
		_ = f.SetCellStyle(s.sheet, "A1", "B1", bold)

		keys := make([]string, 0, len(s.counts))
		for k := range s.counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			line := i + 2
			_ = f.SetCellStr(s.sheet, fmt.Sprintf("A%d", line), k)
			_ = f.SetCellInt(s.sheet, fmt.Sprintf("B%d", line), int64(s.counts[k]))
		}
		_ = f.SetColWidth(s.sheet, "A", "A", 24)
	}

	return &Workbook{file: f}, nil
}

// Bytes serializes the workbook.
func (w *Workbook) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}
