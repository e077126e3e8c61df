// Package export writes roster snapshots to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
)

// SheetName is the worksheet that holds exported rows.
const SheetName = "Staff"

// Headers are the column titles of an exported workbook, in order.
var Headers = []string{"Staff ID", "Name", "Mobile", "Username", "Role", "Status", "Salary", "Joining Date"}

// WriteXLSX writes the roster as a single-sheet workbook to w. Salaries that
// parse as numbers are stored as numeric cells; anything else is kept as text.
func WriteXLSX(w io.Writer, staff []domain.Staff) error {
	f, err := build(staff)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the roster workbook to path.
func SaveXLSX(path string, staff []domain.Staff) error {
	f, err := build(staff)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func build(staff []domain.Staff) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile always creates "Sheet1"; rename it rather than adding a sheet.
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, err
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}

	for r, s := range staff {
		row := []any{s.ID, s.Name, s.Mobile, s.Username, s.Role, s.DisplayStatus(), salaryCell(s), s.JoinDate}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func salaryCell(s domain.Staff) any {
	if v, ok := s.SalaryAmount(); ok {
		return v
	}
	return s.Salary
}
