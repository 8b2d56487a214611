package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/matsen/litmerge/internal/dedup"
)

const defaultSheet = "Sheet1"

// WriteWorkbook writes the result set to an .xlsx file, one sheet per
// partition, replacing any existing file.
func WriteWorkbook(path string, rs *dedup.ResultSet) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"000000"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	body, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating row style: %w", err)
	}

	for i, sheet := range Sheets(rs.Family) {
		name := sheet.Name()
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
		if err := writeSheet(f, sheet, rs, header, body); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet, rs *dedup.ResultSet, headerStyle, bodyStyle int) error {
	name := sheet.Name()
	cols := Columns(rs.Family, sheet)
	recs := sheet.Records(rs)

	headers := make([]any, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, colName, colName, c.Width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return err
	}
	if err := f.AutoFilter(name, "A1:"+last, nil); err != nil {
		return err
	}
	if err := f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for i, r := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := Cells(r, rs.Family, sheet)
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	if len(recs) > 0 {
		end, err := excelize.CoordinatesToCellName(len(cols), len(recs)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, "A2", end, bodyStyle); err != nil {
			return err
		}
	}

	return nil
}
