package stats

import (
	"fmt"
	"io"
	"math"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"
)

// SheetSource yields the rows of the first sheet of a workbook.
type SheetSource struct {
	rows [][]string
	pos  int
}

func (s *SheetSource) Next() bool {
	if s.pos >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

func (s *SheetSource) Row() []string {
	return s.rows[s.pos-1]
}

func (s *SheetSource) Err() error   { return nil }
func (s *SheetSource) Close() error { return nil }

// OpenXLS reads the first sheet of a legacy Excel workbook.
func OpenXLS(r io.ReadSeeker, name string) (*SheetSource, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: could not read XLS file '%s': %v", ErrOpen, name, err)
	}

	src := &SheetSource{}
	if sheet := wb.GetSheet(0); sheet != nil {
		for i := 0; i <= int(sheet.MaxRow); i++ {
			row := sheet.Row(i)
			if row == nil {
				continue
			}
			var cols []string
			for j := 0; j <= row.LastCol(); j++ {
				cols = append(cols, row.Col(j))
			}
			src.rows = append(src.rows, cols)
		}
	}
	return src, nil
}

// OpenXLSX reads the first sheet of an Office Open XML workbook.
func OpenXLSX(r io.Reader, name string) (*SheetSource, error) {
	wb, err := xlsx.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read XLSX file '%s': %v", ErrOpen, name, err)
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return &SheetSource{}, nil
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: could not get rows for sheet '%s': %v", ErrRead, sheets[0], err)
	}
	return &SheetSource{rows: rows}, nil
}

const rankingSheet = "Ranking"

// SaveXLSX writes the ranking to a new workbook at path.
func SaveXLSX(path string, r *Report, label string) error {
	if label == "" {
		label = DefaultLabel
	}

	wb := xlsx.NewFile()
	wb.SetSheetName("Sheet1", rankingSheet)

	headers := []interface{}{
		"Rank", "Prefecture",
		fmt.Sprintf("Population %d", r.Years.Earlier),
		fmt.Sprintf("Population %d", r.Years.Later),
		label,
	}
	for i, h := range headers {
		cell, _ := xlsx.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(rankingSheet, cell, h); err != nil {
			return fmt.Errorf("could not write header: %w", err)
		}
	}

	for i, e := range r.Entries {
		values := []interface{}{
			i + 1, e.Prefecture,
			cellNumber(e.Stats.Popu10),
			cellNumber(e.Stats.Popu15),
			cellNumber(e.Stats.Change),
		}
		for j, v := range values {
			cell, _ := xlsx.CoordinatesToCellName(j+1, i+2)
			if err := wb.SetCellValue(rankingSheet, cell, v); err != nil {
				return fmt.Errorf("could not write row %d: %w", i+2, err)
			}
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("could not save workbook '%s': %w", path, err)
	}
	return nil
}

// Spreadsheets have no NaN or infinity, so those are written as text.
func cellNumber(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return formatNumber(f)
	}
	return f
}
