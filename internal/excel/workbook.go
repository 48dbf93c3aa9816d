package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// workbook wraps an opened excelize file and reads cells into the
// normalized Cell shape the extractor chain understands.
type workbook struct {
	f *excelize.File
}

func openWorkbook(path string) (*workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &workbook{f: f}, nil
}

func (w *workbook) Close() error {
	return w.f.Close()
}

// hasSheet reports whether the workbook contains a worksheet by name
func (w *workbook) hasSheet(name string) bool {
	idx, err := w.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// rows returns the occupied row matrix of a worksheet. The matrix is only
// used for row counting and emptiness checks; cell values go through
// readCell so their stored shape survives.
func (w *workbook) rows(sheet string) ([][]string, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// readCell populates a Cell for one coordinate, distributing the stored
// representation over the shape fields the extractor precedence expects:
// formula cells carry their cached result, '#'-prefixed indicators are
// errors, rich text and hyperlinks attach alongside.
func (w *workbook) readCell(sheet, col string, row int) (Cell, error) {
	cell := Cell{Row: row, Col: col}
	axis := col + strconv.Itoa(row)

	raw, err := w.f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return cell, fmt.Errorf("read cell %s!%s: %w", sheet, axis, err)
	}
	ctype, err := w.f.GetCellType(sheet, axis)
	if err != nil {
		return cell, fmt.Errorf("type of cell %s!%s: %w", sheet, axis, err)
	}
	formula, _ := w.f.GetCellFormula(sheet, axis)

	switch {
	case ctype == excelize.CellTypeError || strings.HasPrefix(raw, "#"):
		cell.Error = raw
	case formula != "":
		cell.Result = typedScalar(raw, ctype)
	default:
		cell.Raw = typedScalar(raw, ctype)
	}

	if runs, err := w.f.GetCellRichText(sheet, axis); err == nil && len(runs) > 1 {
		rich := make([]RichTextRun, len(runs))
		for i, run := range runs {
			rich[i] = RichTextRun{Text: run.Text}
		}
		switch {
		case cell.Result != nil:
			cell.ResultRich = rich
		case cell.Error != nil:
			cell.ErrorRich = rich
		default:
			cell.Rich = rich
		}
	}

	if has, link, err := w.f.GetCellHyperLink(sheet, axis); err == nil && has {
		cell.Hyperlink = link
	}

	return cell, nil
}

// typedScalar converts excelize's string rendering back to the scalar the
// cell actually stores. Numbers are stored without a type attribute, so an
// unset type that parses cleanly as a float is a number.
func typedScalar(raw string, ctype excelize.CellType) interface{} {
	if raw == "" {
		return nil
	}
	switch ctype {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	default:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
		return raw
	}
}
