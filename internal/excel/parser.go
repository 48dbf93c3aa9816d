package excel

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Parser drives the schema-driven read of one workbook: every configured
// sheet, every row, every mapped cell, strictly in order. Violations are
// aggregated across the whole file; the parse fails only after every row
// has been examined, so a single report covers the entire spreadsheet.
type Parser struct {
	path   string
	sheets []SheetSchema
	log    zerolog.Logger
}

// NewParser creates a Parser
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log.With().Str("component", "excel-parser").Logger()}
}

// File sets the workbook to read and resets any previously added sheets
func (p *Parser) File(path string) *Parser {
	p.path = path
	p.sheets = nil
	return p
}

// AddSheet registers a sheet schema to read
func (p *Parser) AddSheet(schema SheetSchema) *Parser {
	p.sheets = append(p.sheets, schema)
	return p
}

// Build opens the workbook and produces the validated row buckets, keyed
// by the camel-cased sheet name. Configured sheets absent from the file
// are skipped; extra tabs in the file are ignored. A non-empty violation
// aggregate fails the whole parse with a *ValidationReport.
func (p *Parser) Build() (map[string][]RawRow, error) {
	if len(p.sheets) == 0 {
		return nil, fmt.Errorf("no sheet schemas configured")
	}

	wb, err := openWorkbook(p.path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	buckets := make(map[string][]RawRow)
	vc := &violationCollector{}

	for i := range p.sheets {
		schema := &p.sheets[i]
		if !wb.hasSheet(schema.Name) {
			p.log.Debug().Str("sheet", schema.Name).Msg("Configured sheet not in workbook, skipping")
			continue
		}

		rows, err := p.readSheet(wb, schema, vc)
		if err != nil {
			return nil, err
		}
		buckets[camelName(schema.Name)] = rows

		p.log.Info().
			Str("sheet", schema.Name).
			Int("rows", len(rows)).
			Msg("Sheet scanned")
	}

	if !vc.empty() {
		return nil, vc.report()
	}
	return buckets, nil
}

// readSheet scans one worksheet: header rows are skipped, each data row is
// extracted cell by cell and validated. Rows are never short-circuited; a
// bad cell records its violation and scanning continues so the report
// covers every problem in the sheet.
func (p *Parser) readSheet(wb *workbook, schema *SheetSchema, vc *violationCollector) ([]RawRow, error) {
	matrix, err := wb.rows(schema.Name)
	if err != nil {
		return nil, err
	}

	var rows []RawRow
	for rowNum := schema.HeaderRows + 1; rowNum <= len(matrix); rowNum++ {
		if emptyRow(matrix[rowNum-1]) {
			continue
		}

		row := make(RawRow)
		for _, col := range schema.Columns() {
			cell, err := wb.readCell(schema.Name, col, rowNum)
			if err != nil {
				return nil, err
			}
			validateCell(&cell, schema, row, vc)
		}
		checkRequired(schema, row, rowNum, vc)
		rows = append(rows, row)
	}
	return rows, nil
}

func emptyRow(cells []string) bool {
	for _, v := range cells {
		if v != "" {
			return false
		}
	}
	return true
}
