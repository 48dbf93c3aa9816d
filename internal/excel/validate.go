package excel

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// requiredField is the minimum field every data row must carry.
const requiredField = "name"

// RawRow is the transient field-name to scalar mapping built while
// scanning one worksheet row.
type RawRow map[string]interface{}

// Violation is a single cell's failure to satisfy its schema constraint
type Violation struct {
	Sheet   string `json:"sheet_name"`
	Column  string `json:"column"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// violationCollector accumulates violations in scan order. Violations are
// collected, never thrown, until the full workbook has been examined.
type violationCollector struct {
	violations []Violation
}

func (vc *violationCollector) add(sheet, column string, row int, message string) {
	vc.violations = append(vc.violations, Violation{
		Sheet:   sheet,
		Column:  column,
		Row:     row,
		Message: message,
	})
}

func (vc *violationCollector) empty() bool {
	return len(vc.violations) == 0
}

// report groups the collected violations by sheet name, preserving
// first-seen sheet order and scan order within each sheet.
func (vc *violationCollector) report() *ValidationReport {
	var order []string
	bySheet := make(map[string][]Violation)
	for _, v := range vc.violations {
		if _, seen := bySheet[v.Sheet]; !seen {
			order = append(order, v.Sheet)
		}
		bySheet[v.Sheet] = append(bySheet[v.Sheet], v)
	}

	report := &ValidationReport{}
	for _, name := range order {
		report.Sheets = append(report.Sheets, SheetViolations{
			SheetName:  name,
			Violations: bySheet[name],
		})
	}
	return report
}

// SheetViolations lists one sheet's violations in scan order
type SheetViolations struct {
	SheetName  string      `json:"sheet_name"`
	Violations []Violation `json:"invalid_columns"`
}

// ValidationReport is the structured failure of a whole import: every
// violation found across every configured sheet, grouped by sheet name.
type ValidationReport struct {
	Sheets []SheetViolations `json:"sheets"`
}

func (r *ValidationReport) Error() string {
	total := 0
	for _, s := range r.Sheets {
		total += len(s.Violations)
	}
	return fmt.Sprintf("spreadsheet validation failed: %d violation(s) across %d sheet(s)", total, len(r.Sheets))
}

// validateCell checks one extracted scalar against its field spec and
// records it into the row when valid. A failed check appends a violation;
// the rest of the row is still processed.
func validateCell(cell *Cell, schema *SheetSchema, row RawRow, vc *violationCollector) {
	field, ok := schema.FieldFor(cell.Col)
	if !ok {
		return
	}
	spec, ok := schema.Fields[field]
	if !ok {
		return
	}

	value := ExtractValue(cell)
	if value == nil || value == "" {
		return
	}

	// Cells whose evaluation failed render an "Invalid" marker instead of
	// a scalar (e.g. a date-formatted formula cell).
	if strings.HasPrefix(scalarString(value), "Invalid") {
		vc.add(schema.Name, cell.Col, cell.Row,
			fmt.Sprintf("%s cell format must be general (row %d)", fieldLabel(field), cell.Row))
		return
	}

	if !checkFieldValue(value, spec) {
		vc.add(schema.Name, cell.Col, cell.Row, specMessage(field, spec, cell.Row))
		return
	}

	row[field] = value
}

// checkRequired flags a scanned row that never produced its name field.
// The violation is reported at the column offset by the header row count,
// matching where the report template expects it.
func checkRequired(schema *SheetSchema, row RawRow, rowNum int, vc *violationCollector) {
	if _, ok := row[requiredField]; ok {
		return
	}
	col := columnLetter(schema.HeaderRows)
	vc.add(schema.Name, col, rowNum,
		fmt.Sprintf("%s should not be empty (row %d)", fieldLabel(requiredField), rowNum))
}

// checkFieldValue applies the type and length constraints of a field spec
func checkFieldValue(v interface{}, spec FieldSpec) bool {
	switch spec.Type {
	case FieldString:
		if _, ok := v.(string); !ok {
			return false
		}
	case FieldNumber:
		n, ok := v.(float64)
		if !ok || math.IsNaN(n) {
			return false
		}
	}
	if spec.MaxLength > 0 && len(scalarString(v)) > spec.MaxLength {
		return false
	}
	return true
}

func specMessage(field string, spec FieldSpec, row int) string {
	if spec.MaxLength > 0 {
		return fmt.Sprintf("%s must be of type %s or length limit is %d (row %d)",
			fieldLabel(field), spec.Type, spec.MaxLength, row)
	}
	return fmt.Sprintf("%s must be of type %s (row %d)", fieldLabel(field), spec.Type, row)
}

// fieldLabel renders a camelCase field name as the upper-case spaced label
// used in violation messages: categoryName -> "CATEGORY NAME".
func fieldLabel(field string) string {
	var b strings.Builder
	prevUpper := false
	for _, r := range field {
		upper := unicode.IsUpper(r)
		if upper && !prevUpper && b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToUpper(r))
		prevUpper = upper
	}
	return b.String()
}

// camelName converts a sheet name to the camel-cased bucket key:
// "Products" -> "products", "Price List" -> "priceList".
func camelName(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}
