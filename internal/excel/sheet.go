// Package excel reads spreadsheet workbooks against declarative sheet
// schemas, normalizing heterogeneous cell shapes to scalars and aggregating
// every validation violation before failing.
package excel

import (
	"fmt"
)

// FieldType constrains the scalar type a column may hold
type FieldType string

const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
)

// FieldSpec holds the per-field constraints of a sheet schema.
// MaxLength applies to the value's textual form; zero means unlimited.
type FieldSpec struct {
	Type      FieldType
	MaxLength int
}

// SheetSchema is the declarative column/type contract for one worksheet tab.
// Columns are bound to sequential letters starting at 'A'; every mapped
// field has exactly one entry in Fields. Schemas are built once via
// SchemaBuilder and not mutated afterwards.
type SheetSchema struct {
	Name       string
	HeaderRows int
	columns    []string          // letters in mapping order
	fieldByCol map[string]string // letter -> field name
	Fields     map[string]FieldSpec
}

// Columns returns the mapped column letters in schema order.
func (s *SheetSchema) Columns() []string {
	return s.columns
}

// FieldFor resolves the field name bound to a column letter.
func (s *SheetSchema) FieldFor(column string) (string, bool) {
	name, ok := s.fieldByCol[column]
	return name, ok
}

// SchemaBuilder assembles an immutable SheetSchema
type SchemaBuilder struct {
	schema SheetSchema
	err    error
}

// NewSchemaBuilder creates a new SchemaBuilder
func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{
		schema: SheetSchema{
			HeaderRows: 1,
			fieldByCol: make(map[string]string),
		},
	}
}

// Sheet sets the worksheet name the schema applies to
func (b *SchemaBuilder) Sheet(name string) *SchemaBuilder {
	b.schema.Name = name
	return b
}

// SkipHeaderRows sets how many leading rows are headers, not data
func (b *SchemaBuilder) SkipHeaderRows(rows int) *SchemaBuilder {
	b.schema.HeaderRows = rows
	return b
}

// MapFields binds field names to sequential column letters starting at 'A'
func (b *SchemaBuilder) MapFields(fields ...string) *SchemaBuilder {
	if len(fields) > 26 {
		b.err = fmt.Errorf("schema maps %d fields, column letters run out at Z", len(fields))
		return b
	}
	seen := make(map[string]bool, len(fields))
	for i, field := range fields {
		if seen[field] {
			b.err = fmt.Errorf("duplicate field %q in column map", field)
			return b
		}
		seen[field] = true
		letter := columnLetter(i + 1)
		b.schema.columns = append(b.schema.columns, letter)
		b.schema.fieldByCol[letter] = field
	}
	return b
}

// FieldSpecs attaches the type/length constraint table
func (b *SchemaBuilder) FieldSpecs(specs map[string]FieldSpec) *SchemaBuilder {
	b.schema.Fields = specs
	return b
}

// Build finalizes the schema. Every mapped field must have a spec.
func (b *SchemaBuilder) Build() (SheetSchema, error) {
	if b.err != nil {
		return SheetSchema{}, b.err
	}
	if b.schema.Name == "" {
		return SheetSchema{}, fmt.Errorf("sheet schema has no name")
	}
	for _, letter := range b.schema.columns {
		field := b.schema.fieldByCol[letter]
		if _, ok := b.schema.Fields[field]; !ok {
			return SheetSchema{}, fmt.Errorf("field %q (column %s) has no constraint spec", field, letter)
		}
	}
	return b.schema, nil
}

// columnLetter converts a 1-based column index to its letter ('A'..'Z')
func columnLetter(index int) string {
	return string(rune('A' + index - 1))
}
