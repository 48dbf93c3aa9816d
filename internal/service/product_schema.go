package service

import (
	"github.com/catalog-import-api/internal/excel"
	"github.com/catalog-import-api/internal/models"
)

// SheetProducts is the worksheet tab products are imported from
const SheetProducts = "Products"

// productSheetFields binds spreadsheet columns A.. to product fields,
// in column order.
var productSheetFields = []string{
	"categoryId",
	"categoryName",
	"sku",
	"name",
	"description",
	"weight",
	"width",
	"length",
	"height",
	"image",
	"price",
}

// productFieldSpecs is the type/length constraint table for the product sheet
var productFieldSpecs = map[string]excel.FieldSpec{
	"categoryId":   {Type: excel.FieldNumber, MaxLength: 255},
	"categoryName": {Type: excel.FieldString, MaxLength: 255},
	"sku":          {Type: excel.FieldString, MaxLength: 255},
	"name":         {Type: excel.FieldString, MaxLength: 255},
	"description":  {Type: excel.FieldString},
	"weight":       {Type: excel.FieldNumber, MaxLength: 5},
	"width":        {Type: excel.FieldNumber, MaxLength: 5},
	"length":       {Type: excel.FieldNumber, MaxLength: 5},
	"height":       {Type: excel.FieldNumber, MaxLength: 5},
	"image":        {Type: excel.FieldString, MaxLength: 255},
	"price":        {Type: excel.FieldNumber, MaxLength: 255},
}

// productSheetSchema builds the declarative schema for the product sheet
func productSheetSchema() (excel.SheetSchema, error) {
	return excel.NewSchemaBuilder().
		Sheet(SheetProducts).
		SkipHeaderRows(1).
		MapFields(productSheetFields...).
		FieldSpecs(productFieldSpecs).
		Build()
}

// productInputFromRow converts one validated sheet row into create input.
// Validation already guaranteed the types; missing optional cells fall back
// to zero values.
func productInputFromRow(row excel.RawRow) *models.ProductInput {
	return &models.ProductInput{
		CategoryID:   int64(numField(row, "categoryId")),
		CategoryName: strField(row, "categoryName"),
		SKU:          strField(row, "sku"),
		Name:         strField(row, "name"),
		Description:  strField(row, "description"),
		Weight:       numField(row, "weight"),
		Width:        numField(row, "width"),
		Length:       numField(row, "length"),
		Height:       numField(row, "height"),
		Image:        strField(row, "image"),
		Price:        numField(row, "price"),
	}
}

func strField(row excel.RawRow, field string) string {
	s, _ := row[field].(string)
	return s
}

func numField(row excel.RawRow, field string) float64 {
	n, _ := row[field].(float64)
	return n
}
