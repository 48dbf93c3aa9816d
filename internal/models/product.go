package models

// Product represents a catalog item in the system
type Product struct {
	ID           int64   `json:"id" db:"id"`
	CategoryID   int64   `json:"category_id" db:"category_id"`
	CategoryName string  `json:"category_name" db:"category_name"`
	SKU          string  `json:"sku" db:"sku"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description,omitempty" db:"description"`
	Weight       float64 `json:"weight" db:"weight"`
	Width        float64 `json:"width" db:"width"`
	Length       float64 `json:"length" db:"length"`
	Height       float64 `json:"height" db:"height"`
	Image        string  `json:"image" db:"image"`
	Price        float64 `json:"price" db:"price"`
}

// ProductInput carries the fields for creating a product.
// It is also the change snapshot recorded in the audit trail on create.
type ProductInput struct {
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Weight       float64 `json:"weight"`
	Width        float64 `json:"width"`
	Length       float64 `json:"length"`
	Height       float64 `json:"height"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
}

// Product builds the entity to persist; the ID is assigned by storage.
func (in *ProductInput) Product() *Product {
	return &Product{
		CategoryID:   in.CategoryID,
		CategoryName: in.CategoryName,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Weight:       in.Weight,
		Width:        in.Width,
		Length:       in.Length,
		Height:       in.Height,
		Image:        in.Image,
		Price:        in.Price,
	}
}

// ProductPatch is a partial update; nil fields are left untouched.
// A non-nil ID is rejected by the service, the identity is immutable.
type ProductPatch struct {
	ID           *int64   `json:"id,omitempty"`
	CategoryID   *int64   `json:"category_id,omitempty"`
	CategoryName *string  `json:"category_name,omitempty"`
	SKU          *string  `json:"sku,omitempty"`
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	Length       *float64 `json:"length,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	Image        *string  `json:"image,omitempty"`
	Price        *float64 `json:"price,omitempty"`
}

// Apply performs a shallow merge of the provided fields onto dst.
func (p *ProductPatch) Apply(dst *Product) {
	if p.CategoryID != nil {
		dst.CategoryID = *p.CategoryID
	}
	if p.CategoryName != nil {
		dst.CategoryName = *p.CategoryName
	}
	if p.SKU != nil {
		dst.SKU = *p.SKU
	}
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Weight != nil {
		dst.Weight = *p.Weight
	}
	if p.Width != nil {
		dst.Width = *p.Width
	}
	if p.Length != nil {
		dst.Length = *p.Length
	}
	if p.Height != nil {
		dst.Height = *p.Height
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
}

// ProductQuery holds list filtering and pagination options
type ProductQuery struct {
	Page   int    `json:"page" form:"page"`
	Limit  int    `json:"limit" form:"limit"`
	Search string `json:"search" form:"search"`
}

// PageMeta describes one page of a paginated listing
type PageMeta struct {
	TotalItems      int  `json:"total_items"`
	CurrentPage     int  `json:"current_page"`
	ItemsPerPage    int  `json:"items_per_page"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// ProductPage is the paginated listing response
type ProductPage struct {
	Data []*Product `json:"data"`
	Meta PageMeta   `json:"meta"`
}
