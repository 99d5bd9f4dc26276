package models

import "time"

// Category classifies a product on the storefront.
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryClothing    Category = "CLOTHING"
	CategoryHome        Category = "HOME"
	CategorySports      Category = "SPORTS"
	CategoryOther       Category = "OTHER"
)

// Status describes product availability. Products are created as
// AVAILABLE and the catalog endpoints never change the status.
type Status string

const (
	StatusAvailable    Status = "AVAILABLE"
	StatusOutOfStock   Status = "OUT_OF_STOCK"
	StatusDiscontinued Status = "DISCONTINUED"
)

// Product represents a catalog entry in the store.
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discountPrice,omitempty"`
	Category      Category  `json:"category"`
	Status        Status    `json:"status"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	ImageFileName string    `json:"imageFileName,omitempty"`
}

// ProductInput carries user-submitted product fields. The image upload
// travels separately as a multipart file, not as a struct field.
type ProductInput struct {
	Name          string   `json:"name" form:"name" validate:"required,min=3,max=100"`
	Price         float64  `json:"price" form:"price" validate:"required,gt=0"`
	DiscountPrice *float64 `json:"discountPrice" form:"discountPrice" validate:"omitempty,gt=0"`
	Category      string   `json:"category" form:"category" validate:"required"`
	Description   string   `json:"description" form:"description" validate:"omitempty,max=500"`
}

// InputFromProduct prefills a ProductInput from an existing product for
// editing. The stored image name is not carried into the input.
func InputFromProduct(p *Product) ProductInput {
	return ProductInput{
		Name:          p.Name,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Category:      string(p.Category),
		Description:   p.Description,
	}
}

// Apply overwrites the mutable fields of p with the input's values.
// ID, status, creation timestamp and image filename are left untouched.
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Price = in.Price
	p.DiscountPrice = in.DiscountPrice
	p.Category = Category(in.Category)
	p.Description = in.Description
}

// ListFilter holds the optional listing constraints. Absent filters
// impose no constraint; supplied filters combine with AND.
type ListFilter struct {
	Name     string   // case-insensitive substring match, trimmed
	MinPrice *float64 // inclusive lower bound
	MaxPrice *float64 // inclusive upper bound
}

// ProductPage is one page of listing results.
type ProductPage struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	Size       int       `json:"size"`
	TotalItems int64     `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
}
