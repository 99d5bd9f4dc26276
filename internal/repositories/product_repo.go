package repositories

import (
	"errors"

	"beststore/internal/models"
)

// ErrNotFound is returned when no product matches the requested ID.
var ErrNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetByID returns the product with the given ID, or ErrNotFound.
	GetByID(id uint) (*models.Product, error)
	// List returns one page of products matching the filter, ordered
	// by ID descending. page is zero-based.
	List(filter models.ListFilter, page, size int) (*models.ProductPage, error)
	// Save inserts the product when its ID is zero, otherwise updates it.
	Save(product *models.Product) error
	// Delete removes the product with the given ID, or returns ErrNotFound.
	Delete(id uint) error
}
