package repositories

import (
	"sort"
	"strings"
	"sync"

	"beststore/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the query semantics of the GORM implementation so the app can
// run without a database.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// List returns one page of matching products ordered by ID descending.
func (r *MockProductRepository) List(filter models.ListFilter, page, size int) (*models.ProductPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(strings.TrimSpace(filter.Name))

	matches := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		matches = append(matches, p)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].ID > matches[j].ID
	})

	total := int64(len(matches))
	start := page * size
	if start > len(matches) {
		start = len(matches)
	}
	end := start + size
	if end > len(matches) {
		end = len(matches)
	}

	return &models.ProductPage{
		Items:      matches[start:end],
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages(total, size),
	}, nil
}

// Save inserts the product, assigning the next sequential ID when the
// product is new, or overwrites the stored record.
func (r *MockProductRepository) Save(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
		r.nextID++
	} else if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}
