package repositories_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"beststore/internal/models"
	"beststore/internal/repositories"
)

func seedRepo(t *testing.T, repo *repositories.MockProductRepository, n int) {
	for i := 1; i <= n; i++ {
		p := models.Product{
			Name:     fmt.Sprintf("Product %d", i),
			Price:    float64(i),
			Category: models.CategoryOther,
			Status:   models.StatusAvailable,
		}
		assert.NoError(t, repo.Save(&p))
	}
}

func TestMockProductRepository_SaveAssignsSequentialIDs(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	first := models.Product{Name: "First", Price: 1}
	second := models.Product{Name: "Second", Price: 2}
	assert.NoError(t, repo.Save(&first))
	assert.NoError(t, repo.Save(&second))

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)

	// Saving with an existing ID overwrites in place.
	first.Name = "First Renamed"
	assert.NoError(t, repo.Save(&first))
	got, err := repo.GetByID(1)
	assert.NoError(t, err)
	assert.Equal(t, "First Renamed", got.Name)
}

func TestMockProductRepository_GetByIDNotFound(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	_, err := repo.GetByID(42)

	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestMockProductRepository_Delete(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	seedRepo(t, repo, 1)

	assert.NoError(t, repo.Delete(1))
	_, err := repo.GetByID(1)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	assert.True(t, errors.Is(repo.Delete(1), repositories.ErrNotFound))
}

func TestMockProductRepository_ListPagination(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	seedRepo(t, repo, 25)

	page, err := repo.List(models.ListFilter{}, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, int64(25), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	// Ordered by ID descending: newest record first.
	assert.Equal(t, uint(25), page.Items[0].ID)
	assert.Equal(t, uint(16), page.Items[9].ID)

	last, err := repo.List(models.ListFilter{}, 2, 10)
	assert.NoError(t, err)
	assert.Len(t, last.Items, 5)

	empty, err := repo.List(models.ListFilter{}, 5, 10)
	assert.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, int64(25), empty.TotalItems)
}

func TestMockProductRepository_ListFilters(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	products := []models.Product{
		{Name: "Gaming Laptop", Price: 1200},
		{Name: "Office Laptop", Price: 45},
		{Name: "Mouse", Price: 25},
		{Name: "Desk", Price: 30},
	}
	for i := range products {
		assert.NoError(t, repo.Save(&products[i]))
	}

	minPrice, maxPrice := 10.0, 50.0
	page, err := repo.List(models.ListFilter{MinPrice: &minPrice, MaxPrice: &maxPrice}, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 3)
	for _, p := range page.Items {
		assert.GreaterOrEqual(t, p.Price, 10.0)
		assert.LessOrEqual(t, p.Price, 50.0)
	}

	// Name matching is a case-insensitive substring; whitespace-only is absent.
	page, err = repo.List(models.ListFilter{Name: "  LAPTOP "}, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = repo.List(models.ListFilter{Name: "   "}, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 4)

	// Combined filters must all hold.
	page, err = repo.List(models.ListFilter{Name: "laptop", MinPrice: &minPrice, MaxPrice: &maxPrice}, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "Office Laptop", page.Items[0].Name)
}
