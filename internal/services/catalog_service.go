package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"beststore/internal/models"
	"beststore/internal/repositories"
)

// ErrImageStore marks a failure writing an uploaded image to disk.
// During create this aborts the operation; during edit the caller
// logs it and keeps the rest of the update.
var ErrImageStore = errors.New("image store failure")

// ImageStore abstracts the upload directory used for product images.
type ImageStore interface {
	Save(originalName string, content io.Reader) (string, error)
	Remove(name string) error
}

// EventPublisher pushes catalog change notifications to the message broker.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// Upload carries an uploaded image payload into the service layer.
type Upload struct {
	Filename string
	Content  io.Reader
}

// CatalogService handles business logic for the product catalog.
type CatalogService struct {
	repo      repositories.ProductRepository
	images    ImageStore
	publisher EventPublisher // nil disables event publishing
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, images ImageStore, publisher EventPublisher) *CatalogService {
	return &CatalogService{
		repo:      repo,
		images:    images,
		publisher: publisher,
	}
}

// Create stores the uploaded image, builds a new product from the input
// and persists it. The product is created as AVAILABLE with the current
// time as its creation timestamp. When the image cannot be stored, no
// record is created and the error wraps ErrImageStore.
func (s *CatalogService) Create(input models.ProductInput, image Upload) (*models.Product, error) {
	storageName, err := s.images.Save(image.Filename, image.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageStore, err)
	}

	product := &models.Product{
		Status:        models.StatusAvailable,
		CreatedAt:     time.Now(),
		ImageFileName: storageName,
	}
	input.Apply(product)

	if err := s.repo.Save(product); err != nil {
		return nil, err
	}

	s.publish(models.EventProductCreated, product)
	return product, nil
}

// GetByID returns the product with the given ID, or
// repositories.ErrNotFound when it does not exist.
func (s *CatalogService) GetByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Update overwrites the mutable fields of an existing product with the
// input's values and persists it. When a replacement image is supplied
// its storage failure is logged and the rest of the update still
// commits; the superseded image file is left in place.
func (s *CatalogService) Update(id uint, input models.ProductInput, image *Upload) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	input.Apply(product)

	if image != nil {
		storageName, err := s.images.Save(image.Filename, image.Content)
		if err != nil {
			log.Printf("Error storing replacement image for product %d: %v", id, err)
		} else {
			product.ImageFileName = storageName
		}
	}

	if err := s.repo.Save(product); err != nil {
		return nil, err
	}

	s.publish(models.EventProductUpdated, product)
	return product, nil
}

// Delete removes a product record and, best-effort, its image file.
// An image deletion failure is logged and does not block removing the
// record. Returns repositories.ErrNotFound when the ID is unknown.
func (s *CatalogService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if product.ImageFileName != "" {
		if err := s.images.Remove(product.ImageFileName); err != nil {
			log.Printf("Error deleting image file %s: %v", product.ImageFileName, err)
		}
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.publish(models.EventProductDeleted, product)
	return nil
}

// List returns one page of products matching the filter, ordered by ID
// descending.
func (s *CatalogService) List(filter models.ListFilter, page, size int) (*models.ProductPage, error) {
	return s.repo.List(filter, page, size)
}

// publish sends a catalog event, best-effort. A publish failure is
// logged and never fails the calling operation.
func (s *CatalogService) publish(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}

	event := models.ProductEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		ProductID:  product.ID,
		Name:       product.Name,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		log.Printf("Error publishing %s event for product %d: %v", eventType, product.ID, err)
	}
}
