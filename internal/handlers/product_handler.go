package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"beststore/internal/models"
	"beststore/internal/repositories"
	"beststore/internal/services"
)

const listPath = "/products"

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/create", h.HandleShowCreate)
	productRoutes.Post("/create", h.HandleCreate)
	productRoutes.Get("/edit", h.HandleShowEdit)
	productRoutes.Post("/edit", h.HandleUpdate)
	productRoutes.Get("/delete", h.HandleDelete)
	productRoutes.Get("/detail", h.HandleDetail)
}

// HandleShowCreate returns an empty input for the create form. Views
// are rendered by the frontend; this endpoint only supplies the model.
func (h *ProductHandler) HandleShowCreate(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"productDto": models.ProductInput{},
	})
}

// HandleCreate creates a new product from a multipart form. The image
// file is required; without it the request fails validation before any
// storage is touched. An image storage failure aborts the operation and
// redirects to the listing without creating a record.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create product form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	errorMessages := h.validateInput(input)

	fileHeader, err := c.FormFile("imageFile")
	if err != nil || fileHeader.Size == 0 {
		if errorMessages == nil {
			errorMessages = make(map[string]string)
		}
		errorMessages["imageFile"] = "The image file is required"
	}

	if len(errorMessages) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded image: %v", err)
		return c.Redirect(listPath, fiber.StatusSeeOther)
	}
	defer file.Close()

	_, err = h.service.Create(input, services.Upload{Filename: fileHeader.Filename, Content: file})
	if err != nil {
		if errors.Is(err, services.ErrImageStore) {
			log.Printf("Error storing product image: %v", err)
			return c.Redirect(listPath, fiber.StatusSeeOther)
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	return c.Redirect(listPath, fiber.StatusSeeOther)
}

// HandleShowEdit returns an existing product together with an input
// prefilled from it. A missing product is logged and redirects to the
// listing.
func (h *ProductHandler) HandleShowEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		log.Printf("Error parsing edit request: %v", err)
		return c.Redirect(listPath, fiber.StatusFound)
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		log.Printf("Product not found with ID %d: %v", id, err)
		return c.Redirect(listPath, fiber.StatusFound)
	}

	return c.JSON(fiber.Map{
		"product":    product,
		"productDto": models.InputFromProduct(product),
	})
}

// HandleUpdate applies a multipart form to an existing product.
// Validation runs before the lookup; a missing product is logged and
// redirects with no change. A replacement image is optional and its
// storage failure does not block the rest of the update.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update product form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if errorMessages := h.validateInput(input); len(errorMessages) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	id, err := parseID(c)
	if err != nil {
		log.Printf("Error parsing update request: %v", err)
		return c.Redirect(listPath, fiber.StatusSeeOther)
	}

	var upload *services.Upload
	if fileHeader, fileErr := c.FormFile("imageFile"); fileErr == nil && fileHeader.Size > 0 {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			log.Printf("Error opening replacement image: %v", openErr)
		} else {
			defer file.Close()
			upload = &services.Upload{Filename: fileHeader.Filename, Content: file}
		}
	}

	if _, err := h.service.Update(id, input, upload); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Product not found with ID %d", id)
			return c.Redirect(listPath, fiber.StatusSeeOther)
		}
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}

	return c.Redirect(listPath, fiber.StatusSeeOther)
}

// HandleDelete removes a product and its image. Failures are logged
// server-side only; the caller is always redirected to the listing.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		log.Printf("Error parsing delete request: %v", err)
		return c.Redirect(listPath, fiber.StatusFound)
	}

	if err := h.service.Delete(id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
	}

	return c.Redirect(listPath, fiber.StatusFound)
}

// HandleDetail returns the full product record. A missing product is
// logged and redirects to the listing.
func (h *ProductHandler) HandleDetail(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		log.Printf("Error parsing detail request: %v", err)
		return c.Redirect(listPath, fiber.StatusFound)
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		log.Printf("Product not found with ID %d: %v", id, err)
		return c.Redirect(listPath, fiber.StatusFound)
	}

	return c.JSON(fiber.Map{
		"product": product,
	})
}

// HandleList returns one page of products with page metadata. Optional
// name/minPrice/maxPrice filters combine with AND; page defaults to 0
// and size to 10.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	filter := models.ListFilter{Name: c.Query("name")}

	if v := c.Query("minPrice"); v != "" {
		minPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("Invalid minPrice %q", v),
			})
		}
		filter.MinPrice = &minPrice
	}
	if v := c.Query("maxPrice"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("Invalid maxPrice %q", v),
			})
		}
		filter.MaxPrice = &maxPrice
	}

	page := c.QueryInt("page", 0)
	if page < 0 {
		page = 0
	}
	size := c.QueryInt("size", 10)
	if size <= 0 {
		size = 10
	}

	result, err := h.service.List(filter, page, size)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"products":    result.Items,
		"currentPage": result.Page,
		"totalPages":  result.TotalPages,
		"totalItems":  result.TotalItems,
		"size":        result.Size,
	})
}

// validateInput returns a field→message map of validation failures, or
// nil when the input is valid.
func (h *ProductHandler) validateInput(input models.ProductInput) map[string]string {
	err := h.validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}

func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Query("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	return uint(id), nil
}
