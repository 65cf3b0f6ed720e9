package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pinkbears/internal/apperrors"
	"github.com/example/pinkbears/internal/models"
)

// ProductHandler manages the catalog: public reads plus admin CRUD.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts returns catalog entries, optionally filtered by category
// and a name/description search term.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	query := h.db.Model(&models.Product{})

	if category := c.Query("category"); category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return apperrors.Store(err, "failed to list products")
	}

	return c.JSON(products)
}

// GetProduct returns a single catalog entry.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("product not found")
		}
		return apperrors.Store(err, "failed to load product")
	}

	return c.JSON(product)
}

// ListProductsAdmin returns the catalog newest-first for the admin console.
func (h *ProductHandler) ListProductsAdmin(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.db.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return apperrors.Store(err, "failed to list products")
	}
	return c.JSON(products)
}

type productRequest struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
}

// CreateProduct adds a catalog entry.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Category == "" {
		return apperrors.Validationf("name and category are required")
	}

	product := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Description: req.Description,
		Featured:    req.Featured,
	}
	if err := h.db.Create(&product).Error; err != nil {
		return apperrors.Store(err, "failed to create product")
	}

	return c.JSON(fiber.Map{"message": "Product added successfully", "id": product.ID})
}

// UpdateProduct edits a catalog entry. Historical order snapshots are
// unaffected.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"price":       req.Price,
		"category":    req.Category,
		"image":       req.Image,
		"description": req.Description,
	}
	if err := h.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return apperrors.Store(err, "failed to update product")
	}

	return c.JSON(fiber.Map{"message": "Product updated successfully"})
}

// DeleteProduct removes a catalog entry.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.db.Delete(&models.Product{}, id).Error; err != nil {
		return apperrors.Store(err, "failed to delete product")
	}

	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
