package products

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/apperrors"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/models"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/stores"
)

const (
	defaultLimit = 12
	maxLimit     = 100
)

// ProductStore is the slice of the product store the handlers consume.
type ProductStore interface {
	Find(ctx context.Context, f stores.ProductFilter) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByName(ctx context.Context, name string, exclude primitive.ObjectID) (*models.Product, error)
	Insert(ctx context.Context, product models.Product) (models.Product, error)
	Replace(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Categories(ctx context.Context) ([]string, error)
}

type Controller struct {
	products ProductStore
}

func NewController(products ProductStore) *Controller {
	return &Controller{products: products}
}

// GetProducts lists the catalog with optional category/search filters and
// pagination.
func (ctrl *Controller) GetProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(c.Query("limit"), 10, 64)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := stores.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Skip:     (page - 1) * limit,
		Limit:    limit,
	}

	products, total, err := ctrl.products.Find(ctx, filter)
	if err != nil {
		return err
	}

	totalPages := (total + limit - 1) / limit

	return c.JSON(fiber.Map{
		"products":   products,
		"total":      total,
		"page":       page,
		"totalPages": totalPages,
		"limit":      limit,
	})
}

// GetProduct returns a single product by id.
func (ctrl *Controller) GetProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return apperrors.NewNotFound("Product not found")
	}

	product, err := ctrl.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperrors.NewNotFound("Product not found")
	}

	return c.JSON(product)
}

type createProductRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Image       *string  `json:"image"`
}

// CreateProduct validates and inserts a new product. Names are unique after
// trimming.
func (ctrl *Controller) CreateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("Invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)
	description := strings.TrimSpace(req.Description)

	if name == "" || category == "" || description == "" || req.Price == nil {
		return apperrors.NewValidation(
			"Missing required fields: name, category, price, and description are required")
	}
	if *req.Price < 0 {
		return apperrors.NewValidation("Price must be a positive number")
	}

	existing, err := ctrl.products.FindByName(ctx, name, primitive.NilObjectID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewValidation("Product with this name already exists")
	}

	product := models.Product{
		Name:        name,
		Category:    category,
		Price:       *req.Price,
		Description: description,
		Image:       trimImage(req.Image),
	}

	created, err := ctrl.products.Insert(ctx, product)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": created,
	})
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

// UpdateProduct applies a partial update; absent fields stay untouched. A
// name change re-checks uniqueness against everyone else.
func (ctrl *Controller) UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return apperrors.NewNotFound("Product not found")
	}

	product, err := ctrl.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperrors.NewNotFound("Product not found")
	}

	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("Invalid request body")
	}

	if req.Price != nil && *req.Price < 0 {
		return apperrors.NewValidation("Price must be a positive number")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != "" && name != product.Name {
			existing, err := ctrl.products.FindByName(ctx, name, product.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				return apperrors.NewValidation("Another product with this name already exists")
			}
			product.Name = name
		}
	}
	if req.Category != nil {
		if category := strings.TrimSpace(*req.Category); category != "" {
			product.Category = category
		}
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Description != nil {
		if description := strings.TrimSpace(*req.Description); description != "" {
			product.Description = description
		}
	}
	if req.Image != nil {
		product.Image = trimImage(req.Image)
	}

	updated, err := ctrl.products.Replace(ctx, *product)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": updated,
	})
}

// DeleteProduct removes a product and echoes the deleted record.
func (ctrl *Controller) DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return apperrors.NewNotFound("Product not found")
	}

	product, err := ctrl.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperrors.NewNotFound("Product not found")
	}

	if err := ctrl.products.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
		"product": product,
	})
}

// GetCategories enumerates the distinct categories, sorted.
func (ctrl *Controller) GetCategories(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	categories, err := ctrl.products.Categories(ctx)
	if err != nil {
		return err
	}
	sort.Strings(categories)

	return c.JSON(fiber.Map{"categories": categories})
}

// trimImage normalizes an optional image URL: whitespace-only or absent
// becomes null.
func trimImage(image *string) *string {
	if image == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*image)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
