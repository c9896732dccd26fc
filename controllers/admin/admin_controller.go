package admin

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/apperrors"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/models"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/stores"
)

// ProductStore is the bulk-load slice of the product store.
type ProductStore interface {
	FindByNames(ctx context.Context, names []string) ([]models.Product, error)
	InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error)
	DeleteAll(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (stores.CatalogStats, error)
}

type Controller struct {
	products ProductStore
}

func NewController(products ProductStore) *Controller {
	return &Controller{products: products}
}

func imageURL(url string) *string {
	return &url
}

// sampleProducts is the fixed starter catalog; seeding skips names that
// already exist.
var sampleProducts = []models.Product{
	{
		Name:        "Wireless Headphones",
		Category:    "Electronics",
		Price:       99.99,
		Description: "High-quality wireless headphones with noise cancellation",
		Image:       imageURL("https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop"),
	},
	{
		Name:        "Cotton T-Shirt",
		Category:    "Clothing",
		Price:       19.99,
		Description: "Comfortable 100% cotton t-shirt available in multiple colors",
		Image:       imageURL("https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=300&h=300&fit=crop"),
	},
	{
		Name:        "Coffee Maker",
		Category:    "Home",
		Price:       149.99,
		Description: "Programmable coffee maker with 12-cup capacity",
		Image:       imageURL("https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=300&h=300&fit=crop"),
	},
	{
		Name:        "Running Shoes",
		Category:    "Sports",
		Price:       89.99,
		Description: "Lightweight running shoes with excellent cushioning",
		Image:       imageURL("https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=300&h=300&fit=crop"),
	},
	{
		Name:        "Smartphone",
		Category:    "Electronics",
		Price:       699.99,
		Description: "Latest smartphone with advanced camera and long battery life",
		Image:       imageURL("https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300&h=300&fit=crop"),
	},
	{
		Name:        "Yoga Mat",
		Category:    "Sports",
		Price:       29.99,
		Description: "Non-slip yoga mat perfect for all types of yoga practice",
		Image:       imageURL("https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=300&h=300&fit=crop"),
	},
	{
		Name:        "Desk Lamp",
		Category:    "Home",
		Price:       39.99,
		Description: "Adjustable LED desk lamp with multiple brightness settings",
		Image:       imageURL("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=300&fit=crop"),
	},
	{
		Name:        "Jeans",
		Category:    "Clothing",
		Price:       59.99,
		Description: "Classic fit jeans made from premium denim",
		Image:       imageURL("https://images.unsplash.com/photo-1542272604-787c3835535d?w=300&h=300&fit=crop"),
	},
	{
		Name:        "Bluetooth Speaker",
		Category:    "Electronics",
		Price:       79.99,
		Description: "Portable Bluetooth speaker with 360-degree sound",
		Image:       imageURL("https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=300&h=300&fit=crop"),
	},
	{
		Name:        "Cooking Pan Set",
		Category:    "Home",
		Price:       129.99,
		Description: "Non-stick cooking pan set with 3 different sizes",
		Image:       imageURL("https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=300&h=300&fit=crop"),
	},
}

// SeedSampleProducts inserts the starter catalog, idempotent per name.
func (ctrl *Controller) SeedSampleProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	names := make([]string, len(sampleProducts))
	for i, p := range sampleProducts {
		names[i] = p.Name
	}

	existing, err := ctrl.products.FindByNames(ctx, names)
	if err != nil {
		return err
	}
	existingNames := make(map[string]bool, len(existing))
	for _, p := range existing {
		existingNames[p.Name] = true
	}

	toCreate := []models.Product{}
	for _, p := range sampleProducts {
		if !existingNames[p.Name] {
			toCreate = append(toCreate, p)
		}
	}

	if len(toCreate) == 0 {
		return c.JSON(fiber.Map{
			"message":       "All sample products already exist",
			"existingCount": len(existing),
			"createdCount":  0,
		})
	}

	created, err := ctrl.products.InsertMany(ctx, toCreate)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":         "Sample products created successfully",
		"existingCount":   len(existing),
		"createdCount":    len(created),
		"createdProducts": created,
	})
}

type bulkProductRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Image       *string  `json:"image"`
}

// BulkInsertProducts inserts an arbitrary batch. All entries are validated
// up front; any failure rejects the whole batch with one message per
// invalid entry. Valid batches skip names that already exist.
func (ctrl *Controller) BulkInsertProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var requests []bulkProductRequest
	if err := c.BodyParser(&requests); err != nil {
		return apperrors.NewValidation("Request body must be an array of products")
	}
	if len(requests) == 0 {
		return apperrors.NewValidation("Array cannot be empty")
	}

	errs := []string{}
	for i, p := range requests {
		if p.Name == "" || p.Category == "" || p.Price == nil || p.Description == "" {
			errs = append(errs, fmt.Sprintf(
				"Product at index %d: Missing required fields (name, category, price, description)", i))
		}
		if p.Price == nil || *p.Price < 0 {
			errs = append(errs, fmt.Sprintf(
				"Product at index %d: Price must be a positive number", i))
		}
	}
	if len(errs) > 0 {
		return apperrors.NewValidationList("Validation errors", errs)
	}

	names := make([]string, len(requests))
	for i, p := range requests {
		names[i] = p.Name
	}

	existing, err := ctrl.products.FindByNames(ctx, names)
	if err != nil {
		return err
	}
	skipped := []string{}
	existingNames := make(map[string]bool, len(existing))
	for _, p := range existing {
		existingNames[p.Name] = true
		skipped = append(skipped, p.Name)
	}

	toCreate := []models.Product{}
	for _, p := range requests {
		if existingNames[p.Name] {
			continue
		}
		toCreate = append(toCreate, models.Product{
			Name:        p.Name,
			Category:    p.Category,
			Price:       *p.Price,
			Description: p.Description,
			Image:       p.Image,
		})
	}

	if len(toCreate) == 0 {
		return c.JSON(fiber.Map{
			"message":         "All products already exist",
			"existingCount":   len(existing),
			"createdCount":    0,
			"skippedProducts": skipped,
		})
	}

	created, err := ctrl.products.InsertMany(ctx, toCreate)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":         "Products created successfully",
		"totalRequested":  len(requests),
		"existingCount":   len(existing),
		"createdCount":    len(created),
		"skippedProducts": skipped,
		"createdProducts": created,
	})
}

// ClearAllProducts wipes the catalog.
func (ctrl *Controller) ClearAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	deleted, err := ctrl.products.DeleteAll(ctx)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":      "All products cleared successfully",
		"deletedCount": deleted,
	})
}

// GetStats reports aggregate catalog statistics.
func (ctrl *Controller) GetStats(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	stats, err := ctrl.products.Stats(ctx)
	if err != nil {
		return err
	}

	categories := stats.Categories
	if categories == nil {
		categories = []string{}
	}
	sort.Strings(categories)

	return c.JSON(fiber.Map{
		"totalProducts":      stats.TotalProducts,
		"totalCategories":    len(categories),
		"categories":         categories,
		"productsWithImages": stats.ProductsWithImages,
		"averagePrice":       math.Round(stats.AveragePrice*100) / 100,
	})
}
