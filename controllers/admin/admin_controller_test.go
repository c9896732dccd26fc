package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/controllers/admin"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/middlewares"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/models"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/routes"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/stores"
)

type fakeProductStore struct {
	products []models.Product
}

func (f *fakeProductStore) FindByNames(_ context.Context, names []string) ([]models.Product, error) {
	wanted := map[string]bool{}
	for _, n := range names {
		wanted[n] = true
	}
	found := []models.Product{}
	for _, p := range f.products {
		if wanted[p.Name] {
			found = append(found, p)
		}
	}
	return found, nil
}

func (f *fakeProductStore) InsertMany(_ context.Context, products []models.Product) ([]models.Product, error) {
	for i := range products {
		products[i].ID = primitive.NewObjectID()
	}
	f.products = append(f.products, products...)
	return products, nil
}

func (f *fakeProductStore) DeleteAll(_ context.Context) (int64, error) {
	deleted := int64(len(f.products))
	f.products = nil
	return deleted, nil
}

func (f *fakeProductStore) Stats(_ context.Context) (stores.CatalogStats, error) {
	stats := stores.CatalogStats{TotalProducts: int64(len(f.products))}
	seen := map[string]bool{}
	var priceSum float64
	for _, p := range f.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			stats.Categories = append(stats.Categories, p.Category)
		}
		if p.Image != nil {
			stats.ProductsWithImages++
		}
		priceSum += p.Price
	}
	if stats.TotalProducts > 0 {
		stats.AveragePrice = priceSum / float64(stats.TotalProducts)
	}
	return stats, nil
}

func newTestApp(store *fakeProductStore) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	routes.AdminRoute(app, admin.NewController(store))
	return app
}

func doRaw(t *testing.T, app *fiber.App, method, target string, raw []byte) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if raw != nil {
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(respBody) > 0 {
		require.NoError(t, json.Unmarshal(respBody, &decoded))
	}
	return resp, decoded
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return doRaw(t, app, method, target, raw)
}

func TestSeedSampleProductsIdempotent(t *testing.T) {
	store := &fakeProductStore{}
	app := newTestApp(store)

	resp, body := doRaw(t, app, http.MethodPost, "/api/admin/sample-products", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(0), body["existingCount"])
	assert.Equal(t, float64(10), body["createdCount"])
	assert.Len(t, store.products, 10)

	resp, body = doRaw(t, app, http.MethodPost, "/api/admin/sample-products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "All sample products already exist", body["message"])
	assert.Equal(t, float64(10), body["existingCount"])
	assert.Equal(t, float64(0), body["createdCount"])
	assert.Len(t, store.products, 10)
}

func bulkEntry(name string, price float64) fiber.Map {
	return fiber.Map{
		"name":        name,
		"category":    "Misc",
		"price":       price,
		"description": "description of " + name,
	}
}

func TestBulkInsertProducts(t *testing.T) {
	store := &fakeProductStore{}
	app := newTestApp(store)

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/bulk-products", []fiber.Map{
		bulkEntry("Notebook", 3.5),
		bulkEntry("Pen", 1.2),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(2), body["totalRequested"])
	assert.Equal(t, float64(0), body["existingCount"])
	assert.Equal(t, float64(2), body["createdCount"])
	assert.Len(t, store.products, 2)
}

func TestBulkInsertRejectsWholeBatchOnOneError(t *testing.T) {
	store := &fakeProductStore{}
	app := newTestApp(store)

	entries := []fiber.Map{
		bulkEntry("A", 1),
		bulkEntry("B", 2),
		bulkEntry("Broken", -3),
		bulkEntry("C", 4),
		bulkEntry("D", 5),
		bulkEntry("E", 6),
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/bulk-products", entries)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation errors", body["message"])

	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "index 2")
	assert.Contains(t, errs[0], "Price must be a positive number")

	// All-or-nothing: nothing was inserted.
	assert.Empty(t, store.products)
}

func TestBulkInsertMissingFields(t *testing.T) {
	app := newTestApp(&fakeProductStore{})

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/bulk-products", []fiber.Map{
		{"name": "No price or description", "category": "Misc"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errs := body["errors"].([]interface{})
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "index 0")
	assert.Contains(t, errs[0], "Missing required fields")
}

func TestBulkInsertSkipsExistingNames(t *testing.T) {
	store := &fakeProductStore{}
	app := newTestApp(store)

	doJSON(t, app, http.MethodPost, "/api/admin/bulk-products", []fiber.Map{bulkEntry("Notebook", 3.5)})

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/bulk-products", []fiber.Map{
		bulkEntry("Notebook", 3.5),
		bulkEntry("Pen", 1.2),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["existingCount"])
	assert.Equal(t, float64(1), body["createdCount"])
	assert.Equal(t, []interface{}{"Notebook"}, body["skippedProducts"])
	assert.Len(t, store.products, 2)
}

func TestBulkInsertBadBody(t *testing.T) {
	app := newTestApp(&fakeProductStore{})

	resp, body := doRaw(t, app, http.MethodPost, "/api/admin/bulk-products", []byte(`{"name":"x"}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Request body must be an array of products", body["message"])

	resp, body = doRaw(t, app, http.MethodPost, "/api/admin/bulk-products", []byte(`[]`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Array cannot be empty", body["message"])
}

func TestClearAllProducts(t *testing.T) {
	store := &fakeProductStore{}
	app := newTestApp(store)

	doRaw(t, app, http.MethodPost, "/api/admin/sample-products", nil)

	resp, body := doRaw(t, app, http.MethodDelete, "/api/admin/clear-all", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(10), body["deletedCount"])
	assert.Empty(t, store.products)
}

func TestStatsEmptyCatalog(t *testing.T) {
	app := newTestApp(&fakeProductStore{})

	resp, body := doRaw(t, app, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["totalProducts"])
	assert.Equal(t, float64(0), body["totalCategories"])
	assert.Equal(t, []interface{}{}, body["categories"])
	assert.Equal(t, float64(0), body["productsWithImages"])
	assert.Equal(t, float64(0), body["averagePrice"])
}

func TestStatsAggregates(t *testing.T) {
	image := "https://example.com/p.jpg"
	store := &fakeProductStore{products: []models.Product{
		{Name: "A", Category: "Home", Price: 10, Image: &image},
		{Name: "B", Category: "Electronics", Price: 20.555},
	}}
	app := newTestApp(store)

	resp, body := doRaw(t, app, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["totalProducts"])
	assert.Equal(t, float64(2), body["totalCategories"])
	assert.Equal(t, []interface{}{"Electronics", "Home"}, body["categories"])
	assert.Equal(t, float64(1), body["productsWithImages"])
	// (10 + 20.555) / 2 = 15.2775, rounded to 2 decimals.
	assert.Equal(t, 15.28, body["averagePrice"])
}
