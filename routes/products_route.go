package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/controllers/products"
)

func ProductsRoute(app *fiber.App, ctrl *products.Controller) {
	app.Get("/api/products", ctrl.GetProducts)
	// Registered before /:id so "meta" is not taken for a product id.
	app.Get("/api/products/meta/categories", ctrl.GetCategories)
	app.Get("/api/products/:id", ctrl.GetProduct)
	app.Post("/api/products", ctrl.CreateProduct)
	app.Put("/api/products/:id", ctrl.UpdateProduct)
	app.Delete("/api/products/:id", ctrl.DeleteProduct)
}
