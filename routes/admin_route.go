package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/controllers/admin"
)

func AdminRoute(app *fiber.App, ctrl *admin.Controller) {
	app.Post("/api/admin/sample-products", ctrl.SeedSampleProducts)
	app.Post("/api/admin/bulk-products", ctrl.BulkInsertProducts)
	app.Delete("/api/admin/clear-all", ctrl.ClearAllProducts)
	app.Get("/api/admin/stats", ctrl.GetStats)
}
