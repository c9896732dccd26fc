package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/controllers/orders"
)

func OrdersRoute(app *fiber.App, auth fiber.Handler, ctrl *orders.Controller) {
	app.Post("/api/orders", auth, ctrl.PlaceOrder)
	app.Get("/api/orders", auth, ctrl.GetOrders)
	app.Get("/api/orders/:orderId", auth, ctrl.GetOrder)
}
