package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/controllers/cart"
)

func CartRoutes(app *fiber.App, auth fiber.Handler, ctrl *cart.Controller) {
	app.Get("/api/cart", auth, ctrl.GetCart)
	app.Post("/api/cart", auth, ctrl.AddToCart)
	app.Put("/api/cart/:productId", auth, ctrl.UpdateCartItem)
	app.Delete("/api/cart/:productId", auth, ctrl.RemoveFromCart)
}
