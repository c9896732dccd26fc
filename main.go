package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/configs"
	adminController "github.com/RKPROGRAMMING10K/ecommerce-backend/controllers/admin"
	cartController "github.com/RKPROGRAMMING10K/ecommerce-backend/controllers/cart"
	ordersController "github.com/RKPROGRAMMING10K/ecommerce-backend/controllers/orders"
	productsController "github.com/RKPROGRAMMING10K/ecommerce-backend/controllers/products"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/middlewares"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/routes"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/stores"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := configs.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := configs.ConnectDB(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	log.Info("Connected to MongoDB")

	productStore := stores.NewProductStore(db)
	cartStore := stores.NewCartStore(db)
	orderStore := stores.NewOrderStore(db)

	if err := productStore.EnsureIndexes(context.Background()); err != nil {
		log.WithError(err).Warn("Failed to create product indexes")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
	})

	app.Use(middlewares.NewCORS(cfg))
	app.Use(middlewares.NewRequestLogger(log))

	auth := middlewares.NewAuthMiddleware(cfg.JWTSecret)

	routes.HealthRoute(app)
	routes.ProductsRoute(app, productsController.NewController(productStore))
	routes.CartRoutes(app, auth, cartController.NewController(cartStore, productStore))
	routes.OrdersRoute(app, auth, ordersController.NewController(orderStore, cartStore, productStore))
	routes.AdminRoute(app, adminController.NewController(productStore))

	app.Use(middlewares.NotFoundHandler)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}

	if err := db.Disconnect(context.Background()); err != nil {
		log.WithError(err).Error("MongoDB disconnect failed")
	}
}
