package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/configs"
)

// NewCORS returns the cross-origin interceptor. Requests without an Origin
// header bypass the middleware entirely. Listed origins are always allowed;
// outside production any localhost origin passes too.
func NewCORS(cfg *configs.Config) fiber.Handler {
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	return cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return !cfg.IsProduction() && strings.Contains(origin, "localhost")
		},
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
	})
}
