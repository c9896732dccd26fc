package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/responses"
)

// NewAuthMiddleware returns the bearer-token interceptor. It resolves the
// caller's identity from the JWT claims and stores it in Locals for the
// cart and order handlers; anything invalid short-circuits with 401.
func NewAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.ErrorResponse{
				Message: "No auth token, access denied",
			})
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.ErrorResponse{
				Message: "Invalid authorization header format",
			})
		}

		claims := &jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(bearerToken[1], claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.ErrorResponse{
				Message: "Token verification failed, access denied",
			})
		}

		userId, ok := (*claims)["id"].(string)
		if !ok || userId == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.ErrorResponse{
				Message: "User ID not found in token",
			})
		}
		c.Locals("userId", userId)

		if name, ok := (*claims)["name"].(string); ok {
			c.Locals("userName", name)
		}

		return c.Next()
	}
}
