package middlewares

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// NewRequestLogger returns the request log interceptor. It records method,
// path and caller IP for every request, plus a redacted copy of non-empty
// JSON bodies; it never rejects or modifies a request.
func NewRequestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entry := log.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.OriginalURL(),
			"ip":     c.IP(),
		})

		if body := redactBody(c.Body()); body != "" {
			entry = entry.WithField("body", body)
		}

		entry.Info("request")
		return c.Next()
	}
}

// redactBody returns a printable copy of a JSON object body with the
// password field hidden. Non-object or empty bodies yield "".
func redactBody(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil || len(body) == 0 {
		return ""
	}

	if _, ok := body["password"]; ok {
		body["password"] = "[HIDDEN]"
	}

	redacted, err := json.Marshal(body)
	if err != nil {
		return ""
	}
	return string(redacted)
}
