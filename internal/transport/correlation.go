package transport

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kursadbilgin/novu-go/internal/observability"
)

// CorrelationID takes the caller's X-Request-ID, or mints one, and carries it in the
// request context so outbound Novu calls log it too.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		correlationID := strings.TrimSpace(c.Get(fiber.HeaderXRequestID))
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		c.Set(fiber.HeaderXRequestID, correlationID)
		c.SetUserContext(observability.WithCorrelationID(c.UserContext(), correlationID))

		return c.Next()
	}
}
