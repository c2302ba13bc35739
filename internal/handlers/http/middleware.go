package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	userIDHeader = "X-User-ID"
	userIDLocal  = "user_id"
)

// requireUser reads the identity the gateway attached to the request
func requireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(userIDHeader)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
				Error:   codeUnauthenticated,
				Message: "missing X-User-ID, requests must come through the gateway",
			})
		}

		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) string {
	userID, _ := c.Locals(userIDLocal).(string)
	return userID
}

// observe records request latency by route template
func (h *Handler) observe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the error handler set the final status before it is recorded
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				return hErr
			}
		}

		status := c.Response().StatusCode()
		h.metrics.RequestDuration.
			WithLabelValues(c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())

		if status >= fiber.StatusInternalServerError {
			h.logger.Error().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", status).
				Msg("request failed")
		}

		return nil
	}
}
