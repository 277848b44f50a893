package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/godigitorw/macss/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestContext(t *testing.T) {
	h := NewSubmissionHandler(nil)
	app := fiber.New()

	app.Get("/ctx", func(c fiber.Ctx) error {
		ctx, cancel := h.createRequestContext(c, "/ctx")

		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(30*time.Second), deadline, 5*time.Second)

		assert.Equal(t, "req-42", ctx.Value(utils.RequestIDKey))
		assert.Equal(t, "/ctx", ctx.Value(utils.EndpointKey))

		// Releasing the timer must tear the context down immediately
		cancel()
		select {
		case <-ctx.Done():
		default:
			t.Error("context still live after cancel")
		}

		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/ctx", nil)
	req.Header.Set("X-Request-ID", "req-42")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
