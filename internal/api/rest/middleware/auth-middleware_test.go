package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victortedesco/inventory-management/internal/helper"
)

func newApp(auth helper.Auth) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(auth))
	app.Get("/whoami", func(ctx *fiber.Ctx) error {
		return ctx.SendString(helper.CurrentUserID(ctx))
	})
	return app
}

func body(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	status, who := body(t, newApp(helper.SetupAuth("")), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "anonymous", who)
}

func TestAuthMiddleware_Enabled(t *testing.T) {
	app := newApp(helper.SetupAuth("s3cret"))

	status, _ := body(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-9",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	status, who := body(t, app, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "u-9", who)
}
