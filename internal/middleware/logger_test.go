package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"taskboard/pkg/apperr"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitLoggers()
	code := m.Run()
	logger.SyncLoggers()
	os.Exit(code)
}

func testApp(devMode bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorResponder(devMode)})
	app.Use(Recovery())
	return app
}

func TestErrorResponderApiError(t *testing.T) {
	app := testApp(false)
	app.Get("/fail", func(c *fiber.Ctx) error {
		return apperr.New(fiber.StatusConflict, "already exists", "email taken")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "already exists", body["message"])
	assert.Equal(t, []interface{}{"email taken"}, body["errors"])
	assert.NotContains(t, body, "stack")
}

func TestErrorResponderDefaultsTo500(t *testing.T) {
	app := testApp(false)
	app.Get("/fail", func(c *fiber.Ctx) error {
		return assert.AnError
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal Server Error", body["message"])
}

func TestErrorResponderDevModeIncludesStack(t *testing.T) {
	app := testApp(true)
	app.Get("/fail", func(c *fiber.Ctx) error {
		return apperr.New(fiber.StatusBadRequest, "bad input")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "stack")
}

func TestRecoveryHandlesPanic(t *testing.T) {
	app := testApp(false)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
