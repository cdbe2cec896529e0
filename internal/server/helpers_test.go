package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- humanizeParam (pure function, no HTTP) ---

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"postId", "post ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

// --- parseCursorQuery ---

func cursorQueryFor(t *testing.T, target string) map[string]float64 {
	t.Helper()
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		q := parseCursorQuery(c)
		return c.JSON(fiber.Map{"cursor": q.Cursor, "limit": q.Limit})
	})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestParseCursorQuery_Defaults(t *testing.T) {
	body := cursorQueryFor(t, "/items")
	assert.Equal(t, float64(0), body["cursor"])
	assert.Equal(t, float64(9), body["limit"])
}

func TestParseCursorQuery_Custom(t *testing.T) {
	body := cursorQueryFor(t, "/items?cursor=42&limit=20")
	assert.Equal(t, float64(42), body["cursor"])
	assert.Equal(t, float64(20), body["limit"])
}

func TestParseCursorQuery_ClampsLimit(t *testing.T) {
	body := cursorQueryFor(t, "/items?limit=5000")
	assert.Equal(t, float64(100), body["limit"])

	body = cursorQueryFor(t, "/items?limit=-3")
	assert.Equal(t, float64(9), body["limit"])
}

func TestParseCursorQuery_NegativeCursorIsStart(t *testing.T) {
	body := cursorQueryFor(t, "/items?cursor=-7")
	assert.Equal(t, float64(0), body["cursor"])
}
