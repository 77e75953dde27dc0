package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stylmou/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 50, 0},
		{"?limit=10&offset=20", 10, 20},
		{"?limit=0", 0, 0},
		{"?limit=-5&offset=-1", 50, 0},
		{"?limit=500", maxPaginationLimit, 0},
		{"?limit=abc", 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New()
			var got Pagination
			app.Get("/", func(c *fiber.Ctx) error {
				got = parsePagination(c, 50)
				return nil
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil), -1)
			require.NoError(t, err)
			_ = resp.Body.Close()

			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-03-01T12:00:00Z", "2024-03-01 12:00:00", "2024-03-01T12:00:00"} {
		got, err := parseTimestamp("created_at", in)
		require.NoError(t, err, in)
		require.NotNil(t, got)
		assert.True(t, want.Equal(*got), in)
	}

	day, err := parseTimestamp("expiring_on", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, day.Day())

	empty, err := parseTimestamp("created_at", "  ")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = parseTimestamp("created_at", "03/01/2024")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
	assert.Equal(t, "created_at must be a date or date-time.", appErr.Message)
}

func TestFail_MapsErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", models.NewValidationError("bad"), fiber.StatusBadRequest, models.ErrCodeValidation},
		{"not found", models.NewNotFoundError("Post", 3), fiber.StatusNotFound, models.ErrCodeNotFound},
		{"unauthorized", models.NewUnauthorizedError("Invalid credentials"), fiber.StatusUnauthorized, models.ErrCodeUnauthorized},
		{"operation", models.NewOperationError(errors.New("db down")), fiber.StatusInternalServerError, models.ErrCodeOperationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return fail(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var body models.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestRespond_Envelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return respond(c, "ok", fiber.Map{"id": 1}) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(200), body["code"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, map[string]interface{}{"id": float64(1)}, body["data"])
}
