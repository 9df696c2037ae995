package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id := uuid.New()

	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/"+id.String(), nil)
		req.SetPathValue("id", id.String())

		got, err := ParseID(req, "id")

		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("Malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/abc", nil)
		req.SetPathValue("id", "abc")

		_, err := ParseID(req, "id")

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := ParseID(httptest.NewRequest(http.MethodGet, "/cart/", nil), "item_id")

		assert.Error(t, err)
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"", DefaultPage, DefaultPageSize},
		{"?page=3&pageSize=25", 3, 25},
		{"?page=-1&pageSize=0", DefaultPage, DefaultPageSize},
		{"?page=x&pageSize=1000", DefaultPage, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			page, pageSize := ParsePagination(httptest.NewRequest(http.MethodGet, "/products"+tt.query, nil))

			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestParseAndValidate(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	validate := validator.New()

	t.Run("Valid", func(t *testing.T) {
		var dest payload
		rr := httptest.NewRecorder()

		ok := ParseAndValidate(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"lamp"}`)), rr, &dest, validate)

		assert.True(t, ok)
		assert.Equal(t, "lamp", dest.Name)
	})

	t.Run("Empty Body", func(t *testing.T) {
		var dest payload
		rr := httptest.NewRecorder()

		ok := ParseAndValidate(httptest.NewRequest(http.MethodPost, "/", nil), rr, &dest, validate)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		var dest payload
		rr := httptest.NewRecorder()

		ok := ParseAndValidate(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`)), rr, &dest, validate)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "VALIDATION_ERROR")
	})
}
