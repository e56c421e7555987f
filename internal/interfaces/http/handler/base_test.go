package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/interfaces/http/dto"
	"github.com/dentalcalc/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setJWTContext simulates an authenticated request by setting the context
// keys the JWT middleware would set.
func setJWTContext(c *gin.Context, clinicID, userID uuid.UUID) {
	c.Set(middleware.JWTClinicIDKey, clinicID.String())
	c.Set(middleware.JWTUserIDKey, userID.String())
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(c *gin.Context)
		expected string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-request-id")
			},
			expected: "ctx-request-id",
		},
		{
			name: "from header",
			setup: func(c *gin.Context) {
				c.Request.Header.Set(RequestIDKey, "header-request-id")
			},
			expected: "header-request-id",
		},
		{
			name: "context wins over header",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-request-id")
				c.Request.Header.Set(RequestIDKey, "header-request-id")
			},
			expected: "ctx-request-id",
		},
		{
			name:     "missing",
			setup:    func(c *gin.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t)
			tt.setup(c)
			assert.Equal(t, tt.expected, getRequestID(c))
		})
	}
}

func TestGetClinicID(t *testing.T) {
	t.Run("returns clinic ID from JWT context", func(t *testing.T) {
		c, _ := newTestContext(t)
		clinicID := uuid.New()
		setJWTContext(c, clinicID, uuid.New())

		got, err := getClinicID(c)
		require.NoError(t, err)
		assert.Equal(t, clinicID, got)
	})

	t.Run("fails without JWT context", func(t *testing.T) {
		c, _ := newTestContext(t)

		_, err := getClinicID(c)
		assert.Error(t, err)
	})

	t.Run("fails on malformed clinic ID", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set(middleware.JWTClinicIDKey, "not-a-uuid")

		_, err := getClinicID(c)
		assert.Error(t, err)
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("returns user ID from JWT context", func(t *testing.T) {
		c, _ := newTestContext(t)
		userID := uuid.New()
		setJWTContext(c, uuid.New(), userID)

		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("fails without JWT context", func(t *testing.T) {
		c, _ := newTestContext(t)

		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestBindListFilter(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		c, _ := newTestContext(t)

		filter, err := bindListFilter(c)
		require.NoError(t, err)
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 50, filter.PageSize)
		assert.Equal(t, "created_at", filter.OrderBy)
	})

	t.Run("honors query params", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/?page=3&page_size=10&search=rent", nil)

		filter, err := bindListFilter(c)
		require.NoError(t, err)
		assert.Equal(t, 3, filter.Page)
		assert.Equal(t, 10, filter.PageSize)
		assert.Equal(t, "rent", filter.Search)
	})

	t.Run("rejects out-of-range page size", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/?page_size=1000", nil)

		_, err := bindListFilter(c)
		assert.Error(t, err)
	})
}

func TestHandleError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("maps domain not found to 404", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, shared.NewDomainError("NOT_FOUND", "fixed cost not found"))

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("maps business rule violations to 422", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, shared.NewDomainError("INVALID_LIFE_YEARS", "life years must be at least 1"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("wrapped domain errors still map", func(t *testing.T) {
		c, w := newTestContext(t)
		wrapped := errors.Join(errors.New("loading settings"), shared.NewDomainError("ALREADY_EXISTS", "slug taken"))
		h.HandleError(c, wrapped)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown errors become 500", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, nil)

		assert.Empty(t, w.Body.String())
	})
}
