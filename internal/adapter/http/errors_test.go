package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriteErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "not found",
			err:      usecase.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"not found"}`,
		},
		{
			name:     "wrapped not found",
			err:      errors.Join(errors.New("order 9"), usecase.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"not found"}`,
		},
		{
			name:     "insufficient stock carries the product name",
			err:      &usecase.InsufficientStockError{ProductName: "Widget", Available: 2},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Insufficient stock for Widget. Available: 2"}`,
		},
		{
			name:     "stock limit",
			err:      &usecase.StockLimitError{Available: 3},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Only 3 items available in stock"}`,
		},
		{
			name:     "empty cart",
			err:      usecase.ErrCartEmpty,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Cart is empty"}`,
		},
		{
			name:     "invalid transition",
			err:      usecase.ErrInvalidTransition,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown errors stay opaque",
			err:      errors.New("mysql gone away"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal error"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(c, tc.err)

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, w.Body.String())
			}
		})
	}
}
