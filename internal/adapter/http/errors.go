package http

import (
	"errors"
	"net/http"

	"github.com/Dpak2002/go-ecommerce-api/internal/logging"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// writeError maps usecase errors onto the HTTP taxonomy: not-found is
// 404, validation and business conflicts are 400 with the user-facing
// message, anything else is an opaque 500.
func writeError(c *gin.Context, err error) {
	var (
		stockErr *usecase.InsufficientStockError
		limitErr *usecase.StockLimitError
	)

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error()})
	case errors.As(err, &limitErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": limitErr.Error()})
	case errors.Is(err, usecase.ErrCartEmpty),
		errors.Is(err, usecase.ErrOutOfStock),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.From(c).Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
