package http

import (
	"errors"
	"net/http"

	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/logging"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/gin-gonic/gin"
)

// writeError maps use case errors to a status code and a {message} body.
// notFound is the message used for usecase.ErrNotFound.
func writeError(c *gin.Context, err error, notFound string) {
	var (
		ve  *usecase.ValidationError
		pnf *usecase.ProductNotFoundError
		pm  *usecase.PriceMismatchError
	)
	switch {
	case errors.As(err, &pm):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":  pm.Error(),
			"expected": pm.Expected.StringFixed(2),
			"received": pm.Received.StringFixed(2),
		})
	case errors.As(err, &pnf):
		c.JSON(http.StatusBadRequest, gin.H{"message": pnf.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, usecase.ErrAccountExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, usecase.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication failed"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound})
	case errors.Is(err, usecase.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"message": "Duplicate request"})
	default:
		_ = c.Error(err)
		logging.From(c).Error("request failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}
