package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/httpapi/service"
)

// respondError maps service errors onto HTTP status codes. Anything outside
// the known taxonomy is a persistence or infrastructure failure and surfaces
// as a 500 with the underlying error text.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrNoCopies):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
