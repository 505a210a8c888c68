package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"

	"autoshop/internal/lifecycle"
)

// callerFrom builds the engine's explicit caller from the JWT claims the auth
// middleware stored on the context.
func callerFrom(c *gin.Context) lifecycle.Caller {
	return lifecycle.Caller{
		ID:   c.MustGet("user_id").(string),
		Role: c.MustGet("role").(string),
	}
}

// respondError maps engine errors onto the API's status-code discipline:
// 400 validation/conflict, 403 capability, 404 absent-or-not-visible,
// 500 everything else (logged, never leaked).
func respondError(c *gin.Context, err error) {
	var validationErr *lifecycle.ValidationError
	var conflictErr *lifecycle.ConflictError
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, lifecycle.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Issues})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": conflictErr.Message})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, so duplicate keys surface as domain conflicts instead of raw
// database errors.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
