package api

import (
	"errors"
	"net/http"

	"shareit/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const InternalErrorMessage = "internal server error"

// StatusFor maps a domain error kind to its HTTP status.
func StatusFor(err error) int {
	var de *models.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Kind {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindAlreadyExists:
		return http.StatusConflict
	case models.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg}. Unclassified errors are logged and
// answered with a generic message.
func respondError(c *gin.Context, logger *zerolog.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("request failed")
		WriteError(c, status, InternalErrorMessage)
		return
	}
	logger.Debug().Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg("request rejected")
	WriteError(c, status, err.Error())
}

// WriteError aborts the request with the {"error": message} body.
func WriteError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
