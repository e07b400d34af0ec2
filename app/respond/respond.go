// Package respond writes the JSON error bodies shared by every handler
package respond

import (
	"errors"
	"net/http"

	"bitwise74/social-api/internal/service"
	"bitwise74/social-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func status(k service.Kind) int {
	switch k {
	case service.KindValidation, service.KindService:
		return http.StatusBadRequest
	case service.KindAuth:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error maps a service error to its status code. Internal failures are
// logged and hidden from the caller.
func Error(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	var se *service.Error
	if !errors.As(err, &se) || se.Kind == service.KindInternal {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Request failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if se.Kind == service.KindService {
		zap.L().Warn("Collaborator failed", zap.Error(err), zap.String("requestID", requestID))
	} else {
		zap.L().Debug("Request rejected", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(status(se.Kind), gin.H{
		"error":     se.Message,
		"requestID": requestID,
	})
}

// Bind decodes the JSON body into v and answers the request itself when
// that fails. It returns false if the handler should stop.
func Bind(c *gin.Context, v any) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}

	requestID := c.GetString("requestID")

	if middleware.IsBodyTooLarge(err) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":     "Request body size exceeds limit",
			"requestID": requestID,
		})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error":     "Invalid request body",
		"requestID": requestID,
	})

	zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
	return false
}

func Message(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"message": msg})
}
