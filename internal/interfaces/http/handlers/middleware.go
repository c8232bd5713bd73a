package handlers

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/turtacn/apiecho/pkg/constants"
	"github.com/turtacn/apiecho/pkg/errors"
	"github.com/turtacn/apiecho/pkg/logger"
)

// CORSMiddleware handles cross-origin resource sharing. A "*" entry, or no
// entries at all, allows every origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", constants.HeaderRequestID},
		ExposeHeaders: []string{constants.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(allowedOrigins) == 0
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}

// LoggingMiddleware logs incoming requests.
func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		ctx := c.Request.Context()
		fields := logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": latency.Milliseconds(),
			"client_ip":  c.ClientIP(),
			"bytes_out":  c.Writer.Size(),
		}
		if c.Request.URL.Path == constants.EndpointMetrics {
			log.ForContext(ctx).Debug(ctx, "Request processed", fields)
			return
		}
		log.ForContext(ctx).Info(ctx, "Request processed", fields)
	}
}

// RecoveryMiddleware recovers from panics.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if r == http.ErrAbortHandler {
					panic(r)
				}
				ctx := c.Request.Context()
				log.ForContext(ctx).Error(ctx, "Panic recovered", goerrors.New("panic"), logger.Fields{
					"panic": fmt.Sprint(r),
					"path":  c.Request.URL.Path,
				})
				appErr := errors.ErrInternal("internal server error")
				c.AbortWithStatusJSON(appErr.HTTPStatus(), gin.H{
					"error":             appErr.Code(),
					"error_description": appErr.Description(),
				})
			}
		}()
		c.Next()
	}
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":             errors.CodeNotFound,
		"error_description": "The requested resource was not found",
	})
}

// MethodNotAllowed answers known routes called with an unsupported method.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"error":             "method_not_allowed",
		"error_description": "The method is not allowed for the requested URL",
	})
}
