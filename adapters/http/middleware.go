package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const (
	GinContextKeyIdentity = "identity"
)

// AuthMiddleware turns a Bearer token into the request's identity.
func AuthMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			log.Debug("Rejected token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeyIdentity, &portfolio.Identity{
			UID:         claims.UID,
			DisplayName: claims.DisplayName,
			Email:       claims.Email,
		})
		c.Next()
	}
}

// GetIdentityFromGinContext returns nil when the request is anonymous.
func GetIdentityFromGinContext(c *gin.Context) *portfolio.Identity {
	v, ok := c.Get(GinContextKeyIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*portfolio.Identity)
	return id
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
// Causes of server-side failures are logged, never sent to the client.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, fields...)
		} else {
			log.Warn("Request rejected", append(fields, zap.Error(err))...)
		}

		var verr *portfolio.ValidationError
		var appErr *apperror.AppError
		switch {
		case errors.As(err, &verr):
			c.JSON(status, gin.H{"error": apperror.ErrInvalidInput.Error(), "message": verr.Error(), "fields": verr.Fields})
		case errors.As(err, &appErr):
			body := appErr.ToJSON()
			if status < http.StatusInternalServerError && appErr.Details != "" {
				body["details"] = appErr.Details
			}
			c.JSON(status, body)
		default:
			c.JSON(status, gin.H{"error": apperror.ErrInternal.Error(), "message": "An internal server error occurred"})
		}
	}
}
