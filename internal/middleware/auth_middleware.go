package middleware

import (
	"net/http"
	"strings"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/errors"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/redis"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for the authenticated session
const (
	GSTINKey = "gstin"
	EmailKey = "email"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the Bearer token and puts the session's GSTIN and
// email into the request context. Revoked tokens are rejected when a denylist
// backend is connected.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization format")
			c.Abort()
			return
		}
		token := parts[1]

		if redis.GetClient() != nil {
			denied, err := redis.IsTokenDenylisted(c.Request.Context(), token)
			if err != nil {
				log.Error("Denylist lookup failed", err, map[string]interface{}{
					"path": c.Request.URL.Path,
				})
			} else if denied {
				log.Warn("Rejected revoked token", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "Token has been revoked")
				c.Abort()
				return
			}
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		c.Set(GSTINKey, claims.GSTIN)
		c.Set(EmailKey, claims.Email)

		log.Debug("Vendor authenticated successfully", map[string]interface{}{
			"gstin": claims.GSTIN,
		})

		c.Next()
	}
}

// GetGSTIN extracts the authenticated GSTIN from context
func GetGSTIN(c *gin.Context) (string, bool) {
	gstin, exists := c.Get(GSTINKey)
	if !exists {
		return "", false
	}
	return gstin.(string), true
}

// GetEmail extracts the authenticated email from context
func GetEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(EmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}
