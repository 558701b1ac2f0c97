package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/internal/events"
	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/utils"
)

// ClaimsKey is the gin context key holding *utils.Claims after authentication.
const ClaimsKey = "claims"

// TokenVerifier is satisfied by service.AuthService.
type TokenVerifier interface {
	VerifyToken(token string) (*utils.Claims, error)
}

// AuthMiddleware requires "Authorization: Bearer <token>".
// No token: 401. Bad or expired token: 403.
func AuthMiddleware(verifier TokenVerifier, sink events.Sink) gin.HandlerFunc {
	return authenticate(verifier, sink, false)
}

// QueryTokenAuthMiddleware also accepts ?token=, for browser websocket
// clients that cannot set headers.
func QueryTokenAuthMiddleware(verifier TokenVerifier, sink events.Sink) gin.HandlerFunc {
	return authenticate(verifier, sink, true)
}

func authenticate(verifier TokenVerifier, sink events.Sink, allowQuery bool) gin.HandlerFunc {
	if sink == nil {
		sink = events.Discard
	}

	return func(c *gin.Context) {
		// 1. Extract token from "Bearer <token>"
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && allowQuery {
			token = c.Query("token")
		}

		// 2. Validate token
		claims, err := verifier.VerifyToken(token)
		if err != nil {
			ctx := c.Request.Context()
			e := events.New(ctx, events.TypeAuthFailed, events.EntityRequest, "", c.Request.Method+" "+c.FullPath())
			e.Detail = err.Error()
			sink.Record(ctx, e)

			if token == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"message": "Access token required",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		// 3. Add claims to context (handlers can access)
		c.Set(ClaimsKey, claims)
		c.Request = c.Request.WithContext(events.WithActor(c.Request.Context(), claims.Username))

		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// ClaimsFrom returns the claims stored by AuthMiddleware.
func ClaimsFrom(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Access token required",
			})
			return
		}

		if claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			return
		}

		c.Next()
	}
}
