package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
)

// Context keys and headers
const (
	ClaimsKey       = "claims"
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID tags every request with an id, reusing the caller's when present
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx.Set(RequestIDKey, id)
		ctx.Header(RequestIDHeader, id)
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// AuthRequired rejects requests without a valid bearer token
func AuthRequired(userService users.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "missing bearer token"})
			return
		}
		claims, err := userService.Authenticate(ctx, token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid or expired token"})
			return
		}
		ctx.Set(ClaimsKey, claims)
		ctx.Next()
	}
}

// OptionalAuth attaches the claims of a valid bearer token and lets anonymous requests through
func OptionalAuth(userService users.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := bearerToken(ctx); token != "" {
			if claims, err := userService.Authenticate(ctx, token); err == nil {
				ctx.Set(ClaimsKey, claims)
			}
		}
		ctx.Next()
	}
}

// RequireAdmin must run after AuthRequired
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := currentClaims(ctx)
		if !ok || claims.Role != users.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "admin role required"})
			return
		}
		ctx.Next()
	}
}

func currentClaims(ctx *gin.Context) (*users.Claims, bool) {
	v, ok := ctx.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*users.Claims)
	return claims, ok
}

// currentUserID is only valid behind AuthRequired
func currentUserID(ctx *gin.Context) uint {
	claims, ok := currentClaims(ctx)
	if !ok {
		return 0
	}
	return claims.UserID
}
