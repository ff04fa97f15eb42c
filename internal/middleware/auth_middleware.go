package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/pkg/apperrors"
	"github.com/yigit/uniadvisor/internal/pkg/auth"
)

// userIDKey is the gin context key holding the authenticated identity
const userIDKey = "userID"

// AuthMiddleware guards routes with a bearer token
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// Browsers cannot set headers on a websocket upgrade
		if authHeader == "" && isWebSocketUpgrade(c.Request) {
			if queryToken := c.Query("token"); queryToken != "" {
				authHeader = "Bearer " + queryToken
			}
		}

		claims, err := m.jwtService.ValidateHeader(authHeader)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	errorCode := dto.ErrorCodeInvalidToken
	errorMessage := "Authentication failed"
	errorDetails := "Invalid token"

	switch {
	case errors.Is(err, apperrors.ErrTokenMissing):
		errorCode = dto.ErrorCodeUnauthorized
		errorMessage = "Authentication required"
		errorDetails = "Authorization header missing"
	case errors.Is(err, apperrors.ErrTokenExpired):
		errorCode = dto.ErrorCodeExpiredToken
		errorDetails = "Token has expired"
	case errors.Is(err, apperrors.ErrInvalidFormat):
		errorDetails = "Invalid token format"
	}

	errorDetail := dto.NewErrorDetail(errorCode, errorMessage).WithDetails(errorDetails)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

func isWebSocketUpgrade(r *http.Request) bool {
	return r.Header.Get("Upgrade") == "websocket"
}

// GetUserID returns the identity stored by JWTAuth
func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}
