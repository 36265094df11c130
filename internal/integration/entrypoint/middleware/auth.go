// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
	"github.com/automation-insights/backend/internal/integration/entrypoint/dto"
)

// ownerIDKey holds the owner whose dashboard preferences a request reads and writes.
const ownerIDKey = "owner_id"

// AuthMiddleware scopes every dashboard request to the owner named by its
// bearer token.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that rejects requests
// without a valid token and stores the token's owner in the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			reject(c, err)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			reject(c, err)
			return
		}
		if claims.UserID == uuid.Nil {
			reject(c, domainerror.ErrNoOwner)
			return
		}

		SetOwnerID(c, claims.UserID)
		c.Next()
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domainerror.ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", domainerror.ErrInvalidToken
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", domainerror.ErrMissingToken
	}
	return token, nil
}

func reject(c *gin.Context, err error) {
	code := domainerror.ErrCodeInvalidToken
	message := domainerror.ErrInvalidToken.Error()
	switch {
	case errors.Is(err, domainerror.ErrMissingToken):
		code, message = domainerror.ErrCodeMissingToken, domainerror.ErrMissingToken.Error()
	case errors.Is(err, domainerror.ErrExpiredToken):
		code, message = domainerror.ErrCodeExpiredToken, domainerror.ErrExpiredToken.Error()
	case errors.Is(err, domainerror.ErrNoOwner):
		message = domainerror.ErrNoOwner.Error()
	}

	slog.Debug("Rejected dashboard request",
		"code", code,
		"path", c.FullPath(),
		"error", err,
	)

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// SetOwnerID scopes the request to an owner.
func SetOwnerID(c *gin.Context, ownerID uuid.UUID) {
	c.Set(ownerIDKey, ownerID)
}

// OwnerIDFromContext returns the owner the request is scoped to.
func OwnerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ownerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	ownerID, ok := value.(uuid.UUID)
	return ownerID, ok && ownerID != uuid.Nil
}
