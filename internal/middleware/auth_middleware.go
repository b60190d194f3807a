package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/mentorium/internal/app/auth"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/auth"
	"github.com/yigit/mentorium/internal/pkg/helpers"
	"github.com/yigit/mentorium/internal/pkg/logger"
)

const contextKeyEmail = "email"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	verifier     auth.TokenVerifier
	authzService *appauth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier auth.TokenVerifier, authzService *appauth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:     verifier,
		authzService: authzService,
	}
}

// TokenAuth verifies the bearer token and stores the caller's email in the context.
func (m *AuthMiddleware) TokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		token, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		identity, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Token rejected")
			HandleAPIError(c, err)
			return
		}

		c.Set(contextKeyEmail, helpers.NormalizeEmail(identity.Email))
		c.Next()
	}
}

// RoleRequired lets the request through only when the stored user holds role.
// Must run after TokenAuth.
func (m *AuthMiddleware) RoleRequired(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := GetUserEmail(c)
		if !ok {
			HandleAPIError(c, apperrors.ErrUnauthorized)
			return
		}

		if err := m.authzService.ValidateRole(c.Request.Context(), email, role); err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Next()
	}
}

// GetUserEmail returns the email stored by TokenAuth.
func GetUserEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get(contextKeyEmail)
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok && email != ""
}
