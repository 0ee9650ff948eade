package auth

import (
	"net/http"
	"strings"
	"time"

	apperrors "order-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SecurityAuditor records authentication failures. Implementations must be
// best-effort: a failed write never influences the gate decision.
type SecurityAuditor interface {
	AuthFailure(c echo.Context, reason, message string)
}

type Middleware struct {
	jwtService        *JWTService
	bearerValidator   *BearerValidator
	auditor           SecurityAuditor
	logSecurityEvents bool
}

func NewMiddleware(jwtService *JWTService, bearerValidator *BearerValidator, auditor SecurityAuditor, logSecurityEvents bool) *Middleware {
	return &Middleware{
		jwtService:        jwtService,
		bearerValidator:   bearerValidator,
		auditor:           auditor,
		logSecurityEvents: logSecurityEvents,
	}
}

// RequireBearer gates requests behind the statically configured token set.
// Exempt paths pass through untouched, even without a header. Every failure
// short-circuits with a 401 and the fixed reason-code body.
func (m *Middleware) RequireBearer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result := m.bearerValidator.Authenticate(
				c.Request().Header.Get(headerAuthorization),
				c.Request().URL.Path,
			)

			if result.Allowed {
				if result.Exempted {
					c.Set(ContextKeyExempted, true)
				} else {
					c.Set(ContextKeyAuthType, AuthTypeBearer)
				}
				return next(c)
			}

			if m.logSecurityEvents && m.auditor != nil {
				m.auditor.AuthFailure(c, string(result.Reason), result.Message)
			}

			return respondAuthFailure(c, result)
		}
	}
}

func (m *Middleware) RequireJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return respondError(c, http.StatusUnauthorized, string(ReasonMissingAuthorization))
			}

			claims, err := m.jwtService.Verify(token)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyEmail, claims.Email)
			c.Set(ContextKeyAuthType, AuthTypeJWT)

			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	parsed := ParseAuthorizationHeader(c.Request().Header.Get(headerAuthorization))
	if parsed == nil || parsed.Scheme != bearerScheme {
		return ""
	}

	return parsed.Token
}

func respondAuthFailure(c echo.Context, result Result) error {
	return c.JSON(http.StatusUnauthorized, map[string]any{
		jsonKeySuccess:   false,
		jsonKeyError:     string(result.Reason),
		jsonKeyMessage:   result.Message,
		jsonKeyTimestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func GetUserID(c echo.Context) (uuid.UUID, error) {
	userID := c.Get(ContextKeyUserID)
	if userID == nil {
		return uuid.Nil, apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.InternalServer(msgInvalidUserIDCtx, nil)
	}

	return id, nil
}

func GetEmail(c echo.Context) string {
	email, _ := c.Get(ContextKeyEmail).(string)
	return strings.TrimSpace(email)
}

func GetAuthType(c echo.Context) AuthType {
	authType, ok := c.Get(ContextKeyAuthType).(AuthType)
	if !ok {
		return ""
	}

	return authType
}
