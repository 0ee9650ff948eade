package auth

const (
	ContextKeyUserID   = "user_id"
	ContextKeyEmail    = "email"
	ContextKeyAuthType = "auth_type"
	ContextKeyExempted = "auth_exempted"

	jsonKeySuccess   = "success"
	jsonKeyError     = "error"
	jsonKeyMessage   = "message"
	jsonKeyTimestamp = "timestamp"

	headerAuthorization = "Authorization"
	headerOrigin        = "Origin"

	bearerScheme    = "bearer"
	authHeaderParts = 2
	pathSeparator   = "/"
)

const (
	expectedFormatHint = "Expected format: Authorization: Bearer <token>"

	msgMissingAuthorization = "Authorization header is required. " + expectedFormatHint
	msgMalformedHeader      = "Authorization header is malformed. " + expectedFormatHint
	msgInvalidScheme        = "Unsupported authorization scheme. " + expectedFormatHint
	msgInvalidToken         = "Invalid bearer token. " + expectedFormatHint

	msgInvalidOrExpiredToken   = "invalid or expired token"
	msgUserNotAuthenticated    = "user not authenticated"
	msgInvalidUserIDCtx        = "invalid user ID in context"
	msgOriginNotAllowed        = "origin not allowed"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
)

type AuthType string

const (
	AuthTypeJWT    AuthType = "jwt"
	AuthTypeBearer AuthType = "bearer"
)
