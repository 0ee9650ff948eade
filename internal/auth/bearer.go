package auth

import (
	"crypto/subtle"
	"strings"
)

// FailureReason identifies why the bearer gate refused a request. The set is
// closed; responses never carry anything more specific than one of these.
type FailureReason string

const (
	ReasonMissingAuthorization FailureReason = "Missing authorization"
	ReasonMalformedHeader      FailureReason = "Malformed header"
	ReasonInvalidScheme        FailureReason = "Invalid scheme"
	ReasonInvalidToken         FailureReason = "Invalid token"
)

// ParsedAuthorization is the two-token form of an Authorization header:
// a lower-cased scheme and the credential that followed it.
type ParsedAuthorization struct {
	Scheme string
	Token  string
}

// Result is the terminal outcome of a single gate evaluation.
type Result struct {
	Allowed  bool
	Exempted bool
	Reason   FailureReason
	Message  string
}

// BearerValidator authenticates requests against a fixed set of shared
// secrets. Both the token set and the exempt path set are immutable after
// construction, so a single instance is safe for concurrent use.
type BearerValidator struct {
	tokens      []string
	exemptPaths []string
}

func NewBearerValidator(tokens, exemptPaths []string) *BearerValidator {
	return &BearerValidator{
		tokens:      append([]string(nil), tokens...),
		exemptPaths: append([]string(nil), exemptPaths...),
	}
}

// ParseAuthorizationHeader splits a raw header value on runs of whitespace.
// It succeeds only when exactly two tokens remain: the scheme (lower-cased)
// and the credential. Any other token count means the header is malformed
// and nil is returned.
func ParseAuthorizationHeader(raw string) *ParsedAuthorization {
	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) != authHeaderParts {
		return nil
	}

	return &ParsedAuthorization{
		Scheme: strings.ToLower(parts[0]),
		Token:  parts[1],
	}
}

// CompareTokens reports whether candidate and expected are byte-identical.
// Equal-length comparison runs in constant time regardless of where the
// first mismatch sits. Unequal lengths return false immediately; that leak
// is intentional and matches what constant-time libraries guarantee.
func CompareTokens(candidate, expected string) bool {
	if len(candidate) != len(expected) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(expected)) == 1
}

// ValidateToken reports whether candidate matches any configured token.
// Every entry is compared even after a match so the overall timing does not
// depend on which token matched. An empty set rejects everything.
func (v *BearerValidator) ValidateToken(candidate string) bool {
	matched := 0
	for _, token := range v.tokens {
		if CompareTokens(candidate, token) {
			matched |= 1
		}
	}

	return matched == 1
}

// IsExemptPath reports whether path equals an exempt entry exactly or starts
// with an exempt entry followed by a path separator.
func (v *BearerValidator) IsExemptPath(path string) bool {
	for _, exempt := range v.exemptPaths {
		if path == exempt || strings.HasPrefix(path, exempt+pathSeparator) {
			return true
		}
	}

	return false
}

// Authenticate runs the gate decision for one request. Checks are ordered:
// exemption wins over everything, then missing header, malformed header,
// scheme, empty token, and finally the token set.
func (v *BearerValidator) Authenticate(authorizationHeader, path string) Result {
	if v.IsExemptPath(path) {
		return Result{Allowed: true, Exempted: true}
	}

	if strings.TrimSpace(authorizationHeader) == "" {
		return failure(ReasonMissingAuthorization, msgMissingAuthorization)
	}

	parsed := ParseAuthorizationHeader(authorizationHeader)
	if parsed == nil {
		return failure(ReasonMalformedHeader, msgMalformedHeader)
	}

	if parsed.Scheme != bearerScheme {
		return failure(ReasonInvalidScheme, msgInvalidScheme)
	}

	if parsed.Token == "" {
		return failure(ReasonMalformedHeader, msgMalformedHeader)
	}

	if !v.ValidateToken(parsed.Token) {
		return failure(ReasonInvalidToken, msgInvalidToken)
	}

	return Result{Allowed: true}
}

func failure(reason FailureReason, message string) Result {
	return Result{Reason: reason, Message: message}
}
