package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// DomainWhitelist rejects browser requests whose Origin host is not in the
// allowed set. Requests without an Origin header (CLI tools, server-to-server
// callers) pass through. An empty whitelist disables the check entirely.
type DomainWhitelist struct {
	domains []string
}

func NewDomainWhitelist(domains []string) *DomainWhitelist {
	normalized := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			normalized = append(normalized, d)
		}
	}

	return &DomainWhitelist{domains: normalized}
}

// Allowed reports whether host matches a whitelisted domain exactly or is a
// subdomain of one.
func (w *DomainWhitelist) Allowed(host string) bool {
	host = strings.ToLower(host)
	for _, domain := range w.domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}

	return false
}

func (w *DomainWhitelist) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if len(w.domains) == 0 {
			return next
		}

		return func(c echo.Context) error {
			origin := c.Request().Header.Get(headerOrigin)
			if origin == "" {
				return next(c)
			}

			parsed, err := url.Parse(origin)
			if err != nil || !w.Allowed(parsed.Hostname()) {
				return respondError(c, http.StatusForbidden, msgOriginNotAllowed)
			}

			return next(c)
		}
	}
}
