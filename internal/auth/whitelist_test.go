package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWhitelist(t *testing.T, w *DomainWhitelist, origin string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if origin != "" {
		req.Header.Set(headerOrigin, origin)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := w.Middleware()(okHandler)(c)
	require.NoError(t, err)

	return rec
}

func TestDomainWhitelist_AllowsListedDomain(t *testing.T) {
	w := NewDomainWhitelist([]string{"example.com"})

	assert.Equal(t, http.StatusOK, runWhitelist(t, w, "https://example.com").Code)
	assert.Equal(t, http.StatusOK, runWhitelist(t, w, "https://app.example.com").Code)
	assert.Equal(t, http.StatusOK, runWhitelist(t, w, "https://example.com:8443").Code)
}

func TestDomainWhitelist_RejectsUnlistedDomain(t *testing.T) {
	w := NewDomainWhitelist([]string{"example.com"})

	assert.Equal(t, http.StatusForbidden, runWhitelist(t, w, "https://evil.com").Code)
	assert.Equal(t, http.StatusForbidden, runWhitelist(t, w, "https://notexample.com").Code)
	assert.Equal(t, http.StatusForbidden, runWhitelist(t, w, "https://example.com.evil.com").Code)
}

func TestDomainWhitelist_NoOriginPassesThrough(t *testing.T) {
	w := NewDomainWhitelist([]string{"example.com"})

	assert.Equal(t, http.StatusOK, runWhitelist(t, w, "").Code)
}

func TestDomainWhitelist_EmptyListDisablesCheck(t *testing.T) {
	w := NewDomainWhitelist(nil)

	assert.Equal(t, http.StatusOK, runWhitelist(t, w, "https://anything.example").Code)
}

func TestDomainWhitelist_CaseInsensitiveHost(t *testing.T) {
	w := NewDomainWhitelist([]string{"Example.COM"})

	assert.Equal(t, http.StatusOK, runWhitelist(t, w, "https://EXAMPLE.com").Code)
}
