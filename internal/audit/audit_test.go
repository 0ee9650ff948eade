package audit

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewAuthFailureEvent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/internal/orders", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	req.Header.Set("User-Agent", "curl/8.4.0")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Response().Header().Set(echo.HeaderXRequestID, "req-123")

	event := newAuthFailureEvent(c, "Invalid token", "Invalid bearer token.")

	assert.Equal(t, EventTypeAuthFailure, event.EventType)
	assert.Equal(t, "Invalid token", event.Reason)
	assert.Equal(t, "Invalid bearer token.", event.Message)
	assert.Equal(t, "/internal/orders", event.Path)
	assert.Equal(t, "203.0.113.7:51234", event.IPAddress)
	assert.Equal(t, "curl/8.4.0", event.UserAgent)
	assert.Equal(t, "req-123", event.RequestID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestNewAuthFailureEvent_SnapshotsBeforeContextReuse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/internal/orders", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	event := newAuthFailureEvent(c, "Missing authorization", "Authorization header is required.")

	// A pooled context gets rewritten by the next request; the event must not
	// observe that.
	req.URL = &url.URL{Path: "/some/other/path"}
	req.RemoteAddr = "198.51.100.1:443"

	assert.Equal(t, "/internal/orders", event.Path)
	assert.Equal(t, "203.0.113.7:51234", event.IPAddress)
}
