package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"order-service/internal/audit"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsHandler_List(t *testing.T) {
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	querier := &fakeEventQuerier{
		events: []*audit.Event{
			{
				ID:        uuid.New(),
				EventType: audit.EventTypeAuthFailure,
				Reason:    "Invalid token",
				Message:   "Invalid bearer token.",
				Path:      "/internal/orders",
				IPAddress: "203.0.113.7:51234",
				UserAgent: "curl/8.4.0",
				RequestID: "req-123",
				CreatedAt: created,
			},
		},
	}
	h := NewEventsHandler(querier)
	e := echo.New()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/security-events", nil)
	require.NoError(t, h.List(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp EventListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	got := resp.Events[0]
	assert.Equal(t, "auth_failure", got.EventType)
	assert.Equal(t, "Invalid token", got.Reason)
	assert.Equal(t, "Invalid bearer token.", got.Message)
	assert.Equal(t, "/internal/orders", got.Path)
	assert.Equal(t, "203.0.113.7:51234", got.IPAddress)
	assert.Equal(t, "curl/8.4.0", got.UserAgent)
	assert.Equal(t, "req-123", got.RequestID)
	assert.Equal(t, "2026-08-30T12:00:00Z", got.CreatedAt)
	assert.Equal(t, defaultPageSize, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
}

func TestEventsHandler_ListPassesFilters(t *testing.T) {
	querier := &fakeEventQuerier{}
	h := NewEventsHandler(querier)
	e := echo.New()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/security-events?event_type=auth_failure&reason=Invalid+token&limit=10&offset=20", nil)
	require.NoError(t, h.List(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, querier.lastFilter.EventType)
	assert.Equal(t, audit.EventTypeAuthFailure, *querier.lastFilter.EventType)
	require.NotNil(t, querier.lastFilter.Reason)
	assert.Equal(t, "Invalid token", *querier.lastFilter.Reason)
	assert.Equal(t, 10, querier.lastFilter.Limit)
	assert.Equal(t, 20, querier.lastFilter.Offset)
}

func TestEventsHandler_ListEmpty(t *testing.T) {
	h := NewEventsHandler(&fakeEventQuerier{})
	e := echo.New()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/security-events", nil)
	require.NoError(t, h.List(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp EventListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Events)
	assert.Empty(t, resp.Events)
}

func TestEventsHandler_ListRejectsBadPagination(t *testing.T) {
	h := NewEventsHandler(&fakeEventQuerier{})
	e := echo.New()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/security-events?limit=-1", nil)
	require.NoError(t, h.List(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventsHandler_ListQueryFailure(t *testing.T) {
	h := NewEventsHandler(&fakeEventQuerier{err: errors.New("connection refused")})
	e := echo.New()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/security-events", nil)
	require.NoError(t, h.List(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), msgListEventsFail)
}
