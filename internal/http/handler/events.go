package handler

import (
	"net/http"
	"time"

	"order-service/internal/audit"

	"github.com/labstack/echo/v4"
)

// EventsHandler exposes recorded security events on the operator surface.
type EventsHandler struct {
	events EventQuerier
}

func NewEventsHandler(events EventQuerier) *EventsHandler {
	return &EventsHandler{events: events}
}

type EventResponse struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id"`
	CreatedAt string `json:"created_at"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

func (h *EventsHandler) List(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidQueryParam)
	}

	filter := audit.QueryFilter{
		Limit:  limit,
		Offset: offset,
	}

	if raw := c.QueryParam("event_type"); raw != "" {
		eventType := audit.EventType(raw)
		filter.EventType = &eventType
	}
	if raw := c.QueryParam("reason"); raw != "" {
		filter.Reason = &raw
	}

	events, err := h.events.Query(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgListEventsFail)
	}

	resp := EventListResponse{
		Events: make([]EventResponse, 0, len(events)),
		Limit:  limit,
		Offset: offset,
	}
	for _, e := range events {
		resp.Events = append(resp.Events, EventResponse{
			ID:        e.ID.String(),
			EventType: string(e.EventType),
			Reason:    e.Reason,
			Message:   e.Message,
			Path:      e.Path,
			IPAddress: e.IPAddress,
			UserAgent: e.UserAgent,
			RequestID: e.RequestID,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, resp)
}
