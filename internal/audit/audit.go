package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// EventType classifies a security event
type EventType string

const (
	EventTypeAuthFailure EventType = "auth_failure"
	EventTypeAuthSuccess EventType = "auth_success"
)

const logWriteTimeout = 2 * time.Second

// Event represents one security event. Reason holds the closed-set failure
// code; nothing token-related is ever recorded.
type Event struct {
	ID        uuid.UUID
	EventType EventType
	Reason    string
	Message   string
	Path      string
	IPAddress string
	UserAgent string
	RequestID string
	CreatedAt time.Time
}

// Logger persists security events
type Logger struct {
	pool *pgxpool.Pool
}

// NewLogger creates a new security event logger
func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{pool: pool}
}

// Log records a security event
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO security_events (
			id, event_type, reason, message, path, ip_address, user_agent, request_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := l.pool.Exec(ctx, query,
		event.ID,
		event.EventType,
		event.Reason,
		event.Message,
		event.Path,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		event.CreatedAt,
	)

	return err
}

// AuthFailure records a failed gate decision from an Echo context
// asynchronously. The client IP comes from the connection-level address;
// forwarding headers are not trusted here. Write failures go to the request
// logger and never propagate.
//
// Everything needed from the context is snapshotted before the goroutine
// starts: Echo pools contexts, so touching c after the handler returns races
// with the next request.
func (l *Logger) AuthFailure(c echo.Context, reason, message string) {
	event := newAuthFailureEvent(c, reason, message)
	output := c.Logger().Output()

	ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
	go func() {
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			fmt.Fprintf(output, "security event log failed: %v\n", err)
		}
	}()
}

// newAuthFailureEvent copies the request attributes of a failed gate decision
// out of the pooled context.
func newAuthFailureEvent(c echo.Context, reason, message string) *Event {
	return &Event{
		EventType: EventTypeAuthFailure,
		Reason:    reason,
		Message:   message,
		Path:      c.Request().URL.Path,
		IPAddress: c.Request().RemoteAddr,
		UserAgent: c.Request().UserAgent(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
		CreatedAt: time.Now().UTC(),
	}
}

// QueryFilter narrows a security event query
type QueryFilter struct {
	EventType *EventType
	Reason    *string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

// Query retrieves security events, newest first
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]*Event, error) {
	query := `
		SELECT id, event_type, reason, message, path, ip_address, user_agent, request_id, created_at
		FROM security_events
		WHERE 1=1
	`
	args := []any{}
	argCount := 1

	if filter.EventType != nil {
		query += fmt.Sprintf(" AND event_type = $%d", argCount)
		args = append(args, filter.EventType)
		argCount++
	}

	if filter.Reason != nil {
		query += fmt.Sprintf(" AND reason = $%d", argCount)
		args = append(args, filter.Reason)
		argCount++
	}

	if filter.StartTime != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, filter.StartTime)
		argCount++
	}

	if filter.EndTime != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argCount)
		args = append(args, filter.EndTime)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	} else {
		query += " LIMIT 100" // Default limit
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
	}

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		event := &Event{}
		if err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.Reason,
			&event.Message,
			&event.Path,
			&event.IPAddress,
			&event.UserAgent,
			&event.RequestID,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
