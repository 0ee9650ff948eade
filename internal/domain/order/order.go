package order

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

// legalTransitions maps each status to the statuses it may move to.
// Cancelled and shipped are terminal.
var legalTransitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range legalTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type Order struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Item        string
	Quantity    int
	AmountCents int64
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateOrderInput struct {
	UserID      uuid.UUID
	Item        string
	Quantity    int
	AmountCents int64
}
