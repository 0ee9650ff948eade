package handler

import (
	"context"

	"order-service/internal/audit"
	"order-service/internal/domain/order"
	"order-service/internal/domain/user"

	"github.com/google/uuid"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

// AuthHandler interfaces
type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Update(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TokenGenerator interface {
	Generate(userID uuid.UUID, email string) (string, error)
}

type ResetTokenStore interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Consume(ctx context.Context, token string) (uuid.UUID, error)
}

type Notifier interface {
	SendPasswordReset(to, token string) error
	SendOrderConfirmation(to string, o *order.Order) error
}

// OrderHandler interfaces
type OrderRepository interface {
	Create(ctx context.Context, input order.CreateOrderInput) (*order.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error)
	List(ctx context.Context, status *order.Status, limit, offset int) ([]*order.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to order.Status) error
}

// EventsHandler interfaces
type EventQuerier interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]*audit.Event, error)
}
