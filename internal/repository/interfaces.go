package repository

import (
	"context"

	"order-service/internal/domain/order"
	"order-service/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Update(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, input order.CreateOrderInput) (*order.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error)
	List(ctx context.Context, status *order.Status, limit, offset int) ([]*order.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to order.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}
