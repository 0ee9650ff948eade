package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateUserInput struct {
	Email        string
	PasswordHash string
}

type UpdateUserInput struct {
	Email        *string
	PasswordHash *string
}
