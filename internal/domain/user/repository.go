package user

import (
	"context"

	"github.com/google/uuid"
)

type ListFilter struct {
	Offset int
	Limit  int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
