package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the authoritative record shape. HashedPassword never leaves
// the process through the HTTP layer.
type User struct {
	ID             uuid.UUID
	Email          string
	FullName       *string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
