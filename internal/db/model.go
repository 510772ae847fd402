package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRow is the persistence mapping for the users table.
type UserRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	Email          string    `bun:"email,notnull,unique"`
	FullName       *string   `bun:"full_name"`
	HashedPassword string    `bun:"hashed_password,notnull"`
	IsActive       bool      `bun:"is_active,notnull,default:true"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
	UpdatedAt      time.Time `bun:"updated_at,notnull"`
}
