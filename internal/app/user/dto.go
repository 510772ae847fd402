package user

import (
	"time"

	dom "usersvc/internal/domain/user"
)

// UserDto is the read shape: everything a client may see. The password
// hash is deliberately absent.
type UserDto struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserInput struct {
	Email    string
	Password string
	FullName *string
}

// UpdateUserInput carries partial-update semantics: nil means "leave as
// is". An empty Password string is also treated as no change.
type UpdateUserInput struct {
	FullName *string
	Password *string
	IsActive *bool
}

type ListUsersInput struct {
	Offset int
	Limit  int
}

func toDTO(u *dom.User) *UserDto {
	if u == nil {
		return nil
	}
	return &UserDto{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toDTOs(list []dom.User) []UserDto {
	res := make([]UserDto, 0, len(list))
	for i := range list {
		res = append(res, *toDTO(&list[i]))
	}
	return res
}
