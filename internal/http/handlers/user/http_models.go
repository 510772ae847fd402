package user

type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
}

// UpdateUserRequest fields are all optional; absent fields are left
// untouched. An empty password string is treated as "no change".
type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

type DeleteUserResponse struct {
	Deleted bool   `json:"deleted"`
	UserID  string `json:"user_id"`
}
