package user

import (
	domcommon "usersvc/internal/domain/common"
)

func IsNotFound(err error) bool {
	return domcommon.IsNotFound(err)
}

func IsConflict(err error) bool {
	return domcommon.IsConflict(err)
}

func NewUserNotFoundError() error {
	return domcommon.NewNotFound("user")
}

func NewEmailTakenError() error {
	return domcommon.NewConflict("user", "email already registered")
}
