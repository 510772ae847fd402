package repository

import (
	"usersvc/internal/db"
	dom "usersvc/internal/domain/user"
)

func toDomainUser(row *db.UserRow) *dom.User {
	if row == nil {
		return nil
	}
	return &dom.User{
		ID:             row.ID,
		Email:          row.Email,
		FullName:       row.FullName,
		HashedPassword: row.HashedPassword,
		IsActive:       row.IsActive,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func toDomainUsers(rows []db.UserRow) []dom.User {
	res := make([]dom.User, 0, len(rows))
	for i := range rows {
		res = append(res, *toDomainUser(&rows[i]))
	}
	return res
}

func toRow(u *dom.User) *db.UserRow {
	return &db.UserRow{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		HashedPassword: u.HashedPassword,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
