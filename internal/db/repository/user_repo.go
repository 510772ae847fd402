package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"usersvc/internal/db"
	domcommon "usersvc/internal/domain/common"
	dom "usersvc/internal/domain/user"
	"usersvc/internal/logging"
)

const pgUniqueViolation = "23505"

type UserRepository struct {
	client *db.Client
	logger logging.Logger
}

func NewUserRepository(client *db.Client, logger logging.Logger) dom.Repository {
	return &UserRepository{
		client: client,
		logger: logger.With("component", "user_repo"),
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*dom.User, error) {
	row := new(db.UserRow)
	err := r.client.DB(ctx).NewSelect().
		Model(row).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domcommon.NewNotFound("user")
		}
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return toDomainUser(row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*dom.User, error) {
	row := new(db.UserRow)
	err := r.client.DB(ctx).NewSelect().
		Model(row).
		Where("u.email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domcommon.NewNotFound("user")
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return toDomainUser(row), nil
}

// List returns a page of users. Order is fixed to creation time (id as
// tiebreak) so repeated paging walks a stable sequence.
func (r *UserRepository) List(ctx context.Context, filter dom.ListFilter) ([]dom.User, error) {
	var rows []db.UserRow

	q := r.client.DB(ctx).NewSelect().
		Model(&rows).
		Order("u.created_at ASC", "u.id ASC")

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return toDomainUsers(rows), nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	count, err := r.client.DB(ctx).NewSelect().
		Model((*db.UserRow)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) error {
	now := time.Now().UTC()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	row := toRow(u)
	if _, err := r.client.DB(ctx).NewInsert().Model(row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return domcommon.NewConflict("user", "email already registered")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *dom.User) error {
	u.UpdatedAt = time.Now().UTC()

	row := toRow(u)
	res, err := r.client.DB(ctx).NewUpdate().
		Model(row).
		Column("email", "full_name", "hashed_password", "is_active", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return domcommon.NewConflict("user", "email already registered")
		}
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if affected == 0 {
		return domcommon.NewNotFound("user")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.client.DB(ctx).NewDelete().
		Model((*db.UserRow)(nil)).
		Where("u.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		return domcommon.NewNotFound("user")
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation. The email column carries the only unique constraint here.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
