package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"usersvc/internal/cache"
	"usersvc/internal/db"
	dom "usersvc/internal/domain/user"
	"usersvc/internal/logging"
	"usersvc/internal/security"
)

type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*UserDto, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserDto, error)
	List(ctx context.Context, input ListUsersInput) ([]UserDto, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   dom.Repository
	cache  cache.UserCache
	tx     db.Transactor
	events Events
	logger logging.Logger
}

const defaultUserCacheTTL = 5 * time.Minute

func NewService(
	repo dom.Repository,
	cache cache.UserCache,
	tx db.Transactor,
	events Events,
	logger logging.Logger,
) Service {
	return &service{
		repo:   repo,
		cache:  cache,
		tx:     tx,
		events: events,
		logger: logger.With("component", "user_service"),
	}
}

// Create registers a new user. The email pre-check and the insert run in
// one transaction; the unique constraint on email is the authoritative
// guard, the pre-check only buys a friendlier error for the common case.
func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDto, error) {
	hashed, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &dom.User{
		Email:          input.Email,
		FullName:       input.FullName,
		HashedPassword: hashed,
		IsActive:       true,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByEmail(ctx, input.Email)
		if err != nil && !IsNotFound(err) {
			return err
		}
		if existing != nil {
			return NewEmailTakenError()
		}
		return s.repo.Create(ctx, u)
	})
	if err != nil {
		if IsConflict(err) {
			return nil, err
		}
		s.logger.Error("failed to create user", "error", err, "email", input.Email)
		return nil, fmt.Errorf("create user: %w", err)
	}

	dto := toDTO(u)
	s.cacheSet(ctx, dto)

	if err := s.events.UserCreated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserCreated event", "error", err, "id", dto.ID)
	}

	return dto, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*UserDto, error) {
	// 1) Check cache
	if data, err := s.cache.Get(ctx, id.String()); err == nil && data != nil {
		var dto UserDto
		if err := json.Unmarshal(data, &dto); err == nil {
			return &dto, nil
		}
		s.logger.Error("failed to unmarshal user from cache", "error", err, "id", id)
	} else if err != nil {
		s.logger.Error("failed to get user from cache", "error", err, "id", id)
	}

	// 2) Fallback to DB
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toDTO(u)

	// 3) Write to cache (best-effort)
	s.cacheSet(ctx, dto)

	return dto, nil
}

// List returns a page of users plus the total count across all records.
// The two queries are independent; the count is not guaranteed to be
// transactionally consistent with the page.
func (s *service) List(ctx context.Context, input ListUsersInput) ([]UserDto, int, error) {
	users, err := s.repo.List(ctx, dom.ListFilter{
		Offset: input.Offset,
		Limit:  input.Limit,
	})
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count users", "error", err)
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return toDTOs(users), total, nil
}

// Update applies only the fields present in input. An empty-string
// password means "no change". The update timestamp refreshes even when
// nothing else did.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDto, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		u.FullName = input.FullName
	}
	if input.IsActive != nil {
		u.IsActive = *input.IsActive
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := security.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.HashedPassword = hashed
	}

	if err := s.repo.Update(ctx, u); err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to update user", "error", err, "id", id)
		return nil, fmt.Errorf("update user: %w", err)
	}

	dto := toDTO(u)
	s.cacheSet(ctx, dto)

	if err := s.events.UserUpdated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserUpdated event", "error", err, "id", dto.ID)
	}

	return dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, id.String()); err != nil {
		s.logger.Error("failed to delete user cache after delete", "error", err, "id", id)
	}

	if err := s.events.UserDeleted(ctx, id.String()); err != nil {
		s.logger.Error("failed to publish UserDeleted event", "error", err, "id", id)
	}

	return nil
}

func (s *service) cacheSet(ctx context.Context, dto *UserDto) {
	data, err := json.Marshal(dto)
	if err != nil {
		s.logger.Error("failed to marshal user for cache", "error", err, "id", dto.ID)
		return
	}
	if err := s.cache.Set(ctx, dto.ID, data, defaultUserCacheTTL); err != nil {
		s.logger.Error("failed to set user cache", "error", err, "id", dto.ID)
	}
}
