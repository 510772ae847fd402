package user

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersvc/internal/db"
	domcommon "usersvc/internal/domain/common"
	dom "usersvc/internal/domain/user"
	"usersvc/internal/logging"
	"usersvc/internal/security"
)

// fakeRepo is an in-memory Repository honoring the same error contract
// as the Postgres implementation.
type fakeRepo struct {
	byID  map[uuid.UUID]*dom.User
	order []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uuid.UUID]*dom.User)}
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*dom.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domcommon.NewNotFound("user")
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*dom.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domcommon.NewNotFound("user")
}

func (r *fakeRepo) List(ctx context.Context, filter dom.ListFilter) ([]dom.User, error) {
	var res []dom.User
	for i := filter.Offset; i < len(r.order); i++ {
		if filter.Limit > 0 && len(res) >= filter.Limit {
			break
		}
		res = append(res, *r.byID[r.order[i]])
	}
	return res, nil
}

func (r *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(r.byID), nil
}

func (r *fakeRepo) Create(ctx context.Context, u *dom.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domcommon.NewConflict("user", "email already registered")
		}
	}
	now := time.Now().UTC()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.byID[u.ID] = &cp
	r.order = append(r.order, u.ID)
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, u *dom.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domcommon.NewNotFound("user")
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return domcommon.NewNotFound("user")
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, id string) ([]byte, error) {
	return c.data[id], nil
}

func (c *fakeCache) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	c.data[id] = data
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, id string) error {
	delete(c.data, id)
	return nil
}

type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn db.TxFunc) error {
	return fn(ctx)
}

type recordingEvents struct {
	created []string
	updated []string
	deleted []string
}

func (e *recordingEvents) UserCreated(ctx context.Context, u *UserDto) error {
	e.created = append(e.created, u.ID)
	return nil
}

func (e *recordingEvents) UserUpdated(ctx context.Context, u *UserDto) error {
	e.updated = append(e.updated, u.ID)
	return nil
}

func (e *recordingEvents) UserDeleted(ctx context.Context, id string) error {
	e.deleted = append(e.deleted, id)
	return nil
}

func newTestService(t *testing.T) (Service, *fakeRepo, *fakeCache, *recordingEvents) {
	t.Helper()
	repo := newFakeRepo()
	cache := newFakeCache()
	events := &recordingEvents{}
	svc := NewService(repo, cache, fakeTx{}, events, logging.NewNop())
	return svc, repo, cache, events
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func TestCreateReturnsRecordWithHashedPassword(t *testing.T) {
	svc, repo, cache, events := newTestService(t)

	dto, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "Jane.Doe@example.com",
		Password: "s3cret",
		FullName: strptr("Jane Doe"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane.Doe@example.com", dto.Email)
	assert.Equal(t, "Jane Doe", *dto.FullName)
	assert.True(t, dto.IsActive)
	assert.False(t, dto.CreatedAt.IsZero())
	assert.Equal(t, dto.CreatedAt, dto.UpdatedAt)

	id, err := uuid.Parse(dto.ID)
	require.NoError(t, err)

	stored := repo.byID[id]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret", stored.HashedPassword)
	assert.NoError(t, security.VerifyPassword(stored.HashedPassword, "s3cret"))

	assert.Contains(t, cache.data, dto.ID)
	assert.Equal(t, []string{dto.ID}, events.created)
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateUserInput{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserInput{Email: "a@b.com", Password: "y"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Len(t, repo.byID, 1)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGetByIDServesFromCache(t *testing.T) {
	svc, _, cache, _ := newTestService(t)

	dto := &UserDto{ID: uuid.NewString(), Email: "cached@example.com", IsActive: true}
	require.NoError(t, cacheSeed(cache, dto))

	id, err := uuid.Parse(dto.ID)
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "cached@example.com", got.Email)
}

func TestUpdatePartialFields(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "a@b.com",
		Password: "orig",
		FullName: strptr("A"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)
	hashBefore := repo.byID[id].HashedPassword

	updated, err := svc.Update(context.Background(), id, UpdateUserInput{
		FullName: strptr("B"),
	})
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", updated.Email)
	assert.Equal(t, "B", *updated.FullName)
	assert.Equal(t, hashBefore, repo.byID[id].HashedPassword)
	assert.True(t, !updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateWithNoFieldsRefreshesTimestamp(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateUserInput{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), uuid.MustParse(created.ID), UpdateUserInput{})
	require.NoError(t, err)

	assert.Equal(t, created.Email, updated.Email)
	assert.True(t, !updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateEmptyPasswordIsNoChange(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateUserInput{Email: "a@b.com", Password: "orig"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)
	hashBefore := repo.byID[id].HashedPassword

	_, err = svc.Update(context.Background(), id, UpdateUserInput{Password: strptr("")})
	require.NoError(t, err)
	assert.Equal(t, hashBefore, repo.byID[id].HashedPassword)

	_, err = svc.Update(context.Background(), id, UpdateUserInput{Password: strptr("newsecret")})
	require.NoError(t, err)
	hashAfter := repo.byID[id].HashedPassword
	assert.NotEqual(t, hashBefore, hashAfter)
	assert.NotEqual(t, "newsecret", hashAfter)
	assert.NoError(t, security.VerifyPassword(hashAfter, "newsecret"))
}

func TestUpdateIsActiveFlag(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateUserInput{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), uuid.MustParse(created.ID), UpdateUserInput{
		IsActive: boolptr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestUpdateMissingUserNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Update(context.Background(), uuid.New(), UpdateUserInput{FullName: strptr("X")})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDeleteThenGet(t *testing.T) {
	svc, _, cache, events := newTestService(t)

	created, err := svc.Create(context.Background(), CreateUserInput{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.NotContains(t, cache.data, created.ID)
	assert.Equal(t, []string{created.ID}, events.deleted)

	_, err = svc.GetByID(context.Background(), id)
	assert.True(t, IsNotFound(err))

	err = svc.Delete(context.Background(), id)
	assert.True(t, IsNotFound(err))
}

func TestListPaging(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	emails := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com"}
	for _, e := range emails {
		_, err := svc.Create(context.Background(), CreateUserInput{Email: e, Password: "x"})
		require.NoError(t, err)
	}

	items, total, err := svc.List(context.Background(), ListUsersInput{Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 5, total)

	items, total, err = svc.List(context.Background(), ListUsersInput{Offset: 10, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, items, 0)
	assert.Equal(t, 5, total)
}

func TestCreateGetRoundTrip(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "Round.Trip@Example.com",
		Password: "x",
		FullName: strptr("Round Trip"),
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)

	assert.Equal(t, created.Email, got.Email)
	assert.Equal(t, *created.FullName, *got.FullName)
	assert.Equal(t, created.IsActive, got.IsActive)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, created.UpdatedAt.Equal(got.UpdatedAt))
}

func cacheSeed(c *fakeCache, dto *UserDto) error {
	data, err := json.Marshal(dto)
	if err != nil {
		return err
	}
	return c.Set(context.Background(), dto.ID, data, time.Minute)
}
