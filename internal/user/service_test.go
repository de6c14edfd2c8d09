package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumusproject/lumus-backend/internal/auth"
)

type fakeUserRepo struct {
	nextID  int
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*User)}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, u *User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return ErrEmailAlreadyUsed
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now().UTC()
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.LastLoginAt = &t
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter UserFilter) ([]*User, int, error) {
	var out []*User
	for _, u := range f.byEmail {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *User) error {
	if _, err := f.GetByID(ctx, u.ID); err != nil {
		return err
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.IsActive = false
	return nil
}

func newTestUserService() Service {
	// MinCost keeps the bcrypt work factor out of the test runtime.
	return NewService(newFakeUserRepo(), auth.NewBcryptPasswordHasherWithCost(4))
}

func TestRegister(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Alice@Example.COM ", "supersecret", " Alice ")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)
	require.NotNil(t, u.DisplayName)
	require.Equal(t, "Alice", *u.DisplayName)
	require.True(t, u.IsActive)
	require.NotEqual(t, "supersecret", u.PasswordHash)

	_, err = svc.Register(ctx, "alice@example.com", "supersecret", "Alice")
	require.ErrorIs(t, err, ErrEmailAlreadyUsed)

	_, err = svc.Register(ctx, "", "supersecret", "Bob")
	require.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, "bob@example.com", "short", "Bob")
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLogin(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "supersecret", "Alice")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "alice@example.com", "supersecret")
		require.NoError(t, err)
		require.Equal(t, registered.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "supersecret")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, registered.ID))
		_, err := svc.Login(ctx, "alice@example.com", "supersecret")
		require.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestUpdate(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice@example.com", "supersecret", "Alice")
	require.NoError(t, err)

	name := "Alice L."
	admin := true
	updated, err := svc.Update(ctx, u.ID, UpdateUserRequest{DisplayName: &name, IsSystemAdmin: &admin})
	require.NoError(t, err)
	require.Equal(t, "Alice L.", *updated.DisplayName)
	require.True(t, updated.IsSystemAdmin)

	blank := "   "
	updated, err = svc.Update(ctx, u.ID, UpdateUserRequest{DisplayName: &blank})
	require.NoError(t, err)
	require.Nil(t, updated.DisplayName)

	_, err = svc.Update(ctx, "missing", UpdateUserRequest{DisplayName: &name})
	require.ErrorIs(t, err, ErrNotFound)
}
