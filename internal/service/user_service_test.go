package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/service/auth"
	"github.com/recallhq/flashcard-api/internal/store"
)

func newTestUserService(t *testing.T, userStore store.UserStore) UserService {
	t.Helper()
	verifier := auth.NewBcryptVerifier(bcrypt.MinCost)
	service, err := NewUserService(userStore, verifier, verifier, nil)
	require.NoError(t, err)
	return service
}

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	userStore := newFakeUserStore()
	service := newTestUserService(t, userStore)

	user, err := service.Register(ctx, RegisterParams{
		Email:     "new@example.com",
		FirstName: "New",
		LastName:  "User",
		Password:  "a strong enough password",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.Password, "plaintext must be cleared after hashing")
	assert.NotEmpty(t, user.HashedPassword)
	assert.NotEqual(t, "a strong enough password", user.HashedPassword)

	stored, err := userStore.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.HashedPassword, stored.HashedPassword)
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	existing := mustNewUser("taken@example.com", domain.RoleUser)
	service := newTestUserService(t, newFakeUserStore(existing))

	_, err := service.Register(ctx, RegisterParams{
		Email:     "taken@example.com",
		FirstName: "Other",
		LastName:  "Person",
		Password:  "a strong enough password",
	})
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserServiceRegisterValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	service := newTestUserService(t, newFakeUserStore())

	_, err := service.Register(ctx, RegisterParams{
		Email:     "bad@example.com",
		FirstName: "Bad",
		LastName:  "Password",
		Password:  "short",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestUserServiceAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	userStore := newFakeUserStore()
	service := newTestUserService(t, userStore)

	registered, err := service.Register(ctx, RegisterParams{
		Email:     "login@example.com",
		FirstName: "Log",
		LastName:  "In",
		Password:  "a strong enough password",
	})
	require.NoError(t, err)

	user, err := service.Authenticate(ctx, "login@example.com", "a strong enough password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Wrong password and unknown email both yield the same sentinel
	_, err = service.Authenticate(ctx, "login@example.com", "wrong password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = service.Authenticate(ctx, "nobody@example.com", "a strong enough password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestUserServiceGetUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	existing := mustNewUser("someone@example.com", domain.RoleUser)
	service := newTestUserService(t, newFakeUserStore(existing))

	user, err := service.GetUser(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.Email, user.Email)

	_, err = service.GetUser(ctx, mustNewUser("ghost@example.com", domain.RoleUser).ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestNewUserServiceRejectsNilDependencies(t *testing.T) {
	t.Parallel()

	verifier := auth.NewBcryptVerifier(bcrypt.MinCost)

	_, err := NewUserService(nil, verifier, verifier, nil)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewUserService(newFakeUserStore(), nil, verifier, nil)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
