package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("learner@example.com", "Ada", "Lovelace", "correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "learner@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		email       string
		firstName   string
		lastName    string
		password    string
		expectedErr error
	}{
		{
			name:        "empty email",
			email:       "",
			firstName:   "Ada",
			lastName:    "Lovelace",
			password:    "long enough password",
			expectedErr: ErrEmptyEmail,
		},
		{
			name:        "malformed email",
			email:       "not-an-email",
			firstName:   "Ada",
			lastName:    "Lovelace",
			password:    "long enough password",
			expectedErr: ErrInvalidEmail,
		},
		{
			name:        "missing first name",
			email:       "a@example.com",
			firstName:   "",
			lastName:    "Lovelace",
			password:    "long enough password",
			expectedErr: ErrEmptyFirstName,
		},
		{
			name:        "missing last name",
			email:       "a@example.com",
			firstName:   "Ada",
			lastName:    "",
			password:    "long enough password",
			expectedErr: ErrEmptyLastName,
		},
		{
			name:        "password too short",
			email:       "a@example.com",
			firstName:   "Ada",
			lastName:    "Lovelace",
			password:    "short",
			expectedErr: ErrPasswordTooShort,
		},
		{
			name:        "password exceeds bcrypt limit",
			email:       "a@example.com",
			firstName:   "Ada",
			lastName:    "Lovelace",
			password:    strings.Repeat("p", 73),
			expectedErr: ErrPasswordTooLong,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewUser(tc.email, tc.firstName, tc.lastName, tc.password)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestUserValidateLoadedFromStore(t *testing.T) {
	t.Parallel()

	// A user loaded from the store has a hash but no plaintext password.
	user := &User{
		ID:             uuid.New(),
		Email:          "a@example.com",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		Role:           RoleAdmin,
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}

func TestUserIsAdmin(t *testing.T) {
	t.Parallel()

	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}
