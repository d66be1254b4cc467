package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/platform/logger"
	"github.com/recallhq/flashcard-api/internal/service/auth"
	"github.com/recallhq/flashcard-api/internal/store"
)

// RegisterParams carries the fields needed to create a new account.
type RegisterParams struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// UserService provides account registration, authentication, and profile lookup.
type UserService interface {
	// Register creates a new user account with a hashed password.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)

	// Authenticate verifies an email/password pair and returns the matching
	// user. Returns auth.ErrInvalidCredentials if either part does not match;
	// unknown emails and wrong passwords are deliberately indistinguishable.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	// Returns store.ErrUserNotFound if no such user exists.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register
func (s *userServiceImpl) Register(
	ctx context.Context,
	params RegisterParams,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(params.Email, params.FirstName, params.LastName, params.Password)
	if err != nil {
		log.Warn("user registration rejected by validation",
			slog.String("error", err.Error()))
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password during registration",
			slog.String("error", err.Error()))
		return nil, NewServiceError("user", "register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = "" // plaintext must not outlive hashing

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Warn("registration attempted with existing email")
			return nil, err
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, NewServiceError("user", "register", "failed to create user", err)
	}

	log.Info("user registered successfully",
		slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("authentication failed: email not found")
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to look up user for authentication",
			slog.String("error", err.Error()))
		return nil, NewServiceError("user", "authenticate", "failed to look up user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("authentication failed: password mismatch",
			slog.String("user_id", user.ID.String()))
		return nil, auth.ErrInvalidCredentials
	}

	log.Info("user authenticated successfully",
		slog.String("user_id", user.ID.String()))
	return user, nil
}

// GetUser implements UserService.GetUser
func (s *userServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, NewServiceError("user", "get_user", "failed to retrieve user", err)
	}

	return user, nil
}
