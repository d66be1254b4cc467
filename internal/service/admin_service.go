package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/domain/access"
	"github.com/recallhq/flashcard-api/internal/platform/logger"
	"github.com/recallhq/flashcard-api/internal/store"
)

// UserWithStats pairs a user with the counts of resources attributed to them.
// Admin tooling shows these counts before a destructive delete.
type UserWithStats struct {
	User  *domain.User
	Stats *store.UserResourceCounts
}

// AdminService provides user administration. Every operation requires the
// acting user to hold the admin role; the role is read from the user store
// on each call, not from token claims.
type AdminService interface {
	// ListUsers retrieves all users, newest first.
	ListUsers(ctx context.Context, actorID uuid.UUID) ([]*domain.User, error)

	// GetUserWithStats retrieves a user together with their resource counts.
	GetUserWithStats(ctx context.Context, actorID, userID uuid.UUID) (*UserWithStats, error)

	// DeleteUser removes a user and, via schema cascades, their collections,
	// cards, and reviews. Returns ErrSelfDeletion if the actor targets
	// themselves.
	DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error
}

// adminServiceImpl implements the AdminService interface
type adminServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewAdminService creates a new AdminService.
// It returns an error if any of the required dependencies are nil.
func NewAdminService(userStore store.UserStore, logger *slog.Logger) (AdminService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &adminServiceImpl{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "admin_service")),
	}, nil
}

// requireAdmin resolves the actor and rejects anyone without the admin role.
func (s *adminServiceImpl) requireAdmin(
	ctx context.Context,
	actorID uuid.UUID,
) (access.Actor, error) {
	actor, err := resolveActor(ctx, s.userStore, actorID)
	if err != nil {
		return access.Actor{}, err
	}
	if actor.IsAnonymous() {
		return access.Actor{}, access.ErrUnauthenticated
	}
	if actor.Role != domain.RoleAdmin {
		return access.Actor{}, access.ErrForbidden
	}
	return actor, nil
}

// ListUsers implements AdminService.ListUsers
func (s *adminServiceImpl) ListUsers(
	ctx context.Context,
	actorID uuid.UUID,
) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		log.Debug("user listing denied", slog.String("actor_id", actorID.String()))
		return nil, err
	}

	users, err := s.userStore.List(ctx)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, NewServiceError("admin", "list_users", "failed to list users", err)
	}

	return users, nil
}

// GetUserWithStats implements AdminService.GetUserWithStats
func (s *adminServiceImpl) GetUserWithStats(
	ctx context.Context,
	actorID, userID uuid.UUID,
) (*UserWithStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		log.Debug("user lookup denied",
			slog.String("actor_id", actorID.String()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("admin", "get_user", "failed to retrieve user", err)
	}

	stats, err := s.userStore.CountResources(ctx, userID)
	if err != nil {
		log.Error("failed to count user resources",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("admin", "get_user", "failed to count resources", err)
	}

	return &UserWithStats{User: user, Stats: stats}, nil
}

// DeleteUser implements AdminService.DeleteUser
func (s *adminServiceImpl) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	actor, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		log.Debug("user deletion denied",
			slog.String("actor_id", actorID.String()),
			slog.String("user_id", userID.String()))
		return err
	}

	if actor.ID == userID {
		log.Warn("admin attempted self-deletion",
			slog.String("actor_id", actorID.String()))
		return ErrSelfDeletion
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return NewServiceError("admin", "delete_user", "failed to delete user", err)
	}

	log.Info("user deleted by admin",
		slog.String("user_id", userID.String()),
		slog.String("actor_id", actorID.String()))
	return nil
}
