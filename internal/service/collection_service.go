package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/domain/access"
	"github.com/recallhq/flashcard-api/internal/platform/logger"
	"github.com/recallhq/flashcard-api/internal/store"
)

// CreateCollectionParams carries the fields needed to create a collection.
type CreateCollectionParams struct {
	Title       string
	Description string
	IsPublic    bool
}

// UpdateCollectionParams carries the mutable collection fields. Nil pointers
// leave the corresponding field unchanged.
type UpdateCollectionParams struct {
	Title       *string
	Description *string
	IsPublic    *bool
}

// CollectionService provides collection management with per-operation
// authorization. Reads are allowed for public collections, the owner, and
// admins; writes are owner-exclusive.
type CollectionService interface {
	// Create creates a new collection owned by the actor.
	Create(
		ctx context.Context,
		actorID uuid.UUID,
		params CreateCollectionParams,
	) (*domain.Collection, error)

	// Get retrieves a collection the actor may read.
	Get(ctx context.Context, actorID, collectionID uuid.UUID) (*domain.Collection, error)

	// ListOwned retrieves the collections the actor owns.
	ListOwned(ctx context.Context, actorID uuid.UUID) ([]*domain.Collection, error)

	// Update applies the given changes to a collection the actor owns.
	Update(
		ctx context.Context,
		actorID, collectionID uuid.UUID,
		params UpdateCollectionParams,
	) (*domain.Collection, error)

	// Delete removes a collection the actor owns, along with its cards and
	// their reviews.
	Delete(ctx context.Context, actorID, collectionID uuid.UUID) error
}

// collectionServiceImpl implements the CollectionService interface
type collectionServiceImpl struct {
	collectionStore store.CollectionStore
	userStore       store.UserStore
	logger          *slog.Logger
}

// NewCollectionService creates a new CollectionService.
// It returns an error if any of the required dependencies are nil.
func NewCollectionService(
	collectionStore store.CollectionStore,
	userStore store.UserStore,
	logger *slog.Logger,
) (CollectionService, error) {
	if collectionStore == nil {
		return nil, domain.NewValidationError(
			"collectionStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &collectionServiceImpl{
		collectionStore: collectionStore,
		userStore:       userStore,
		logger:          logger.With(slog.String("component", "collection_service")),
	}, nil
}

// Create implements CollectionService.Create
func (s *collectionServiceImpl) Create(
	ctx context.Context,
	actorID uuid.UUID,
	params CreateCollectionParams,
) (*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	actor, err := resolveActor(ctx, s.userStore, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsAnonymous() {
		return nil, access.ErrUnauthenticated
	}

	collection, err := domain.NewCollection(
		actor.ID, params.Title, params.Description, params.IsPublic)
	if err != nil {
		log.Warn("collection creation rejected by validation",
			slog.String("error", err.Error()),
			slog.String("owner_id", actor.ID.String()))
		return nil, err
	}

	if err := s.collectionStore.Create(ctx, collection); err != nil {
		log.Error("failed to create collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return nil, NewServiceError("collection", "create", "failed to create collection", err)
	}

	return collection, nil
}

// Get implements CollectionService.Get
func (s *collectionServiceImpl) Get(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
) (*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	actor, err := resolveActor(ctx, s.userStore, actorID)
	if err != nil {
		return nil, err
	}

	collection, err := s.collectionStore.GetByID(ctx, collectionID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to retrieve collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, NewServiceError("collection", "get", "failed to retrieve collection", err)
	}

	if err := access.AuthorizeRead(actor, collection.OwnerID, collection.IsPublic); err != nil {
		log.Debug("collection read denied",
			slog.String("collection_id", collectionID.String()),
			slog.String("actor_id", actorID.String()))
		return nil, err
	}

	return collection, nil
}

// ListOwned implements CollectionService.ListOwned
func (s *collectionServiceImpl) ListOwned(
	ctx context.Context,
	actorID uuid.UUID,
) ([]*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	actor, err := resolveActor(ctx, s.userStore, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsAnonymous() {
		return nil, access.ErrUnauthenticated
	}

	collections, err := s.collectionStore.ListByOwner(ctx, actor.ID)
	if err != nil {
		log.Error("failed to list collections",
			slog.String("error", err.Error()),
			slog.String("owner_id", actor.ID.String()))
		return nil, NewServiceError("collection", "list_owned", "failed to list collections", err)
	}

	return collections, nil
}

// Update implements CollectionService.Update
func (s *collectionServiceImpl) Update(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
	params UpdateCollectionParams,
) (*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	actor, err := resolveActor(ctx, s.userStore, actorID)
	if err != nil {
		return nil, err
	}

	collection, err := s.collectionStore.GetByID(ctx, collectionID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to retrieve collection for update",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, NewServiceError("collection", "update", "failed to retrieve collection", err)
	}

	if err := access.AuthorizeWrite(actor, collection.OwnerID); err != nil {
		log.Debug("collection write denied",
			slog.String("collection_id", collectionID.String()),
			slog.String("actor_id", actorID.String()))
		return nil, err
	}

	if params.Title != nil {
		collection.Title = *params.Title
	}
	if params.Description != nil {
		collection.Description = *params.Description
	}
	if params.IsPublic != nil {
		collection.IsPublic = *params.IsPublic
	}
	collection.UpdatedAt = time.Now().UTC()

	if err := collection.Validate(); err != nil {
		log.Warn("collection update rejected by validation",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, err
	}

	if err := s.collectionStore.Update(ctx, collection); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to update collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, NewServiceError("collection", "update", "failed to update collection", err)
	}

	return collection, nil
}

// Delete implements CollectionService.Delete
func (s *collectionServiceImpl) Delete(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	actor, err := resolveActor(ctx, s.userStore, actorID)
	if err != nil {
		return err
	}

	collection, err := s.collectionStore.GetByID(ctx, collectionID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		log.Error("failed to retrieve collection for delete",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return NewServiceError("collection", "delete", "failed to retrieve collection", err)
	}

	if err := access.AuthorizeWrite(actor, collection.OwnerID); err != nil {
		log.Debug("collection delete denied",
			slog.String("collection_id", collectionID.String()),
			slog.String("actor_id", actorID.String()))
		return err
	}

	if err := s.collectionStore.Delete(ctx, collectionID); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		log.Error("failed to delete collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return NewServiceError("collection", "delete", "failed to delete collection", err)
	}

	log.Info("collection deleted",
		slog.String("collection_id", collectionID.String()),
		slog.String("actor_id", actorID.String()))
	return nil
}
