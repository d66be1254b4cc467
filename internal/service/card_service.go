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

// CreateCardParams carries the fields needed to create a card.
type CreateCardParams struct {
	FrontText string
	BackText  string
	FrontURL  string
	BackURL   string
}

// UpdateCardParams carries the mutable card fields. Nil pointers leave the
// corresponding field unchanged; an explicit empty string clears a URL.
type UpdateCardParams struct {
	FrontText *string
	BackText  *string
	FrontURL  *string
	BackURL   *string
}

// CardService provides card management. A card has no owner or visibility of
// its own; every authorization decision flows through its parent collection.
type CardService interface {
	// Create adds a card to a collection the actor owns.
	Create(
		ctx context.Context,
		actorID, collectionID uuid.UUID,
		params CreateCardParams,
	) (*domain.Card, error)

	// Get retrieves a card whose parent collection the actor may read.
	Get(ctx context.Context, actorID, cardID uuid.UUID) (*domain.Card, error)

	// List retrieves the cards of a collection the actor may read, in
	// insertion order.
	List(ctx context.Context, actorID, collectionID uuid.UUID) ([]*domain.Card, error)

	// Update applies the given changes to a card in a collection the actor owns.
	Update(
		ctx context.Context,
		actorID, cardID uuid.UUID,
		params UpdateCardParams,
	) (*domain.Card, error)

	// Delete removes a card from a collection the actor owns, along with the
	// card's reviews.
	Delete(ctx context.Context, actorID, cardID uuid.UUID) error
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	cardStore       store.CardStore
	collectionStore store.CollectionStore
	userStore       store.UserStore
	logger          *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	cardStore store.CardStore,
	collectionStore store.CollectionStore,
	userStore store.UserStore,
	logger *slog.Logger,
) (CardService, error) {
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
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

	return &cardServiceImpl{
		cardStore:       cardStore,
		collectionStore: collectionStore,
		userStore:       userStore,
		logger:          logger.With(slog.String("component", "card_service")),
	}, nil
}

// authorizeCollection loads a collection and resolves the requested access
// level against it for the given actor.
func (s *cardServiceImpl) authorizeCollection(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
	level access.Level,
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
		log.Error("failed to retrieve parent collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, NewServiceError("card", "authorize", "failed to retrieve collection", err)
	}

	if err := access.Resolve(actor, collection.OwnerID, collection.IsPublic, level); err != nil {
		log.Debug("card access denied via parent collection",
			slog.String("collection_id", collectionID.String()),
			slog.String("actor_id", actorID.String()))
		return nil, err
	}

	return collection, nil
}

// Create implements CardService.Create
func (s *cardServiceImpl) Create(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
	params CreateCardParams,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.authorizeCollection(ctx, actorID, collectionID, access.Write); err != nil {
		return nil, err
	}

	card, err := domain.NewCard(
		collectionID, params.FrontText, params.BackText, params.FrontURL, params.BackURL)
	if err != nil {
		log.Warn("card creation rejected by validation",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, err
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return nil, NewServiceError("card", "create", "failed to create card", err)
	}

	return card, nil
}

// Get implements CardService.Get
func (s *cardServiceImpl) Get(
	ctx context.Context,
	actorID, cardID uuid.UUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to retrieve card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewServiceError("card", "get", "failed to retrieve card", err)
	}

	if _, err := s.authorizeCollection(ctx, actorID, card.CollectionID, access.Read); err != nil {
		return nil, err
	}

	return card, nil
}

// List implements CardService.List
func (s *cardServiceImpl) List(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.authorizeCollection(ctx, actorID, collectionID, access.Read); err != nil {
		return nil, err
	}

	cards, err := s.cardStore.ListByCollection(ctx, collectionID)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, NewServiceError("card", "list", "failed to list cards", err)
	}

	return cards, nil
}

// Update implements CardService.Update
func (s *cardServiceImpl) Update(
	ctx context.Context,
	actorID, cardID uuid.UUID,
	params UpdateCardParams,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to retrieve card for update",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewServiceError("card", "update", "failed to retrieve card", err)
	}

	if _, err := s.authorizeCollection(ctx, actorID, card.CollectionID, access.Write); err != nil {
		return nil, err
	}

	if params.FrontText != nil {
		card.FrontText = *params.FrontText
	}
	if params.BackText != nil {
		card.BackText = *params.BackText
	}
	if params.FrontURL != nil {
		card.FrontURL = *params.FrontURL
	}
	if params.BackURL != nil {
		card.BackURL = *params.BackURL
	}
	card.UpdatedAt = time.Now().UTC()

	if err := card.Validate(); err != nil {
		log.Warn("card update rejected by validation",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, err
	}

	if err := s.cardStore.Update(ctx, card); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewServiceError("card", "update", "failed to update card", err)
	}

	return card, nil
}

// Delete implements CardService.Delete
func (s *cardServiceImpl) Delete(ctx context.Context, actorID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		log.Error("failed to retrieve card for delete",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return NewServiceError("card", "delete", "failed to retrieve card", err)
	}

	if _, err := s.authorizeCollection(ctx, actorID, card.CollectionID, access.Write); err != nil {
		return err
	}

	if err := s.cardStore.Delete(ctx, cardID); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return NewServiceError("card", "delete", "failed to delete card", err)
	}

	log.Info("card deleted",
		slog.String("card_id", cardID.String()),
		slog.String("actor_id", actorID.String()))
	return nil
}
