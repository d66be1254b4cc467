package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/domain/access"
	"github.com/recallhq/flashcard-api/internal/domain/srs"
	"github.com/recallhq/flashcard-api/internal/platform/logger"
	"github.com/recallhq/flashcard-api/internal/store"
)

// reviewServiceImpl implements the ReviewService interface
type reviewServiceImpl struct {
	cardStore       store.CardStore
	collectionStore store.CollectionStore
	reviewStore     store.ReviewStore
	userStore       store.UserStore
	scheduler       srs.Service
	logger          *slog.Logger
	timeFunc        func() time.Time // Injectable for testing
}

// Ensure reviewServiceImpl implements ReviewService interface
var _ ReviewService = (*reviewServiceImpl)(nil)

// NewReviewService creates a new ReviewService.
// It returns an error if any of the required dependencies are nil.
func NewReviewService(
	cardStore store.CardStore,
	collectionStore store.CollectionStore,
	reviewStore store.ReviewStore,
	userStore store.UserStore,
	scheduler srs.Service,
	logger *slog.Logger,
) (ReviewService, error) {
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
	if collectionStore == nil {
		return nil, domain.NewValidationError(
			"collectionStore", "cannot be nil", domain.ErrValidation)
	}
	if reviewStore == nil {
		return nil, domain.NewValidationError("reviewStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if scheduler == nil {
		return nil, domain.NewValidationError("scheduler", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		cardStore:       cardStore,
		collectionStore: collectionStore,
		reviewStore:     reviewStore,
		userStore:       userStore,
		scheduler:       scheduler,
		logger:          logger.With(slog.String("component", "review_service")),
		timeFunc:        time.Now,
	}, nil
}

// resolveActor builds the access-control actor, reading the role from the
// user store so a role change takes effect on the next request.
func (s *reviewServiceImpl) resolveActor(
	ctx context.Context,
	actorID uuid.UUID,
) (access.Actor, error) {
	if actorID == uuid.Nil {
		return access.Actor{}, nil
	}

	user, err := s.userStore.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return access.Actor{}, access.ErrUnauthenticated
		}
		return access.Actor{}, fmt.Errorf("failed to resolve actor: %w", err)
	}

	return access.Actor{ID: user.ID, Role: user.Role}, nil
}

// SubmitReview implements ReviewService.SubmitReview
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	actorID, cardID uuid.UUID,
	success bool,
) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to retrieve card for review",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, fmt.Errorf("failed to retrieve card: %w", err)
	}

	collection, err := s.collectionStore.GetByID(ctx, card.CollectionID)
	if err != nil {
		log.Error("failed to retrieve parent collection for review",
			slog.String("error", err.Error()),
			slog.String("collection_id", card.CollectionID.String()))
		return nil, fmt.Errorf("failed to retrieve collection: %w", err)
	}

	if err := access.AuthorizeRead(actor, collection.OwnerID, collection.IsPublic); err != nil {
		log.Debug("review submission denied",
			slog.String("card_id", cardID.String()),
			slog.String("actor_id", actorID.String()))
		return nil, err
	}

	existing, err := s.reviewStore.Get(ctx, cardID, actor.ID)
	if err != nil {
		if !errors.Is(err, store.ErrReviewNotFound) {
			log.Error("failed to load existing review",
				slog.String("error", err.Error()),
				slog.String("card_id", cardID.String()),
				slog.String("user_id", actor.ID.String()))
			return nil, fmt.Errorf("failed to load existing review: %w", err)
		}
		existing = nil
	}

	now := s.timeFunc().UTC()
	schedule, err := s.scheduler.RecordOutcome(existing, success, now)
	if err != nil {
		log.Error("scheduling rejected stored review state",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()),
			slog.String("user_id", actor.ID.String()))
		return nil, err
	}

	review := existing
	if review == nil {
		review, err = domain.NewReview(cardID, actor.ID, now)
		if err != nil {
			return nil, err
		}
	}
	review.Level = schedule.Level
	review.LastReviewedAt = schedule.LastReviewedAt
	review.UpdatedAt = now

	if err := s.reviewStore.Upsert(ctx, review); err != nil {
		log.Error("failed to persist review",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()),
			slog.String("user_id", actor.ID.String()))
		return nil, fmt.Errorf("failed to persist review: %w", err)
	}

	log.Info("review recorded",
		slog.String("card_id", cardID.String()),
		slog.String("user_id", actor.ID.String()),
		slog.Bool("success", success),
		slog.Int("level", review.Level),
		slog.Time("next_due_at", schedule.NextDueAt))

	return &Result{Review: review, NextDueAt: schedule.NextDueAt}, nil
}

// DueCards implements ReviewService.DueCards
func (s *reviewServiceImpl) DueCards(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
	now time.Time,
) ([]srs.DueCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	collection, err := s.collectionStore.GetByID(ctx, collectionID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to retrieve collection for due-set evaluation",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, fmt.Errorf("failed to retrieve collection: %w", err)
	}

	if err := access.AuthorizeRead(actor, collection.OwnerID, collection.IsPublic); err != nil {
		log.Debug("due-set evaluation denied",
			slog.String("collection_id", collectionID.String()),
			slog.String("actor_id", actorID.String()))
		return nil, err
	}

	cards, err := s.cardStore.ListByCollection(ctx, collectionID)
	if err != nil {
		log.Error("failed to list cards for due-set evaluation",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	reviews, err := s.reviewStore.GetByUser(ctx, actor.ID)
	if err != nil {
		log.Error("failed to load reviews for due-set evaluation",
			slog.String("error", err.Error()),
			slog.String("user_id", actor.ID.String()))
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	if now.IsZero() {
		now = s.timeFunc()
	}

	due := s.scheduler.DueCards(cards, reviews, now.UTC())

	log.Debug("due-set evaluated",
		slog.String("collection_id", collectionID.String()),
		slog.String("user_id", actor.ID.String()),
		slog.Int("card_count", len(cards)),
		slog.Int("due_count", len(due)))

	return due, nil
}
