package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/platform/logger"
	"github.com/recallhq/flashcard-api/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// WithTx implements store.ReviewStore.WithTx
func (s *PostgresReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{db: tx, logger: s.logger}
}

// Get implements store.ReviewStore.Get
// Returns store.ErrReviewNotFound if the (card, user) pair has never been reviewed.
func (s *PostgresReviewStore) Get(
	ctx context.Context,
	cardID, userID uuid.UUID,
) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT card_id, user_id, level, last_reviewed_at, created_at, updated_at
		FROM reviews
		WHERE card_id = $1 AND user_id = $2
	`

	var review domain.Review
	err := s.db.QueryRowContext(ctx, query, cardID, userID).Scan(
		&review.CardID,
		&review.UserID,
		&review.Level,
		&review.LastReviewedAt,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("review not found",
				slog.String("card_id", cardID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrReviewNotFound
		}
		log.Error("failed to get review",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return &review, nil
}

// GetByUser implements store.ReviewStore.GetByUser
// It returns all of a user's reviews keyed by card ID.
func (s *PostgresReviewStore) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
) (map[uuid.UUID]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT card_id, user_id, level, last_reviewed_at, created_at, updated_at
		FROM reviews
		WHERE user_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query reviews by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	reviews := map[uuid.UUID]*domain.Review{}
	for rows.Next() {
		var review domain.Review
		err := rows.Scan(
			&review.CardID,
			&review.UserID,
			&review.Level,
			&review.LastReviewedAt,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan review row", slog.String("error", err.Error()))
			return nil, err
		}
		reviews[review.CardID] = &review
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return reviews, nil
}

// Upsert implements store.ReviewStore.Upsert
// The write is a single atomic INSERT ... ON CONFLICT DO UPDATE keyed on
// the unique (card_id, user_id) pair, so two concurrent reviews of the
// same pair serialize in the database and neither level transition is
// silently lost.
// Returns store.ErrInvalidEntity if the card or user does not exist.
func (s *PostgresReviewStore) Upsert(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("card_id", review.CardID.String()),
			slog.String("user_id", review.UserID.String()))
		return err
	}

	query := `
		INSERT INTO reviews (card_id, user_id, level, last_reviewed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (card_id, user_id) DO UPDATE
		SET level = EXCLUDED.level,
		    last_reviewed_at = EXCLUDED.last_reviewed_at,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.CardID,
		review.UserID,
		review.Level,
		review.LastReviewedAt,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during review upsert",
				slog.String("error", err.Error()),
				slog.String("card_id", review.CardID.String()),
				slog.String("user_id", review.UserID.String()))
			return fmt.Errorf("%w: card %s or user %s not found",
				store.ErrInvalidEntity, review.CardID, review.UserID)
		}
		if isCheckViolation(err) {
			// The domain validated the level above, so a check violation
			// here means the invariant and the schema disagree.
			log.Error("check constraint violation during review upsert",
				slog.String("error", err.Error()),
				slog.String("card_id", review.CardID.String()),
				slog.String("user_id", review.UserID.String()),
				slog.Int("level", review.Level))
			return fmt.Errorf("%w: level %d rejected by schema",
				domain.ErrInvalidState, review.Level)
		}

		log.Error("failed to upsert review",
			slog.String("error", err.Error()),
			slog.String("card_id", review.CardID.String()),
			slog.String("user_id", review.UserID.String()))
		return err
	}

	log.Info("review upserted successfully",
		slog.String("card_id", review.CardID.String()),
		slog.String("user_id", review.UserID.String()),
		slog.Int("level", review.Level))
	return nil
}
