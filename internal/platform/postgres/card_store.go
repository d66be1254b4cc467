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

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{db: tx, logger: s.logger}
}

// Create implements store.CardStore.Create
// Returns store.ErrInvalidEntity if the parent collection does not exist.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO cards (id, collection_id, front_text, back_text, front_url, back_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.CollectionID,
		card.FrontText,
		card.BackText,
		nullString(card.FrontURL),
		nullString(card.BackURL),
		card.CreatedAt,
		card.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during card creation",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()),
				slog.String("collection_id", card.CollectionID.String()))
			return fmt.Errorf("%w: collection with ID %s not found",
				store.ErrInvalidEntity, card.CollectionID)
		}

		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	log.Info("card created successfully",
		slog.String("card_id", card.ID.String()),
		slog.String("collection_id", card.CollectionID.String()))
	return nil
}

// GetByID implements store.CardStore.GetByID
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, collection_id, front_text, back_text, front_url, back_url, created_at, updated_at
		FROM cards
		WHERE id = $1
	`

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, err
	}

	return card, nil
}

// ListByCollection implements store.CardStore.ListByCollection
// Cards come back in insertion order; the due-set evaluator preserves it.
func (s *PostgresCardStore) ListByCollection(
	ctx context.Context,
	collectionID uuid.UUID,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, collection_id, front_text, back_text, front_url, back_url, created_at, updated_at
		FROM cards
		WHERE collection_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, collectionID)
	if err != nil {
		log.Error("failed to list cards by collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cards := []*domain.Card{}
	for rows.Next() {
		var card domain.Card
		var frontURL, backURL sql.NullString
		err := rows.Scan(
			&card.ID,
			&card.CollectionID,
			&card.FrontText,
			&card.BackText,
			&frontURL,
			&backURL,
			&card.CreatedAt,
			&card.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, err
		}
		card.FrontURL = frontURL.String
		card.BackURL = backURL.String
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return cards, nil
}

// Update implements store.CardStore.Update
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE cards
		SET front_text = $1, back_text = $2, front_url = $3, back_url = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		card.FrontText,
		card.BackText,
		nullString(card.FrontURL),
		nullString(card.BackURL),
		card.UpdatedAt,
		card.ID,
	)

	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("card not found for update", slog.String("card_id", card.ID.String()))
		return store.ErrCardNotFound
	}

	log.Info("card updated successfully", slog.String("card_id", card.ID.String()))
	return nil
}

// Delete implements store.CardStore.Delete
// The schema cascades the deletion to the card's reviews.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM cards WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("card not found for delete", slog.String("card_id", id.String()))
		return store.ErrCardNotFound
	}

	log.Info("card deleted successfully", slog.String("card_id", id.String()))
	return nil
}

// scanCard reads a single card row.
func scanCard(row *sql.Row) (*domain.Card, error) {
	var card domain.Card
	var frontURL, backURL sql.NullString

	err := row.Scan(
		&card.ID,
		&card.CollectionID,
		&card.FrontText,
		&card.BackText,
		&frontURL,
		&backURL,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.FrontURL = frontURL.String
	card.BackURL = backURL.String
	return &card, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
