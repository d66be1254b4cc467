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

// PostgresCollectionStore implements the store.CollectionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCollectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCollectionStore creates a new PostgreSQL implementation of the CollectionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCollectionStore(db store.DBTX, logger *slog.Logger) *PostgresCollectionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCollectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "collection_store")),
	}
}

// Ensure PostgresCollectionStore implements store.CollectionStore interface
var _ store.CollectionStore = (*PostgresCollectionStore)(nil)

// WithTx implements store.CollectionStore.WithTx
func (s *PostgresCollectionStore) WithTx(tx *sql.Tx) store.CollectionStore {
	return &PostgresCollectionStore{db: tx, logger: s.logger}
}

// Create implements store.CollectionStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist (foreign key violation).
func (s *PostgresCollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := collection.Validate(); err != nil {
		log.Warn("collection validation failed during create",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return err
	}

	query := `
		INSERT INTO collections (id, owner_id, title, description, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		collection.ID,
		collection.OwnerID,
		collection.Title,
		collection.Description,
		collection.IsPublic,
		collection.CreatedAt,
		collection.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during collection creation",
				slog.String("error", err.Error()),
				slog.String("collection_id", collection.ID.String()),
				slog.String("owner_id", collection.OwnerID.String()))
			return fmt.Errorf("%w: owner with ID %s not found",
				store.ErrInvalidEntity, collection.OwnerID)
		}

		log.Error("failed to create collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return err
	}

	log.Info("collection created successfully",
		slog.String("collection_id", collection.ID.String()),
		slog.String("owner_id", collection.OwnerID.String()),
		slog.Bool("is_public", collection.IsPublic))
	return nil
}

// GetByID implements store.CollectionStore.GetByID
// Returns store.ErrCollectionNotFound if the collection does not exist.
func (s *PostgresCollectionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, description, is_public, created_at, updated_at
		FROM collections
		WHERE id = $1
	`

	var collection domain.Collection
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&collection.ID,
		&collection.OwnerID,
		&collection.Title,
		&collection.Description,
		&collection.IsPublic,
		&collection.CreatedAt,
		&collection.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("collection not found", slog.String("collection_id", id.String()))
			return nil, store.ErrCollectionNotFound
		}
		log.Error("failed to get collection by ID",
			slog.String("error", err.Error()),
			slog.String("collection_id", id.String()))
		return nil, err
	}

	return &collection, nil
}

// ListByOwner implements store.CollectionStore.ListByOwner
func (s *PostgresCollectionStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, description, is_public, created_at, updated_at
		FROM collections
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list collections by owner",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	collections := []*domain.Collection{}
	for rows.Next() {
		var collection domain.Collection
		err := rows.Scan(
			&collection.ID,
			&collection.OwnerID,
			&collection.Title,
			&collection.Description,
			&collection.IsPublic,
			&collection.CreatedAt,
			&collection.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan collection row", slog.String("error", err.Error()))
			return nil, err
		}
		collections = append(collections, &collection)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return collections, nil
}

// Update implements store.CollectionStore.Update
// Returns store.ErrCollectionNotFound if the collection does not exist.
func (s *PostgresCollectionStore) Update(ctx context.Context, collection *domain.Collection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := collection.Validate(); err != nil {
		log.Warn("collection validation failed during update",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return err
	}

	query := `
		UPDATE collections
		SET title = $1, description = $2, is_public = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		collection.Title,
		collection.Description,
		collection.IsPublic,
		collection.UpdatedAt,
		collection.ID,
	)

	if err != nil {
		log.Error("failed to update collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("collection not found for update",
			slog.String("collection_id", collection.ID.String()))
		return store.ErrCollectionNotFound
	}

	log.Info("collection updated successfully",
		slog.String("collection_id", collection.ID.String()))
	return nil
}

// Delete implements store.CollectionStore.Delete
// The schema cascades the deletion to the collection's cards and their reviews.
// Returns store.ErrCollectionNotFound if the collection does not exist.
func (s *PostgresCollectionStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM collections WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("collection_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("collection not found for delete", slog.String("collection_id", id.String()))
		return store.ErrCollectionNotFound
	}

	log.Info("collection deleted successfully", slog.String("collection_id", id.String()))
	return nil
}
