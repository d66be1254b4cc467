package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/recallhq/flashcard-api/internal/config"
	"github.com/recallhq/flashcard-api/internal/domain/srs"
	"github.com/recallhq/flashcard-api/internal/platform/postgres"
	"github.com/recallhq/flashcard-api/internal/service"
	"github.com/recallhq/flashcard-api/internal/service/auth"
	"github.com/recallhq/flashcard-api/internal/service/review"
)

// application holds the configured dependencies of the server. It is built
// once at startup and owns no request-scoped state.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	userService       service.UserService
	collectionService service.CollectionService
	cardService       service.CardService
	adminService      service.AdminService
	reviewService     review.ReviewService
}

// newApplication wires stores, services, and auth components together.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, logger)
	collectionStore := postgres.NewPostgresCollectionStore(db, logger)
	cardStore := postgres.NewPostgresCardStore(db, logger)
	reviewStore := postgres.NewPostgresReviewStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	bcryptVerifier := auth.NewBcryptVerifier(cfg.Auth.BcryptCost)

	userService, err := service.NewUserService(userStore, bcryptVerifier, bcryptVerifier, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	collectionService, err := service.NewCollectionService(collectionStore, userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection service: %w", err)
	}

	cardService, err := service.NewCardService(cardStore, collectionStore, userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	adminService, err := service.NewAdminService(userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin service: %w", err)
	}

	reviewService, err := review.NewReviewService(
		cardStore,
		collectionStore,
		reviewStore,
		userStore,
		srs.NewDefaultService(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	return &application{
		config:            cfg,
		logger:            logger,
		db:                db,
		jwtService:        jwtService,
		userService:       userService,
		collectionService: collectionService,
		cardService:       cardService,
		adminService:      adminService,
		reviewService:     reviewService,
	}, nil
}
