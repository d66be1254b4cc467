package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/api/shared"
	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/domain/srs"
	"github.com/recallhq/flashcard-api/internal/service"
	"github.com/recallhq/flashcard-api/internal/service/review"
)

// Stub services with canned results for handler tests. Each field pairs a
// return value with the error for the corresponding method.

type stubUserService struct {
	registerUser *domain.User
	registerErr  error
	authUser     *domain.User
	authErr      error
	getUser      *domain.User
	getErr       error
}

var _ service.UserService = (*stubUserService)(nil)

func (s *stubUserService) Register(
	ctx context.Context,
	params service.RegisterParams,
) (*domain.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubUserService) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	return s.authUser, s.authErr
}

func (s *stubUserService) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*domain.User, error) {
	return s.getUser, s.getErr
}

type stubCollectionService struct {
	collection *domain.Collection
	list       []*domain.Collection
	err        error

	lastParams service.UpdateCollectionParams
}

var _ service.CollectionService = (*stubCollectionService)(nil)

func (s *stubCollectionService) Create(
	ctx context.Context,
	actorID uuid.UUID,
	params service.CreateCollectionParams,
) (*domain.Collection, error) {
	return s.collection, s.err
}

func (s *stubCollectionService) Get(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
) (*domain.Collection, error) {
	return s.collection, s.err
}

func (s *stubCollectionService) ListOwned(
	ctx context.Context,
	actorID uuid.UUID,
) ([]*domain.Collection, error) {
	return s.list, s.err
}

func (s *stubCollectionService) Update(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
	params service.UpdateCollectionParams,
) (*domain.Collection, error) {
	s.lastParams = params
	return s.collection, s.err
}

func (s *stubCollectionService) Delete(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
) error {
	return s.err
}

type stubReviewService struct {
	submitResult *review.Result
	submitErr    error
	dueCards     []srs.DueCard
	dueErr       error

	// Captured arguments from the last call
	lastCardID  uuid.UUID
	lastSuccess bool
	lastDueAt   time.Time
}

var _ review.ReviewService = (*stubReviewService)(nil)

func (s *stubReviewService) SubmitReview(
	ctx context.Context,
	actorID, cardID uuid.UUID,
	success bool,
) (*review.Result, error) {
	s.lastCardID = cardID
	s.lastSuccess = success
	return s.submitResult, s.submitErr
}

func (s *stubReviewService) DueCards(
	ctx context.Context,
	actorID, collectionID uuid.UUID,
	now time.Time,
) ([]srs.DueCard, error) {
	s.lastDueAt = now
	return s.dueCards, s.dueErr
}

// withUserID returns a copy of the request with the user ID in its context,
// the way the authentication middleware would place it.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// withPathParam returns a copy of the request with a chi URL parameter set,
// so handlers can be exercised without a full router.
func withPathParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx)
	return r.WithContext(ctx)
}
