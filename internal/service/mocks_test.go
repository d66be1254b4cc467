package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/store"
)

// In-memory store fakes shared by the service tests. They implement the
// store interfaces over plain maps; no goroutine safety is needed because
// each test builds its own instances.

type fakeUserStore struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	s := &fakeUserStore{users: map[uuid.UUID]*domain.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) List(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (s *fakeUserStore) CountResources(
	ctx context.Context,
	id uuid.UUID,
) (*store.UserResourceCounts, error) {
	return &store.UserResourceCounts{}, nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

type fakeCollectionStore struct {
	collections map[uuid.UUID]*domain.Collection
}

func newFakeCollectionStore(collections ...*domain.Collection) *fakeCollectionStore {
	s := &fakeCollectionStore{collections: map[uuid.UUID]*domain.Collection{}}
	for _, c := range collections {
		s.collections[c.ID] = c
	}
	return s
}

func (s *fakeCollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	s.collections[collection.ID] = collection
	return nil
}

func (s *fakeCollectionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Collection, error) {
	collection, ok := s.collections[id]
	if !ok {
		return nil, store.ErrCollectionNotFound
	}
	return collection, nil
}

func (s *fakeCollectionStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Collection, error) {
	owned := []*domain.Collection{}
	for _, collection := range s.collections {
		if collection.OwnerID == ownerID {
			owned = append(owned, collection)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

func (s *fakeCollectionStore) Update(ctx context.Context, collection *domain.Collection) error {
	if _, ok := s.collections[collection.ID]; !ok {
		return store.ErrCollectionNotFound
	}
	s.collections[collection.ID] = collection
	return nil
}

func (s *fakeCollectionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.collections[id]; !ok {
		return store.ErrCollectionNotFound
	}
	delete(s.collections, id)
	return nil
}

func (s *fakeCollectionStore) WithTx(tx *sql.Tx) store.CollectionStore { return s }

type fakeCardStore struct {
	cards map[uuid.UUID]*domain.Card
}

func newFakeCardStore(cards ...*domain.Card) *fakeCardStore {
	s := &fakeCardStore{cards: map[uuid.UUID]*domain.Card{}}
	for _, c := range cards {
		s.cards[c.ID] = c
	}
	return s
}

func (s *fakeCardStore) Create(ctx context.Context, card *domain.Card) error {
	s.cards[card.ID] = card
	return nil
}

func (s *fakeCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (s *fakeCardStore) ListByCollection(
	ctx context.Context,
	collectionID uuid.UUID,
) ([]*domain.Card, error) {
	cards := []*domain.Card{}
	for _, card := range s.cards {
		if card.CollectionID == collectionID {
			cards = append(cards, card)
		}
	}
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].CreatedAt.Before(cards[j].CreatedAt)
	})
	return cards, nil
}

func (s *fakeCardStore) Update(ctx context.Context, card *domain.Card) error {
	if _, ok := s.cards[card.ID]; !ok {
		return store.ErrCardNotFound
	}
	s.cards[card.ID] = card
	return nil
}

func (s *fakeCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *fakeCardStore) WithTx(tx *sql.Tx) store.CardStore { return s }

// mustNewUser builds a valid user for tests, panicking on validation failure.
func mustNewUser(email string, role domain.Role) *domain.User {
	user, err := domain.NewUser(email, "Test", "User", "a strong enough password")
	if err != nil {
		panic(err)
	}
	user.HashedPassword = "$2a$10$testhashtesthashtesthash"
	user.Password = ""
	user.Role = role
	return user
}
