package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/domain/access"
	"github.com/recallhq/flashcard-api/internal/store"
)

func mustNewCard(collectionID uuid.UUID, front, back string) *domain.Card {
	card, err := domain.NewCard(collectionID, front, back, "", "")
	if err != nil {
		panic(err)
	}
	return card
}

func newTestCardService(
	t *testing.T,
	cards store.CardStore,
	collections store.CollectionStore,
	users store.UserStore,
) CardService {
	t.Helper()
	service, err := NewCardService(cards, collections, users, nil)
	require.NoError(t, err)
	return service
}

func TestCardServiceCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	owner := mustNewUser("owner@example.com", domain.RoleUser)
	collection := mustNewCollection(owner.ID, "Deck", false)
	cardStore := newFakeCardStore()
	service := newTestCardService(
		t, cardStore, newFakeCollectionStore(collection), newFakeUserStore(owner))

	card, err := service.Create(ctx, owner.ID, collection.ID, CreateCardParams{
		FrontText: "¿Cómo estás?",
		BackText:  "How are you?",
		FrontURL:  "https://example.com/front.png",
	})
	require.NoError(t, err)

	assert.Equal(t, collection.ID, card.CollectionID)
	assert.Equal(t, "https://example.com/front.png", card.FrontURL)

	stored, err := cardStore.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "¿Cómo estás?", stored.FrontText)
}

func TestCardServiceCreateAuthorization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	owner := mustNewUser("owner@example.com", domain.RoleUser)
	stranger := mustNewUser("stranger@example.com", domain.RoleUser)
	admin := mustNewUser("admin@example.com", domain.RoleAdmin)

	// Public visibility grants reads, never card creation.
	collection := mustNewCollection(owner.ID, "Public Deck", true)
	service := newTestCardService(t, newFakeCardStore(),
		newFakeCollectionStore(collection), newFakeUserStore(owner, stranger, admin))

	params := CreateCardParams{FrontText: "front", BackText: "back"}

	_, err := service.Create(ctx, stranger.ID, collection.ID, params)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = service.Create(ctx, admin.ID, collection.ID, params)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = service.Create(ctx, uuid.Nil, collection.ID, params)
	assert.ErrorIs(t, err, access.ErrUnauthenticated)

	_, err = service.Create(ctx, owner.ID, uuid.New(), params)
	assert.ErrorIs(t, err, store.ErrCollectionNotFound)
}

func TestCardServiceGetAuthorization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	owner := mustNewUser("owner@example.com", domain.RoleUser)
	stranger := mustNewUser("stranger@example.com", domain.RoleUser)
	admin := mustNewUser("admin@example.com", domain.RoleAdmin)
	userStore := newFakeUserStore(owner, stranger, admin)

	privateCollection := mustNewCollection(owner.ID, "Private Deck", false)
	privateCard := mustNewCard(privateCollection.ID, "front", "back")

	publicCollection := mustNewCollection(owner.ID, "Public Deck", true)
	publicCard := mustNewCard(publicCollection.ID, "front", "back")

	service := newTestCardService(t,
		newFakeCardStore(privateCard, publicCard),
		newFakeCollectionStore(privateCollection, publicCollection),
		userStore)

	testCases := []struct {
		name        string
		actorID     uuid.UUID
		cardID      uuid.UUID
		expectedErr error
	}{
		{
			name:    "owner reads card in private collection",
			actorID: owner.ID,
			cardID:  privateCard.ID,
		},
		{
			name:    "stranger reads card in public collection",
			actorID: stranger.ID,
			cardID:  publicCard.ID,
		},
		{
			name:        "stranger denied on card in private collection",
			actorID:     stranger.ID,
			cardID:      privateCard.ID,
			expectedErr: access.ErrForbidden,
		},
		{
			name:    "admin reads card in private collection",
			actorID: admin.ID,
			cardID:  privateCard.ID,
		},
		{
			name:        "anonymous denied even on public card",
			actorID:     uuid.Nil,
			cardID:      publicCard.ID,
			expectedErr: access.ErrUnauthenticated,
		},
		{
			name:        "unknown card",
			actorID:     owner.ID,
			cardID:      uuid.New(),
			expectedErr: store.ErrCardNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			card, err := service.Get(ctx, tc.actorID, tc.cardID)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cardID, card.ID)
		})
	}
}

func TestCardServiceList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	owner := mustNewUser("owner@example.com", domain.RoleUser)
	collection := mustNewCollection(owner.ID, "Deck", false)
	first := mustNewCard(collection.ID, "first", "back")
	second := mustNewCard(collection.ID, "second", "back")
	second.CreatedAt = first.CreatedAt.Add(1)
	service := newTestCardService(t, newFakeCardStore(first, second),
		newFakeCollectionStore(collection), newFakeUserStore(owner))

	cards, err := service.List(ctx, owner.ID, collection.ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, first.ID, cards[0].ID)
	assert.Equal(t, second.ID, cards[1].ID)
}

func TestCardServiceUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	owner := mustNewUser("owner@example.com", domain.RoleUser)
	collection := mustNewCollection(owner.ID, "Deck", false)
	card, err := domain.NewCard(
		collection.ID, "old front", "back", "https://example.com/img.png", "")
	require.NoError(t, err)
	service := newTestCardService(t, newFakeCardStore(card),
		newFakeCollectionStore(collection), newFakeUserStore(owner))

	newFront := "new front"
	clearURL := ""
	updated, err := service.Update(ctx, owner.ID, card.ID, UpdateCardParams{
		FrontText: &newFront,
		FrontURL:  &clearURL,
	})
	require.NoError(t, err)

	assert.Equal(t, "new front", updated.FrontText)
	assert.Equal(t, "back", updated.BackText, "unset fields stay unchanged")
	assert.Empty(t, updated.FrontURL, "explicit empty string clears the URL")
}

func TestCardServiceUpdateValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	owner := mustNewUser("owner@example.com", domain.RoleUser)
	collection := mustNewCollection(owner.ID, "Deck", false)
	card := mustNewCard(collection.ID, "front", "back")
	service := newTestCardService(t, newFakeCardStore(card),
		newFakeCollectionStore(collection), newFakeUserStore(owner))

	empty := ""
	_, err := service.Update(ctx, owner.ID, card.ID, UpdateCardParams{FrontText: &empty})
	assert.ErrorIs(t, err, domain.ErrCardFrontEmpty)
}

func TestCardServiceWriteIsOwnerExclusive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	owner := mustNewUser("owner@example.com", domain.RoleUser)
	admin := mustNewUser("admin@example.com", domain.RoleAdmin)
	collection := mustNewCollection(owner.ID, "Deck", true)
	card := mustNewCard(collection.ID, "front", "back")
	service := newTestCardService(t, newFakeCardStore(card),
		newFakeCollectionStore(collection), newFakeUserStore(owner, admin))

	front := "hijacked"
	_, err := service.Update(ctx, admin.ID, card.ID, UpdateCardParams{FrontText: &front})
	assert.ErrorIs(t, err, access.ErrForbidden)

	err = service.Delete(ctx, admin.ID, card.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)
}

func TestCardServiceDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	owner := mustNewUser("owner@example.com", domain.RoleUser)
	collection := mustNewCollection(owner.ID, "Deck", false)
	card := mustNewCard(collection.ID, "front", "back")
	cardStore := newFakeCardStore(card)
	service := newTestCardService(t, cardStore,
		newFakeCollectionStore(collection), newFakeUserStore(owner))

	require.NoError(t, service.Delete(ctx, owner.ID, card.ID))

	_, err := cardStore.GetByID(ctx, card.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}
