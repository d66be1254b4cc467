package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollection(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	collection, err := NewCollection(ownerID, "Spanish Verbs", "Irregular conjugations", true)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, collection.ID)
	assert.Equal(t, ownerID, collection.OwnerID)
	assert.Equal(t, "Spanish Verbs", collection.Title)
	assert.True(t, collection.IsPublic)
	assert.False(t, collection.CreatedAt.IsZero())
}

func TestCollectionValidate(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	testCases := []struct {
		name        string
		ownerID     uuid.UUID
		title       string
		expectedErr error
	}{
		{
			name:        "missing owner",
			ownerID:     uuid.Nil,
			title:       "ok",
			expectedErr: ErrCollectionOwnerEmpty,
		},
		{
			name:        "empty title",
			ownerID:     ownerID,
			title:       "",
			expectedErr: ErrCollectionTitleEmpty,
		},
		{
			name:        "title too long",
			ownerID:     ownerID,
			title:       strings.Repeat("x", 256),
			expectedErr: ErrCollectionTitleTooLong,
		},
		{
			name:        "title at limit is fine",
			ownerID:     ownerID,
			title:       strings.Repeat("x", 255),
			expectedErr: nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCollection(tc.ownerID, tc.title, "", false)
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}
