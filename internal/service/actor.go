package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain/access"
	"github.com/recallhq/flashcard-api/internal/store"
)

// resolveActor builds the access-control actor for a request. The role comes
// from the user store on every call rather than from token claims, so a role
// change takes effect on the next request instead of at token expiry.
//
// A zero actor ID yields the anonymous actor. A non-zero ID that no longer
// exists (a token outliving its account) is treated as unauthenticated.
func resolveActor(
	ctx context.Context,
	users store.UserStore,
	actorID uuid.UUID,
) (access.Actor, error) {
	if actorID == uuid.Nil {
		return access.Actor{}, nil
	}

	user, err := users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return access.Actor{}, access.ErrUnauthenticated
		}
		return access.Actor{}, err
	}

	return access.Actor{ID: user.ID, Role: user.Role}, nil
}
