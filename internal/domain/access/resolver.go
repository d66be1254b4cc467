// Package access implements the authorization resolver: a pure decision
// function over an actor identity and a resource's ownership and visibility
// facts. The resolver never fetches those facts itself; the calling
// operation obtains them from the store and hands them in. Unifying the
// owner/visibility/role branching here keeps the access rules for
// collections, cards, and reviews from drifting apart.
package access

import (
	"errors"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
)

// Resolution errors. The two DENY outcomes are distinct on purpose: a
// missing identity and an authenticated-but-forbidden actor map to
// different outward-facing failures.
var (
	// ErrUnauthenticated is returned when no actor identity was presented.
	ErrUnauthenticated = errors.New("unauthenticated: no actor identity")

	// ErrForbidden is returned when an authenticated actor fails the
	// ownership/visibility/role check.
	ErrForbidden = errors.New("forbidden: actor may not access this resource")
)

// Level is the kind of access being requested on a resource.
type Level int

// Possible access levels.
const (
	Read Level = iota
	Write
)

// Actor is the identity on whose behalf an operation runs. A zero-value
// Actor represents an unauthenticated caller.
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

// IsAnonymous reports whether the actor carries no identity.
func (a Actor) IsAnonymous() bool {
	return a.ID == uuid.Nil
}

// Resolve decides whether the actor may perform the requested access on a
// resource owned by ownerID with the given visibility. It returns nil on
// ALLOW, ErrUnauthenticated when no identity was presented, and
// ErrForbidden otherwise.
//
// Read is allowed for public resources, the owner, and admins. Write is
// owner-exclusive: the admin role never grants write on another user's
// resource, and visibility is irrelevant.
func Resolve(actor Actor, ownerID uuid.UUID, isPublic bool, level Level) error {
	if actor.IsAnonymous() {
		return ErrUnauthenticated
	}

	switch level {
	case Read:
		if isPublic || actor.ID == ownerID || actor.Role == domain.RoleAdmin {
			return nil
		}
	case Write:
		if actor.ID == ownerID {
			return nil
		}
	}

	return ErrForbidden
}

// AuthorizeRead resolves read access to a resource with the given owner
// and visibility.
func AuthorizeRead(actor Actor, ownerID uuid.UUID, isPublic bool) error {
	return Resolve(actor, ownerID, isPublic, Read)
}

// AuthorizeWrite resolves write access to a resource with the given owner.
// Visibility plays no part in write resolution.
func AuthorizeWrite(actor Actor, ownerID uuid.UUID) error {
	return Resolve(actor, ownerID, false, Write)
}
