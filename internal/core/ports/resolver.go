package ports

import (
	"context"

	"github.com/roamstead/camper-rentals/internal/core/domain"
)

// SessionResolver is the one interface UI-facing consumers use for the
// session/profile resolution flow. Implementations publish every state
// transition atomically: subscribers never observe a half-updated state.
type SessionResolver interface {
	// Resolve re-derives the resolution state from the given provider
	// session. A nil session always yields Unauthenticated. At most one
	// profile lookup is in flight per subject; a repeat trigger for the
	// same subject collapses to the current state.
	Resolve(ctx context.Context, session *domain.Session) domain.ResolutionState

	// CompleteProfileSetup is valid only from NeedsProfile. On success the
	// store's echoed row becomes the Resolved state; on failure the state
	// is unchanged and a typed error is returned.
	CompleteProfileSetup(ctx context.Context, name, role string) (domain.ResolutionState, error)

	// SignOut transitions any state to Unauthenticated and discards any
	// in-flight lookup result on arrival.
	SignOut() domain.ResolutionState

	Current() domain.ResolutionState

	// Subscribe registers fn for every published state. The returned
	// function unsubscribes.
	Subscribe(fn func(domain.ResolutionState)) (unsubscribe func())
}

// SessionEvent is a session-change notification pushed by the identity
// provider. A nil Session is a sign-out for SubjectID.
type SessionEvent struct {
	SubjectID string
	Session   *domain.Session
}
