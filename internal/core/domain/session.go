package domain

import "strings"

// Session is the authenticated session value received from the identity
// provider. A nil *Session means "signed out".
type Session struct {
	SubjectID string
	Email     string
	// Provider metadata, best effort. Any field may be empty.
	FullName   string
	Name       string
	AvatarURL  string
	PictureURL string
}

// PendingIdentity carries provider-derived data held while a signed-in
// identity has no profile row yet.
type PendingIdentity struct {
	SubjectID   string `json:"subject_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar,omitempty"`
	// PreferredRole is the "become an owner" hint captured before
	// authentication, empty when absent or expired.
	PreferredRole string `json:"preferred_role,omitempty"`
}

// ResolutionPhase tags the session-resolution union.
type ResolutionPhase string

const (
	PhaseUnresolved      ResolutionPhase = "unresolved"
	PhaseUnauthenticated ResolutionPhase = "unauthenticated"
	PhaseNeedsProfile    ResolutionPhase = "needs_profile"
	PhaseResolved        ResolutionPhase = "resolved"
)

// validPhaseTransitions is the resolver state machine. Resolved never falls
// back to NeedsProfile except through a full sign-out/sign-in cycle.
var validPhaseTransitions = map[ResolutionPhase][]ResolutionPhase{
	PhaseUnresolved:      {PhaseUnauthenticated, PhaseNeedsProfile, PhaseResolved},
	PhaseUnauthenticated: {PhaseNeedsProfile, PhaseResolved, PhaseUnauthenticated},
	PhaseNeedsProfile:    {PhaseResolved, PhaseNeedsProfile, PhaseUnauthenticated},
	PhaseResolved:        {PhaseResolved, PhaseUnauthenticated},
}

// CanTransitionTo reports whether moving from p to next is a valid resolver
// transition.
func (p ResolutionPhase) CanTransitionTo(next ResolutionPhase) bool {
	for _, allowed := range validPhaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ResolutionState is the tagged union published by the Session Resolver.
// Exactly one of Pending/Profile is set, and only for the matching phase.
// States are immutable values replaced wholesale on every transition; they
// are never field-wise mutated.
type ResolutionState struct {
	Phase   ResolutionPhase  `json:"phase"`
	Pending *PendingIdentity `json:"pending,omitempty"`
	Profile *Profile         `json:"profile,omitempty"`
}

func Unresolved() ResolutionState {
	return ResolutionState{Phase: PhaseUnresolved}
}

func Unauthenticated() ResolutionState {
	return ResolutionState{Phase: PhaseUnauthenticated}
}

func NeedsProfile(pending PendingIdentity) ResolutionState {
	return ResolutionState{Phase: PhaseNeedsProfile, Pending: &pending}
}

func Resolved(profile Profile) ResolutionState {
	return ResolutionState{Phase: PhaseResolved, Profile: &profile}
}

// PendingFromSession builds a PendingIdentity from provider metadata.
// Display name falls back full name -> name -> email local-part -> "User";
// avatar falls back avatar URL -> picture URL -> absent.
func PendingFromSession(s Session) PendingIdentity {
	return PendingIdentity{
		SubjectID:   s.SubjectID,
		Email:       s.Email,
		DisplayName: displayNameFor(s),
		AvatarURL:   avatarFor(s),
	}
}

func displayNameFor(s Session) string {
	if name := strings.TrimSpace(s.FullName); name != "" {
		return name
	}
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	if local, _, found := strings.Cut(s.Email, "@"); found && local != "" {
		return local
	}
	return "User"
}

func avatarFor(s Session) string {
	if s.AvatarURL != "" {
		return s.AvatarURL
	}
	return s.PictureURL
}
