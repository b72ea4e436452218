package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

// ResolverRegistry owns one Resolver per subject. Both the HTTP layer and
// the provider-webhook dispatcher go through the registry, so the
// single-flight guarantee holds across entry points.
type ResolverRegistry struct {
	profiles      ports.ProfileRepository
	hints         ports.RoleHintStore
	lookupTimeout time.Duration
	log           zerolog.Logger

	mu        sync.Mutex
	resolvers map[string]*Resolver
}

func NewResolverRegistry(profiles ports.ProfileRepository, hints ports.RoleHintStore, lookupTimeout time.Duration, log zerolog.Logger) *ResolverRegistry {
	return &ResolverRegistry{
		profiles:      profiles,
		hints:         hints,
		lookupTimeout: lookupTimeout,
		log:           log,
		resolvers:     make(map[string]*Resolver),
	}
}

// For returns the resolver for subjectID, creating it on first touch.
func (rr *ResolverRegistry) For(subjectID string) ports.SessionResolver {
	return rr.resolverFor(subjectID)
}

func (rr *ResolverRegistry) resolverFor(subjectID string) *Resolver {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if r, ok := rr.resolvers[subjectID]; ok {
		return r
	}
	r := NewResolver(rr.profiles, rr.hints, rr.lookupTimeout, rr.log)
	rr.resolvers[subjectID] = r
	return r
}

// SignOut publishes Unauthenticated on the subject's resolver and drops it
// from the registry. A later sign-in starts from a fresh Unresolved resolver.
func (rr *ResolverRegistry) SignOut(subjectID string) {
	rr.mu.Lock()
	r, ok := rr.resolvers[subjectID]
	delete(rr.resolvers, subjectID)
	rr.mu.Unlock()

	if ok {
		r.SignOut()
	}
}

// RoleFor returns the resolved profile role for a subject. resolved is false
// when the subject has no resolver yet or its state is not Resolved; callers
// must not guess a role in that case.
func (rr *ResolverRegistry) RoleFor(subjectID string) (string, bool) {
	rr.mu.Lock()
	r, ok := rr.resolvers[subjectID]
	rr.mu.Unlock()
	if !ok {
		return "", false
	}

	state := r.Current()
	if state.Phase != domain.PhaseResolved || state.Profile == nil {
		return "", false
	}
	return state.Profile.Role, true
}

// Apply delivers one provider session-change event. Callers (the dispatcher
// workers) guarantee per-subject ordering.
func (rr *ResolverRegistry) Apply(ctx context.Context, ev ports.SessionEvent) {
	if ev.Session == nil {
		rr.SignOut(ev.SubjectID)
		return
	}
	rr.For(ev.SubjectID).Resolve(ctx, ev.Session)
}
