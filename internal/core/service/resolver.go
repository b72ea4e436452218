package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roamstead/camper-rentals/internal/api/metrics"
	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

const defaultLookupTimeout = 3 * time.Second

// Resolver is the session/profile resolution state machine for a single
// subject. All transitions replace the whole ResolutionState value under one
// mutex; consumers never observe a half-updated state.
//
// An epoch counter implements the in-flight affinity guard: SignOut (and a
// resolve for a different subject) bump the epoch, so a lookup result that
// arrives late is compared against the latest epoch and discarded instead of
// resurrecting a stale identity.
type Resolver struct {
	profiles      ports.ProfileRepository
	hints         ports.RoleHintStore
	lookupTimeout time.Duration
	log           zerolog.Logger

	mu              sync.Mutex
	state           domain.ResolutionState
	epoch           uint64
	inflight        bool
	inflightSubject string
	subscribers     map[int]func(domain.ResolutionState)
	nextSubscriber  int
}

// NewResolver creates a Resolver in the Unresolved state. hints may be nil
// when no role-hint store is configured.
func NewResolver(profiles ports.ProfileRepository, hints ports.RoleHintStore, lookupTimeout time.Duration, log zerolog.Logger) *Resolver {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return &Resolver{
		profiles:      profiles,
		hints:         hints,
		lookupTimeout: lookupTimeout,
		log:           log,
		state:         domain.Unresolved(),
		subscribers:   make(map[int]func(domain.ResolutionState)),
	}
}

// Resolve re-derives the resolution state from the current provider session.
func (r *Resolver) Resolve(ctx context.Context, session *domain.Session) domain.ResolutionState {
	if session == nil {
		return r.SignOut()
	}

	r.mu.Lock()
	if r.inflight && r.inflightSubject == session.SubjectID {
		// A lookup for this subject is already outstanding: collapse the
		// repeat trigger instead of racing a second remote call.
		state := r.state
		r.mu.Unlock()
		metrics.SessionResolvesCollapsedTotal.Inc()
		return state
	}
	r.epoch++
	epoch := r.epoch
	r.inflight = true
	r.inflightSubject = session.SubjectID
	r.mu.Unlock()

	started := time.Now()
	next, outcome := r.lookup(ctx, *session)
	metrics.SessionResolutionsTotal.WithLabelValues(outcome).Inc()
	metrics.SessionResolutionDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())

	r.mu.Lock()
	if r.epoch != epoch {
		// Signed out (or superseded) while the lookup was in flight:
		// discard the result on arrival.
		state := r.state
		r.mu.Unlock()
		r.log.Debug().Str("subject", session.SubjectID).Msg("discarding stale resolution result")
		return state
	}
	r.inflight = false
	state, fns := r.publishLocked(next)
	r.mu.Unlock()
	notify(fns, state)
	return state
}

// lookup issues the single bounded profile fetch and maps its result to the
// next state. Any failure other than success-with-row resolves to
// NeedsProfile: fabricating a Resolved profile with a guessed role would
// silently misfile a would-be owner as a customer.
func (r *Resolver) lookup(ctx context.Context, session domain.Session) (domain.ResolutionState, string) {
	ctx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	profile, err := r.profiles.FindBySubject(ctx, session.SubjectID)
	switch {
	case err == nil:
		return domain.Resolved(*profile), "resolved"
	case errors.Is(err, domain.ErrProfileNotFound):
		return domain.NeedsProfile(r.pendingFor(ctx, session)), "needs_profile"
	default:
		r.log.Warn().Err(err).Str("subject", session.SubjectID).Msg("profile lookup failed, falling back to setup")
		return domain.NeedsProfile(r.pendingFor(ctx, session)), "store_error"
	}
}

// pendingFor builds the pending identity from provider metadata and attaches
// the preferred-role hint when one is present and unexpired. Hint-store
// failures are not fatal to resolution.
func (r *Resolver) pendingFor(ctx context.Context, session domain.Session) domain.PendingIdentity {
	pending := domain.PendingFromSession(session)
	if r.hints == nil {
		return pending
	}
	role, err := r.hints.Get(ctx, session.SubjectID)
	if err != nil {
		r.log.Debug().Err(err).Str("subject", session.SubjectID).Msg("role hint unavailable")
		return pending
	}
	if domain.ValidRole(role) {
		pending.PreferredRole = role
	}
	return pending
}

// CompleteProfileSetup inserts the profile for the pending identity. Valid
// only from NeedsProfile; on any failure the state is left unchanged.
func (r *Resolver) CompleteProfileSetup(ctx context.Context, name, role string) (domain.ResolutionState, error) {
	r.mu.Lock()
	if r.state.Phase != domain.PhaseNeedsProfile || r.state.Pending == nil {
		state := r.state
		r.mu.Unlock()
		return state, domain.ErrNoPendingSetup
	}
	pending := *r.state.Pending
	epoch := r.epoch
	r.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		metrics.ProfileSetupsTotal.WithLabelValues("validation_failed").Inc()
		return r.Current(), domain.ErrEmptyName
	}
	if !domain.ValidRole(role) {
		metrics.ProfileSetupsTotal.WithLabelValues("validation_failed").Inc()
		return r.Current(), domain.ErrInvalidRole
	}

	avatar := pending.AvatarURL
	if avatar == "" {
		avatar = generatedAvatarURL()
	}

	insertCtx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	created, err := r.profiles.Create(insertCtx, &domain.Profile{
		SubjectID:   pending.SubjectID,
		Name:        name,
		Email:       pending.Email,
		Role:        role,
		AvatarURL:   avatar,
		Rating:      domain.DefaultRating,
		ReviewCount: 0,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrProfileExists) {
			metrics.ProfileSetupsTotal.WithLabelValues("conflict").Inc()
			return r.Current(), err
		}
		metrics.ProfileSetupsTotal.WithLabelValues("error").Inc()
		return r.Current(), fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	if r.epoch != epoch || r.state.Phase != domain.PhaseNeedsProfile {
		// Signed out while the insert was in flight. The row exists and
		// will resolve on the next sign-in; do not publish it now.
		state := r.state
		r.mu.Unlock()
		r.log.Debug().Str("subject", pending.SubjectID).Msg("discarding profile created after sign-out")
		return state, nil
	}
	state, fns := r.publishLocked(domain.Resolved(*created))
	r.mu.Unlock()
	notify(fns, state)

	metrics.ProfileSetupsTotal.WithLabelValues("created").Inc()
	r.log.Info().Str("subject", created.SubjectID).Str("role", created.Role).Msg("profile created")
	return state, nil
}

// SignOut transitions to Unauthenticated from any state and invalidates any
// in-flight lookup or insert.
func (r *Resolver) SignOut() domain.ResolutionState {
	r.mu.Lock()
	r.epoch++
	r.inflight = false
	r.inflightSubject = ""
	state, fns := r.publishLocked(domain.Unauthenticated())
	r.mu.Unlock()
	notify(fns, state)
	metrics.SessionResolutionsTotal.WithLabelValues("unauthenticated").Inc()
	return state
}

// Current returns the last published state.
func (r *Resolver) Current() domain.ResolutionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe registers fn for every published state. The returned function
// removes the subscription.
func (r *Resolver) Subscribe(fn func(domain.ResolutionState)) func() {
	r.mu.Lock()
	id := r.nextSubscriber
	r.nextSubscriber++
	r.subscribers[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subscribers, id)
		r.mu.Unlock()
	}
}

// publishLocked replaces the state wholesale and snapshots the subscriber
// list. Callers must hold r.mu and invoke the returned callbacks after
// releasing it. Identical states are still re-published so the idempotence
// guarantee is observable, but an invalid transition keeps the current state.
func (r *Resolver) publishLocked(next domain.ResolutionState) (domain.ResolutionState, []func(domain.ResolutionState)) {
	if !r.state.Phase.CanTransitionTo(next.Phase) {
		r.log.Error().
			Str("from", string(r.state.Phase)).
			Str("to", string(next.Phase)).
			Msg("refusing invalid resolution transition")
		return r.state, nil
	}
	r.state = next
	fns := make([]func(domain.ResolutionState), 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		fns = append(fns, fn)
	}
	return next, fns
}

func notify(fns []func(domain.ResolutionState), state domain.ResolutionState) {
	for _, fn := range fns {
		fn(state)
	}
}

// generatedAvatarURL produces a deterministic-looking placeholder avatar for
// identities whose provider supplied none.
func generatedAvatarURL() string {
	return "https://api.dicebear.com/7.x/initials/svg?seed=" + uuid.NewString()
}
