package domain

import "errors"

// Profile store taxonomy. ErrProfileNotFound is not a failure: it is the
// branch that routes a signed-in visitor into profile setup.
var ErrProfileNotFound = errors.New("profile not found")
var ErrProfileExists = errors.New("profile already exists")
var ErrStoreUnavailable = errors.New("profile store unavailable")

// Profile setup validation and preconditions.
var ErrEmptyName = errors.New("display name must not be empty")
var ErrInvalidRole = errors.New("role must be owner or customer")
var ErrNoPendingSetup = errors.New("no profile setup pending")

// Catalog.
var ErrListingNotFound = errors.New("listing not found")
var ErrInvalidListingType = errors.New("unknown listing type")

// Identity.
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrCredentialExists = errors.New("account already exists")
var ErrForbidden = errors.New("access forbidden")
