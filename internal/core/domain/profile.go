package domain

import "time"

const (
	RoleOwner    = "owner"
	RoleCustomer = "customer"
)

// DefaultRating is the store-side rating ceiling assigned to a freshly
// created profile, before any review has been recorded.
const DefaultRating = 5.0

// ValidRole reports whether role is one of the two allowed tags. Roles are
// mutually exclusive and chosen exactly once at profile creation.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleCustomer
}

// Profile is the application-level user record, keyed by the identity
// provider's subject id. It is created once at profile-setup completion and
// never deleted by this system; rating and review count are mutated only by
// the review subsystem.
type Profile struct {
	SubjectID   string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Role        string    `json:"role" bson:"role"`
	AvatarURL   string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Rating      float64   `json:"rating" bson:"rating"`
	ReviewCount int       `json:"review_count" bson:"review_count"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
