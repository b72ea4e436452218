package domain

import "strings"

// ListingType classifies the vehicle being listed.
type ListingType string

const (
	TypeMotorhome ListingType = "motorhome"
	TypeTrailer   ListingType = "trailer"
	TypeVan       ListingType = "van"
	TypePopup     ListingType = "popup"
)

// ValidListingType reports whether t is one of the four known vehicle types.
func ValidListingType(t ListingType) bool {
	switch t {
	case TypeMotorhome, TypeTrailer, TypeVan, TypePopup:
		return true
	}
	return false
}

// Feature flag names accepted in FilterCriteria.Features.
const (
	FeatureKitchen         = "kitchen"
	FeatureBathroom        = "bathroom"
	FeatureHeating         = "heating"
	FeatureAirConditioning = "air_conditioning"
	FeatureWiFi            = "wifi"
	FeatureSolar           = "solar"
	FeatureGenerator       = "generator"
	FeatureAwning          = "awning"
)

// FeatureSet holds the structured boolean amenity flags of a listing.
type FeatureSet struct {
	Kitchen         bool `json:"kitchen" bson:"kitchen"`
	Bathroom        bool `json:"bathroom" bson:"bathroom"`
	Heating         bool `json:"heating" bson:"heating"`
	AirConditioning bool `json:"air_conditioning" bson:"air_conditioning"`
	WiFi            bool `json:"wifi" bson:"wifi"`
	Solar           bool `json:"solar" bson:"solar"`
	Generator       bool `json:"generator" bson:"generator"`
	Awning          bool `json:"awning" bson:"awning"`
}

// Has reports whether the named feature flag is set. Unknown names are false.
func (f FeatureSet) Has(name string) bool {
	switch name {
	case FeatureKitchen:
		return f.Kitchen
	case FeatureBathroom:
		return f.Bathroom
	case FeatureHeating:
		return f.Heating
	case FeatureAirConditioning:
		return f.AirConditioning
	case FeatureWiFi:
		return f.WiFi
	case FeatureSolar:
		return f.Solar
	case FeatureGenerator:
		return f.Generator
	case FeatureAwning:
		return f.Awning
	}
	return false
}

// Listing is a camper listed for rent. Immutable from the catalog's point of
// view: the filter only reads, never writes.
type Listing struct {
	ID            string      `json:"id" bson:"_id"`
	Title         string      `json:"title" bson:"title"`
	Description   string      `json:"description" bson:"description"`
	Images        []string    `json:"images" bson:"images"`
	PricePerNight float64     `json:"price_per_night" bson:"price_per_night"`
	Location      string      `json:"location" bson:"location"`
	Capacity      int         `json:"capacity" bson:"capacity"`
	Amenities     []string    `json:"amenities" bson:"amenities"`
	Type          ListingType `json:"type" bson:"type"`
	OwnerID       string      `json:"owner_id" bson:"owner_id"`
	Rating        float64     `json:"rating" bson:"rating"`
	ReviewCount   int         `json:"review_count" bson:"review_count"`
	Features      FeatureSet  `json:"features" bson:"features"`
}

// FilterCriteria is the structured filter applied alongside the free-text
// query. A zero value matches everything. Replaced wholesale on every edit.
type FilterCriteria struct {
	MinPrice    float64     `json:"min_price"`
	MaxPrice    float64     `json:"max_price"` // <= 0 means unbounded
	MinCapacity int         `json:"min_capacity"`
	Type        ListingType `json:"type,omitempty"` // empty means any
	Features    []string    `json:"features,omitempty"`
}

// ApplyFilters derives the visible subset of catalog for the given free-text
// query and criteria. Pure and synchronous: all predicates are conjunctive,
// result ordering is input ordering, and an empty result is a valid answer.
func ApplyFilters(catalog []Listing, query string, criteria FilterCriteria) []Listing {
	query = strings.ToLower(strings.TrimSpace(query))

	matched := make([]Listing, 0, len(catalog))
	for _, l := range catalog {
		if query != "" && !matchesQuery(l, query) {
			continue
		}
		if l.PricePerNight < criteria.MinPrice {
			continue
		}
		if criteria.MaxPrice > 0 && l.PricePerNight > criteria.MaxPrice {
			continue
		}
		if criteria.MinCapacity > 0 && l.Capacity < criteria.MinCapacity {
			continue
		}
		if criteria.Type != "" && l.Type != criteria.Type {
			continue
		}
		if !hasAllFeatures(l.Features, criteria.Features) {
			continue
		}
		matched = append(matched, l)
	}
	return matched
}

// matchesQuery checks the case-insensitive substring match over location,
// title, and description.
func matchesQuery(l Listing, query string) bool {
	return strings.Contains(strings.ToLower(l.Location), query) ||
		strings.Contains(strings.ToLower(l.Title), query) ||
		strings.Contains(strings.ToLower(l.Description), query)
}

func hasAllFeatures(set FeatureSet, required []string) bool {
	for _, name := range required {
		if !set.Has(name) {
			return false
		}
	}
	return true
}
