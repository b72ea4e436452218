package handler

import "github.com/roamstead/camper-rentals/internal/core/domain"

type featuresRequest struct {
	Kitchen         bool `json:"kitchen"`
	Bathroom        bool `json:"bathroom"`
	Heating         bool `json:"heating"`
	AirConditioning bool `json:"air_conditioning"`
	WiFi            bool `json:"wifi"`
	Solar           bool `json:"solar"`
	Generator       bool `json:"generator"`
	Awning          bool `json:"awning"`
}

type createListingRequest struct {
	Title         string          `json:"title"           validate:"required"`
	Description   string          `json:"description"     validate:"required"`
	Images        []string        `json:"images"`
	PricePerNight float64         `json:"price_per_night" validate:"required,gt=0"`
	Location      string          `json:"location"        validate:"required"`
	Capacity      int             `json:"capacity"        validate:"required,gt=0"`
	Amenities     []string        `json:"amenities"`
	Type          string          `json:"type"            validate:"required,oneof=motorhome trailer van popup"`
	Features      featuresRequest `json:"features"`
}

type listListingsResponse struct {
	Data  []domain.Listing `json:"data"`
	Total int              `json:"total"`
}
