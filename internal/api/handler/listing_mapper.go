package handler

import (
	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

// toCreateListingInput maps the HTTP request to the service DTO.
func toCreateListingInput(req createListingRequest, ownerID string) ports.CreateListingInput {
	return ports.CreateListingInput{
		Title:         req.Title,
		Description:   req.Description,
		Images:        req.Images,
		PricePerNight: req.PricePerNight,
		Location:      req.Location,
		Capacity:      req.Capacity,
		Amenities:     req.Amenities,
		Type:          domain.ListingType(req.Type),
		OwnerID:       ownerID,
		Features: domain.FeatureSet{
			Kitchen:         req.Features.Kitchen,
			Bathroom:        req.Features.Bathroom,
			Heating:         req.Features.Heating,
			AirConditioning: req.Features.AirConditioning,
			WiFi:            req.Features.WiFi,
			Solar:           req.Features.Solar,
			Generator:       req.Features.Generator,
			Awning:          req.Features.Awning,
		},
	}
}
