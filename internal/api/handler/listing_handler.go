package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

// ListingHandler handles HTTP requests for the listing catalog.
type ListingHandler struct {
	service ports.CatalogService
}

func NewListingHandler(service ports.CatalogService) *ListingHandler {
	return &ListingHandler{service: service}
}

// Search handles GET /v1/listings — public catalog search.
//
// @Summary      Search listings
// @Tags         listings
// @Produce      json
// @Param        q             query     string  false  "Free-text query over location, title, description"
// @Param        min_price     query     number  false  "Minimum price per night"
// @Param        max_price     query     number  false  "Maximum price per night (0 = unbounded)"
// @Param        min_capacity  query     int     false  "Minimum sleeping capacity"
// @Param        type          query     string  false  "Vehicle type"  Enums(motorhome, trailer, van, popup)
// @Param        features      query     string  false  "Required feature flags, comma separated"
// @Success      200  {object}  listListingsResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/listings [get]
func (h *ListingHandler) Search(c echo.Context) error {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		return err
	}

	listings, err := h.service.Search(c.Request().Context(), c.QueryParam("q"), criteria)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listListingsResponse{Data: listings, Total: len(listings)})
}

// Get handles GET /v1/listings/:id.
//
// @Summary      Get a listing by id
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  domain.Listing
// @Failure      404  {object}  errorResponse
// @Router       /v1/listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Create handles POST /v1/listings — owners only.
//
// @Summary      Publish a new listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createListingRequest  true  "Listing details"
// @Success      201   {object}  domain.Listing
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	listing, err := h.service.Create(c.Request().Context(), toCreateListingInput(req, session.SubjectID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, listing)
}

// criteriaFromQuery parses the structured filter from query parameters.
func criteriaFromQuery(c echo.Context) (domain.FilterCriteria, error) {
	var criteria domain.FilterCriteria

	var err error
	if criteria.MinPrice, err = floatParam(c, "min_price"); err != nil {
		return criteria, err
	}
	if criteria.MaxPrice, err = floatParam(c, "max_price"); err != nil {
		return criteria, err
	}
	if raw := c.QueryParam("min_capacity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, echo.NewHTTPError(http.StatusBadRequest, "min_capacity must be an integer")
		}
		criteria.MinCapacity = n
	}
	if raw := c.QueryParam("type"); raw != "" {
		t := domain.ListingType(raw)
		if !domain.ValidListingType(t) {
			return criteria, echo.NewHTTPError(http.StatusBadRequest, "unknown listing type")
		}
		criteria.Type = t
	}
	if raw := c.QueryParam("features"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				criteria.Features = append(criteria.Features, name)
			}
		}
	}
	return criteria, nil
}

func floatParam(c echo.Context, name string) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return v, nil
}
