package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

type stubCatalog struct {
	searchQuery    string
	searchCriteria domain.FilterCriteria
	searchResult   []domain.Listing
	searchErr      error
	created        []ports.CreateListingInput
}

func (s *stubCatalog) Search(_ context.Context, query string, criteria domain.FilterCriteria) ([]domain.Listing, error) {
	s.searchQuery = query
	s.searchCriteria = criteria
	return s.searchResult, s.searchErr
}

func (s *stubCatalog) Get(_ context.Context, id string) (*domain.Listing, error) {
	if id == "l1" {
		return &domain.Listing{ID: "l1", Title: "Cozy Trailer"}, nil
	}
	return nil, domain.ErrListingNotFound
}

func (s *stubCatalog) Create(_ context.Context, input ports.CreateListingInput) (*domain.Listing, error) {
	s.created = append(s.created, input)
	return &domain.Listing{ID: "new-id", Title: input.Title, OwnerID: input.OwnerID}, nil
}

func TestListingHandler_SearchParsesQueryParams(t *testing.T) {
	e := echo.New()
	catalog := &stubCatalog{searchResult: []domain.Listing{{ID: "l1"}}}
	h := NewListingHandler(catalog)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/listings?q=austin&min_price=50&max_price=200&min_capacity=4&type=van&features=kitchen,%20solar", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if catalog.searchQuery != "austin" {
		t.Fatalf("query = %q", catalog.searchQuery)
	}
	want := domain.FilterCriteria{
		MinPrice:    50,
		MaxPrice:    200,
		MinCapacity: 4,
		Type:        domain.TypeVan,
		Features:    []string{"kitchen", "solar"},
	}
	got := catalog.searchCriteria
	if got.MinPrice != want.MinPrice || got.MaxPrice != want.MaxPrice ||
		got.MinCapacity != want.MinCapacity || got.Type != want.Type {
		t.Fatalf("criteria = %+v, want %+v", got, want)
	}
	if len(got.Features) != 2 || got.Features[0] != "kitchen" || got.Features[1] != "solar" {
		t.Fatalf("features = %v", got.Features)
	}
	if !strings.Contains(rec.Body.String(), `"total":1`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestListingHandler_SearchRejectsMalformedParams(t *testing.T) {
	e := echo.New()
	h := NewListingHandler(&stubCatalog{})

	tests := []struct {
		name   string
		target string
	}{
		{"bad min_price", "/v1/listings?min_price=cheap"},
		{"bad min_capacity", "/v1/listings?min_capacity=many"},
		{"unknown type", "/v1/listings?type=houseboat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			c := e.NewContext(req, httptest.NewRecorder())

			err := h.Search(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusBadRequest {
				t.Fatalf("err = %v, want 400", err)
			}
		})
	}
}

func TestListingHandler_Get(t *testing.T) {
	e := echo.New()
	h := NewListingHandler(&stubCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/listings/:id")
	c.SetParamNames("id")
	c.SetParamValues("l1")

	if err := h.Get(c); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Cozy Trailer") {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetPath("/v1/listings/:id")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.Get(c); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("err = %v, want ErrListingNotFound for the error handler", err)
	}
}

func TestListingHandler_Create(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	catalog := &stubCatalog{}
	h := NewListingHandler(catalog)

	body := `{
		"title": "Desert Trailer",
		"description": "Solar powered",
		"price_per_night": 140,
		"location": "Moab, UT",
		"capacity": 4,
		"type": "trailer",
		"features": {"kitchen": true, "solar": true}
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/listings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("subject", "auth0|owner_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(catalog.created) != 1 {
		t.Fatalf("service called %d times", len(catalog.created))
	}
	input := catalog.created[0]
	if input.OwnerID != "auth0|owner_1" {
		t.Fatalf("owner = %q, want the authenticated subject", input.OwnerID)
	}
	if input.Type != domain.TypeTrailer || !input.Features.Kitchen || !input.Features.Solar {
		t.Fatalf("input = %+v", input)
	}
}

func TestListingHandler_CreateValidation(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	catalog := &stubCatalog{}
	h := NewListingHandler(catalog)

	// Price must be positive, type must be known.
	body := `{"title":"x","description":"y","price_per_night":-5,"location":"z","capacity":2,"type":"trailer"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/listings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("subject", "auth0|owner_1")

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("err = %v, want 422", err)
	}
	if len(catalog.created) != 0 {
		t.Fatalf("invalid payload reached the service")
	}
}
