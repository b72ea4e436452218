package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

// EventDispatcher is the interface the handler uses to enqueue session events.
type EventDispatcher interface {
	Enqueue(event ports.SessionEvent)
	EnqueueBatch(events []ports.SessionEvent)
}

// WebhookHandler ingests session-change notifications pushed by the identity
// provider. Events are acknowledged with 202 and applied asynchronously with
// per-subject ordering.
type WebhookHandler struct {
	dispatcher EventDispatcher
}

func NewWebhookHandler(dispatcher EventDispatcher) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher}
}

// Receive handles POST /v1/webhooks/sessions — enqueues a single event.
//
// @Summary      Ingest a session-change event
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sessionEventRequest  true  "Session event"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/webhooks/sessions [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	var req sessionEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toSessionEvent(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}

// ReceiveBatch handles POST /v1/webhooks/sessions/batch.
//
// @Summary      Ingest a batch of session-change events
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []sessionEventRequest  true  "Array of session events"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/webhooks/sessions/batch [post]
func (h *WebhookHandler) ReceiveBatch(c echo.Context) error {
	var reqs []sessionEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	events := make([]ports.SessionEvent, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		events = append(events, toSessionEvent(req))
	}

	h.dispatcher.EnqueueBatch(events)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "events accepted",
		Count:   len(events),
	})
}

// toSessionEvent maps the HTTP request to the dispatcher DTO. A signed-out
// event carries a nil session.
func toSessionEvent(r sessionEventRequest) ports.SessionEvent {
	ev := ports.SessionEvent{SubjectID: r.SubjectID}
	if r.SignedOut {
		return ev
	}
	ev.Session = &domain.Session{
		SubjectID:  r.SubjectID,
		Email:      r.Email,
		FullName:   r.FullName,
		Name:       r.Name,
		AvatarURL:  r.AvatarURL,
		PictureURL: r.PictureURL,
	}
	return ev
}
