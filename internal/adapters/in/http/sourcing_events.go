package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// NewSourcingEvent leaves DurationDays at zero to use the policy default.
type NewSourcingEvent struct {
	OwnerID          kernel.UUID   `json:"ownerId"`
	Type             string        `json:"type"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Visibility       string        `json:"visibility"`
	InvitedSuppliers []kernel.UUID `json:"invitedSuppliers"`
	DurationDays     int           `json:"durationDays"`
}

type Bid struct {
	SupplierID kernel.UUID `json:"supplierId"`
	Price      Money       `json:"price"`
	Quality    int         `json:"quality"`
	Delivery   int         `json:"delivery"`
	Service    int         `json:"service"`
}

// Award names the winner directly or lists bids for the evaluator to rank.
type Award struct {
	SupplierID kernel.UUID `json:"supplierId"`
	Bids       []Bid       `json:"bids"`
}

type SourcingEvent struct {
	ID                 kernel.UUID   `json:"id"`
	OwnerID            kernel.UUID   `json:"ownerId"`
	Type               string        `json:"type"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Visibility         string        `json:"visibility"`
	InvitedSuppliers   []kernel.UUID `json:"invitedSuppliers"`
	DurationDays       int           `json:"durationDays"`
	Status             string        `json:"status"`
	Round              int           `json:"round"`
	Extensions         int           `json:"extensions"`
	StartsAt           *time.Time    `json:"startsAt,omitempty"`
	Deadline           *time.Time    `json:"deadline,omitempty"`
	AwardedSupplierID  *kernel.UUID  `json:"awardedSupplierId,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// CreateSourcingEvent handles POST /api/v1/sourcing-events.
func (s *Server) CreateSourcingEvent(c echo.Context) error {
	var req NewSourcingEvent
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	eventType, err := sourcing.ParseEventType(req.Type)
	if err != nil {
		return writeError(c, err)
	}
	visibility, err := sourcing.ParseVisibility(req.Visibility)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCreateSourcingEventCommand(kernel.NewUUID(), req.OwnerID, eventType,
		req.Title, req.Description, visibility, req.InvitedSuppliers, req.DurationDays)
	if err != nil {
		return writeError(c, err)
	}

	ev, err := s.h.CreateSourcingEvent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, ev.Snapshot())
}

// GetSourcingEvent handles GET /api/v1/sourcing-events/:id.
func (s *Server) GetSourcingEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid sourcing event id")
	}

	query, err := queries.NewGetSourcingEventQuery(id)
	if err != nil {
		return writeError(c, err)
	}

	v, err := s.h.GetSourcingEvent.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SourcingEvent{
		ID:                 v.ID,
		OwnerID:            v.OwnerID,
		Type:               v.Type,
		Title:              v.Title,
		Description:        v.Description,
		Visibility:         v.Visibility,
		InvitedSuppliers:   v.InvitedSuppliers,
		DurationDays:       v.DurationDays,
		Status:             v.Status,
		Round:              v.Round,
		Extensions:         v.Extensions,
		StartsAt:           v.StartsAt,
		Deadline:           v.Deadline,
		AwardedSupplierID:  v.AwardedSupplierID,
		CancellationReason: v.CancellationReason,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	})
}

// ChangeSourcingEventStatus handles
// POST /api/v1/sourcing-events/:id/actions/:action where action is one of
// publish, open, extend-deadline, start-evaluation, next-round, close or
// cancel.
func (s *Server) ChangeSourcingEventStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid sourcing event id")
	}

	var req StatusChange
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChangeSourcingEventStatusCommand(id, commands.SourcingAction(c.Param("action")), req.Reason)
	if err != nil {
		return writeError(c, err)
	}

	ev, err := s.h.ChangeSourcingEventStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ev.Snapshot())
}

// AwardSourcingEvent handles POST /api/v1/sourcing-events/:id/award.
func (s *Server) AwardSourcingEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid sourcing event id")
	}

	var req Award
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	bids := make([]services.Bid, 0, len(req.Bids))
	for _, b := range req.Bids {
		price, priceErr := b.Price.toKernel()
		if priceErr != nil {
			return writeError(c, priceErr)
		}
		bids = append(bids, services.Bid{
			SupplierID: b.SupplierID,
			Price:      price,
			Quality:    b.Quality,
			Delivery:   b.Delivery,
			Service:    b.Service,
		})
	}

	cmd, err := commands.NewAwardSourcingEventCommand(id, req.SupplierID, bids)
	if err != nil {
		return writeError(c, err)
	}

	ev, err := s.h.AwardSourcingEvent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ev.Snapshot())
}
