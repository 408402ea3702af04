// Package http exposes the marketplace commands and queries over REST with
// echo. Handlers only translate between JSON and commands; every lifecycle
// decision is made by the command handlers.
package http

import (
	"context"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/opportunity"
	"marketplace/internal/core/domain/model/proposal"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

type CreateOpportunityHandler interface {
	Handle(ctx context.Context, command commands.CreateOpportunityCommand) error
}

type ChangeOpportunityStatusHandler interface {
	Handle(ctx context.Context, command commands.ChangeOpportunityStatusCommand) (*opportunity.Opportunity, error)
}

type CreateProposalHandler interface {
	Handle(ctx context.Context, command commands.CreateProposalCommand) (*proposal.Proposal, error)
}

type ReviseProposalHandler interface {
	Handle(ctx context.Context, command commands.ReviseProposalCommand) (*proposal.Proposal, error)
}

type ChangeProposalStatusHandler interface {
	Handle(ctx context.Context, command commands.ChangeProposalStatusCommand) (*proposal.Proposal, error)
}

type AcceptProposalHandler interface {
	Handle(ctx context.Context, command commands.AcceptProposalCommand) (services.Acceptance, error)
}

type CreateSourcingEventHandler interface {
	Handle(ctx context.Context, command commands.CreateSourcingEventCommand) (*sourcing.Event, error)
}

type ChangeSourcingEventStatusHandler interface {
	Handle(ctx context.Context, command commands.ChangeSourcingEventStatusCommand) (*sourcing.Event, error)
}

type AwardSourcingEventHandler interface {
	Handle(ctx context.Context, command commands.AwardSourcingEventCommand) (*sourcing.Event, error)
}

type GetOpportunityHandler interface {
	Handle(ctx context.Context, query queries.GetOpportunityQuery) (queries.OpportunityView, error)
}

type ListOpenOpportunitiesHandler interface {
	Handle(ctx context.Context, query queries.ListOpenOpportunitiesQuery) ([]queries.OpportunityView, error)
}

type ListProposalsByOpportunityHandler interface {
	Handle(ctx context.Context, query queries.ListProposalsByOpportunityQuery) ([]queries.ProposalView, error)
}

type GetSourcingEventHandler interface {
	Handle(ctx context.Context, query queries.GetSourcingEventQuery) (queries.SourcingEventView, error)
}

// Handlers groups the use cases the server dispatches to. HealthCheck may be
// nil.
type Handlers struct {
	CreateOpportunity          CreateOpportunityHandler
	ChangeOpportunityStatus    ChangeOpportunityStatusHandler
	CreateProposal             CreateProposalHandler
	ReviseProposal             ReviseProposalHandler
	ChangeProposalStatus       ChangeProposalStatusHandler
	AcceptProposal             AcceptProposalHandler
	CreateSourcingEvent        CreateSourcingEventHandler
	ChangeSourcingEventStatus  ChangeSourcingEventStatusHandler
	AwardSourcingEvent         AwardSourcingEventHandler
	GetOpportunity             GetOpportunityHandler
	ListOpenOpportunities      ListOpenOpportunitiesHandler
	ListProposalsByOpportunity ListProposalsByOpportunityHandler
	GetSourcingEvent           GetSourcingEventHandler
	HealthCheck                func(ctx context.Context) error
}

// Server coordinates between HTTP requests and application use cases.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")

	v1.GET("/opportunities", s.ListOpenOpportunities)
	v1.POST("/opportunities", s.CreateOpportunity)
	v1.GET("/opportunities/:id", s.GetOpportunity)
	v1.POST("/opportunities/:id/actions/:action", s.ChangeOpportunityStatus)
	v1.GET("/opportunities/:id/proposals", s.ListProposals)
	v1.POST("/opportunities/:id/proposals", s.CreateProposal)

	v1.PUT("/proposals/:id", s.ReviseProposal)
	v1.POST("/proposals/:id/actions/:action", s.ChangeProposalStatus)
	v1.POST("/proposals/:id/accept", s.AcceptProposal)

	v1.POST("/sourcing-events", s.CreateSourcingEvent)
	v1.GET("/sourcing-events/:id", s.GetSourcingEvent)
	v1.POST("/sourcing-events/:id/actions/:action", s.ChangeSourcingEventStatus)
	v1.POST("/sourcing-events/:id/award", s.AwardSourcingEvent)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	if s.h.HealthCheck != nil {
		if err := s.h.HealthCheck(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Code:    http.StatusServiceUnavailable,
				Message: "Unhealthy",
			})
		}
	}
	return c.String(http.StatusOK, "Healthy")
}
