package http

import (
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/opportunity"
	"marketplace/internal/core/domain/model/proposal"

	"github.com/labstack/echo/v4"
)

type ProposalTerms struct {
	Price        Money  `json:"price"`
	DeliveryDays int    `json:"deliveryDays"`
	CoverLetter  string `json:"coverLetter"`
}

func (t ProposalTerms) toCommand() (commands.ProposalTerms, error) {
	price, err := t.Price.toKernel()
	if err != nil {
		return commands.ProposalTerms{}, err
	}
	return commands.ProposalTerms{Price: price, DeliveryDays: t.DeliveryDays, CoverLetter: t.CoverLetter}, nil
}

// NewProposal creates a draft, or submits it straight away when Submit is
// set.
type NewProposal struct {
	ProposalTerms
	CompanyID kernel.UUID `json:"companyId"`
	Submit    bool        `json:"submit"`
}

type Proposal struct {
	ID            kernel.UUID `json:"id"`
	OpportunityID kernel.UUID `json:"opportunityId"`
	CompanyID     kernel.UUID `json:"companyId"`
	Price         Money       `json:"price"`
	DeliveryDays  int         `json:"deliveryDays"`
	CoverLetter   string      `json:"coverLetter"`
	Status        string      `json:"status"`
	Reason        string      `json:"reason,omitempty"`
	SubmittedAt   *time.Time  `json:"submittedAt,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type Acceptance struct {
	Opportunity opportunity.Snapshot `json:"opportunity"`
	Accepted    proposal.Snapshot    `json:"accepted"`
	Rejected    []proposal.Snapshot  `json:"rejected"`
}

// ListProposals handles GET /api/v1/opportunities/:id/proposals.
// includeDrafts=true adds proposals that were never submitted.
func (s *Server) ListProposals(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid opportunity id")
	}

	includeDrafts := false
	if raw := c.QueryParam("includeDrafts"); raw != "" {
		if includeDrafts, err = strconv.ParseBool(raw); err != nil {
			return badRequest(c, "Invalid includeDrafts")
		}
	}

	query, err := queries.NewListProposalsByOpportunityQuery(id, includeDrafts)
	if err != nil {
		return writeError(c, err)
	}

	views, err := s.h.ListProposalsByOpportunity.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]Proposal, len(views))
	for i, v := range views {
		response[i] = Proposal{
			ID:            v.ID,
			OpportunityID: v.OpportunityID,
			CompanyID:     v.CompanyID,
			Price:         moneyOf(v.Price),
			DeliveryDays:  v.DeliveryDays,
			CoverLetter:   v.CoverLetter,
			Status:        v.Status,
			Reason:        v.Reason,
			SubmittedAt:   v.SubmittedAt,
			CreatedAt:     v.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// CreateProposal handles POST /api/v1/opportunities/:id/proposals.
func (s *Server) CreateProposal(c echo.Context) error {
	opportunityID, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid opportunity id")
	}

	var req NewProposal
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	terms, err := req.toCommand()
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCreateProposalCommand(kernel.NewUUID(), opportunityID, req.CompanyID, terms, req.Submit)
	if err != nil {
		return writeError(c, err)
	}

	p, err := s.h.CreateProposal.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p.Snapshot())
}

// ReviseProposal handles PUT /api/v1/proposals/:id. Only drafts can be
// revised.
func (s *Server) ReviseProposal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid proposal id")
	}

	var req ProposalTerms
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	terms, err := req.toCommand()
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewReviseProposalCommand(id, terms)
	if err != nil {
		return writeError(c, err)
	}

	p, err := s.h.ReviseProposal.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p.Snapshot())
}

// ChangeProposalStatus handles POST /api/v1/proposals/:id/actions/:action
// where action is one of submit, start-review, reject or withdraw.
func (s *Server) ChangeProposalStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid proposal id")
	}

	var req StatusChange
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChangeProposalStatusCommand(id, commands.ProposalAction(c.Param("action")), req.Reason)
	if err != nil {
		return writeError(c, err)
	}

	p, err := s.h.ChangeProposalStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p.Snapshot())
}

// AcceptProposal handles POST /api/v1/proposals/:id/accept. The opportunity
// is awarded and competing proposals are rejected in the same transaction.
func (s *Server) AcceptProposal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid proposal id")
	}

	cmd, err := commands.NewAcceptProposalCommand(id)
	if err != nil {
		return writeError(c, err)
	}

	acceptance, err := s.h.AcceptProposal.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	rejected := make([]proposal.Snapshot, len(acceptance.Rejected))
	for i, p := range acceptance.Rejected {
		rejected[i] = p.Snapshot()
	}

	return c.JSON(http.StatusOK, Acceptance{
		Opportunity: acceptance.Opportunity.Snapshot(),
		Accepted:    acceptance.Accepted.Snapshot(),
		Rejected:    rejected,
	})
}
