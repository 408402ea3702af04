package http

import (
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const defaultPageSize = 50

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (m Money) toKernel() (kernel.Money, error) {
	return kernel.NewMoney(m.Amount, m.Currency)
}

func moneyOf(m kernel.Money) Money {
	return Money{Amount: m.Amount(), Currency: m.Currency()}
}

type NewOpportunity struct {
	OwnerID     kernel.UUID `json:"ownerId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Budget      Money       `json:"budget"`
	Deadline    time.Time   `json:"deadline"`
}

type Created struct {
	ID kernel.UUID `json:"id"`
}

type StatusChange struct {
	Reason string `json:"reason"`
}

type Opportunity struct {
	ID                 kernel.UUID  `json:"id"`
	OwnerID            kernel.UUID  `json:"ownerId"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Budget             Money        `json:"budget"`
	Deadline           time.Time    `json:"deadline"`
	Status             string       `json:"status"`
	AwardedProposalID  *kernel.UUID `json:"awardedProposalId,omitempty"`
	CancellationReason string       `json:"cancellationReason,omitempty"`
	ProposalCount      int64        `json:"proposalCount"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

func opportunityOf(v queries.OpportunityView) Opportunity {
	return Opportunity{
		ID:                 v.ID,
		OwnerID:            v.OwnerID,
		Title:              v.Title,
		Description:        v.Description,
		Budget:             moneyOf(v.Budget),
		Deadline:           v.Deadline,
		Status:             v.Status,
		AwardedProposalID:  v.AwardedProposalID,
		CancellationReason: v.CancellationReason,
		ProposalCount:      v.ProposalCount,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

// CreateOpportunity handles POST /api/v1/opportunities.
func (s *Server) CreateOpportunity(c echo.Context) error {
	var req NewOpportunity
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	budget, err := req.Budget.toKernel()
	if err != nil {
		return writeError(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOpportunityCommand(id, req.OwnerID, req.Title, req.Description, budget, req.Deadline)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.h.CreateOpportunity.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: id})
}

// GetOpportunity handles GET /api/v1/opportunities/:id.
func (s *Server) GetOpportunity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid opportunity id")
	}

	query, err := queries.NewGetOpportunityQuery(id)
	if err != nil {
		return writeError(c, err)
	}

	view, err := s.h.GetOpportunity.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, opportunityOf(view))
}

// ListOpenOpportunities handles GET /api/v1/opportunities?limit=&offset=.
func (s *Server) ListOpenOpportunities(c echo.Context) error {
	limit, offset := defaultPageSize, 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "Invalid limit")
		}
		limit = n
	}
	if raw := c.QueryParam("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "Invalid offset")
		}
		offset = n
	}

	query, err := queries.NewListOpenOpportunitiesQuery(limit, offset)
	if err != nil {
		return writeError(c, err)
	}

	views, err := s.h.ListOpenOpportunities.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]Opportunity, len(views))
	for i, v := range views {
		response[i] = opportunityOf(v)
	}
	return c.JSON(http.StatusOK, response)
}

// ChangeOpportunityStatus handles POST /api/v1/opportunities/:id/actions/:action
// where action is one of publish, start-review, reopen, complete, close,
// cancel or expire.
func (s *Server) ChangeOpportunityStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid opportunity id")
	}

	var req StatusChange
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChangeOpportunityStatusCommand(id, commands.OpportunityAction(c.Param("action")), req.Reason)
	if err != nil {
		return writeError(c, err)
	}

	opp, err := s.h.ChangeOpportunityStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, opp.Snapshot())
}
