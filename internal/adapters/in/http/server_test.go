package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/opportunity"
	"marketplace/internal/core/domain/model/proposal"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

type MockCreateOpportunity struct{ mock.Mock }

func (m *MockCreateOpportunity) Handle(ctx context.Context, command commands.CreateOpportunityCommand) error {
	args := m.Called(ctx, command)
	return args.Error(0)
}

type MockChangeOpportunityStatus struct{ mock.Mock }

func (m *MockChangeOpportunityStatus) Handle(
	ctx context.Context,
	command commands.ChangeOpportunityStatusCommand,
) (*opportunity.Opportunity, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opportunity.Opportunity), args.Error(1)
}

type MockGetOpportunity struct{ mock.Mock }

func (m *MockGetOpportunity) Handle(ctx context.Context, query queries.GetOpportunityQuery) (queries.OpportunityView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OpportunityView), args.Error(1)
}

type MockListOpenOpportunities struct{ mock.Mock }

func (m *MockListOpenOpportunities) Handle(
	ctx context.Context,
	query queries.ListOpenOpportunitiesQuery,
) ([]queries.OpportunityView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OpportunityView), args.Error(1)
}

type MockAcceptProposal struct{ mock.Mock }

func (m *MockAcceptProposal) Handle(ctx context.Context, command commands.AcceptProposalCommand) (services.Acceptance, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(services.Acceptance), args.Error(1)
}

type MockCreateSourcingEvent struct{ mock.Mock }

func (m *MockCreateSourcingEvent) Handle(
	ctx context.Context,
	command commands.CreateSourcingEventCommand,
) (*sourcing.Event, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sourcing.Event), args.Error(1)
}

type MockAwardSourcingEvent struct{ mock.Mock }

func (m *MockAwardSourcingEvent) Handle(
	ctx context.Context,
	command commands.AwardSourcingEventCommand,
) (*sourcing.Event, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sourcing.Event), args.Error(1)
}

func newRouter(h httpadapter.Handlers) *echo.Echo {
	return httpadapter.NewRouter(httpadapter.NewServer(h), slog.New(slog.DiscardHandler))
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.ErrorResponse {
	t.Helper()
	var resp httpadapter.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func newOpportunity(t *testing.T) *opportunity.Opportunity {
	t.Helper()
	budget, err := kernel.NewMoney(50_000, "EUR")
	require.NoError(t, err)
	opp, err := opportunity.NewOpportunity(kernel.NewUUID(), kernel.NewUUID(),
		"Office move", "Two floors", budget, now.Add(14*24*time.Hour), now)
	require.NoError(t, err)
	return opp
}

func TestHealth(t *testing.T) {
	rec := do(t, newRouter(httpadapter.Handlers{}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())

	failing := newRouter(httpadapter.Handlers{
		HealthCheck: func(context.Context) error { return errors.New("db down") },
	})
	rec = do(t, failing, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateOpportunity(t *testing.T) {
	handler := &MockCreateOpportunity{}
	ownerID := kernel.NewUUID()
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.CreateOpportunityCommand) bool {
		return c.OwnerID().IsEqual(ownerID) && c.Title() == "Office move" && c.Budget().Amount() == 50_000
	})).Return(nil).Once()
	e := newRouter(httpadapter.Handlers{CreateOpportunity: handler})

	rec := do(t, e, http.MethodPost, "/api/v1/opportunities", `{
		"ownerId": "`+ownerID.String()+`",
		"title": "Office move",
		"budget": {"amount": 50000, "currency": "EUR"},
		"deadline": "2026-06-01T00:00:00Z"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created httpadapter.Created
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NoError(t, created.ID.Validate())
	handler.AssertExpectations(t)
}

func TestCreateOpportunity_BadInput(t *testing.T) {
	handler := &MockCreateOpportunity{}
	e := newRouter(httpadapter.Handlers{CreateOpportunity: handler})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"title":`},
		{"malformed owner id", `{"ownerId": "nope", "budget": {"amount": 1, "currency": "EUR"}}`},
		{"negative budget", `{"ownerId": "` + kernel.NewUUID().String() + `", "budget": {"amount": -1, "currency": "EUR"}}`},
		{"missing owner", `{"title": "x", "budget": {"amount": 1, "currency": "EUR"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/api/v1/opportunities", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetOpportunity(t *testing.T) {
	id := kernel.NewUUID()
	budget, err := kernel.NewMoney(1_000, "USD")
	require.NoError(t, err)
	handler := &MockGetOpportunity{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOpportunityQuery) bool {
		return q.OpportunityID().IsEqual(id)
	})).Return(queries.OpportunityView{
		ID: id, OwnerID: kernel.NewUUID(), Title: "Catering", Budget: budget,
		Deadline: now, Status: "Published", ProposalCount: 4,
	}, nil)
	missing := kernel.NewUUID()
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOpportunityQuery) bool {
		return q.OpportunityID().IsEqual(missing)
	})).Return(queries.OpportunityView{}, errs.NewObjectNotFoundError("opportunity", missing.String()))
	e := newRouter(httpadapter.Handlers{GetOpportunity: handler})

	rec := do(t, e, http.MethodGet, "/api/v1/opportunities/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body httpadapter.Opportunity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.ID.IsEqual(id))
	assert.Equal(t, httpadapter.Money{Amount: 1_000, Currency: "USD"}, body.Budget)
	assert.Equal(t, int64(4), body.ProposalCount)

	rec = do(t, e, http.MethodGet, "/api/v1/opportunities/"+missing.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/v1/opportunities/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOpenOpportunities_Paging(t *testing.T) {
	handler := &MockListOpenOpportunities{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOpenOpportunitiesQuery) bool {
		return q.Limit() == 50 && q.Offset() == 0
	})).Return([]queries.OpportunityView{}, nil).Once()
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOpenOpportunitiesQuery) bool {
		return q.Limit() == 5 && q.Offset() == 10
	})).Return([]queries.OpportunityView{}, nil).Once()
	e := newRouter(httpadapter.Handlers{ListOpenOpportunities: handler})

	rec := do(t, e, http.MethodGet, "/api/v1/opportunities", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/api/v1/opportunities?limit=5&offset=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/v1/opportunities?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/v1/opportunities?limit=100000", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	handler.AssertExpectations(t)
}

func TestChangeOpportunityStatus_ErrorMapping(t *testing.T) {
	id := kernel.NewUUID()
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantRule string
	}{
		{"invalid transition", errs.NewInvalidStateTransitionError("Opportunity", "Awarded", "Published"), http.StatusConflict, ""},
		{"version conflict", errs.NewVersionConflictError("Opportunity", id, 3), http.StatusConflict, ""},
		{"rule violated", errs.NewValidationFailedError("DeadlinePassed", "deadline has passed"),
			http.StatusUnprocessableEntity, "DeadlinePassed"},
		{"not found", errs.NewObjectNotFoundError("opportunity", id.String()), http.StatusNotFound, ""},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &MockChangeOpportunityStatus{}
			handler.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err)
			e := newRouter(httpadapter.Handlers{ChangeOpportunityStatus: handler})

			rec := do(t, e, http.MethodPost, "/api/v1/opportunities/"+id.String()+"/actions/publish", "")

			require.Equal(t, tt.wantCode, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantRule, resp.Rule)
			if tt.wantCode == http.StatusInternalServerError {
				assert.NotContains(t, resp.Message, "connection reset")
			}
		})
	}
}

func TestChangeOpportunityStatus_Cancel(t *testing.T) {
	opp := newOpportunity(t)
	cancelled, _, err := opp.Cancel("budget cut", now)
	require.NoError(t, err)
	handler := &MockChangeOpportunityStatus{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.ChangeOpportunityStatusCommand) bool {
		return c.Action() == commands.OpportunityActionCancel && c.Reason() == "budget cut"
	})).Return(cancelled, nil)
	e := newRouter(httpadapter.Handlers{ChangeOpportunityStatus: handler})

	rec := do(t, e, http.MethodPost, "/api/v1/opportunities/"+opp.ID().String()+"/actions/cancel",
		`{"reason": "budget cut"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body opportunity.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, opportunity.Cancelled.String(), body.Status)
	assert.Equal(t, "budget cut", body.CancellationReason)

	rec = do(t, e, http.MethodPost, "/api/v1/opportunities/"+opp.ID().String()+"/actions/teleport", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcceptProposal(t *testing.T) {
	opp := newOpportunity(t)
	published, _, err := opp.Publish(now)
	require.NoError(t, err)
	price, err := kernel.NewMoney(40_000, "EUR")
	require.NoError(t, err)
	draft, err := proposal.NewProposal(kernel.NewUUID(), opp.ID(), kernel.NewUUID(), price, 10, "Ready", now)
	require.NoError(t, err)
	submitted, _, err := draft.Submit(now)
	require.NoError(t, err)
	acceptance, err := services.NewProposalDesk().Accept(published, submitted, nil, now)
	require.NoError(t, err)

	handler := &MockAcceptProposal{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(acceptance, nil).Once()
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(services.Acceptance{}, errs.NewVersionConflictError("Proposal", submitted.ID(), 1)).Once()
	e := newRouter(httpadapter.Handlers{AcceptProposal: handler})

	rec := do(t, e, http.MethodPost, "/api/v1/proposals/"+submitted.ID().String()+"/accept", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body httpadapter.Acceptance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, proposal.Accepted.String(), body.Accepted.Status)
	assert.Equal(t, opportunity.Awarded.String(), body.Opportunity.Status)
	assert.Empty(t, body.Rejected)

	rec = do(t, e, http.MethodPost, "/api/v1/proposals/"+submitted.ID().String()+"/accept", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateSourcingEvent(t *testing.T) {
	ownerID := kernel.NewUUID()
	ev, err := sourcing.NewEvent(kernel.NewUUID(), ownerID, sourcing.RFQ, "Office chairs", "",
		sourcing.Public, nil, 0, now)
	require.NoError(t, err)
	handler := &MockCreateSourcingEvent{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.CreateSourcingEventCommand) bool {
		return c.EventType() == sourcing.RFQ && c.Visibility() == sourcing.Public && c.DurationDays() == 0
	})).Return(ev, nil)
	e := newRouter(httpadapter.Handlers{CreateSourcingEvent: handler})

	rec := do(t, e, http.MethodPost, "/api/v1/sourcing-events", `{
		"ownerId": "`+ownerID.String()+`",
		"type": "RFQ",
		"title": "Office chairs",
		"visibility": "Public"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var body sourcing.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "RFQ", body.Type)

	rec = do(t, e, http.MethodPost, "/api/v1/sourcing-events",
		`{"ownerId": "`+ownerID.String()+`", "type": "Barter", "visibility": "Public"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	handler.AssertNumberOfCalls(t, "Handle", 1)
}

func TestAwardSourcingEvent_PassesBids(t *testing.T) {
	id := kernel.NewUUID()
	supplier := kernel.NewUUID()
	handler := &MockAwardSourcingEvent{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.AwardSourcingEventCommand) bool {
		_, named := c.SupplierID()
		bids := c.Bids()
		return c.EventID().IsEqual(id) && !named && len(bids) == 1 &&
			bids[0].SupplierID.IsEqual(supplier) && bids[0].Quality == 80
	})).Return(nil, errs.NewInvalidStateTransitionError("SourcingEvent", "Open", "Awarded"))
	e := newRouter(httpadapter.Handlers{AwardSourcingEvent: handler})

	rec := do(t, e, http.MethodPost, "/api/v1/sourcing-events/"+id.String()+"/award", `{
		"bids": [{"supplierId": "`+supplier.String()+`", "price": {"amount": 900, "currency": "EUR"},
			"quality": 80, "delivery": 70, "service": 60}]
	}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	handler.AssertExpectations(t)

	rec = do(t, e, http.MethodPost, "/api/v1/sourcing-events/"+id.String()+"/award", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
