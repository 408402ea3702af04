package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/opportunity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOpportunityUoW(repo *MockOpportunityRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OpportunityRepository").Return(repo)
	uow.On("Rollback", mock.Anything).Return(nil)
	return uow
}

func TestCreateOpportunityCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOpportunityCommand(
		id, kernel.NewUUID(), "Website redesign", "Five pages", mustMoney(250_000), testNow.Add(72*time.Hour),
	)
	require.NoError(t, err)

	repo := new(MockOpportunityRepository)
	repo.On("Add", mock.Anything, mock.MatchedBy(func(o *opportunity.Opportunity) bool {
		return o.ID().IsEqual(id) && o.Status() == opportunity.Draft && o.CreatedAt().Equal(testNow)
	})).Return(nil).Once()

	uow := newOpportunityUoW(repo)
	uow.On("Commit", mock.Anything).Return(nil).Once()

	factory := new(MockOpportunityUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOpportunityCommandHandler(factory, testClock())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, uow.Recorded)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOpportunityCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOpportunityUoWFactory)
	handler := commands.NewCreateOpportunityCommandHandler(factory, testClock())

	err := handler.Handle(t.Context(), commands.CreateOpportunityCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOpportunityCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOpportunityCommandHandler_Handle_AddError(t *testing.T) {
	cmd, err := commands.NewCreateOpportunityCommand(
		kernel.NewUUID(), kernel.NewUUID(), "Website", "", mustMoney(100), testNow.Add(time.Hour),
	)
	require.NoError(t, err)

	repo := new(MockOpportunityRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	uow := newOpportunityUoW(repo)

	factory := new(MockOpportunityUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOpportunityCommandHandler(factory, testClock())
	err = handler.Handle(t.Context(), cmd)

	require.EqualError(t, err, "db down")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertCalled(t, "Rollback", mock.Anything)
}
