package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOpportunityAction(t *testing.T) {
	action, err := commands.ParseOpportunityAction(" Start-Review ")
	require.NoError(t, err)
	assert.Equal(t, commands.OpportunityActionStartReview, action)

	_, err = commands.ParseOpportunityAction("award")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewChangeOpportunityStatusCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewChangeOpportunityStatusCommand(id, "CANCEL", "budget cut")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, commands.OpportunityActionCancel, cmd.Action())
	assert.Equal(t, "budget cut", cmd.Reason())

	_, err = commands.NewChangeOpportunityStatusCommand(kernel.UUID{}, commands.OpportunityActionPublish, "")
	require.Error(t, err)

	_, err = commands.NewChangeOpportunityStatusCommand(id, "fly", "")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
