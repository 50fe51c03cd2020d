package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/onboardly/accounts-backend/internal/adapters/services/identity"
	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/tests/builders"
	"gitlab.com/onboardly/accounts-backend/tests/mocks"
)

type DeleteSuite struct {
	Handler      *DeleteHandler
	MockRepo     *mocks.AccountRepo
	MockIdentity *mocks.IdentityService
}

func NewDeleteSuite() *DeleteSuite {
	mockRepo := mocks.NewAccountRepo()
	mockIdentity := mocks.NewIdentityService()
	handler := NewDeleteHandler(DeleteHandlerArgs{
		Repo:     mockRepo,
		Identity: mockIdentity,
	})

	return &DeleteSuite{
		Handler:      handler,
		MockRepo:     mockRepo,
		MockIdentity: mockIdentity,
	}
}

func TestDeleteHandler_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewDeleteSuite()
	acc := builders.NewAccountBuilder().Build()
	s.MockRepo.SeedAccount(t, acc)

	err := s.Handler.Handle(t.Context(), Delete{AccountID: acc.ID()})
	require.NoError(t, err)

	s.MockRepo.AssertAccountNotExistsByID(t, acc.ID())

	calls := s.MockIdentity.ActiveCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, acc.UserID(), calls[0].UserID)
	assert.False(t, calls[0].Active)

	s.MockIdentity.AssertDeleteCallCount(t, 1)
	assert.Equal(t, acc.UserID(), s.MockIdentity.DeleteCalls()[0])
}

func TestDeleteHandler_AccountNotFound(t *testing.T) {
	t.Parallel()

	s := NewDeleteSuite()

	err := s.Handler.Handle(t.Context(), Delete{AccountID: account.NewID()})
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
	assert.Empty(t, s.MockIdentity.ActiveCalls())
}

func TestDeleteHandler_DeactivateFails_ShouldKeepAccount(t *testing.T) {
	t.Parallel()

	s := NewDeleteSuite()
	acc := builders.NewAccountBuilder().Build()
	s.MockRepo.SeedAccount(t, acc)
	s.MockIdentity.ActiveErr = errorx.NewUpstreamTimeout()

	err := s.Handler.Handle(t.Context(), Delete{AccountID: acc.ID()})
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeUpstreamTimeout))

	s.MockRepo.AssertAccountExistsByID(t, acc.ID())
	s.MockIdentity.AssertDeleteCallCount(t, 0)
}

func TestDeleteHandler_DeactivateRejected_ShouldKeepAccount(t *testing.T) {
	t.Parallel()

	s := NewDeleteSuite()
	acc := builders.NewAccountBuilder().Build()
	s.MockRepo.SeedAccount(t, acc)
	s.MockIdentity.ActiveReply = identity.ActiveReply{Success: false, StatusCode: 404, Message: "user not found"}

	err := s.Handler.Handle(t.Context(), Delete{AccountID: acc.ID()})
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))

	s.MockRepo.AssertAccountExistsByID(t, acc.ID())
	s.MockIdentity.AssertDeleteCallCount(t, 0)
}

func TestDeleteHandler_LocalDeleteFails_ShouldReactivate(t *testing.T) {
	t.Parallel()

	s := NewDeleteSuite()
	acc := builders.NewAccountBuilder().Build()
	s.MockRepo.SeedAccount(t, acc)
	s.MockRepo.DeleteErr = errorx.NewInternalError()

	err := s.Handler.Handle(t.Context(), Delete{AccountID: acc.ID()})
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeInternal))
	assert.False(t, errorx.IsCode(err, errorx.CodeCompensationFailed))

	s.MockRepo.AssertAccountExistsByID(t, acc.ID())
	s.MockIdentity.AssertDeleteCallCount(t, 0)

	calls := s.MockIdentity.ActiveCalls()
	require.Len(t, calls, 2)
	assert.False(t, calls[0].Active)
	assert.True(t, calls[1].Active)
}

func TestDeleteHandler_LocalDeleteAndReactivateFail(t *testing.T) {
	t.Parallel()

	s := NewDeleteSuite()
	acc := builders.NewAccountBuilder().Build()
	s.MockRepo.SeedAccount(t, acc)
	s.MockRepo.DeleteErr = errorx.NewInternalError()
	s.MockIdentity.ReactivateErr = errorx.NewUpstreamError()

	err := s.Handler.Handle(t.Context(), Delete{AccountID: acc.ID()})
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeCompensationFailed))
}

func TestDeleteHandler_RemoteDeleteFails_ShouldReportReconcileRequired(t *testing.T) {
	t.Parallel()

	s := NewDeleteSuite()
	acc := builders.NewAccountBuilder().Build()
	s.MockRepo.SeedAccount(t, acc)
	s.MockIdentity.DeleteErr = errorx.NewUpstreamError()

	err := s.Handler.Handle(t.Context(), Delete{AccountID: acc.ID()})
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeReconcileRequired))

	// The local row is already gone; the divergence is reported, not undone.
	s.MockRepo.AssertAccountNotExistsByID(t, acc.ID())
	s.MockIdentity.AssertDeleteCallCount(t, 1)
}
