package facts_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"contactgate/internal/facts"
	"contactgate/internal/facts/mocks"
	"contactgate/pkg/domain"
)

// Interaction-level checks the fake-backed tests above cannot express: which
// collaborator is consulted, with what arguments, how many times.

func TestResolve_LooksUpTheSnapshotNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	id := domain.AccountID(uuid.New())
	snap := baseSnapshot(id)

	accounts := mocks.NewMockAccountStore(ctrl)
	accounts.EXPECT().GetAccountSnapshot(gomock.Any(), id).Return(&snap, nil)

	hist := mocks.NewMockContactHistory(ctrl)
	hist.EXPECT().Counts(gomock.Any(), id, now).Return(facts.HistoryCounts{Attempts7d: 2}, nil)

	dncReg := mocks.NewMockDNCRegistry(ctrl)
	dncReg.EXPECT().IsListed(gomock.Any(), snap.PhoneNumber).Return(false, nil)

	r := facts.NewResolver(accounts, hist, dncReg)

	f, err := r.Resolve(context.Background(), id, domain.ChannelVoice, now)
	require.NoError(t, err)
	assert.Equal(t, 2, f.History.Attempts7d)
}

func TestResolve_NoRegistryCallForEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	id := domain.AccountID(uuid.New())
	snap := baseSnapshot(id)

	accounts := mocks.NewMockAccountStore(ctrl)
	accounts.EXPECT().GetAccountSnapshot(gomock.Any(), id).Return(&snap, nil)

	hist := mocks.NewMockContactHistory(ctrl)
	hist.EXPECT().Counts(gomock.Any(), id, now).Return(facts.HistoryCounts{}, nil)

	// No IsListed expectation: a registry call would fail the test.
	dncReg := mocks.NewMockDNCRegistry(ctrl)

	r := facts.NewResolver(accounts, hist, dncReg)

	_, err := r.Resolve(context.Background(), id, domain.ChannelEmail, now)
	require.NoError(t, err)
}

func TestResolve_NoLookupsAfterMissingSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	id := domain.AccountID(uuid.New())

	accounts := mocks.NewMockAccountStore(ctrl)
	accounts.EXPECT().GetAccountSnapshot(gomock.Any(), id).Return(nil, assert.AnError)

	// Neither the history store nor the registry is touched when the
	// snapshot load fails.
	r := facts.NewResolver(accounts, mocks.NewMockContactHistory(ctrl), mocks.NewMockDNCRegistry(ctrl))

	_, err := r.Resolve(context.Background(), id, domain.ChannelVoice, now)
	assert.Error(t, err)
}
