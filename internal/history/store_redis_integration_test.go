//go:build integration

package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"contactgate/pkg/domain"
	"contactgate/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestCounts() {
	ctx := context.Background()
	now := time.Now().UTC()
	id := domain.AccountID(uuid.New())

	s.Require().NoError(s.store.RecordAttempt(ctx, id, domain.ChannelVoice, now.Add(-2*time.Hour)))
	s.Require().NoError(s.store.RecordAttempt(ctx, id, domain.ChannelSMS, now.Add(-24*time.Hour)))
	s.Require().NoError(s.store.RecordAttempt(ctx, id, domain.ChannelVoice, now.Add(-10*24*time.Hour)))
	s.Require().NoError(s.store.RecordConversation(ctx, id, now.Add(-72*time.Hour)))

	counts, err := s.store.Counts(ctx, id, now)
	s.Require().NoError(err)
	s.Equal(2, counts.Attempts7d)
	s.Equal(1, counts.Conversations7d)
	s.Equal(3, counts.Attempts60d)
}

func (s *RedisStoreSuite) TestCounts_EmptyAccount() {
	counts, err := s.store.Counts(context.Background(), domain.AccountID(uuid.New()), time.Now().UTC())
	s.Require().NoError(err)
	s.Zero(counts.Attempts7d)
	s.Zero(counts.Conversations7d)
	s.Zero(counts.Attempts60d)
}

func (s *RedisStoreSuite) TestSameMillisecondEventsBothCount() {
	ctx := context.Background()
	now := time.Now().UTC()
	id := domain.AccountID(uuid.New())
	at := now.Add(-time.Hour)

	s.Require().NoError(s.store.RecordAttempt(ctx, id, domain.ChannelVoice, at))
	s.Require().NoError(s.store.RecordAttempt(ctx, id, domain.ChannelVoice, at))

	counts, err := s.store.Counts(ctx, id, now)
	s.Require().NoError(err)
	s.Equal(2, counts.Attempts7d)
}

func (s *RedisStoreSuite) TestExpiredEventsAreTrimmed() {
	ctx := context.Background()
	now := time.Now().UTC()
	id := domain.AccountID(uuid.New())

	s.Require().NoError(s.store.RecordAttempt(ctx, id, domain.ChannelVoice, now.Add(-61*24*time.Hour)))
	s.Require().NoError(s.store.RecordAttempt(ctx, id, domain.ChannelVoice, now.Add(-time.Hour)))

	counts, err := s.store.Counts(ctx, id, now)
	s.Require().NoError(err)
	s.Equal(1, counts.Attempts60d)

	size, err := s.redis.Client.ZCard(ctx, "contactgate:history:attempts:"+id.String()).Result()
	s.Require().NoError(err)
	s.EqualValues(1, size, "expired members are removed, not just excluded")
}

func (s *RedisStoreSuite) TestAccountsAreIndependent() {
	ctx := context.Background()
	now := time.Now().UTC()
	a := domain.AccountID(uuid.New())
	b := domain.AccountID(uuid.New())

	s.Require().NoError(s.store.RecordAttempt(ctx, a, domain.ChannelVoice, now.Add(-time.Hour)))

	counts, err := s.store.Counts(ctx, b, now)
	s.Require().NoError(err)
	s.Zero(counts.Attempts60d)
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}
