package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"contactgate/internal/facts"
	"contactgate/pkg/domain"
)

// RedisStore keeps contact events in per-account sorted sets scored by unix
// milliseconds. Counting a trailing window is a ZCOUNT after trimming expired
// members, so multiple gate instances share one view of recent history.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func attemptsKey(id domain.AccountID) string {
	return "contactgate:history:attempts:" + id.String()
}

func conversationsKey(id domain.AccountID) string {
	return "contactgate:history:conversations:" + id.String()
}

func (s *RedisStore) record(ctx context.Context, key string, at time.Time) error {
	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score: float64(at.UnixMilli()),
		// Unique member so two events in the same millisecond both count.
		Member: fmt.Sprintf("%d:%s", at.UnixMilli(), uuid.NewString()),
	})
	pipe.Expire(ctx, key, longWindow)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("record history event: %w", err)
	}
	return nil
}

func (s *RedisStore) RecordAttempt(ctx context.Context, id domain.AccountID, _ domain.Channel, at time.Time) error {
	return s.record(ctx, attemptsKey(id), at)
}

// RecordConversation notes a connected outbound call.
func (s *RedisStore) RecordConversation(ctx context.Context, id domain.AccountID, at time.Time) error {
	return s.record(ctx, conversationsKey(id), at)
}

func (s *RedisStore) Counts(ctx context.Context, id domain.AccountID, now time.Time) (facts.HistoryCounts, error) {
	aKey := attemptsKey(id)
	cKey := conversationsKey(id)
	longCutoff := fmt.Sprintf("%d", now.Add(-longWindow).UnixMilli())
	shortCutoff := fmt.Sprintf("%d", now.Add(-shortWindow).UnixMilli())
	nowScore := fmt.Sprintf("%d", now.UnixMilli())

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, aKey, "-inf", "("+longCutoff)
	attempts7d := pipe.ZCount(ctx, aKey, shortCutoff, nowScore)
	attempts60d := pipe.ZCount(ctx, aKey, longCutoff, nowScore)
	pipe.ZRemRangeByScore(ctx, cKey, "-inf", "("+shortCutoff)
	conversations7d := pipe.ZCount(ctx, cKey, shortCutoff, nowScore)
	if _, err := pipe.Exec(ctx); err != nil {
		return facts.HistoryCounts{}, fmt.Errorf("count history events: %w", err)
	}

	return facts.HistoryCounts{
		Attempts7d:      int(attempts7d.Val()),
		Conversations7d: int(conversations7d.Val()),
		Attempts60d:     int(attempts60d.Val()),
	}, nil
}
