package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"contactgate/internal/obligation"
)

const clientSetupTimeout = 10 * time.Second

// Kafka publishes obligations to the external scheduler's topic. Messages are
// keyed by account id so one account's obligations stay ordered within a
// partition.
type Kafka struct {
	client *kgo.Client
	topic  string
}

// NewKafka connects a producer and ensures the topic exists.
func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Kafka{client: client, topic: topic}, nil
}

func ensureTopic(client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	ctx, cancel := context.WithTimeout(context.Background(), clientSetupTimeout)
	defer cancel()
	resp, err := adm.CreateTopics(ctx, 3, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create obligation topic: %w", err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create obligation topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Enqueue produces one obligation synchronously. A failed produce surfaces
// to the gate, which logs and counts it; obligation delivery never flips a
// decision.
func (k *Kafka) Enqueue(ctx context.Context, ob obligation.Obligation) error {
	payload, err := json.Marshal(ob)
	if err != nil {
		return fmt.Errorf("marshal obligation: %w", err)
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(ob.AccountID.String()),
		Value: payload,
	}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce obligation: %w", err)
	}
	return nil
}

// Close flushes and releases the producer.
func (k *Kafka) Close() {
	k.client.Close()
}
