package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Shopify/sarama"
	"github.com/atoz-lab/backend/pkg/pubsub"
	"github.com/atoz-lab/backend/pkg/xcontext"
)

const (
	minRetryBackoff = 100 * time.Millisecond
	maxRetryBackoff = 10 * time.Second
)

type subscriber struct {
	groupID string
	topics  []string
	client  sarama.ConsumerGroup
	handler pubsub.SubscribeHandler
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSubscriber creates a consumer group subscriber. Every process which must
// observe all messages (fan-out) needs its own groupID; processes sharing a
// groupID split the partitions between them.
func NewSubscriber(
	groupID string,
	brokerAddrs []string,
	topics []string,
	handler pubsub.SubscribeHandler,
) (*subscriber, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	client, err := sarama.NewConsumerGroup(brokerAddrs, groupID, config)
	if err != nil {
		return nil, err
	}

	return newSubscriber(groupID, client, topics, handler), nil
}

func newSubscriber(
	groupID string,
	client sarama.ConsumerGroup,
	topics []string,
	handler pubsub.SubscribeHandler,
) *subscriber {
	return &subscriber{
		groupID: groupID,
		topics:  topics,
		client:  client,
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Subscribe returns once the consumer joined its first generation. If the
// group cannot be joined, the first error is returned and the subscriber is
// closed.
func (s *subscriber) Subscribe(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	ready := make(chan struct{})
	failed := make(chan error, 1)
	consumer := &consumerGroupHandler{ready: ready, fn: s.handler}

	go func() {
		defer close(s.done)

		backoff := minRetryBackoff
		for {
			// Consume returns when a server-side rebalance happens, so it is
			// called again to join the new generation.
			err := s.client.Consume(ctx, s.topics, consumer)
			if errors.Is(err, sarama.ErrClosedConsumerGroup) || ctx.Err() != nil {
				return
			}

			if err == nil {
				backoff = minRetryBackoff
				continue
			}

			xcontext.Logger(ctx).Errorf("Error from consumer group %s: %v", s.groupID, err)
			select {
			case failed <- err:
			default:
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}

			if backoff *= 2; backoff > maxRetryBackoff {
				backoff = maxRetryBackoff
			}
		}
	}()

	select {
	case <-ready:
		return nil

	case err := <-failed:
		select {
		case <-ready:
			return nil
		default:
		}

		s.cancel()
		<-s.done
		_ = s.client.Close()
		return err

	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *subscriber) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	return s.client.Close()
}

type consumerGroupHandler struct {
	ready chan struct{}
	once  sync.Once
	fn    pubsub.SubscribeHandler
}

// Setup runs at the start of every generation, only the first one signals
// readiness.
func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.once.Do(func() { close(h.ready) })
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(
	session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim,
) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			h.fn(session.Context(), &pubsub.Pack{
				Key: message.Key,
				Msg: message.Value,
			}, message.Timestamp)
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
