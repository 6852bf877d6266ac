package xredis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/atoz-lab/backend/pkg/pubsub"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

// envelope keeps the Pack key on the wire, redis channels carry only a
// payload.
type envelope struct {
	Key []byte `json:"k,omitempty"`
	Msg []byte `json:"m"`
}

type publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *publisher {
	return &publisher{client: client}
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	b, err := json.Marshal(envelope{Key: pack.Key, Msg: pack.Msg})
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, topic, b).Err()
}

type subscriber struct {
	client  *redis.Client
	topics  []string
	handler pubsub.SubscribeHandler
	ps      *redis.PubSub
	done    chan struct{}
}

func NewSubscriber(client *redis.Client, topics []string, handler pubsub.SubscribeHandler) *subscriber {
	return &subscriber{
		client:  client,
		topics:  topics,
		handler: handler,
		done:    make(chan struct{}),
	}
}

func (s *subscriber) Subscribe(ctx context.Context) error {
	s.ps = s.client.Subscribe(ctx, s.topics...)

	// Wait for the subscription confirmation, otherwise messages published
	// right after Subscribe returns may be lost.
	if _, err := s.ps.Receive(ctx); err != nil {
		_ = s.ps.Close()
		s.ps = nil
		return err
	}

	go func() {
		defer close(s.done)
		for msg := range s.ps.Channel() {
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot decode message of channel %s: %v", msg.Channel, err)
				continue
			}

			s.handler(ctx, &pubsub.Pack{Key: env.Key, Msg: env.Msg}, time.Now())
		}
	}()

	return nil
}

func (s *subscriber) Stop(ctx context.Context) error {
	if s.ps == nil {
		return nil
	}

	err := s.ps.Close()
	<-s.done
	return err
}
