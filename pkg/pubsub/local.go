package pubsub

import (
	"context"
	"sync"
	"time"
)

// LocalBus is an in-process bus. It serves single-node deployments and tests,
// where every publisher and subscriber lives in the same process.
type LocalBus struct {
	mutex    sync.RWMutex
	handlers map[string][]SubscribeHandler
}

func NewLocalBus() *LocalBus {
	return &LocalBus{handlers: make(map[string][]SubscribeHandler)}
}

func (b *LocalBus) Publish(ctx context.Context, topic string, pack *Pack) error {
	b.mutex.RLock()
	handlers := append([]SubscribeHandler(nil), b.handlers[topic]...)
	b.mutex.RUnlock()

	now := time.Now()
	for _, handler := range handlers {
		handler(ctx, pack, now)
	}

	return nil
}

// NewSubscriber returns a Subscriber which receives every Pack published to
// topic after Subscribe is called.
func (b *LocalBus) NewSubscriber(topic string, handler SubscribeHandler) Subscriber {
	return &localSubscriber{bus: b, topic: topic, handler: handler}
}

type localSubscriber struct {
	bus     *LocalBus
	topic   string
	handler SubscribeHandler
	index   int
}

func (s *localSubscriber) Subscribe(context.Context) error {
	s.bus.mutex.Lock()
	defer s.bus.mutex.Unlock()

	s.index = len(s.bus.handlers[s.topic])
	s.bus.handlers[s.topic] = append(s.bus.handlers[s.topic], s.handler)
	return nil
}

func (s *localSubscriber) Stop(context.Context) error {
	s.bus.mutex.Lock()
	defer s.bus.mutex.Unlock()

	handlers := s.bus.handlers[s.topic]
	if s.index < len(handlers) {
		handlers[s.index] = func(context.Context, *Pack, time.Time) {}
	}
	return nil
}
