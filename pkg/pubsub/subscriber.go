package pubsub

import (
	"context"
	"time"
)

type SubscribeHandler func(context.Context, *Pack, time.Time)

type Subscriber interface {
	// Subscribe starts consuming in the background. It returns once the
	// subscriber is ready to receive messages.
	Subscribe(ctx context.Context) error
	Stop(ctx context.Context) error
}
