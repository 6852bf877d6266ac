package pubsub_test

import (
	"context"
	"testing"
	"time"

	"github.com/atoz-lab/backend/pkg/pubsub"
	"github.com/stretchr/testify/require"
)

func TestLocalBus(t *testing.T) {
	bus := pubsub.NewLocalBus()

	var received []string
	sub := bus.NewSubscriber("comment", func(_ context.Context, p *pubsub.Pack, _ time.Time) {
		received = append(received, string(p.Msg))
	})

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, "comment", &pubsub.Pack{Msg: []byte("before")}))
	require.NoError(t, sub.Subscribe(ctx))
	require.NoError(t, bus.Publish(ctx, "comment", &pubsub.Pack{Msg: []byte("first")}))
	require.NoError(t, bus.Publish(ctx, "other", &pubsub.Pack{Msg: []byte("ignored")}))
	require.NoError(t, sub.Stop(ctx))
	require.NoError(t, bus.Publish(ctx, "comment", &pubsub.Pack{Msg: []byte("after")}))

	require.Equal(t, []string{"first"}, received)
}
