package mediator

import (
	"context"
	"sync"
)

type hooksKey struct{}

type commitHooks struct {
	mutex sync.Mutex
	fns   []func(context.Context)
}

func (h *commitHooks) add(fn func(context.Context)) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.fns = append(h.fns, fn)
}

func (h *commitHooks) run(ctx context.Context) {
	h.mutex.Lock()
	fns := h.fns
	h.fns = nil
	h.mutex.Unlock()

	for _, fn := range fns {
		fn(ctx)
	}
}

// AfterCommit defers fn until the transaction of the current command is
// committed. fn never runs if the command fails. Outside of a command, fn
// runs immediately.
func AfterCommit(ctx context.Context, fn func(context.Context)) {
	if hooks, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		hooks.add(fn)
		return
	}

	fn(ctx)
}
