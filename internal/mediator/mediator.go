package mediator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/atoz-lab/backend/internal/common"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/validation"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Kind identifies a request type. Exactly one handler serves each kind.
type Kind string

type Request interface {
	Kind() Kind
}

// Unit is the result of a command which returns nothing.
type Unit struct{}

type HandlerFunc[Req Request, Resp any] func(ctx context.Context, req *Req) (*Resp, error)

type handler struct {
	command bool
	fn      func(ctx context.Context, req any) (any, error)
}

type Mediator struct {
	mutex    sync.RWMutex
	kinds    []Kind
	handlers map[Kind]handler
	sealed   bool
}

// New creates a Mediator expecting a handler for every given kind.
func New(kinds ...Kind) *Mediator {
	return &Mediator{
		kinds:    kinds,
		handlers: make(map[Kind]handler),
	}
}

// RegisterCommand binds a handler which mutates the store. It runs inside a
// database transaction. Registering a kind twice panics.
func RegisterCommand[Req Request, Resp any](m *Mediator, fn HandlerFunc[Req, Resp]) {
	register(m, true, fn)
}

// RegisterQuery binds a read-only handler. It runs without a transaction.
func RegisterQuery[Req Request, Resp any](m *Mediator, fn HandlerFunc[Req, Resp]) {
	register(m, false, fn)
}

func register[Req Request, Resp any](m *Mediator, command bool, fn HandlerFunc[Req, Resp]) {
	var zero Req
	kind := zero.Kind()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.sealed {
		panic(fmt.Sprintf("mediator: register %s after seal", kind))
	}

	if _, ok := m.handlers[kind]; ok {
		panic(fmt.Sprintf("mediator: duplicate handler for %s", kind))
	}

	m.handlers[kind] = handler{
		command: command,
		fn: func(ctx context.Context, req any) (any, error) {
			return fn(ctx, req.(*Req))
		},
	}
}

// Seal freezes the registry. It fails if a declared kind has no handler.
func (m *Mediator) Seal() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var missing []string
	for _, kind := range m.kinds {
		if _, ok := m.handlers[kind]; !ok {
			missing = append(missing, string(kind))
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("mediator: no handler for %s", strings.Join(missing, ", "))
	}

	m.sealed = true
	return nil
}

// Send validates req, then dispatches it to the handler of its kind.
// Unexpected errors are logged and returned as errorx.Unknown.
func Send[Req Request, Resp any](ctx context.Context, m *Mediator, req *Req) (*Resp, error) {
	if req == nil {
		xcontext.Logger(ctx).Errorf("Cannot dispatch a nil request")
		return nil, errorx.Unknown
	}

	kind := (*req).Kind()
	start := time.Now()

	result, err := m.dispatch(ctx, kind, req)
	observe(kind, start, err)
	if err != nil {
		return nil, err
	}

	resp, ok := result.(*Resp)
	if !ok {
		xcontext.Logger(ctx).Errorf("Handler of %s returns %T, not %T", kind, result, resp)
		return nil, errorx.Unknown
	}

	return resp, nil
}

// Handle adapts the handler of a kind to a typed function, for example an
// HTTP route.
func Handle[Req Request, Resp any](m *Mediator) func(context.Context, *Req) (*Resp, error) {
	return func(ctx context.Context, req *Req) (*Resp, error) {
		return Send[Req, Resp](ctx, m, req)
	}
}

func (m *Mediator) dispatch(ctx context.Context, kind Kind, req any) (result any, err error) {
	if err := validation.Error(validation.Validate(req)); err != nil {
		return nil, err
	}

	m.mutex.RLock()
	h, ok := m.handlers[kind]
	m.mutex.RUnlock()
	if !ok {
		xcontext.Logger(ctx).Errorf("No handler registered for %s", kind)
		return nil, errorx.Unknown
	}

	defer func() {
		if r := recover(); r != nil {
			xcontext.Logger(ctx).Errorf("Handler of %s panics: %v", kind, r)
			result, err = nil, errorx.Unknown
		}
	}()

	if h.command {
		result, err = runCommand(ctx, kind, h, req)
	} else {
		result, err = h.fn(ctx, req)
	}

	if err != nil {
		return nil, unexpected(ctx, kind, err)
	}

	return result, nil
}

func runCommand(ctx context.Context, kind Kind, h handler, req any) (any, error) {
	db := xcontext.DB(ctx)
	if db == nil {
		xcontext.Logger(ctx).Errorf("No database to run %s", kind)
		return nil, errorx.Unknown
	}

	// A command dispatched by another command joins the outer transaction and
	// its hooks wait for the outer commit.
	hooks, nested := ctx.Value(hooksKey{}).(*commitHooks)
	if !nested {
		hooks = &commitHooks{}
	}

	var result any
	err := db.Transaction(func(tx *gorm.DB) error {
		txCtx := xcontext.WithDB(ctx, tx)
		txCtx = context.WithValue(txCtx, hooksKey{}, hooks)

		var err error
		result, err = h.fn(txCtx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !nested {
		hooks.run(ctx)
	}

	return result, nil
}

func unexpected(ctx context.Context, kind Kind, err error) error {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return errx
	}

	xcontext.Logger(ctx).Errorf("Cannot handle %s: %v", kind, err)
	return errorx.Unknown
}

func observe(kind Kind, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		switch {
		case errorx.Is(err, errorx.Validation):
			outcome = "invalid"
		case errorx.Is(err, errorx.Unknown.Code):
			outcome = "error"
		default:
			outcome = "rejected"
		}
	}

	common.PromCounters[common.MediatorRequestTotal].WithLabelValues(string(kind), outcome).Inc()
	common.PromHistograms[common.MediatorRequestDuration].WithLabelValues(string(kind)).
		Observe(time.Since(start).Seconds())
}
