package router

import (
	"context"
	"net/http"

	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slices"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may enrich the context or abort
// the request by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, whatever the outcome. The
// error of the request, if any, is available via xcontext.Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux            chi.Router
	contextBuilder func(context.Context) context.Context

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(contextBuilder func(context.Context) context.Context) *Router {
	if contextBuilder == nil {
		contextBuilder = func(ctx context.Context) context.Context { return ctx }
	}

	return &Router{
		mux:            chi.NewRouter(),
		contextBuilder: contextBuilder,
	}
}

// Branch returns a Router sharing the same routes. Middlewares and closers
// added to the branch do not affect the parent.
func (r *Router) Branch() *Router {
	return &Router{
		mux:            r.mux,
		contextBuilder: r.contextBuilder,
		befores:        slices.Clone(r.befores),
		closers:        slices.Clone(r.closers),
	}
}

// Route returns a Router whose patterns are prefixed by pattern.
func (r *Router) Route(pattern string) *Router {
	sub := chi.NewRouter()
	r.mux.Mount(pattern, sub)

	return &Router{
		mux:            sub,
		contextBuilder: r.contextBuilder,
		befores:        slices.Clone(r.befores),
		closers:        slices.Clone(r.closers),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

// Handle registers a raw http.Handler, bypassing middlewares and closers.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPut, pattern, handler)
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodDelete, pattern, handler)
}

func route[Request, Response any](
	r *Router,
	method, pattern string,
	handler HandlerFunc[Request, Response],
) {
	befores := slices.Clone(r.befores)
	closers := slices.Clone(r.closers)

	r.mux.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := r.contextBuilder(req.Context())
		ctx = xcontext.WithHTTPRequest(ctx, req)

		var resp *Response
		var err error
		for _, before := range befores {
			var next context.Context
			if next, err = before(ctx); err != nil {
				break
			}
			ctx = next
		}

		if err == nil {
			var request Request
			if err = parseRequest(req, &request); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot parse request of %s: %v", req.URL.Path, err)
				err = errorx.New(errorx.BadRequest, "Invalid request")
			} else {
				resp, err = handler(ctx, &request)
			}
		}

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, w, err)
		} else {
			writeResponse(ctx, w, resp)
		}

		for _, closer := range closers {
			closer(ctx)
		}
	}))
}
