package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/atoz-lab/backend/internal/common"
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/middleware"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/pubsub"
	"github.com/atoz-lab/backend/pkg/router"
	"github.com/atoz-lab/backend/pkg/ws"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

type Server struct {
	contextBuilder func(context.Context) context.Context
	verifier       *middleware.AuthVerifier
	mediator       *mediator.Mediator
	registry       *Registry
	upgrader       websocket.Upgrader
}

func NewServer(
	contextBuilder func(context.Context) context.Context,
	verifier *middleware.AuthVerifier,
	m *mediator.Mediator,
	registry *Registry,
	allowedOrigins []string,
) *Server {
	return &Server{
		contextBuilder: contextBuilder,
		verifier:       verifier,
		mediator:       m,
		registry:       registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

// ServeHTTP upgrades an authenticated request to a websocket session. The
// session is subscribed to the activity of the activity_id query parameter if
// it exists, then serves directives until the peer goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := s.contextBuilder(r.Context())
	ctx = xcontext.WithHTTPRequest(ctx, r)

	username, err := s.verifier.Verify(r)
	if err != nil {
		_ = router.WriteJSON(w, router.StatusCode(err), router.ErrorBody(err))
		return
	}
	ctx = xcontext.WithRequestUsername(ctx, username)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot upgrade connection of %s: %v", username, err)
		return
	}

	cfg := xcontext.Configs(ctx).Realtime
	client := ws.NewClient(conn, cfg.SessionBuffer)
	session := NewSession(username, client,
		rate.NewLimiter(rate.Limit(cfg.CommentRate), cfg.CommentBurst))

	gauge := common.PromGauges[common.RealtimeSessions].WithLabelValues()
	gauge.Inc()
	defer gauge.Dec()

	defer client.Close()
	defer s.registry.Remove(session)

	if activityID := r.URL.Query().Get("activity_id"); activityID != "" {
		if err := s.join(ctx, session, activityID); err != nil {
			s.sendError(ctx, session, err)
		}
	}

	xcontext.Logger(ctx).Debugf("Session %s of %s connected", session.ID, username)
	for msg := range client.R {
		s.handle(ctx, session, msg)
	}
	xcontext.Logger(ctx).Debugf("Session %s of %s disconnected", session.ID, username)
}

func (s *Server) handle(ctx context.Context, session *Session, msg []byte) {
	var directive Directive
	if err := json.Unmarshal(msg, &directive); err != nil {
		s.sendError(ctx, session, errorx.New(errorx.BadRequest, "Invalid directive"))
		return
	}

	switch directive.Op {
	case SubscribeDirective, UnsubscribeDirective:
		var data activityData
		if err := json.Unmarshal(directive.Data, &data); err != nil || data.ActivityID == "" {
			s.sendError(ctx, session, errorx.New(errorx.BadRequest, "Invalid activity"))
			return
		}

		if directive.Op == UnsubscribeDirective {
			s.registry.Leave(data.ActivityID, session)
		} else if err := s.join(ctx, session, data.ActivityID); err != nil {
			s.sendError(ctx, session, err)
		}

	case SendCommentDirective:
		var req model.CreateCommentRequest
		if err := json.Unmarshal(directive.Data, &req); err != nil {
			s.sendError(ctx, session, errorx.New(errorx.BadRequest, "Invalid comment"))
			return
		}

		if req.ActivityID != "" {
			if err := s.join(ctx, session, req.ActivityID); err != nil {
				s.sendError(ctx, session, err)
				return
			}
		}

		if !session.Allow() {
			s.sendError(ctx, session, errorx.New(errorx.TooManyRequests, "Too many comments"))
			return
		}

		// The comment reaches subscribers, the sender included, through the
		// comment bus once it is committed.
		_, err := mediator.Send[model.CreateCommentRequest, model.CreateCommentResponse](ctx, s.mediator, &req)
		if err != nil {
			s.sendError(ctx, session, err)
		}

	default:
		s.sendError(ctx, session, errorx.New(errorx.BadRequest, "Unknown directive %q", directive.Op))
	}
}

// join subscribes session to an existing activity. Unknown activities are
// rejected so that a session cannot grow the registry with arbitrary ids.
func (s *Server) join(ctx context.Context, session *Session, activityID string) error {
	_, err := mediator.Send[model.GetActivityRequest, model.GetActivityResponse](
		ctx, s.mediator, &model.GetActivityRequest{ActivityID: activityID})
	if err != nil {
		return err
	}

	s.registry.Join(activityID, session)
	return nil
}

func (s *Server) sendError(ctx context.Context, session *Session, err error) {
	msg, merr := json.Marshal(Event{Op: ErrorEvent, Data: router.ErrorBody(err)})
	if merr != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal error event: %v", merr)
		return
	}

	if err := session.Send(msg); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot send error event to session %s: %v", session.ID, err)
	}
}

// HandleComment is the comment bus handler. It fans a committed comment out
// to the sessions of its activity on this process.
func (s *Server) HandleComment(ctx context.Context, pack *pubsub.Pack, _ time.Time) {
	var comment model.Comment
	if err := json.Unmarshal(pack.Msg, &comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal comment: %v", err)
		return
	}

	msg, err := json.Marshal(Event{Op: CommentCreatedEvent, Data: comment})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal comment event: %v", err)
		return
	}

	n := s.registry.Broadcast(comment.ActivityID, msg)
	common.PromCounters[common.RealtimeBroadcastEventsTotal].WithLabelValues(CommentCreatedEvent).Add(float64(n))
}

func checkOrigin(allowedOrigins []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		for _, allowed := range allowedOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}

		return false
	}
}
