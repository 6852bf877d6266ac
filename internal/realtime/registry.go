package realtime

import (
	"github.com/atoz-lab/backend/internal/common"
	"github.com/puzpuzpuz/xsync/v2"
)

type hub struct {
	sessions *xsync.MapOf[string, *Session]
}

// Registry maps every activity to the sessions subscribed to it. A hub exists
// only while it has at least one session.
type Registry struct {
	hubs *xsync.MapOf[string, *hub]
}

func NewRegistry() *Registry {
	return &Registry{hubs: xsync.NewMapOf[*hub]()}
}

func (r *Registry) Join(activityID string, session *Session) {
	if !session.addActivity(activityID) {
		return
	}

	r.hubs.Compute(activityID, func(h *hub, loaded bool) (*hub, bool) {
		if !loaded {
			h = &hub{sessions: xsync.NewMapOf[*Session]()}
		}

		h.sessions.Store(session.ID, session)
		return h, false
	})
}

func (r *Registry) Leave(activityID string, session *Session) {
	if !session.removeActivity(activityID) {
		return
	}

	r.hubs.Compute(activityID, func(h *hub, loaded bool) (*hub, bool) {
		if !loaded {
			return h, true
		}

		h.sessions.Delete(session.ID)
		return h, h.sessions.Size() == 0
	})
}

// Remove detaches the session from every activity it joined.
func (r *Registry) Remove(session *Session) {
	for _, activityID := range session.Activities() {
		r.Leave(activityID, session)
	}
}

// Broadcast sends msg to every session of the activity and returns the number
// of sessions which received it. A session which cannot keep up is closed and
// removed, other sessions are not affected.
func (r *Registry) Broadcast(activityID string, msg []byte) int {
	h, ok := r.hubs.Load(activityID)
	if !ok {
		return 0
	}

	count := 0
	h.sessions.Range(func(_ string, session *Session) bool {
		if err := session.Send(msg); err != nil {
			r.drop(session)
			return true
		}

		count++
		return true
	})

	return count
}

// Subscribers returns the number of sessions subscribed to the activity.
func (r *Registry) Subscribers(activityID string) int {
	h, ok := r.hubs.Load(activityID)
	if !ok {
		return 0
	}

	return h.sessions.Size()
}

// Hubs returns the number of activities having at least one subscriber.
func (r *Registry) Hubs() int {
	return r.hubs.Size()
}

func (r *Registry) drop(session *Session) {
	common.PromCounters[common.RealtimeDroppedSessionsTotal].WithLabelValues().Inc()
	r.Remove(session)
	session.Close()
}
