package realtime

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/time/rate"
)

// Conn is the outbound side of a client connection. Write must not block.
type Conn interface {
	Write(msg []byte) error
	Close()
}

type Session struct {
	ID       string
	Username string

	conn    Conn
	limiter *rate.Limiter

	mutex      sync.Mutex
	activities map[string]struct{}
}

func NewSession(username string, conn Conn, limiter *rate.Limiter) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Username:   username,
		conn:       conn,
		limiter:    limiter,
		activities: make(map[string]struct{}),
	}
}

func (s *Session) Send(msg []byte) error {
	return s.conn.Write(msg)
}

// Allow reports whether the session may send one more comment now.
func (s *Session) Allow() bool {
	if s.limiter == nil {
		return true
	}

	return s.limiter.Allow()
}

func (s *Session) Close() {
	s.conn.Close()
}

func (s *Session) Activities() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return maps.Keys(s.activities)
}

func (s *Session) addActivity(activityID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.activities[activityID]; ok {
		return false
	}

	s.activities[activityID] = struct{}{}
	return true
}

func (s *Session) removeActivity(activityID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.activities[activityID]; !ok {
		return false
	}

	delete(s.activities, activityID)
	return true
}
