package realtime

import "encoding/json"

const (
	SubscribeDirective   = "subscribe"
	UnsubscribeDirective = "unsubscribe"
	SendCommentDirective = "send_comment"

	CommentCreatedEvent = "comment_created"
	ErrorEvent          = "error"
)

// Directive is a message sent by a client.
type Directive struct {
	Op   string          `json:"o"`
	Data json.RawMessage `json:"d"`
}

// Event is a message sent to clients.
type Event struct {
	Op   string `json:"o"`
	Data any    `json:"d"`
}

type activityData struct {
	ActivityID string `json:"activity_id"`
}
