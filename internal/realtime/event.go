package realtime

import "fmt"

// Event names carried over the websocket, both directions.
const (
	EventJoinChat       = "join_chat"
	EventLeaveChat      = "leave_chat"
	EventSendMessage    = "send_message"
	EventReceiveMessage = "receive_message"
	EventMatchUpdate    = "match_update"
	EventMatchResponse  = "match_response"
	EventNotification   = "notification"
	EventError          = "error"
)

// Event is the wire envelope for every websocket frame.
type Event struct {
	Event   string      `json:"event"`
	Room    string      `json:"room,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Room name helpers. Chat rooms are joined explicitly after a membership
// check; the personal room is joined automatically on connect.
func ChatRoom(chatID int) string {
	return fmt.Sprintf("chat:%d", chatID)
}

func UserRoom(userID int) string {
	return fmt.Sprintf("user:%d", userID)
}

// Publisher pushes events to rooms. Implemented by the Hub; usecases depend
// on this interface rather than on the hub itself.
type Publisher interface {
	PublishToChat(chatID int, event string, payload interface{})
	PublishToUser(userID int, event string, payload interface{})
}
