// Package event defines the tagged wire frames exchanged with peers.
// Each variant has a fixed field set filled by its constructor; frames are
// immutable once built.
package event

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"

	"chat-relay/domain"
)

type Type string

const (
	TypeHistory     Type = "history"
	TypeMessage     Type = "message"
	TypeTyping      Type = "typing"
	TypeUserJoin    Type = "user.join"
	TypeUserLeave   Type = "user.leave"
	TypeUsersOnline Type = "users.online"
	TypeError       Type = "error"
	TypeUnknown     Type = "unknown"
)

// ChatEvent is an outbound frame. Implementations marshal to a JSON object
// whose "type" field tags the variant.
type ChatEvent interface {
	EventType() Type
}

// HistoryMessage is one replayed message inside a History frame.
type HistoryMessage struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

type History struct {
	Type     Type             `json:"type"`
	Messages []HistoryMessage `json:"messages"`
}

func (History) EventType() Type { return TypeHistory }

// NewHistory builds a replay frame, oldest message first. The messages list
// is always present on the wire, empty when the room has no history.
func NewHistory(messages []domain.Message) History {
	items := lo.Map(messages, func(m domain.Message, _ int) HistoryMessage {
		return HistoryMessage{
			ID:        m.ID.String(),
			Content:   m.Content,
			Sender:    m.Sender,
			Timestamp: m.CreatedAt.Format(time.RFC3339Nano),
		}
	})
	if items == nil {
		items = make([]HistoryMessage, 0)
	}
	return History{Type: TypeHistory, Messages: items}
}

// MessagePayload mirrors the persisted message inside a Message frame.
type MessagePayload struct {
	ID        string        `json:"id"`
	Room      domain.RoomID `json:"room"`
	Sender    string        `json:"sender"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
}

type Message struct {
	Type    Type           `json:"type"`
	Message MessagePayload `json:"message"`
}

func (Message) EventType() Type { return TypeMessage }

func NewMessage(m domain.Message) Message {
	return Message{
		Type: TypeMessage,
		Message: MessagePayload{
			ID:        m.ID.String(),
			Room:      m.Room,
			Sender:    m.Sender,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.Format(time.RFC3339Nano),
		},
	}
}

type Typing struct {
	Type Type   `json:"type"`
	User string `json:"user"`
}

func (Typing) EventType() Type { return TypeTyping }

func NewTyping(user string) Typing { return Typing{Type: TypeTyping, User: user} }

type UserJoin struct {
	Type Type   `json:"type"`
	User string `json:"user"`
}

func (UserJoin) EventType() Type { return TypeUserJoin }

func NewUserJoin(user string) UserJoin { return UserJoin{Type: TypeUserJoin, User: user} }

type UserLeave struct {
	Type Type   `json:"type"`
	User string `json:"user"`
}

func (UserLeave) EventType() Type { return TypeUserLeave }

func NewUserLeave(user string) UserLeave { return UserLeave{Type: TypeUserLeave, User: user} }

type UsersOnline struct {
	Type  Type     `json:"type"`
	Users []string `json:"users"`
}

func (UsersOnline) EventType() Type { return TypeUsersOnline }

func NewUsersOnline(users []string) UsersOnline {
	if users == nil {
		users = make([]string, 0)
	}
	return UsersOnline{Type: TypeUsersOnline, Users: users}
}

type Error struct {
	Type  Type   `json:"type"`
	Error string `json:"error"`
}

func (Error) EventType() Type { return TypeError }

func NewError(reason string) Error { return Error{Type: TypeError, Error: reason} }

// Unknown relays a frame whose type the relay does not recognize. Newer
// clients keep working against older relays because nothing is dropped.
type Unknown struct {
	Type Type            `json:"type"`
	Raw  json.RawMessage `json:"raw"`
}

func (Unknown) EventType() Type { return TypeUnknown }

func NewUnknown(raw []byte) Unknown {
	return Unknown{Type: TypeUnknown, Raw: json.RawMessage(raw)}
}

// Encode serializes an outbound frame.
func Encode(e ChatEvent) ([]byte, error) { return json.Marshal(e) }
