// Package domain contains core concepts of the chat relay.
// This file defines Message, the persisted chat event.
// Messages are immutable once created, append-only, never deleted.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents one accepted chat event after moderation.
// Sender carries the display name so broadcast frames need no extra lookup.
type Message struct {
	ID        uuid.UUID
	Room      RoomID
	SenderID  UserID
	Sender    string
	Content   string
	CreatedAt time.Time
}
