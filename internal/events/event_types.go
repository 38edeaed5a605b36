package events

import (
	"time"

	"github.com/spec-kit/donation-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserDeactivated EventType = "user_deactivated"
	EventCauseFavorited  EventType = "cause_favorited"
	EventPixKeyAdded     EventType = "pix_key_added"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// UserDeactivatedPayload payload.
type UserDeactivatedPayload struct {
	TargetID int64       `json:"target_id"`
	Kind     domain.Role `json:"kind"`
}

// CauseFavoritedPayload payload.
type CauseFavoritedPayload struct {
	CauseID int64 `json:"cause_id"`
}

// PixKeyAddedPayload payload.
type PixKeyAddedPayload struct {
	KeyType domain.PixKeyType `json:"key_type"`
}
