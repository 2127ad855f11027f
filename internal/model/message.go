package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tone is the communication register the sender chose for a message.
type Tone string

const (
	ToneMatterOfFact Tone = "matter-of-fact"
	ToneFriendly     Tone = "friendly"
	ToneNeutralLegal Tone = "neutral-legal"
)

// Tones lists the selectable tones in display order.
var Tones = []Tone{ToneFriendly, ToneMatterOfFact, ToneNeutralLegal}

// ValidTone reports whether value is a known tone.
func ValidTone(value string) bool {
	for _, t := range Tones {
		if string(t) == value {
			return true
		}
	}
	return false
}

// DeliveryStatus tracks how far a message has travelled.
type DeliveryStatus string

const (
	StatusSent      DeliveryStatus = "sent"
	StatusDelivered DeliveryStatus = "delivered"
	StatusRead      DeliveryStatus = "read"
)

// TempIDPrefix marks locally generated message ids for sends that the remote
// service has not acknowledged yet. Server ids never carry this prefix.
const TempIDPrefix = "temp-"

// Message is a single entry in a conversation. Ordering within a conversation
// is by Timestamp ascending.
type Message struct {
	// ID is either a server-issued id or a temp id for an in-flight send.
	ID string `json:"id"`

	// ConversationID names the owning conversation.
	ConversationID string `json:"conversationId"`

	// SenderEmail identifies the author; compared against the current user's
	// email to decide "is this mine".
	SenderEmail string `json:"senderEmail"`

	// Content is the message body.
	Content string `json:"content"`

	// Tone is the register the sender selected.
	Tone Tone `json:"tone"`

	// Timestamp is when the message was created.
	Timestamp time.Time `json:"timestamp"`

	// Status is the delivery state reported by the remote service.
	Status DeliveryStatus `json:"status"`
}

// IsPending reports whether the message is an optimistic local entry awaiting
// server confirmation.
func (m Message) IsPending() bool {
	return strings.HasPrefix(m.ID, TempIDPrefix)
}

// IsOwn reports whether the message was sent by the given user email.
func (m Message) IsOwn(email string) bool {
	return email != "" && strings.EqualFold(m.SenderEmail, email)
}

// NewPendingMessage builds the optimistic local record for an outbound send.
func NewPendingMessage(conversationID, senderEmail, content string, tone Tone, now time.Time) Message {
	return Message{
		ID:             TempIDPrefix + uuid.New().String(),
		ConversationID: conversationID,
		SenderEmail:    senderEmail,
		Content:        content,
		Tone:           tone,
		Timestamp:      now,
		Status:         StatusSent,
	}
}

// MessageCreate is the payload for posting a message.
type MessageCreate struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
	Tone           Tone   `json:"tone"`
}

// Validate checks a send payload before it goes on the wire.
func (m MessageCreate) Validate() error {
	errs := &ValidationErrors{}
	if strings.TrimSpace(m.ConversationID) == "" {
		errs.AddMessage("conversationId", "conversation id is required")
	}
	if strings.TrimSpace(m.Content) == "" {
		errs.AddMessage("content", "message content is empty")
	}
	if !ValidTone(string(m.Tone)) {
		errs.AddMessage("tone", "unknown tone "+string(m.Tone))
	}
	return errs.Err()
}
