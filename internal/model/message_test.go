package model

import (
	"strings"
	"testing"
	"time"
)

func TestNewPendingMessageCarriesTempID(t *testing.T) {
	now := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	msg := NewPendingMessage("conv-1", "dad@x.com", "Yes, 10am works", ToneFriendly, now)

	if !strings.HasPrefix(msg.ID, TempIDPrefix) {
		t.Fatalf("expected temp id prefix, got %q", msg.ID)
	}
	if !msg.IsPending() {
		t.Fatal("expected pending message")
	}
	if msg.Status != StatusSent {
		t.Fatalf("expected status sent, got %q", msg.Status)
	}
	if msg.ConversationID != "conv-1" || msg.SenderEmail != "dad@x.com" {
		t.Fatalf("unexpected ownership fields: %+v", msg)
	}

	other := NewPendingMessage("conv-1", "dad@x.com", "again", ToneFriendly, now)
	if other.ID == msg.ID {
		t.Fatal("expected unique temp ids per send")
	}
}

func TestIsOwnComparesEmailCaseInsensitively(t *testing.T) {
	msg := Message{SenderEmail: "Mom@Example.com"}

	if !msg.IsOwn("mom@example.com") {
		t.Fatal("expected case-insensitive email match")
	}
	if msg.IsOwn("dad@example.com") {
		t.Fatal("expected mismatch for other sender")
	}
	if msg.IsOwn("") {
		t.Fatal("empty email must never own a message")
	}
}

func TestMessageCreateValidate(t *testing.T) {
	valid := MessageCreate{ConversationID: "1", Content: "hello", Tone: ToneMatterOfFact}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	cases := []MessageCreate{
		{ConversationID: "", Content: "hello", Tone: ToneFriendly},
		{ConversationID: "1", Content: "   ", Tone: ToneFriendly},
		{ConversationID: "1", Content: "hello", Tone: "sarcastic"},
	}
	for i, payload := range cases {
		if err := payload.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
