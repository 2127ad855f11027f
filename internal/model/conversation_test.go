package model

import (
	"testing"
	"time"
)

func TestMatchesFilterSearchIsCaseInsensitive(t *testing.T) {
	conv := Conversation{Subject: "Saturday Pickup Confirmation", Category: CategoryCustody}

	if !conv.MatchesFilter("saturday", CategoryAll) {
		t.Fatal("expected lowercase search to match")
	}
	if !conv.MatchesFilter("PICKUP", CategoryAll) {
		t.Fatal("expected uppercase search to match")
	}
	if conv.MatchesFilter("soccer", CategoryAll) {
		t.Fatal("expected non-matching search to fail")
	}
}

func TestMatchesFilterCategory(t *testing.T) {
	conv := Conversation{Subject: "Insurance Update", Category: CategoryMedical}

	if !conv.MatchesFilter("", "medical") {
		t.Fatal("expected matching category to pass")
	}
	if conv.MatchesFilter("", "school") {
		t.Fatal("expected mismatched category to fail")
	}
	if !conv.MatchesFilter("", CategoryAll) {
		t.Fatal("expected all-categories filter to pass")
	}
	if !conv.MatchesFilter("", "") {
		t.Fatal("expected empty category filter to pass")
	}
}

func TestMatchesFilterExcludesArchived(t *testing.T) {
	conv := Conversation{Subject: "Old thread", Category: CategoryGeneral, IsArchived: true}

	if conv.MatchesFilter("", CategoryAll) {
		t.Fatal("archived conversations must never match")
	}
	if conv.MatchesFilter("old", "general") {
		t.Fatal("archived conversations must never match, even with matching filters")
	}
}

func TestConversationCreateValidate(t *testing.T) {
	valid := ConversationCreate{Subject: "Soccer schedule", Category: CategoryActivities}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	missing := ConversationCreate{Subject: "  ", Category: CategoryGeneral}
	if err := missing.Validate(); err == nil {
		t.Fatal("expected error for blank subject")
	}

	badCategory := ConversationCreate{Subject: "x", Category: "gossip"}
	if err := badCategory.Validate(); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestLastActivityFallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	last := created.Add(2 * time.Hour)

	conv := Conversation{CreatedAt: &created}
	if got := conv.LastActivity(); !got.Equal(created) {
		t.Fatalf("expected created time, got %v", got)
	}

	conv.LastMessageAt = &last
	if got := conv.LastActivity(); !got.Equal(last) {
		t.Fatalf("expected last message time, got %v", got)
	}
}
