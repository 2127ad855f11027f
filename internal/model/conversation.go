package model

import (
	"strings"
	"time"
)

// Category classifies what a conversation is about.
type Category string

const (
	CategoryCustody    Category = "custody"
	CategoryMedical    Category = "medical"
	CategorySchool     Category = "school"
	CategoryActivities Category = "activities"
	CategoryFinancial  Category = "financial"
	CategoryGeneral    Category = "general"
	CategoryUrgent     Category = "urgent"
)

// Categories lists all valid conversation categories in display order.
var Categories = []Category{
	CategoryCustody,
	CategoryMedical,
	CategorySchool,
	CategoryActivities,
	CategoryFinancial,
	CategoryGeneral,
	CategoryUrgent,
}

// CategoryAll is the filter value matching every category.
const CategoryAll = "all"

// ValidCategory reports whether value is a known category.
func ValidCategory(value string) bool {
	for _, c := range Categories {
		if string(c) == value {
			return true
		}
	}
	return false
}

// Conversation is a subject-scoped message thread between the two parents of
// a family. The remote service owns the record; this client only renders it
// and toggles the starred/archived flags.
type Conversation struct {
	// ID is assigned by the remote service.
	ID string `json:"id"`

	// Subject is the free-text topic of the conversation.
	Subject string `json:"subject"`

	// Category is one of the fixed conversation categories.
	Category Category `json:"category"`

	// Participants holds the parent emails with access to the thread.
	Participants []string `json:"participants"`

	// MessageCount is the total number of messages in the thread.
	MessageCount int `json:"messageCount"`

	// UnreadCount is the number of messages the current user has not read.
	UnreadCount int `json:"unreadCount"`

	// LastMessageAt is when the most recent message was posted, nil for an
	// empty thread.
	LastMessageAt *time.Time `json:"lastMessageAt"`

	// IsStarred marks the conversation as important for the current user.
	IsStarred bool `json:"isStarred"`

	// IsArchived hides the conversation from the default list. Archival is a
	// flag, never a delete.
	IsArchived bool `json:"isArchived"`

	// CreatedAt is when the conversation was opened.
	CreatedAt *time.Time `json:"createdAt"`
}

// ConversationCreate is the payload for opening a new conversation.
type ConversationCreate struct {
	Subject  string   `json:"subject"`
	Category Category `json:"category"`
}

// Validate checks a conversation-create payload before it is sent.
func (c ConversationCreate) Validate() error {
	errs := &ValidationErrors{}
	if strings.TrimSpace(c.Subject) == "" {
		errs.AddMessage("subject", "subject is required")
	}
	if !ValidCategory(string(c.Category)) {
		errs.AddMessage("category", "unknown category "+string(c.Category))
	}
	return errs.Err()
}

// MatchesFilter reports whether the conversation passes a client-side
// search/category filter. Archived conversations never match.
func (c Conversation) MatchesFilter(search, category string) bool {
	if c.IsArchived {
		return false
	}
	if category != "" && category != CategoryAll && string(c.Category) != category {
		return false
	}
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Subject), strings.ToLower(search))
}

// LastActivity returns the timestamp used for ordering: the last message time
// when present, otherwise the creation time.
func (c Conversation) LastActivity() time.Time {
	if c.LastMessageAt != nil {
		return *c.LastMessageAt
	}
	if c.CreatedAt != nil {
		return *c.CreatedAt
	}
	return time.Time{}
}
