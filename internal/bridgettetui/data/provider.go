// Package data abstracts remote data access for the Bridgette TUI.
package data

import (
	"context"

	"github.com/bridgette-app/bridgette/internal/model"
)

// Provider abstracts the coordination backend for the TUI and CLI. The
// api.Client satisfies it directly; CachingProvider wraps it with an offline
// snapshot fallback.
type Provider interface {
	// Me fetches the authenticated user's profile.
	Me(ctx context.Context) (model.CurrentUser, error)

	// Conversations lists the family's non-archived conversations, most
	// recently active first.
	Conversations(ctx context.Context) ([]model.Conversation, error)
	// CreateConversation opens a new conversation.
	CreateConversation(ctx context.Context, req model.ConversationCreate) (model.Conversation, error)
	// Messages lists all messages in a conversation, oldest first.
	Messages(ctx context.Context, conversationID string) ([]model.Message, error)
	// SendMessage posts a message and returns the server record.
	SendMessage(ctx context.Context, req model.MessageCreate) (model.Message, error)
	// ToggleStar flips the starred flag and returns the new value.
	ToggleStar(ctx context.Context, conversationID string) (bool, error)
	// ArchiveConversation archives a conversation.
	ArchiveConversation(ctx context.Context, conversationID string) error

	// Family fetches the family profile with children.
	Family(ctx context.Context) (model.Family, error)
	// CreateFamily sets up a family profile.
	CreateFamily(ctx context.Context, req model.FamilyCreate) (model.Family, error)
	// AddChild adds a child to the family.
	AddChild(ctx context.Context, child model.Child) (model.Child, error)
	// UpdateChild updates an existing child record.
	UpdateChild(ctx context.Context, childID string, child model.Child) (model.Child, error)
	// DeleteChild removes a child from the family.
	DeleteChild(ctx context.Context, childID string) error

	// Expenses lists the family's shared expenses.
	Expenses(ctx context.Context) ([]model.Expense, error)

	// AdminStats fetches the admin dashboard counters.
	AdminStats(ctx context.Context) (model.AdminStats, error)
	// AdminFamilies lists every family for the admin dashboard.
	AdminFamilies(ctx context.Context) ([]model.AdminFamily, error)
	// AdminUsers lists every user for the admin dashboard.
	AdminUsers(ctx context.Context) ([]model.AdminUser, error)
}
