package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bridgette-app/bridgette/internal/model"
)

// Conversations fetches the family's non-archived conversations, sorted by
// last activity descending.
func (c *Client) Conversations(ctx context.Context) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/messaging/conversations", nil, &conversations)
	return conversations, err
}

// CreateConversation opens a new conversation.
func (c *Client) CreateConversation(ctx context.Context, req model.ConversationCreate) (model.Conversation, error) {
	var conv model.Conversation
	if err := req.Validate(); err != nil {
		return conv, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/messaging/conversations", req, &conv)
	return conv, err
}

// Messages fetches all messages in a conversation, oldest first. The backend
// marks the other parent's messages read as a side effect.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	var messages []model.Message
	path := "/api/v1/messaging/conversations/" + url.PathEscape(conversationID) + "/messages"
	err := c.doJSON(ctx, http.MethodGet, path, nil, &messages)
	return messages, err
}

// SendMessage posts a message and returns the server record.
func (c *Client) SendMessage(ctx context.Context, req model.MessageCreate) (model.Message, error) {
	var msg model.Message
	if err := req.Validate(); err != nil {
		return msg, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/messaging/messages", req, &msg)
	return msg, err
}

// ToggleStar flips the starred flag on a conversation and returns the new
// server-side value.
func (c *Client) ToggleStar(ctx context.Context, conversationID string) (bool, error) {
	var result struct {
		IsStarred bool `json:"isStarred"`
	}
	path := "/api/v1/messaging/conversations/" + url.PathEscape(conversationID) + "/star"
	err := c.doJSON(ctx, http.MethodPatch, path, nil, &result)
	return result.IsStarred, err
}

// ArchiveConversation archives a conversation. Archival is a flag on the
// server, never a delete.
func (c *Client) ArchiveConversation(ctx context.Context, conversationID string) error {
	path := "/api/v1/messaging/conversations/" + url.PathEscape(conversationID) + "/archive"
	return c.doJSON(ctx, http.MethodPatch, path, nil, nil)
}
