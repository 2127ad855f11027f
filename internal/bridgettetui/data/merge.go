package data

import (
	"sort"

	"github.com/bridgette-app/bridgette/internal/model"
)

// MergeMessages reconciles a fresh server list with the local list. The
// server record wins for every id it reports; locally pending temp-id
// messages missing from the server list are retained so an in-flight send
// never disappears from the stream. The result is sorted oldest first.
func MergeMessages(local, server []model.Message) []model.Message {
	merged := make(map[string]model.Message, len(server)+4)
	for _, msg := range server {
		merged[msg.ID] = msg
	}
	for _, msg := range local {
		if msg.IsPending() {
			if _, ok := merged[msg.ID]; !ok {
				merged[msg.ID] = msg
			}
		}
	}

	out := make([]model.Message, 0, len(merged))
	for _, msg := range merged {
		out = append(out, msg)
	}
	sortMessages(out)
	return out
}

// ReplacePending swaps the temp record for the server record by identity:
// the temp id is removed and the server message upserted.
func ReplacePending(messages []model.Message, tempID string, server model.Message) []model.Message {
	out := make([]model.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.ID == tempID || msg.ID == server.ID {
			continue
		}
		out = append(out, msg)
	}
	out = append(out, server)
	sortMessages(out)
	return out
}

// RemovePending drops every pending temp-id message, used when a send fails.
func RemovePending(messages []model.Message) []model.Message {
	out := make([]model.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.IsPending() {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// sortMessages orders by timestamp ascending, breaking ties by id so the
// order is stable across polls.
func sortMessages(messages []model.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].Timestamp.Equal(messages[j].Timestamp) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
}

// sortConversations orders by last activity descending.
func sortConversations(conversations []model.Conversation) {
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastActivity().After(conversations[j].LastActivity())
	})
}
