package bridgettetui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/bridgette-app/bridgette/internal/model"
)

func serverMsg(id, content string, ts time.Time) model.Message {
	return model.Message{
		ID:             id,
		ConversationID: "conv-1",
		SenderEmail:    "other@example.com",
		Content:        content,
		Tone:           model.ToneFriendly,
		Timestamp:      ts,
		Status:         model.StatusDelivered,
	}
}

func testMessages() []model.Message {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return []model.Message{
		serverMsg("msg-1", "first", base),
		serverMsg("msg-2", "second", base.Add(time.Minute)),
	}
}

func newTestMessagesView(provider *fakeProvider) *messagesView {
	if provider == nil {
		provider = &fakeProvider{}
	}
	v := newMessagesView(provider, model.CurrentUser{Email: "me@example.com"}, 0)
	v.SetConversation("conv-1", "Subject")
	return v
}

func loadedMessages(v *messagesView, messages []model.Message) messagesLoadedMsg {
	v.issuedSeq++
	return messagesLoadedMsg{
		now:            time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC),
		generation:     v.generation,
		seq:            v.issuedSeq,
		conversationID: v.conversationID,
		silent:         true,
		messages:       messages,
	}
}

func TestMessagesApplyLoaded(t *testing.T) {
	v := newTestMessagesView(nil)

	v.applyLoaded(loadedMessages(v, testMessages()))
	require.True(t, v.loaded)
	require.Len(t, v.messages, 2)
	require.Equal(t, "msg-1", v.messages[0].ID)
}

func TestMessagesSetConversationResetsState(t *testing.T) {
	v := newTestMessagesView(nil)
	v.applyLoaded(loadedMessages(v, testMessages()))
	v.scroll = 5
	v.pendingNew = true
	oldGeneration := v.generation

	cmd := v.SetConversation("conv-2", "Other subject")
	require.NotNil(t, cmd)
	require.Equal(t, "conv-2", v.conversationID)
	require.Greater(t, v.generation, oldGeneration)
	require.Empty(t, v.messages)
	require.Zero(t, v.scroll)
	require.False(t, v.pendingNew)
	require.Zero(t, v.appliedSeq)
}

func TestMessagesStaleGenerationDropped(t *testing.T) {
	v := newTestMessagesView(nil)

	msg := loadedMessages(v, testMessages())
	v.SetConversation("conv-2", "Other")
	// The load was issued against the old conversation.
	v.applyLoaded(msg)
	require.Empty(t, v.messages)
}

func TestMessagesStaleSeqDropped(t *testing.T) {
	v := newTestMessagesView(nil)

	newer := loadedMessages(v, testMessages())
	older := loadedMessages(v, testMessages()[:1])
	older.seq, newer.seq = newer.seq, older.seq

	v.applyLoaded(newer)
	require.Len(t, v.messages, 2)

	v.applyLoaded(older)
	require.Len(t, v.messages, 2)
}

func TestMessagesMergeRetainsPendingSend(t *testing.T) {
	v := newTestMessagesView(nil)
	v.applyLoaded(loadedMessages(v, testMessages()))

	pending := model.NewPendingMessage("conv-1", "me@example.com", "on my way", model.ToneFriendly, time.Date(2026, 8, 30, 12, 5, 0, 0, time.UTC))
	v.messages = append(v.messages, pending)

	// A poll that does not yet include the send must not drop it.
	v.applyLoaded(loadedMessages(v, testMessages()))
	require.Len(t, v.messages, 3)
	require.True(t, v.messages[2].IsPending())
}

func TestMessagesOptimisticSendSuccess(t *testing.T) {
	sent := make(chan model.MessageCreate, 1)
	provider := &fakeProvider{
		sendMessageFn: func(ctx context.Context, req model.MessageCreate) (model.Message, error) {
			sent <- req
			return model.Message{
				ID:             "srv-9",
				ConversationID: req.ConversationID,
				SenderEmail:    "me@example.com",
				Content:        req.Content,
				Tone:           req.Tone,
				Timestamp:      time.Date(2026, 8, 30, 12, 6, 0, 0, time.UTC),
				Status:         model.StatusSent,
			}, nil
		},
	}
	v := newTestMessagesView(provider)
	v.applyLoaded(loadedMessages(v, testMessages()))

	v.handleKey(runeKey('i'))
	require.True(t, v.capturesInput())
	for _, r := range "hello" {
		v.handleKey(runeKey(r))
	}

	cmd := v.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, v.sendInFlight)
	require.Empty(t, v.input)
	require.Len(t, v.messages, 3)
	require.True(t, v.messages[2].IsPending())
	tempID := v.messages[2].ID
	require.True(t, strings.HasPrefix(tempID, model.TempIDPrefix))

	result := cmd().(sendResultMsg)
	require.Equal(t, "hello", (<-sent).Content)
	require.Equal(t, tempID, result.tempID)

	v.Update(result)
	require.False(t, v.sendInFlight)
	require.Len(t, v.messages, 3)
	require.Equal(t, "srv-9", v.messages[2].ID)
	require.False(t, v.messages[2].IsPending())
}

func TestMessagesOptimisticSendFailureRetracts(t *testing.T) {
	provider := &fakeProvider{
		sendMessageFn: func(ctx context.Context, req model.MessageCreate) (model.Message, error) {
			return model.Message{}, errors.New("service unavailable")
		},
	}
	v := newTestMessagesView(provider)
	v.applyLoaded(loadedMessages(v, testMessages()))

	v.handleKey(runeKey('i'))
	for _, r := range "hello" {
		v.handleKey(runeKey(r))
	}
	cmd := v.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, v.messages, 3)

	v.Update(cmd().(sendResultMsg))
	require.False(t, v.sendInFlight)
	require.Len(t, v.messages, 2)
	for _, msg := range v.messages {
		require.False(t, msg.IsPending())
	}
	require.Contains(t, v.toast, "send failed")
}

func TestMessagesSendPreconditions(t *testing.T) {
	v := newTestMessagesView(nil)
	v.composing = true

	// Empty input.
	require.Nil(t, v.submitSend())

	// Send already in flight.
	v.input = "hello"
	v.sendInFlight = true
	require.Nil(t, v.submitSend())
	v.sendInFlight = false

	// No active conversation.
	v.conversationID = ""
	require.Nil(t, v.submitSend())
}

func TestMessagesSendResultFromOldConversationIgnored(t *testing.T) {
	v := newTestMessagesView(nil)
	v.applyLoaded(loadedMessages(v, testMessages()))
	oldGeneration := v.generation

	v.SetConversation("conv-2", "Other")
	v.Update(sendResultMsg{generation: oldGeneration, tempID: "temp-x", err: errors.New("late failure")})
	require.Empty(t, v.toast)
}

func TestMessagesPendingNewWhenScrolledUp(t *testing.T) {
	v := newTestMessagesView(nil)
	v.applyLoaded(loadedMessages(v, testMessages()))

	v.scroll = 4
	more := append(testMessages(), serverMsg("msg-3", "third", time.Date(2026, 8, 30, 12, 10, 0, 0, time.UTC)))
	v.applyLoaded(loadedMessages(v, more))
	require.True(t, v.pendingNew)

	v.jumpBottom()
	require.Zero(t, v.scroll)
	require.False(t, v.pendingNew)
}

func TestMessagesToneCycling(t *testing.T) {
	v := newTestMessagesView(nil)
	require.Zero(t, v.toneIdx)

	v.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 1, v.toneIdx)

	v.composing = true
	v.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 2, v.toneIdx)
	v.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Zero(t, v.toneIdx)
}

func TestMessagesSwitchConversationPicksNeighbor(t *testing.T) {
	provider := &fakeProvider{
		conversationsFn: func(ctx context.Context) ([]model.Conversation, error) {
			return testConversations(), nil
		},
	}
	v := newTestMessagesView(provider)

	cmd := v.switchConversationCmd(1)
	require.NotNil(t, cmd)
	msg, ok := cmd().(openConversationMsg)
	require.True(t, ok)
	require.Equal(t, "conv-2", msg.id)

	// Already at the front; no previous neighbor.
	require.Nil(t, v.switchConversationCmd(-1)())
}

func TestMessagesTickStaleGenerationIgnored(t *testing.T) {
	v := newTestMessagesView(nil)

	require.Nil(t, v.Update(messagesTickMsg{generation: v.generation - 1}))
	require.NotNil(t, v.Update(messagesTickMsg{generation: v.generation}))
}
