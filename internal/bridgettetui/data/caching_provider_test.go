package data

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bridgette-app/bridgette/internal/api"
	"github.com/bridgette-app/bridgette/internal/model"
)

// stubProvider overrides the calls a test needs; everything else panics via
// the nil embedded interface.
type stubProvider struct {
	Provider

	conversations func(ctx context.Context) ([]model.Conversation, error)
	messages      func(ctx context.Context, conversationID string) ([]model.Message, error)
}

func (s *stubProvider) Conversations(ctx context.Context) ([]model.Conversation, error) {
	return s.conversations(ctx)
}

func (s *stubProvider) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	return s.messages(ctx, conversationID)
}

func TestCachingProviderWritesThroughAndFallsBack(t *testing.T) {
	ctx := context.Background()
	snap := openTestSnapshot(t)

	now := time.Now().UTC()
	live := []model.Conversation{{ID: "c1", Subject: "Soccer", CreatedAt: &now}}

	online := true
	remote := &stubProvider{
		conversations: func(ctx context.Context) ([]model.Conversation, error) {
			if !online {
				return nil, errors.New("dial tcp: connection refused")
			}
			return live, nil
		},
	}

	provider := NewCachingProvider(remote, snap)

	got, err := provider.Conversations(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.False(t, provider.Offline())

	online = false
	cached, err := provider.Conversations(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, "c1", cached[0].ID)
	require.True(t, provider.Offline())

	online = true
	_, err = provider.Conversations(ctx)
	require.NoError(t, err)
	require.False(t, provider.Offline(), "successful fetch clears offline state")
}

func TestCachingProviderDoesNotMaskAPIErrors(t *testing.T) {
	ctx := context.Background()
	snap := openTestSnapshot(t)

	now := time.Now().UTC()
	require.NoError(t, snap.SaveConversations(ctx, []model.Conversation{
		{ID: "c1", CreatedAt: &now},
	}))

	remote := &stubProvider{
		conversations: func(ctx context.Context) ([]model.Conversation, error) {
			return nil, &api.Error{Status: http.StatusUnauthorized, Detail: "Could not validate credentials"}
		},
	}
	provider := NewCachingProvider(remote, snap)

	_, err := provider.Conversations(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, api.ErrUnauthorized, "auth failures surface instead of stale data")
	require.False(t, provider.Offline())
}

func TestCachingProviderErrorsWhenSnapshotEmpty(t *testing.T) {
	ctx := context.Background()
	snap := openTestSnapshot(t)

	remote := &stubProvider{
		messages: func(ctx context.Context, conversationID string) ([]model.Message, error) {
			return nil, errors.New("no route to host")
		},
	}
	provider := NewCachingProvider(remote, snap)

	_, err := provider.Messages(ctx, "c1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no route to host", "original error wins over empty snapshot")
}

func TestCachingProviderMessagesFallback(t *testing.T) {
	ctx := context.Background()
	snap := openTestSnapshot(t)

	now := time.Now().UTC()
	live := []model.Message{{ID: "m1", ConversationID: "c1", Content: "hello", Timestamp: now}}

	online := true
	remote := &stubProvider{
		messages: func(ctx context.Context, conversationID string) ([]model.Message, error) {
			if !online {
				return nil, errors.New("connection reset")
			}
			return live, nil
		},
	}
	provider := NewCachingProvider(remote, snap)

	_, err := provider.Messages(ctx, "c1")
	require.NoError(t, err)

	online = false
	cached, err := provider.Messages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, "m1", cached[0].ID)
	require.True(t, provider.Offline())
}
