package data

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bridgette-app/bridgette/internal/api"
	"github.com/bridgette-app/bridgette/internal/logging"
	"github.com/bridgette-app/bridgette/internal/model"
)

// CachingProvider wraps a remote Provider with a write-through snapshot.
// Successful conversation/message fetches are persisted; when the remote is
// unreachable the last snapshot is served read-only and the provider reports
// offline until a fetch succeeds again. Writes always require the remote.
type CachingProvider struct {
	remote   Provider
	snapshot *Snapshot
	logger   zerolog.Logger

	mu      sync.RWMutex
	offline bool
}

// NewCachingProvider wraps remote with the given snapshot store. snapshot
// may be nil, which disables the fallback.
func NewCachingProvider(remote Provider, snapshot *Snapshot) *CachingProvider {
	return &CachingProvider{
		remote:   remote,
		snapshot: snapshot,
		logger:   logging.Component("cache"),
	}
}

// Offline reports whether the last fetch fell back to the snapshot.
func (p *CachingProvider) Offline() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.offline
}

func (p *CachingProvider) setOffline(offline bool) {
	p.mu.Lock()
	changed := p.offline != offline
	p.offline = offline
	p.mu.Unlock()

	if changed {
		p.logger.Info().Bool("offline", offline).Msg("connectivity changed")
	}
}

// fallbackEligible reports whether err means the remote was unreachable
// rather than rejecting the request. API-level errors (auth, validation)
// must surface to the caller, not hide behind stale data.
func fallbackEligible(err error) bool {
	// Context cancellation is the caller's decision, not an outage.
	if errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *api.Error
	return !errors.As(err, &apiErr)
}

func (p *CachingProvider) Conversations(ctx context.Context) ([]model.Conversation, error) {
	conversations, err := p.remote.Conversations(ctx)
	if err == nil {
		p.setOffline(false)
		if p.snapshot != nil {
			if saveErr := p.snapshot.SaveConversations(ctx, conversations); saveErr != nil {
				p.logger.Warn().Err(saveErr).Msg("failed to persist conversation snapshot")
			}
		}
		return conversations, nil
	}

	if p.snapshot == nil || !fallbackEligible(err) {
		return nil, err
	}

	cached, cacheErr := p.snapshot.LoadConversations(ctx)
	if cacheErr != nil {
		return nil, err
	}

	p.setOffline(true)
	p.logger.Debug().Err(err).Int("count", len(cached)).Msg("serving conversations from snapshot")
	return cached, nil
}

func (p *CachingProvider) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	messages, err := p.remote.Messages(ctx, conversationID)
	if err == nil {
		p.setOffline(false)
		if p.snapshot != nil {
			if saveErr := p.snapshot.SaveMessages(ctx, conversationID, messages); saveErr != nil {
				p.logger.Warn().Err(saveErr).Msg("failed to persist message snapshot")
			}
		}
		return messages, nil
	}

	if p.snapshot == nil || !fallbackEligible(err) {
		return nil, err
	}

	cached, cacheErr := p.snapshot.LoadMessages(ctx, conversationID)
	if cacheErr != nil {
		return nil, err
	}

	p.setOffline(true)
	p.logger.Debug().Err(err).Int("count", len(cached)).Msg("serving messages from snapshot")
	return cached, nil
}

// Pass-through operations. Writes and profile reads need the live remote.

func (p *CachingProvider) Me(ctx context.Context) (model.CurrentUser, error) {
	return p.remote.Me(ctx)
}

func (p *CachingProvider) CreateConversation(ctx context.Context, req model.ConversationCreate) (model.Conversation, error) {
	return p.remote.CreateConversation(ctx, req)
}

func (p *CachingProvider) SendMessage(ctx context.Context, req model.MessageCreate) (model.Message, error) {
	return p.remote.SendMessage(ctx, req)
}

func (p *CachingProvider) ToggleStar(ctx context.Context, conversationID string) (bool, error) {
	return p.remote.ToggleStar(ctx, conversationID)
}

func (p *CachingProvider) ArchiveConversation(ctx context.Context, conversationID string) error {
	return p.remote.ArchiveConversation(ctx, conversationID)
}

func (p *CachingProvider) Family(ctx context.Context) (model.Family, error) {
	return p.remote.Family(ctx)
}

func (p *CachingProvider) CreateFamily(ctx context.Context, req model.FamilyCreate) (model.Family, error) {
	return p.remote.CreateFamily(ctx, req)
}

func (p *CachingProvider) AddChild(ctx context.Context, child model.Child) (model.Child, error) {
	return p.remote.AddChild(ctx, child)
}

func (p *CachingProvider) UpdateChild(ctx context.Context, childID string, child model.Child) (model.Child, error) {
	return p.remote.UpdateChild(ctx, childID, child)
}

func (p *CachingProvider) DeleteChild(ctx context.Context, childID string) error {
	return p.remote.DeleteChild(ctx, childID)
}

func (p *CachingProvider) Expenses(ctx context.Context) ([]model.Expense, error) {
	return p.remote.Expenses(ctx)
}

func (p *CachingProvider) AdminStats(ctx context.Context) (model.AdminStats, error) {
	return p.remote.AdminStats(ctx)
}

func (p *CachingProvider) AdminFamilies(ctx context.Context) ([]model.AdminFamily, error) {
	return p.remote.AdminFamilies(ctx)
}

func (p *CachingProvider) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	return p.remote.AdminUsers(ctx)
}
