package cli

import (
	"fmt"

	"github.com/bridgette-app/bridgette/internal/bridgettetui"
	"github.com/bridgette-app/bridgette/internal/bridgettetui/data"
	"github.com/bridgette-app/bridgette/internal/logging"
)

// RunTUI wires config, session, API client and snapshot cache together and
// starts the interactive interface. It is the no-argument entrypoint.
func RunTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	initLogging(cfg)

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	client, _, sess, err := newClient(cfg)
	if err != nil {
		return err
	}
	if !sess.IsAuthenticated() {
		return fmt.Errorf("not logged in, run 'bridgette login' first")
	}

	var provider data.Provider = client
	var offline func() bool
	if cfg.Cache.Enabled {
		snapshot, err := data.OpenSnapshot(cfg.CachePath(), cfg.Cache.BusyTimeoutMs)
		if err != nil {
			// The cache is an enhancement; run straight off the API when it
			// cannot be opened.
			logging.Warn().Err(err).Str("path", cfg.CachePath()).Msg("snapshot cache unavailable")
		} else {
			defer snapshot.Close()
			caching := data.NewCachingProvider(client, snapshot)
			provider = caching
			offline = caching.Offline
		}
	}

	ctx, cancel := commandContext()
	defer cancel()
	user, err := provider.Me(ctx)
	if err != nil {
		return fmt.Errorf("could not load profile: %w", err)
	}

	return bridgettetui.Run(bridgettetui.Config{
		Provider:         provider,
		CurrentUser:      user,
		Theme:            cfg.TUI.Theme,
		ConversationPoll: cfg.Polling.ConversationInterval,
		MessagePoll:      cfg.Polling.MessageInterval,
		Offline:          offline,
	})
}
