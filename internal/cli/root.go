// Package cli implements the bridgette command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bridgette-app/bridgette/internal/api"
	"github.com/bridgette-app/bridgette/internal/config"
	"github.com/bridgette-app/bridgette/internal/logging"
	"github.com/bridgette-app/bridgette/internal/session"
)

const commandTimeout = 15 * time.Second

var (
	configFile string
	baseURL    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "bridgette",
	Short:         "Terminal client for co-parenting coordination",
	Long:          "Bridgette keeps co-parents coordinated: conversations, the family profile, and shared expenses, all from the terminal.\n\nRun with no arguments to open the interactive interface.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		initLogging(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default searches XDG paths)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL override")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

// Execute runs the CLI.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

func initLogging(cfg *config.Config) {
	logCfg := logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableCaller: cfg.Logging.EnableCaller,
	}
	if cfg.Logging.File != "" {
		if f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			logCfg.Output = f
		}
	}
	logging.Init(logCfg)
}

// newClient builds an API client carrying the saved session token, if any.
func newClient(cfg *config.Config) (*api.Client, *session.Store, *session.Session, error) {
	store := session.NewStore(cfg.SessionPath())
	sess, err := store.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []api.Option{api.WithTimeout(cfg.API.Timeout)}
	if sess.Token != "" {
		opts = append(opts, api.WithToken(sess.Token))
	}
	return api.NewClient(cfg.API.BaseURL, opts...), store, sess, nil
}

// authedClient is newClient plus a login check, for commands that need a
// signed-in user.
func authedClient() (*api.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, _, sess, err := newClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	if !sess.IsAuthenticated() {
		return nil, nil, fmt.Errorf("not logged in, run 'bridgette login' first")
	}
	return client, cfg, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}
