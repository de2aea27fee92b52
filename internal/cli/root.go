// Package cli holds the cobra command tree. The root command runs the
// terminal player; subcommands expose search and the saved session to
// scripts.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/saavn/internal/config"
	"github.com/llehouerou/saavn/internal/logging"
	"github.com/llehouerou/saavn/internal/state"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	backend    string
	baseURL    string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "saavn",
		Short:         "Search JioSaavn and play songs in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlayer(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "read configuration from this file only")
	flags.StringVar(&opts.backend, "state", "", "state backend: sqlite, redis or memory")
	flags.StringVar(&opts.baseURL, "base-url", "", "catalog API base URL")

	root.AddCommand(newSearchCmd(opts), newSnapshotCmd(opts), newTagsCmd())
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.backend != "" {
		cfg.State.Backend = o.backend
	}
	if o.baseURL != "" {
		cfg.Catalog.BaseURL = o.baseURL
	}
	return cfg, nil
}

// openLogger builds the file logger described by cfg.
func openLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	lc := cfg.GetLogConfig()
	return logging.New(logging.Config{
		Level:      lc.Level,
		OutputPath: lc.File,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAgeDays: lc.MaxAgeDays,
		Compress:   true,
	})
}

func openStore(ctx context.Context, cfg *config.Config) (state.Store, error) {
	sc := cfg.GetStateConfig()
	store, err := state.Open(ctx, state.Options{
		Backend:       sc.Backend,
		Path:          sc.Path,
		RedisAddr:     sc.RedisAddr,
		RedisPassword: sc.RedisPassword,
		RedisDB:       sc.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s state: %w", sc.Backend, err)
	}
	return store, nil
}
