package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"showlink/internal/config"
	"showlink/internal/externals"
	"showlink/internal/indexers"
	"showlink/internal/library"
	"showlink/internal/logging"
	"showlink/internal/services"
	"showlink/internal/trakt"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the configured logger, which writes to stderr and the
// log file so command output on stdout stays machine-readable.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// requestContext tags the command context with a correlation id and the show
// being worked on, so every log line from one invocation carries them.
func (c *commandContext) requestContext(cmd *cobra.Command, ix indexers.Indexer, seriesID string) context.Context {
	runCtx := services.WithRequestID(cmd.Context(), uuid.NewString())
	runCtx = services.WithIndexer(runCtx, ix.Slug())
	return services.WithSeriesID(runCtx, seriesID)
}

func (c *commandContext) newResolver() (*externals.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	var opts []externals.ResolverOption
	if cfg.Trakt.Enabled {
		client, err := trakt.New(cfg.Trakt.ClientID, cfg.Trakt.BaseURL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, externals.WithTrakt(client))
	}
	return externals.NewResolver(indexers.NewRegistry(cfg), logger, opts...)
}

// withStore opens the library store for the duration of fn. The store takes
// an exclusive file lock, so commands hold it as briefly as possible.
func (c *commandContext) withStore(fn func(*library.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	store, err := library.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (c *commandContext) withChecker(runCtx context.Context, fn func(context.Context, *externals.Checker) error) error {
	resolver, err := c.newResolver()
	if err != nil {
		return err
	}
	return c.withStore(func(store *library.Store) error {
		checker, err := externals.NewChecker(resolver, store)
		if err != nil {
			return err
		}
		return fn(runCtx, checker)
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
