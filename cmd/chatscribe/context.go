package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"chatscribe/internal/config"
	"chatscribe/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
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

// buildLogger constructs the run logger: console on stderr plus a file in
// the configured log directory.
func (c *commandContext) buildLogger(cfg *config.Config) (*slog.Logger, error) {
	paths := []string{"stderr"}
	if strings.TrimSpace(cfg.Logging.Dir) != "" {
		paths = append(paths, filepath.Join(cfg.Logging.Dir, "chatscribe.log"))
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: paths,
	})
}
