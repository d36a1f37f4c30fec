package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Chat name is deliberately
// not required here: only the extract pipeline needs it, and commands like
// filter and runs must work without one.
func (c *Config) Validate() error {
	if err := c.validateScroll(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScroll() error {
	if c.Scroll.Cycles <= 0 {
		return errors.New("scroll.cycles must be positive")
	}
	if c.Scroll.SettleMS < 0 {
		return errors.New("scroll.settle_ms must not be negative")
	}
	return nil
}

func (c *Config) validateSession() error {
	if strings.TrimSpace(c.Session.DevToolsURL) == "" {
		return errors.New("session.devtools_url must be set")
	}
	if !strings.HasPrefix(c.Session.DevToolsURL, "http://") && !strings.HasPrefix(c.Session.DevToolsURL, "https://") {
		return fmt.Errorf("session.devtools_url must be an http(s) endpoint, got %q", c.Session.DevToolsURL)
	}
	if c.Session.LoginTimeout <= 0 {
		return errors.New("session.login_timeout must be positive")
	}
	if c.Session.WaitTimeout <= 0 {
		return errors.New("session.wait_timeout must be positive")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.RawFile == "" {
		return errors.New("output.raw_file must be set")
	}
	if c.Output.FilteredSuffix == "" {
		return errors.New("output.filtered_suffix must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
