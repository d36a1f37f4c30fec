package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Chat identifies the target conversation.
type Chat struct {
	// Name is matched exactly, case-sensitive, against conversation
	// titles in the source UI.
	Name string `toml:"name"`
}

// Scroll controls the history-loading loop.
type Scroll struct {
	// Cycles is the fixed reveal/observe budget; the loop has no
	// content-aware stop.
	Cycles int `toml:"cycles"`
	// SettleMS is the bounded wait after each reveal, in milliseconds.
	SettleMS int `toml:"settle_ms"`
}

// Session describes the externally-owned browser session chatscribe
// attaches to.
type Session struct {
	DevToolsURL string `toml:"devtools_url"`
	Reuse       bool   `toml:"reuse"`
	DataDir     string `toml:"data_dir"`
	// LoginTimeout bounds the QR-scan wait, in seconds.
	LoginTimeout int `toml:"login_timeout"`
	// WaitTimeout bounds element waits (chat open, pane render), in seconds.
	WaitTimeout int `toml:"wait_timeout"`
}

// Output controls persisted transcript naming.
type Output struct {
	Dir            string `toml:"dir"`
	RawFile        string `toml:"raw_file"`
	FilteredSuffix string `toml:"filtered_suffix"`
}

// Classifier extends the stock rule table and gates the filter pass.
type Classifier struct {
	Enabled       bool     `toml:"enabled"`
	ExtraContains []string `toml:"extra_contains"`
	ExtraPrefix   []string `toml:"extra_prefix"`
	ExtraRegex    []string `toml:"extra_regex"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Archive configures the run ledger database.
type Archive struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Config encapsulates all configuration values for chatscribe.
type Config struct {
	Chat          Chat          `toml:"chat"`
	Scroll        Scroll        `toml:"scroll"`
	Session       Session       `toml:"session"`
	Output        Output        `toml:"output"`
	Classifier    Classifier    `toml:"classifier"`
	Logging       Logging       `toml:"logging"`
	Archive       Archive       `toml:"archive"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/chatscribe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. Environment variables
// (optionally sourced from a .env file in the working directory) override
// file values last.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv("CHATSCRIBE_CHAT"); ok && strings.TrimSpace(v) != "" {
		c.Chat.Name = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("CHATSCRIBE_DEVTOOLS_URL"); ok && strings.TrimSpace(v) != "" {
		c.Session.DevToolsURL = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("CHATSCRIBE_NTFY_TOPIC"); ok && strings.TrimSpace(v) != "" {
		c.Notifications.NtfyTopic = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("CHATSCRIBE_LOG_LEVEL"); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = strings.TrimSpace(v)
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("chatscribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories chatscribe writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Output.Dir, c.Logging.Dir, c.Session.DataDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SettleDelay returns the per-cycle settle wait as a duration.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Scroll.SettleMS) * time.Millisecond
}

// LoginWait returns the bounded authentication wait.
func (c *Config) LoginWait() time.Duration {
	return time.Duration(c.Session.LoginTimeout) * time.Second
}

// ElementWait returns the bounded wait for page elements to appear.
func (c *Config) ElementWait() time.Duration {
	return time.Duration(c.Session.WaitTimeout) * time.Second
}

// RawOutputPath returns the full path of the raw transcript file.
func (c *Config) RawOutputPath() string {
	return filepath.Join(c.Output.Dir, c.Output.RawFile)
}

// ArchivePath returns the run ledger database path, defaulting to the log
// directory when not configured.
func (c *Config) ArchivePath() string {
	if strings.TrimSpace(c.Archive.Path) != "" {
		return c.Archive.Path
	}
	return filepath.Join(c.Logging.Dir, "runs.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
