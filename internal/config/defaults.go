package config

const (
	defaultScrollCycles   = 15
	defaultSettleMS       = 1500
	defaultLoginTimeout   = 120
	defaultWaitTimeout    = 60
	defaultDevToolsURL    = "http://127.0.0.1:9222"
	defaultSessionDataDir = "~/.local/share/chatscribe/session"
	defaultOutputDir      = "~/.local/share/chatscribe/out"
	defaultRawFile        = "whatsapp_messages_raw.json"
	defaultFilteredSuffix = "_filtered"
	defaultLogDir         = "~/.local/share/chatscribe/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultNtfyTimeout    = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scroll: Scroll{
			Cycles:   defaultScrollCycles,
			SettleMS: defaultSettleMS,
		},
		Session: Session{
			DevToolsURL:  defaultDevToolsURL,
			Reuse:        true,
			DataDir:      defaultSessionDataDir,
			LoginTimeout: defaultLoginTimeout,
			WaitTimeout:  defaultWaitTimeout,
		},
		Output: Output{
			Dir:            defaultOutputDir,
			RawFile:        defaultRawFile,
			FilteredSuffix: defaultFilteredSuffix,
		},
		Classifier: Classifier{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
		Archive: Archive{
			Enabled: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
	}
}
