package config

// Preferences is the entire user configuration file.
type Preferences struct {
	Version int    `yaml:"version"`
	Serve   *Serve `yaml:"serve,omitempty"`

	// LogLevel is the default log level when CLIFORM_LOG_LEVEL is unset.
	// Empty means silent.
	LogLevel string `yaml:"log_level,omitempty"`

	// StopTimeoutSeconds bounds how long a stop request waits for the child
	// process to exit before it is killed.
	StopTimeoutSeconds int `yaml:"stop_timeout_seconds,omitempty"`

	// MaxLogLines caps the execution log kept in memory by the TUI.
	MaxLogLines int `yaml:"max_log_lines,omitempty"`
}

// Serve holds the web front end settings.
type Serve struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Announce enables mDNS registration of the serve endpoint so the page
	// is discoverable on the local network.
	Announce bool `yaml:"announce"`
}

// NewPreferences returns preferences populated with defaults.
func NewPreferences() *Preferences {
	return &Preferences{
		Version: 1,
		Serve: &Serve{
			Host:     "localhost",
			Port:     8080,
			Announce: false,
		},
		StopTimeoutSeconds: 5,
		MaxLogLines:        1000,
	}
}
