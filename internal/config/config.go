package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	KeySpaceURL              = "space_url"
	KeyAPIKey                = "api_key"
	KeySourceProjectKey      = "source_project_key"
	KeyDestinationProjectKey = "destination_project_key"
	KeyJournalPath           = "journal_path"
	KeyRequestTimeout        = "request_timeout"
)

var envNames = map[string]string{
	KeySpaceURL:              "BACKLOG_SPACE_URL",
	KeyAPIKey:                "BACKLOG_API_KEY",
	KeySourceProjectKey:      "BACKLOG_SOURCE_PROJECT_KEY",
	KeyDestinationProjectKey: "BACKLOG_DESTINATION_PROJECT_KEY",
	KeyJournalPath:           "MIGRATOR_JOURNAL_PATH",
	KeyRequestTimeout:        "MIGRATOR_REQUEST_TIMEOUT",
}

// Config holds everything a migration run needs.
type Config struct {
	SpaceURL              string
	APIKey                string
	SourceProjectKey      string
	DestinationProjectKey string
	// JournalPath is the SQLite journal file; empty keeps the journal in memory.
	JournalPath string
	// RequestTimeout bounds each remote request; zero means no limit.
	RequestTimeout time.Duration
}

// BindEnv maps every configuration key to its environment variable.
func BindEnv(v *viper.Viper) error {
	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return nil
}

// Load reads the configuration from v and validates that every required
// key is set. All missing keys are reported together.
func Load(v *viper.Viper) (Config, error) {
	if err := BindEnv(v); err != nil {
		return Config{}, err
	}

	cfg := Config{
		SpaceURL:              strings.TrimSpace(v.GetString(KeySpaceURL)),
		APIKey:                strings.TrimSpace(v.GetString(KeyAPIKey)),
		SourceProjectKey:      strings.TrimSpace(v.GetString(KeySourceProjectKey)),
		DestinationProjectKey: strings.TrimSpace(v.GetString(KeyDestinationProjectKey)),
		JournalPath:           v.GetString(KeyJournalPath),
	}

	if raw := v.GetString(KeyRequestTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", KeyRequestTimeout, err)
		}
		if timeout < 0 {
			return Config{}, fmt.Errorf("%s: must not be negative", KeyRequestTimeout)
		}
		cfg.RequestTimeout = timeout
	}

	var missing []string
	for _, req := range []struct{ key, value string }{
		{KeySpaceURL, cfg.SpaceURL},
		{KeyAPIKey, cfg.APIKey},
		{KeySourceProjectKey, cfg.SourceProjectKey},
		{KeyDestinationProjectKey, cfg.DestinationProjectKey},
	} {
		if req.value == "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", req.key, envNames[req.key]))
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
