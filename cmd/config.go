package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"tripboard/internal/itinerary"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	backendSQLite = "sqlite"
	backendHTTP   = "http"
)

// Config holds CLI configuration.
type Config struct {
	ConfigDir  string
	DBPath     string
	Trip       string
	Pool       itinerary.PoolPolicy
	Backend    string
	APIURL     string
	APIToken   string
	CacheDir   string
	YelpAPIKey string
	LogFile    string
	Timeout    time.Duration

	// first-run answers, used as fallbacks
	settings OnboardingSettings
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("config", "", "Path to config file (default: ~/.tripboard/config.yaml)")
	f.String("db", "", "Path to SQLite database file (default: ~/.tripboard/tripboard.db)")
	f.StringP("trip", "t", "", "Trip id or name")
	f.String("pool", "", "Unscheduled pool policy: persisted or derived")
	f.String("backend", "", "Storage backend: sqlite or http")
	f.String("api-url", "", "Base URL of the itinerary API (http backend)")
	f.String("api-token", "", "Bearer token for the itinerary API")
	f.String("cache-dir", "", "Directory for the offline catalog cache")
	f.String("yelp-key", "", "Yelp Fusion API key (or set YELP_API_KEY env var)")
	f.String("log-file", "", "Log file (default: ~/.tripboard/tripboard.log)")
	f.Duration("timeout", 0, "Timeout for each load or save")
}

// loadConfig layers defaults, the config file, TRIPBOARD_* env vars and
// flags, in increasing precedence.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	// Load .env files first so env-based defaults apply.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	configDir := filepath.Join(home, ".tripboard")

	v := viper.New()
	v.SetDefault("db", filepath.Join(configDir, "tripboard.db"))
	v.SetDefault("pool", itinerary.PersistedPool.String())
	v.SetDefault("backend", backendSQLite)
	v.SetDefault("cache-dir", filepath.Join(configDir, "cache"))
	v.SetDefault("log-file", filepath.Join(configDir, "tripboard.log"))
	v.SetDefault("timeout", 15*time.Second)

	v.SetEnvPrefix("TRIPBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := cmd.Root().PersistentFlags()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", expanded, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	pool, err := itinerary.ParsePoolPolicy(v.GetString("pool"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigDir: configDir,
		Trip:      strings.TrimSpace(v.GetString("trip")),
		Pool:      pool,
		Backend:   strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		APIURL:    strings.TrimSpace(v.GetString("api-url")),
		APIToken:  strings.TrimSpace(v.GetString("api-token")),
		Timeout:   v.GetDuration("timeout"),
	}
	switch cfg.Backend {
	case backendSQLite, backendHTTP:
	default:
		return nil, fmt.Errorf("unknown backend %q (want sqlite or http)", cfg.Backend)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	for _, p := range []struct {
		dst *string
		key string
	}{
		{&cfg.DBPath, "db"},
		{&cfg.CacheDir, "cache-dir"},
		{&cfg.LogFile, "log-file"},
	} {
		if *p.dst, err = homedir.Expand(v.GetString(p.key)); err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", p.key, err)
		}
	}

	cfg.settings, err = loadOnboardingSettings(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding settings: %w", err)
	}
	if err := cfg.applySettings(v.GetString("yelp-key")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applySettings fills the trip and Yelp key from the first-run answers when
// neither flags nor env provided them.
func (c *Config) applySettings(yelpKey string) error {
	if c.Trip == "" {
		c.Trip = c.settings.Trip
	}

	c.YelpAPIKey = strings.TrimSpace(yelpKey)
	if c.YelpAPIKey == "" {
		c.YelpAPIKey = strings.TrimSpace(os.Getenv("YELP_API_KEY"))
	}
	if c.YelpAPIKey == "" && c.settings.YelpEnabled {
		key, err := loadSecureYelpAPIKey(c.ConfigDir)
		if err != nil {
			return fmt.Errorf("failed to load secure Yelp API key: %w", err)
		}
		c.YelpAPIKey = key
	}
	return nil
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
