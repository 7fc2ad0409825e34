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

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "glutenguard.yaml"

// Template is the commented config written by `glutenguard init`.
//
//go:embed template.yaml
var Template []byte

// Duration wraps time.Duration with YAML unmarshaling from strings like "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Config is the top-level glutenguard configuration.
type Config struct {
	OpenFoodFacts OpenFoodFactsConfig `yaml:"openfoodfacts"`
	Recipes       RecipesConfig       `yaml:"recipes"`
	Store         StoreConfig         `yaml:"store"`
	Phrases       PhrasesConfig       `yaml:"phrases"`
	Server        ServerConfig        `yaml:"server"`
	Notify        NotifyConfig        `yaml:"notify"`
	Log           LogConfig           `yaml:"log"`
}

type OpenFoodFactsConfig struct {
	BaseURL   string   `yaml:"base_url"`
	UserAgent string   `yaml:"user_agent"`
	Timeout   Duration `yaml:"timeout"`
}

// RecipesConfig selects the recipe source used by name searches.
// Provider "none" disables recipe lookups.
type RecipesConfig struct {
	Provider string   `yaml:"provider"`
	BaseURL  string   `yaml:"base_url"`
	Timeout  Duration `yaml:"timeout"`
}

type StoreConfig struct {
	Backend      string   `yaml:"backend"` // file, sqlite or memory
	Path         string   `yaml:"path"`
	CacheTTL     Duration `yaml:"cache_ttl"`
	HistoryLimit int      `yaml:"history_limit"`
}

// PhrasesConfig points at an override for the embedded reference lists.
type PhrasesConfig struct {
	File  string `yaml:"file"`
	Watch bool   `yaml:"watch"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// NotifyConfig is an optional Slack-compatible webhook told about list reloads.
type NotifyConfig struct {
	WebhookURL string   `yaml:"webhook_url"`
	Timeout    Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	RecipesMealDB = "mealdb"
	RecipesNone   = "none"

	defaultOFFBaseURL    = "https://world.openfoodfacts.org"
	defaultMealDBBaseURL = "https://www.themealdb.com/api/json/v1/1"
	defaultUserAgent     = "glutenguard/dev (https://github.com/shahar-caura/glutenguard)"
	defaultHTTPTimeout   = 10 * time.Second
	defaultBackend       = "sqlite"
	defaultCacheTTL      = 7 * 24 * time.Hour // 168h
	defaultHistoryLimit  = 200
	defaultPort          = 8642
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands env vars, parses, and validates a glutenguard config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func applyDefaults(cfg *Config) {
	if cfg.OpenFoodFacts.BaseURL == "" {
		cfg.OpenFoodFacts.BaseURL = defaultOFFBaseURL
	}
	if cfg.OpenFoodFacts.UserAgent == "" {
		cfg.OpenFoodFacts.UserAgent = defaultUserAgent
	}
	if cfg.OpenFoodFacts.Timeout.Duration == 0 {
		cfg.OpenFoodFacts.Timeout.Duration = defaultHTTPTimeout
	}

	if cfg.Recipes.Provider == "" {
		cfg.Recipes.Provider = RecipesMealDB
	}
	if cfg.Recipes.Provider == RecipesMealDB && cfg.Recipes.BaseURL == "" {
		cfg.Recipes.BaseURL = defaultMealDBBaseURL
	}
	if cfg.Recipes.Timeout.Duration == 0 {
		cfg.Recipes.Timeout.Duration = defaultHTTPTimeout
	}

	if cfg.Store.Backend == "" {
		cfg.Store.Backend = defaultBackend
	}
	if cfg.Store.Path == "" {
		switch cfg.Store.Backend {
		case "sqlite":
			cfg.Store.Path = filepath.Join(DataDir(), "glutenguard.db")
		case "file":
			cfg.Store.Path = filepath.Join(DataDir(), "store")
		}
	}
	if cfg.Store.CacheTTL.Duration == 0 {
		cfg.Store.CacheTTL.Duration = defaultCacheTTL
	}
	if cfg.Store.HistoryLimit == 0 {
		cfg.Store.HistoryLimit = defaultHistoryLimit
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}

	if cfg.Notify.Timeout.Duration == 0 {
		cfg.Notify.Timeout.Duration = defaultHTTPTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if !strings.HasPrefix(cfg.OpenFoodFacts.BaseURL, "http://") && !strings.HasPrefix(cfg.OpenFoodFacts.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("openfoodfacts.base_url must be an http(s) URL, got %q", cfg.OpenFoodFacts.BaseURL))
	}
	if cfg.OpenFoodFacts.Timeout.Duration <= 0 {
		errs = append(errs, errors.New("openfoodfacts.timeout must be positive"))
	}

	switch cfg.Recipes.Provider {
	case RecipesMealDB:
		if cfg.Recipes.Timeout.Duration <= 0 {
			errs = append(errs, errors.New("recipes.timeout must be positive"))
		}
	case RecipesNone:
		// valid
	default:
		errs = append(errs, fmt.Errorf("recipes.provider must be %q or %q, got %q", RecipesMealDB, RecipesNone, cfg.Recipes.Provider))
	}

	switch cfg.Store.Backend {
	case "file", "sqlite", "memory":
		// valid
	default:
		errs = append(errs, fmt.Errorf("store.backend must be \"file\", \"sqlite\" or \"memory\", got %q", cfg.Store.Backend))
	}
	if cfg.Store.CacheTTL.Duration < 0 {
		errs = append(errs, errors.New("store.cache_ttl must not be negative"))
	}
	if cfg.Store.HistoryLimit < 0 {
		errs = append(errs, errors.New("store.history_limit must not be negative"))
	}

	if cfg.Phrases.Watch && cfg.Phrases.File == "" {
		errs = append(errs, errors.New("phrases.file is required when phrases.watch is true"))
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port))
	}

	if u := cfg.Notify.WebhookURL; u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		errs = append(errs, fmt.Errorf("notify.webhook_url must be an http(s) URL, got %q", u))
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "text", "json":
		// valid
	default:
		errs = append(errs, fmt.Errorf("log.format must be \"text\" or \"json\", got %q", cfg.Log.Format))
	}

	return errors.Join(errs...)
}

// DataDir returns the directory holding the default store.
func DataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "glutenguard")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "glutenguard")
}
