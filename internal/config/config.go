package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is given and it exists.
const DefaultPath = "storedesk.yaml"

// EnvPrefix prefixes every environment override, e.g. STOREDESK_REDIS_ADDR.
const EnvPrefix = "STOREDESK_"

// Backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config is the runtime configuration of a desk session.
type Config struct {
	Backend       string        `mapstructure:"backend"`
	ConfirmDelete bool          `mapstructure:"confirm_delete"`
	DateLayout    string        `mapstructure:"date_layout"`
	LogLevel      string        `mapstructure:"log_level"`
	Headless      bool          `mapstructure:"headless"`
	SQLite        SQLiteConfig  `mapstructure:"sqlite"`
	Redis         RedisConfig   `mapstructure:"redis"`
	Metrics       MetricsConfig `mapstructure:"metrics"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	Prefix      string        `mapstructure:"prefix"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

func defaults() map[string]any {
	return map[string]any{
		"backend":        BackendMemory,
		"confirm_delete": true,
		"date_layout":    "2006-01-02",
		"log_level":      "info",
		"headless":       false,
		"sqlite": map[string]any{
			"path": "./data/storedesk.db",
		},
		"redis": map[string]any{
			"addr":         "localhost:6379",
			"password":     "",
			"db":           0,
			"prefix":       "storedesk:",
			"dial_timeout": "5s",
		},
		"metrics": map[string]any{
			"enabled": false,
			"addr":    "127.0.0.1:9464",
		},
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	cfg, err := decode(defaults())
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load builds the configuration from defaults, the YAML file at path and
// STOREDESK_* environment variables, in increasing priority. An empty path
// reads DefaultPath when present; an explicit path must exist.
func Load(path string) (*Config, error) {
	raw := defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var file map[string]any
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		merge(raw, file)
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	overlayEnv(raw, EnvPrefix)

	cfg, err := decode(raw)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q (want memory, sqlite or redis)", c.Backend))
	}
	if c.Backend == BackendSQLite && c.SQLite.Path == "" {
		errs = append(errs, errors.New("sqlite.path is required for the sqlite backend"))
	}
	if c.Backend == BackendRedis && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required for the redis backend"))
	}
	if c.DateLayout == "" {
		errs = append(errs, errors.New("date_layout must not be empty"))
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		errs = append(errs, errors.New("metrics.addr is required when metrics are enabled"))
	}
	return errors.Join(errs...)
}

func decode(raw map[string]any) (*Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

// overlayEnv replaces every known leaf with PREFIX_SECTION_KEY when that variable is set.
func overlayEnv(raw map[string]any, prefix string) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := prefix + strings.ToUpper(k)
		if sub, ok := raw[k].(map[string]any); ok {
			overlayEnv(sub, name+"_")
			continue
		}
		if v, ok := os.LookupEnv(name); ok {
			raw[k] = v
		}
	}
}
