// Package config resolves runtime settings from built-in defaults, an optional
// YAML file and the environment. Sources are merged as go-options layers so
// the environment overrides the file and the file overrides the defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-masker"
	opts "github.com/goliatone/go-options"
	"github.com/joho/godotenv"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"gopkg.in/yaml.v3"
)

// Storage drivers accepted by StorageConfig.Driver.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

const (
	defaultModel     = "gemini-3-flash-preview"
	defaultTimeout   = "30s"
	defaultHTTPAddr  = ":8080"
	defaultSQLiteDSN = "file:linkbio?mode=memory&cache=shared"
)

// Config holds all go-linkbio settings.
type Config struct {
	AI       AIConfig       `yaml:"ai"`
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Features FeaturesConfig `yaml:"features"`
	Profile  ProfileConfig  `yaml:"profile"`
}

// AIConfig configures the Gemini completion adapter.
type AIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// TimeoutDuration parses Timeout, falling back to 30s.
func (c AIConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// HTTPConfig configures the intent API listener.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig selects the profile repository.
type StorageConfig struct {
	Driver    string `yaml:"driver"`
	SQLiteDSN string `yaml:"sqlite_dsn"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// FeaturesConfig toggles optional workflows.
type FeaturesConfig struct {
	AIEditor bool `yaml:"ai_editor"`
}

// ProfileConfig overrides fields of the seeded default profile.
type ProfileConfig struct {
	Name      string `yaml:"name"`
	Theme     string `yaml:"theme"`
	TipHandle string `yaml:"tip_handle"`
}

// LookupFunc reads a single environment variable.
type LookupFunc func(key string) (string, bool)

// Source describes where Resolve reads from.
type Source struct {
	// Path is an optional YAML file. A missing file is ignored.
	Path   string
	Lookup LookupFunc
}

// Load reads .env (when present) and resolves the configuration from path
// and the process environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Resolve(Source{Path: path, Lookup: os.LookupEnv})
}

// Resolve merges defaults, the YAML file and the environment.
func Resolve(src Source) (*Config, error) {
	fileLayer, err := readFile(src.Path)
	if err != nil {
		return nil, err
	}
	envLayer, err := readEnv(src.Lookup)
	if err != nil {
		return nil, err
	}

	layers := []opts.Layer[map[string]any]{
		newLayer("defaults", "Built-in Defaults", opts.ScopePrioritySystem, defaults()),
		newLayer("file", "Config File", opts.ScopePriorityTenant, fileLayer),
		newLayer("env", "Environment", opts.ScopePriorityUser, envLayer),
	}
	stack, err := opts.NewStack(layers...)
	if err != nil {
		return nil, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return nil, err
	}

	raw, err := yaml.Marshal(merged.Value)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLayer(name, label string, priority int, payload map[string]any) opts.Layer[map[string]any] {
	if payload == nil {
		payload = map[string]any{}
	}
	scope := opts.NewScope(name, priority, opts.WithScopeLabel(label))
	return opts.NewLayer(scope, payload, opts.WithSnapshotID[map[string]any](scope.Name))
}

func defaults() map[string]any {
	return map[string]any{
		"ai": map[string]any{
			"model":   defaultModel,
			"timeout": defaultTimeout,
		},
		"http": map[string]any{
			"addr": defaultHTTPAddr,
		},
		"storage": map[string]any{
			"driver":     StorageMemory,
			"sqlite_dsn": defaultSQLiteDSN,
		},
		"logging": map[string]any{
			"level":       "info",
			"development": false,
		},
		"features": map[string]any{
			"ai_editor": true,
		},
		"profile": map[string]any{},
	}
}

func readFile(path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return out, nil
}

type envBinding struct {
	keys    []string
	section string
	field   string
	boolean bool
}

var envBindings = []envBinding{
	{keys: []string{"API_KEY", "GEMINI_API_KEY"}, section: "ai", field: "api_key"},
	{keys: []string{"LINKBIO_MODEL"}, section: "ai", field: "model"},
	{keys: []string{"LINKBIO_AI_BASE_URL"}, section: "ai", field: "base_url"},
	{keys: []string{"LINKBIO_AI_TIMEOUT"}, section: "ai", field: "timeout"},
	{keys: []string{"LINKBIO_HTTP_ADDR"}, section: "http", field: "addr"},
	{keys: []string{"LINKBIO_STORAGE_DRIVER"}, section: "storage", field: "driver"},
	{keys: []string{"LINKBIO_SQLITE_DSN"}, section: "storage", field: "sqlite_dsn"},
	{keys: []string{"LINKBIO_LOG_LEVEL"}, section: "logging", field: "level"},
	{keys: []string{"LINKBIO_LOG_DEVELOPMENT"}, section: "logging", field: "development", boolean: true},
	{keys: []string{"LINKBIO_AI_EDITOR"}, section: "features", field: "ai_editor", boolean: true},
	{keys: []string{"LINKBIO_PROFILE_NAME"}, section: "profile", field: "name"},
	{keys: []string{"LINKBIO_THEME"}, section: "profile", field: "theme"},
	{keys: []string{"LINKBIO_TIP_HANDLE"}, section: "profile", field: "tip_handle"},
}

// readEnv builds the environment layer. The first non-empty key of a binding
// wins.
func readEnv(lookup LookupFunc) (map[string]any, error) {
	if lookup == nil {
		return nil, nil
	}
	out := map[string]any{}
	for _, binding := range envBindings {
		raw, key, ok := firstValue(lookup, binding.keys)
		if !ok {
			continue
		}
		var value any = raw
		if binding.boolean {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("config: %s must be a boolean: %w", key, err)
			}
			value = parsed
		}
		section, _ := out[binding.section].(map[string]any)
		if section == nil {
			section = map[string]any{}
			out[binding.section] = section
		}
		section[binding.field] = value
	}
	return out, nil
}

func firstValue(lookup LookupFunc, keys []string) (string, string, bool) {
	for _, key := range keys {
		if raw, ok := lookup(key); ok && strings.TrimSpace(raw) != "" {
			return strings.TrimSpace(raw), key, true
		}
	}
	return "", "", false
}

func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Profile.Theme = strings.ToLower(strings.TrimSpace(c.Profile.Theme))
}

// Validate reports settings that cannot be wired.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite:
	default:
		return types.NewValidationError("storage.driver", fmt.Sprintf("unknown storage driver %q", c.Storage.Driver), c.Storage.Driver)
	}
	if c.Storage.Driver == StorageSQLite && strings.TrimSpace(c.Storage.SQLiteDSN) == "" {
		return types.NewValidationError("storage.sqlite_dsn", "sqlite dsn is required", c.Storage.SQLiteDSN)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return types.NewValidationError("logging.level", fmt.Sprintf("unknown log level %q", c.Logging.Level), c.Logging.Level)
	}
	if c.Profile.Theme != "" {
		if _, err := types.ParseTheme(c.Profile.Theme); err != nil {
			return err
		}
	}
	if c.AI.Timeout != "" {
		if _, err := time.ParseDuration(c.AI.Timeout); err != nil {
			return types.NewValidationError("ai.timeout", "timeout must be a duration", c.AI.Timeout)
		}
	}
	return nil
}

// ApplyProfile copies the configured overrides onto seed.
func (c *Config) ApplyProfile(seed types.Profile) types.Profile {
	out := seed.Clone()
	if name := strings.TrimSpace(c.Profile.Name); name != "" {
		out.Name = name
	}
	if c.Profile.Theme != "" {
		if theme, err := types.ParseTheme(c.Profile.Theme); err == nil {
			out.Theme = theme
		}
	}
	if handle := strings.TrimSpace(c.Profile.TipHandle); handle != "" {
		out.TipHandle = handle
	}
	return out
}

var registerMaskOnce sync.Once

// Redacted returns the configuration as a map with secrets masked, suitable
// for startup logs.
func (c *Config) Redacted() map[string]any {
	registerMaskOnce.Do(func() {
		if masker.Default != nil {
			masker.Default.RegisterMaskField("api_key", "filled4")
		}
	})
	raw, err := yaml.Marshal(c)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return map[string]any{}
	}
	if masker.Default == nil {
		return map[string]any{}
	}
	for name, section := range out {
		fields, ok := section.(map[string]any)
		if !ok {
			continue
		}
		masked, err := masker.Default.Mask(fields)
		if err != nil {
			delete(out, name)
			continue
		}
		if result, ok := masked.(map[string]any); ok {
			out[name] = result
		} else {
			delete(out, name)
		}
	}
	return out
}
