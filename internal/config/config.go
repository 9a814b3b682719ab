package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// AppConfig is the resolved configuration.
type AppConfig struct {
	APIURL          string        `yaml:"api_url" toml:"api_url"`
	Token           string        `yaml:"token" toml:"token"`
	RefreshInterval time.Duration `yaml:"refresh_interval" toml:"refresh_interval"`
	FeedbackTimeout time.Duration `yaml:"feedback_timeout" toml:"feedback_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" toml:"request_timeout"`
	RetryMax        int           `yaml:"retry_max" toml:"retry_max"`
	ReportsLimit    int           `yaml:"reports_limit" toml:"reports_limit"`
	Theme           string        `yaml:"theme" toml:"theme"`
	NoColor         bool          `yaml:"no_color" toml:"no_color"`
	LogLevel        string        `yaml:"log_level" toml:"log_level"`
	LogFile         string        `yaml:"log_file" toml:"log_file"`

	// Source is the file the config was read from, empty for defaults only.
	Source string `yaml:"-" toml:"-"`
}

// CliFlags holds command-line values. The *Set fields record whether the user
// passed the flag explicitly.
type CliFlags struct {
	ConfigPath      string
	APIURL          string
	Token           string
	RefreshInterval time.Duration
	Theme           string
	NoColor         bool
	LogLevel        string
	LogFile         string

	RefreshSet bool
	NoColorSet bool
}

// Defaults.
const (
	DefaultAPIURL          = "http://localhost:80"
	DefaultRefreshInterval = 30 * time.Second
	DefaultFeedbackTimeout = 4 * time.Second
	DefaultRequestTimeout  = 15 * time.Second
	DefaultRetryMax        = 2
	DefaultReportsLimit    = 100
	DefaultTheme           = "default"
	DefaultLogLevel        = "info"
)

const envPrefix = "REPORTDASH_"

var (
	validThemes    = map[string]bool{"default": true, "orca": true, "mono": true}
	validLogLevels = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true}
)

// Defaults returns the built-in configuration.
func Defaults() *AppConfig {
	return &AppConfig{
		APIURL:          DefaultAPIURL,
		RefreshInterval: DefaultRefreshInterval,
		FeedbackTimeout: DefaultFeedbackTimeout,
		RequestTimeout:  DefaultRequestTimeout,
		RetryMax:        DefaultRetryMax,
		ReportsLimit:    DefaultReportsLimit,
		Theme:           DefaultTheme,
		LogLevel:        DefaultLogLevel,
	}
}

// Resolve builds the final configuration from defaults, the config file, the
// environment (via getenv) and flags, then validates it.
func Resolve(flags CliFlags, getenv func(string) string) (*AppConfig, error) {
	path := flags.ConfigPath
	if path == "" {
		path = getConfigPath()
	}
	cfg := Defaults()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	ApplyEnv(cfg, getenv)
	MergeWithFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML or TOML config file, chosen by extension, over the
// defaults. Keys missing from the file keep their default.
func LoadFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// ApplyEnv overrides cfg with REPORTDASH_* variables. Unparseable values are ignored.
func ApplyEnv(cfg *AppConfig, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(envPrefix + "API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := getenv(envPrefix + "TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := getenv(envPrefix + "REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RefreshInterval = d
		}
	}
	if v := getenv(envPrefix + "THEME"); v != "" {
		cfg.Theme = v
	}
	if v := getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(envPrefix + "LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	noColor := getenv(envPrefix + "NO_COLOR")
	if noColor == "" {
		noColor = getenv("NO_COLOR")
	}
	if noColor != "" {
		if b, err := strconv.ParseBool(noColor); err == nil {
			cfg.NoColor = b
		}
	}
}

// MergeWithFlags applies explicitly set flags on top of cfg.
func MergeWithFlags(cfg *AppConfig, flags CliFlags) {
	if flags.APIURL != "" {
		cfg.APIURL = flags.APIURL
	}
	if flags.Token != "" {
		cfg.Token = flags.Token
	}
	if flags.RefreshSet {
		cfg.RefreshInterval = flags.RefreshInterval
	}
	if flags.Theme != "" {
		cfg.Theme = flags.Theme
	}
	if flags.NoColorSet {
		cfg.NoColor = flags.NoColor
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.LogFile != "" {
		cfg.LogFile = flags.LogFile
	}
}

// EffectiveTheme is the theme to render with; NoColor forces mono.
func (c *AppConfig) EffectiveTheme() string {
	if c.NoColor {
		return "mono"
	}
	return c.Theme
}

// Validate checks value ranges and enumerations.
func (c *AppConfig) Validate() error {
	var errs []error
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_url %q: must be an absolute http(s) URL", c.APIURL))
	}
	if c.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("refresh_interval %s: must be positive", c.RefreshInterval))
	}
	if c.FeedbackTimeout <= 0 {
		errs = append(errs, fmt.Errorf("feedback_timeout %s: must be positive", c.FeedbackTimeout))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout %s: must be positive", c.RequestTimeout))
	}
	if c.RetryMax < 0 {
		errs = append(errs, fmt.Errorf("retry_max %d: must not be negative", c.RetryMax))
	}
	if c.ReportsLimit <= 0 {
		errs = append(errs, fmt.Errorf("reports_limit %d: must be positive", c.ReportsLimit))
	}
	if !validThemes[c.Theme] {
		errs = append(errs, fmt.Errorf("theme %q: expected default, orca or mono", c.Theme))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q: expected trace, debug, info, warn, error or disabled", c.LogLevel))
	}
	return errors.Join(errs...)
}

var configFileNames = []string{".reportdash.yaml", ".reportdash.yml", ".reportdash.toml"}

// getConfigPath finds the config file: working directory first, then the user
// config directory. It returns "" when there is none.
func getConfigPath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		p := filepath.Join(configHome, "reportdash", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
