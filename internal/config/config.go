package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/tree"
	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/wordsource"
)

// EnvPrefix is prepended to every environment variable override,
// e.g. TRIEDUP_INPUT_SENTINEL
const EnvPrefix = "TRIEDUP"

// Config holds all configuration for the application
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Input  InputConfig  `mapstructure:"input"`
	Search SearchConfig `mapstructure:"search"`
	Server ServerConfig `mapstructure:"server"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// InputConfig controls how the driver reads words
type InputConfig struct {
	Path     string `mapstructure:"path"`
	Sentinel string `mapstructure:"sentinel"`
	Charset  string `mapstructure:"charset"`
	Trace    bool   `mapstructure:"trace"`
	Strict   bool   `mapstructure:"strict"`
}

// SearchConfig selects how repeated subtrees are compared
type SearchConfig struct {
	Policy string `mapstructure:"policy"`
}

// ServerConfig holds server related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// flagKeys maps command line flags onto configuration keys
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"input":      "input.path",
	"sentinel":   "input.sentinel",
	"charset":    "input.charset",
	"trace":      "input.trace",
	"strict":     "input.strict",
	"policy":     "search.policy",
	"host":       "server.host",
	"port":       "server.port",
}

// Load reads configuration from defaults, an optional file, environment
// variables and any flags in fs that were set, in increasing precedence
func Load(configPath string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("input.path", "")
	v.SetDefault("input.sentinel", "***")
	v.SetDefault("input.charset", wordsource.CharsetUTF8)
	v.SetDefault("input.trace", true)
	v.SetDefault("input.strict", false)

	v.SetDefault("search.policy", tree.PolicyIsomorphic)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if !wordsource.SupportedCharset(c.Input.Charset) {
		return fmt.Errorf("unsupported charset %q", c.Input.Charset)
	}
	if _, err := tree.MatcherFor(c.Search.Policy); err != nil {
		return err
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}

// Addr returns the host:port the server listens on
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
