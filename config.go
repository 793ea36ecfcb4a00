package ipclog

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Station-Manager/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings resolved once when a Service is initialized.
type Config struct {
	// EnvVar names the environment variable holding the verbosity.
	EnvVar string `yaml:"env_var" toml:"env_var" validate:"required"`
	// EnvFile is an optional dotenv file consulted when EnvVar is unset.
	EnvFile string `yaml:"env_file" toml:"env_file"`
	// FilePath receives FILE and VERBOSE records.
	FilePath string `yaml:"file_path" toml:"file_path" validate:"required"`
	// Tag identifies the process in the system log.
	Tag string `yaml:"tag" toml:"tag" validate:"required"`
	// Syslog enables the system log facility sink.
	Syslog bool `yaml:"syslog" toml:"syslog"`
	// Timestamps appends a millisecond timestamp to every record.
	Timestamps bool `yaml:"timestamps" toml:"timestamps"`

	// RateLimitInterval is zero (suppress) or at least a millisecond, the
	// resolution of the rate-limit window.
	RateLimitInterval time.Duration `yaml:"rate_limit_interval" toml:"rate_limit_interval" validate:"eq=0|gte=1ms"`
	RateLimitBurst    int           `yaml:"rate_limit_burst" toml:"rate_limit_burst" validate:"gte=0,lte=2147483647"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		EnvVar:            DefaultEnvVar,
		FilePath:          DefaultFilePath,
		Tag:               DefaultTag,
		Syslog:            true,
		RateLimitInterval: DefaultRateLimitInterval,
		RateLimitBurst:    DefaultRateLimitBurst,
	}
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file over the
// defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	const op errors.Op = "ipclog.LoadConfig"
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.New(op).Err(err).Msg(errMsgConfigRead)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &cfg)
	case ".toml":
		err = toml.Unmarshal(content, &cfg)
	default:
		return cfg, errors.New(op).Msg(errMsgConfigFormat)
	}
	if err != nil {
		return cfg, errors.New(op).Err(err).Msg(errMsgConfigDecode)
	}

	if err = validateConfig(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
