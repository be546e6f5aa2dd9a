// Package config loads sha2stream settings from defaults, a config file, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "sha2stream/internal/errors"
	"sha2stream/internal/exchange"
)

// EnvPrefix namespaces environment overrides, e.g. SHA2STREAM_LOG_LEVEL.
const EnvPrefix = "SHA2STREAM"

// Setting keys shared by flags, env and config files.
const (
	KeyConfig        = "config"
	KeyBits          = "bits"
	KeyJobs          = "jobs"
	KeyLogLevel      = "log-level"
	KeyCheckpointDir = "checkpoint-dir"
	KeyBufferSize    = "buffer-size"
	KeyProgress      = "progress"
)

const maxBufferSize = 1 << 30

// Config holds resolved runtime settings. CheckpointDir is empty unless set
// explicitly; callers fall back to store.CheckpointDir.
type Config struct {
	Bits          int
	Jobs          int
	LogLevel      string
	CheckpointDir string
	BufferSize    int
	Progress      bool
}

// Load resolves settings. flags may be nil; changed flags win over every other source.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyBits, 256)
	v.SetDefault(KeyJobs, 1)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyBufferSize, humanize.IBytes(exchange.DefaultCapacity))
	v.SetDefault(KeyProgress, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	bufSize, err := humanize.ParseBytes(v.GetString(KeyBufferSize))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w: %w", KeyBufferSize, err, apperrors.ErrUsage)
	}

	cfg := Config{
		Bits:          v.GetInt(KeyBits),
		Jobs:          v.GetInt(KeyJobs),
		LogLevel:      v.GetString(KeyLogLevel),
		CheckpointDir: v.GetString(KeyCheckpointDir),
		BufferSize:    int(min(bufSize, maxBufferSize+1)),
		Progress:      v.GetBool(KeyProgress),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings outside their supported range.
func (c Config) Validate() error {
	var errs []error
	if c.Bits != 224 && c.Bits != 256 {
		errs = append(errs, fmt.Errorf("bits must be 224 or 256, got %d", c.Bits))
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}
	if c.BufferSize < exchange.MinCapacity || c.BufferSize > maxBufferSize {
		errs = append(errs, fmt.Errorf("buffer size must be between %s and %s, got %s",
			humanize.IBytes(exchange.MinCapacity), humanize.IBytes(maxBufferSize), humanize.IBytes(uint64(max(c.BufferSize, 0)))))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w: %w", errors.Join(errs...), apperrors.ErrUsage)
	}
	return nil
}
