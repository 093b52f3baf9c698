package slotecs

import (
	"os"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config holds the settings a World can be built from.
type Config struct {
	InitialCapacity int    `config:"ECS_INITIAL_CAPACITY"`
	LogLevel        string `config:"ECS_LOG_LEVEL"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: DefaultCapacity,
		LogLevel:        zerolog.InfoLevel.String(),
	}
}

// LoadConfig reads ECS_INITIAL_CAPACITY and ECS_LOG_LEVEL from the
// environment on top of DefaultConfig and validates the result.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to load config from env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the capacity is positive and the log level is known.
func (c Config) Validate() error {
	if c.InitialCapacity <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "initial capacity must be positive, got %d", c.InitialCapacity)
	}
	// ParseLevel maps "" to NoLevel without an error.
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return eris.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	return nil
}

// NewWorldFromConfig validates cfg and builds a World logging to stderr at
// the configured level. Options are applied after the config, so they win.
func NewWorldFromConfig(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	base := []Option{WithInitialCapacity(cfg.InitialCapacity), WithLogger(logger)}
	return NewWorld(append(base, opts...)...), nil
}

// Option configures a World.
type Option func(*options)

type options struct {
	resources *Resources
	logger    zerolog.Logger
	capacity  int
}

// WithInitialCapacity sets the number of slots the World starts with.
// Non-positive values fall back to DefaultCapacity.
func WithInitialCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithLogger sets the logger used for registration and growth diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithResources shares an existing resource store with the World.
func WithResources(r *Resources) Option {
	return func(o *options) { o.resources = r }
}
