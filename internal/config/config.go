package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"mazereplay/internal/eventbus"
)

// Playback limits the viewer has always used
const (
	DefaultSpeedMs  = 80
	DefaultMinSpeed = 10
	DefaultMaxSpeed = 500
	DefaultBatch    = 1
	DefaultMaxBatch = 50
	DefaultLogFile  = "mazereplay.log"
)

// Config represents the application configuration
type Config struct {
	Version  int              `toml:"version"`
	LogFile  string           `toml:"log_file" env:"MAZEREPLAY_LOG_FILE"`
	Playback PlaybackSettings `toml:"playback"`
	UI       UISettings       `toml:"ui"`
}

// PlaybackSettings controls the replay timer
type PlaybackSettings struct {
	SpeedMs    int  `toml:"speed_ms" env:"MAZEREPLAY_SPEED_MS"`
	Batch      int  `toml:"batch" env:"MAZEREPLAY_BATCH"`
	MinSpeedMs int  `toml:"min_speed_ms"`
	MaxSpeedMs int  `toml:"max_speed_ms"`
	MaxBatch   int  `toml:"max_batch"`
	Autoplay   bool `toml:"autoplay" env:"MAZEREPLAY_AUTOPLAY"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowLegend   bool `toml:"show_legend"`
	ShowLivePath bool `toml:"show_live_path"`
	CellWidth    int  `toml:"cell_width"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath is $XDG_CONFIG_HOME/mazereplay/config.toml, or the
// platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "mazereplay", "config.toml")
}

// NewConfigService creates a config service for path; empty means DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration from the service's file. A missing file
// yields the defaults. Environment overrides apply either way.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = DefaultConfig()
		if err := ApplyEnv(cfg); err != nil {
			return nil, err
		}
		cfg.Validate()
	} else if err != nil {
		return nil, err
	}

	// Publish ConfigLoaded event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	// Publish ConfigSaved event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys the file
// leaves out keep their default value.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.Validate()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with MAZEREPLAY_* environment variables that are set
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		LogFile: DefaultLogFile,
		Playback: PlaybackSettings{
			SpeedMs:    DefaultSpeedMs,
			Batch:      DefaultBatch,
			MinSpeedMs: DefaultMinSpeed,
			MaxSpeedMs: DefaultMaxSpeed,
			MaxBatch:   DefaultMaxBatch,
		},
		UI: UISettings{
			ShowLegend:   true,
			ShowLivePath: true,
			CellWidth:    2,
		},
	}
}

// Validate clamps out-of-range values back into their limits
func (c *Config) Validate() {
	if c.Version <= 0 {
		c.Version = 1
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}

	p := &c.Playback
	if p.MinSpeedMs <= 0 {
		p.MinSpeedMs = DefaultMinSpeed
	}
	if p.MaxSpeedMs < p.MinSpeedMs {
		p.MaxSpeedMs = max(DefaultMaxSpeed, p.MinSpeedMs)
	}
	if p.MaxBatch <= 0 {
		p.MaxBatch = DefaultMaxBatch
	}
	p.SpeedMs = c.ClampSpeed(p.SpeedMs)
	p.Batch = c.ClampBatch(p.Batch)

	if c.UI.CellWidth < 1 {
		c.UI.CellWidth = 1
	}
	if c.UI.CellWidth > 4 {
		c.UI.CellWidth = 4
	}
}

// ClampSpeed keeps a tick interval within the configured range
func (c *Config) ClampSpeed(ms int) int {
	return min(max(ms, c.Playback.MinSpeedMs), c.Playback.MaxSpeedMs)
}

// ClampBatch keeps a batch size within 1 and the configured maximum
func (c *Config) ClampBatch(n int) int {
	return min(max(n, 1), c.Playback.MaxBatch)
}
