package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LogConfig struct {
	// Minimum level that gets printed: debug, info, warn, error or fatal.
	Level string `toml:"level"`
	// Print the file:line of the log call.
	ReportCaller bool `toml:"report_caller"`
}

type DeviceConfig struct {
	// Name used in log and debug messages.
	Name string `toml:"name"`
	// Upper bound for host allocations in bytes, 0 means unlimited.
	HostMemoryLimit uint64 `toml:"host_memory_limit"`
	// Reject attach/clear ranges that do not fit the descriptor set.
	BoundsCheck bool `toml:"bounds_check"`
	// Record object lifecycle messages in the debug report.
	Debug bool `toml:"debug"`
	// Number of debug messages kept before the oldest is dropped.
	DebugHistory int `toml:"debug_history"`
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Device DeviceConfig `toml:"device"`
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:        "info",
			ReportCaller: true,
		},
		Device: DefaultDeviceConfig(),
	}
}

func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		Name:         "dset-device",
		BoundsCheck:  true,
		Debug:        true,
		DebugHistory: 64,
	}
}

// ParseConfig decodes a TOML document on top of DefaultConfig, so omitted
// keys keep their default value.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Device.DebugHistory < 0 {
		return fmt.Errorf("debug_history must not be negative, got %d", c.Device.DebugHistory)
	}
	return nil
}

// Apply pushes the log section into the package logger.
func (c *Config) Apply() error {
	level, err := ParseLogLevel(c.Log.Level)
	if err != nil {
		return err
	}
	SetLogLevel(level)
	SetLogReportCaller(c.Log.ReportCaller)
	return nil
}
