// Package config loads application configuration for the serial-settings
// command from file, environment and flags.
package config

import (
	"encoding"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	settings "github.com/allbin/serial-settings"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	appName   = "serial-settings"
	envPrefix = "SERIAL_SETTINGS"
)

// Config is the resolved application configuration.
type Config struct {
	// Path of the SQLite database holding the settings.
	Database string `mapstructure:"database"`

	// One of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// Speeds accepted in addition to the standard termios set.
	ExtraBaudRates []int `mapstructure:"extra_baud_rates"`

	// Values used by "add" for flags that were not given.
	Defaults Defaults `mapstructure:"defaults"`
}

// Defaults holds the framing applied to newly configured ports.
type Defaults struct {
	BaudRate    int                  `mapstructure:"baud_rate"`
	DataBits    int                  `mapstructure:"data_bits"`
	StopBits    settings.StopBits    `mapstructure:"stop_bits"`
	Parity      settings.Parity      `mapstructure:"parity"`
	FlowControl settings.FlowControl `mapstructure:"flow_control"`
}

// Setting returns the defaults applied to port.
func (d Defaults) Setting(port string) settings.Setting {
	return settings.Setting{
		Port:        port,
		BaudRate:    d.BaudRate,
		DataBits:    d.DataBits,
		StopBits:    d.StopBits,
		Parity:      d.Parity,
		FlowControl: d.FlowControl,
	}
}

// New returns a viper instance with defaults and environment binding set
// up. Flags may be bound to it before Load is called.
func New() *viper.Viper {
	v := viper.New()

	def := settings.DefaultSetting("")
	v.SetDefault("database", defaultDatabasePath())
	v.SetDefault("log_level", "warn")
	v.SetDefault("extra_baud_rates", []int{})
	v.SetDefault("defaults.baud_rate", def.BaudRate)
	v.SetDefault("defaults.data_bits", def.DataBits)
	v.SetDefault("defaults.stop_bits", def.StopBits.String())
	v.SetDefault("defaults.parity", def.Parity.String())
	v.SetDefault("defaults.flow_control", def.FlowControl.String())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (path, or the default location when empty)
// and decodes the result. A missing default file is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		scalarTextHook(),
		mapstructure.StringToWeakSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// scalarTextHook sends numeric and boolean values bound for a
// TextUnmarshaler through UnmarshalText, so "stop_bits: 2" parses as TWO.
func scalarTextHook() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		switch f.Kind() {
		case reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
		default:
			return data, nil
		}
		result := reflect.New(t).Interface()
		u, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return data, nil
		}
		if err := u.UnmarshalText([]byte(fmt.Sprint(data))); err != nil {
			return nil, err
		}
		return result, nil
	}
}

// ConfigFileUsed reports the file Load read, if any.
func ConfigFileUsed(v *viper.Viper) string { return v.ConfigFileUsed() }

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
	return l, nil
}

// NewLogger returns a text logger on stderr at the configured level.
func (c Config) NewLogger() *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Validator returns the settings validator honoring ExtraBaudRates.
func (c Config) Validator() settings.Validator {
	return settings.NewValidator(c.ExtraBaudRates...)
}

func configDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName), nil
}

func defaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return appName + ".db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName, "settings.db")
}
