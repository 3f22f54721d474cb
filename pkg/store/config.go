package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names accepted by the "backend" setting.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config tells Open where and how to store periods.
type Config interface {
	BasePath() string
	Backend() string
}

// FileConfig is the configuration read from .timelined.yaml and TIMELINED_*
// environment variables.
type FileConfig struct {
	Path         string
	BackendName  string
	LogLevel     string
	LogFile      string
	LogFormat    string
	TimelineUnit int
}

func (f *FileConfig) BasePath() string { return f.Path }

func (f *FileConfig) Backend() string { return f.BackendName }

// LoadConfig reads configuration the way the CLI expects it: defaults, then
// .timelined.yaml from $TIMELINED_CONFIG_PATH, the working directory or the
// home directory, then TIMELINED_* environment variables.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", "~/.timelined.db")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.format", "console")
	v.SetDefault("timeline.unit", 10)

	v.SetConfigName(".timelined") // .yaml is implicit
	v.SetEnvPrefix("TIMELINED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("TIMELINED_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &FileConfig{
		Path:         path,
		BackendName:  strings.ToLower(v.GetString("backend")),
		LogLevel:     v.GetString("log.level"),
		LogFile:      v.GetString("log.file"),
		LogFormat:    v.GetString("log.format"),
		TimelineUnit: v.GetInt("timeline.unit"),
	}, nil
}

// Open creates the Persistence selected by cfg. A nil cfg loads the
// configuration first.
func Open(cfg Config) (Persistence, error) {
	if cfg == nil {
		fc, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = fc
	}

	switch cfg.Backend() {
	case "", BackendDiskv:
		return NewDiskv(cfg.BasePath())
	case BackendSQLite:
		return NewSQLite(cfg.BasePath())
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}
