package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ConfigName is the base name of the settings file (wclean.yaml).
const ConfigName = "wclean"

// Settings holds the tunables read from wclean.yaml and WCLEAN_* variables.
type Settings struct {
	Log           LogSettings   `mapstructure:"log" yaml:"log"`
	ProgressEvery int           `mapstructure:"progress_every" yaml:"progress_every"`
	Elevate       bool          `mapstructure:"elevate" yaml:"elevate"`
	ElevateWait   time.Duration `mapstructure:"elevate_wait" yaml:"elevate_wait"`
	MetricsFile   string        `mapstructure:"metrics_file" yaml:"metrics_file"`
	Plain         bool          `mapstructure:"plain" yaml:"plain"`

	// File is the settings file that was read, empty if none was found.
	File string `mapstructure:"-" yaml:"-"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("progress_every", 20)
	v.SetDefault("elevate", true)
	v.SetDefault("elevate_wait", 2*time.Second)
	v.SetDefault("metrics_file", "")
	v.SetDefault("plain", false)
}

// LoadSettings reads settings from path, or searches %APPDATA%\wclean,
// $HOME/.wclean and the working directory when path is empty. A missing
// settings file is not an error; defaults apply.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WCLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		if appData := os.Getenv("APPDATA"); appData != "" {
			v.AddConfigPath(filepath.Join(appData, ConfigName))
		}
		v.AddConfigPath("$HOME/." + ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	s.File = v.ConfigFileUsed()

	if s.ProgressEvery <= 0 {
		s.ProgressEvery = 20
	}
	if s.ElevateWait < 0 {
		s.ElevateWait = 0
	}
	return &s, nil
}
