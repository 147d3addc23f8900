package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. LAUNCHDASH_DATASET_PATH.
const EnvPrefix = "LAUNCHDASH"

type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// UIConfig describes the range control and window geometry.
type UIConfig struct {
	PayloadMin  float64 `mapstructure:"payload_min"`
	PayloadMax  float64 `mapstructure:"payload_max"`
	PayloadStep float64 `mapstructure:"payload_step"`
	MarkEvery   float64 `mapstructure:"mark_every"`
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
}

type ChartsConfig struct {
	Width        int     `mapstructure:"width"`
	Height       int     `mapstructure:"height"`
	SuccessColor string  `mapstructure:"success_color"`
	FailureColor string  `mapstructure:"failure_color"`
	OutlineColor string  `mapstructure:"outline_color"`
	OutlineWidth float64 `mapstructure:"outline_width"`
	Hole         float64 `mapstructure:"hole"`
}

type Config struct {
	viper   *viper.Viper
	Dataset DatasetConfig `mapstructure:"dataset"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
	Charts  ChartsConfig  `mapstructure:"charts"`
}

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataset.path", "spacex_launch_dash.csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.payload_min", 0)
	v.SetDefault("ui.payload_max", 10000)
	v.SetDefault("ui.payload_step", 1000)
	v.SetDefault("ui.mark_every", 2500)
	v.SetDefault("ui.width", 1100)
	v.SetDefault("ui.height", 860)
	v.SetDefault("charts.width", 900)
	v.SetDefault("charts.height", 420)
	v.SetDefault("charts.success_color", "#008000")
	v.SetDefault("charts.failure_color", "#ff0000")
	v.SetDefault("charts.outline_color", "#000000")
	v.SetDefault("charts.outline_width", 2)
	v.SetDefault("charts.hole", 0.3)
}

// New returns a viper instance with defaults and env overrides wired. Callers may
// bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration into a Config. With an explicit path the file must
// exist; otherwise launchdash.yaml is searched in the working directory and
// $HOME/.config/launchdash and silently skipped when absent.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("launchdash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "launchdash"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	cfg := &Config{viper: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the UI controls cannot represent.
func (cfg *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(cfg.Dataset.Path) == "" {
		errs = append(errs, errors.New("dataset.path is empty"))
	}
	if cfg.UI.PayloadMin < 0 {
		errs = append(errs, fmt.Errorf("ui.payload_min %.0f is negative", cfg.UI.PayloadMin))
	}
	if cfg.UI.PayloadMin >= cfg.UI.PayloadMax {
		errs = append(errs, fmt.Errorf("ui.payload_min %.0f must be below ui.payload_max %.0f", cfg.UI.PayloadMin, cfg.UI.PayloadMax))
	}
	if cfg.UI.PayloadStep <= 0 {
		errs = append(errs, fmt.Errorf("ui.payload_step must be positive, got %.0f", cfg.UI.PayloadStep))
	}
	if cfg.Charts.Width <= 0 || cfg.Charts.Height <= 0 {
		errs = append(errs, fmt.Errorf("charts size %dx%d is invalid", cfg.Charts.Width, cfg.Charts.Height))
	}
	if cfg.Charts.Hole < 0 || cfg.Charts.Hole >= 1 {
		errs = append(errs, fmt.Errorf("charts.hole %.2f outside [0,1)", cfg.Charts.Hole))
	}
	for key, c := range map[string]string{
		"charts.success_color": cfg.Charts.SuccessColor,
		"charts.failure_color": cfg.Charts.FailureColor,
		"charts.outline_color": cfg.Charts.OutlineColor,
	} {
		if !hexColor.MatchString(c) {
			errs = append(errs, fmt.Errorf("%s %q is not a hex colour", key, c))
		}
	}
	return errors.Join(errs...)
}

// UsedFile returns the config file that was read, or "" when running on defaults.
func (cfg *Config) UsedFile() string {
	if cfg.viper == nil {
		return ""
	}
	return cfg.viper.ConfigFileUsed()
}
