// Package config loads the session defaults from an optional YAML file and
// EDUMENTOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/scheduler"
	"github.com/obliviraorg/edumentor/internal/utils"
)

type Config struct {
	DailyStudyHours float64       `mapstructure:"daily_study_hours"`
	StudyHours      float64       `mapstructure:"study_hours"`
	SleepHours      float64       `mapstructure:"sleep_hours"`
	ExerciseMinutes float64       `mapstructure:"exercise_minutes"`
	LeisureHours    float64       `mapstructure:"leisure_hours"`
	GenerateDelay   time.Duration `mapstructure:"generate_delay"`
	Timezone        string        `mapstructure:"timezone"`
	Debug           bool          `mapstructure:"debug"`

	// ConfigDir holds logs; it is the directory of the config file.
	ConfigDir string `mapstructure:"-"`
	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// Settings converts the loaded values into session settings.
func (c Config) Settings() models.Settings {
	return models.Settings{
		DailyStudyHours: c.DailyStudyHours,
		StudyHours:      c.StudyHours,
		SleepHours:      c.SleepHours,
		ExerciseMinutes: c.ExerciseMinutes,
		LeisureHours:    c.LeisureHours,
		GenerateDelayMs: int(c.GenerateDelay / time.Millisecond),
		Timezone:        c.Timezone,
	}
}

// Validate reports every invalid budget and an unknown timezone.
func (c Config) Validate() error {
	errs := []error{
		scheduler.CheckHours("daily_study_hours", c.DailyStudyHours),
		scheduler.CheckHours("study_hours", c.StudyHours),
		scheduler.CheckHours("sleep_hours", c.SleepHours),
		scheduler.CheckMinutes("exercise_minutes", c.ExerciseMinutes),
		scheduler.CheckHours("leisure_hours", c.LeisureHours),
	}
	if c.GenerateDelay < 0 {
		errs = append(errs, fmt.Errorf("generate_delay must not be negative: %v", c.GenerateDelay))
	}
	if !utils.ValidateTimezone(c.Timezone) {
		errs = append(errs, fmt.Errorf("invalid timezone %q", c.Timezone))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("daily_study_hours", constants.DefaultDailyStudyHours)
	v.SetDefault("study_hours", constants.DefaultStudyHours)
	v.SetDefault("sleep_hours", constants.DefaultSleepHours)
	v.SetDefault("exercise_minutes", constants.DefaultExerciseMinutes)
	v.SetDefault("leisure_hours", constants.DefaultLeisureHours)
	v.SetDefault("generate_delay", constants.DefaultGenerateDelay)
	v.SetDefault("timezone", constants.DefaultTimezone)
	v.SetDefault("debug", false)
}

// Load reads path, or edumentor.yaml in the default config directory when
// path is empty. A missing default file is not an error; a missing explicit
// path is.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	configDir := ExpandHome(constants.DefaultConfigDir)
	if path != "" {
		path = ExpandHome(path)
		configDir = filepath.Dir(path)
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(constants.DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ConfigDir = configDir
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
