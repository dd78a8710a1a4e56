package models

import (
	"fmt"
	"strconv"

	"github.com/obliviraorg/edumentor/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Unknown keys are ignored.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	parseFloat := func(key, value string, dst *float64) error {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = f
		return nil
	}

	for key, value := range data {
		var err error
		switch key {
		case constants.SettingDailyStudyHours:
			err = parseFloat(key, value, &settings.DailyStudyHours)
		case constants.SettingStudyHours:
			err = parseFloat(key, value, &settings.StudyHours)
		case constants.SettingSleepHours:
			err = parseFloat(key, value, &settings.SleepHours)
		case constants.SettingExerciseMinutes:
			err = parseFloat(key, value, &settings.ExerciseMinutes)
		case constants.SettingLeisureHours:
			err = parseFloat(key, value, &settings.LeisureHours)
		case constants.SettingGenerateDelayMs:
			settings.GenerateDelayMs, err = strconv.Atoi(value)
			if err != nil {
				err = fmt.Errorf("parsing %s: %w", key, err)
			}
		case constants.SettingTimezone:
			settings.Timezone = value
		}
		if err != nil {
			return Settings{}, err
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	format := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	return map[string]string{
		constants.SettingDailyStudyHours: format(settings.DailyStudyHours),
		constants.SettingStudyHours:      format(settings.StudyHours),
		constants.SettingSleepHours:      format(settings.SleepHours),
		constants.SettingExerciseMinutes: format(settings.ExerciseMinutes),
		constants.SettingLeisureHours:    format(settings.LeisureHours),
		constants.SettingGenerateDelayMs: strconv.Itoa(settings.GenerateDelayMs),
		constants.SettingTimezone:        settings.Timezone,
	}
}

// ApplyDefaultSettings fills in settings that were never stored.
// Zero budgets are legitimate, so only the timezone is defaulted on empty.
func ApplyDefaultSettings(settings *Settings, present map[string]bool) {
	defaults := DefaultSettings()
	if !present[constants.SettingDailyStudyHours] {
		settings.DailyStudyHours = defaults.DailyStudyHours
	}
	if !present[constants.SettingStudyHours] {
		settings.StudyHours = defaults.StudyHours
	}
	if !present[constants.SettingSleepHours] {
		settings.SleepHours = defaults.SleepHours
	}
	if !present[constants.SettingExerciseMinutes] {
		settings.ExerciseMinutes = defaults.ExerciseMinutes
	}
	if !present[constants.SettingLeisureHours] {
		settings.LeisureHours = defaults.LeisureHours
	}
	if !present[constants.SettingGenerateDelayMs] {
		settings.GenerateDelayMs = defaults.GenerateDelayMs
	}
	if settings.Timezone == "" {
		settings.Timezone = defaults.Timezone
	}
}
