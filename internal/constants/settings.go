package constants

const (
	SettingDailyStudyHours = "daily_study_hours"
	SettingStudyHours      = "study_hours"
	SettingSleepHours      = "sleep_hours"
	SettingExerciseMinutes = "exercise_minutes"
	SettingLeisureHours    = "leisure_hours"
	SettingGenerateDelayMs = "generate_delay_ms"
	SettingTimezone        = "timezone"
)
