// Package config holds the application configuration, loaded from the
// environment with optional .env files. All variables share the BANK prefix,
// so the data directory is BANK_DATA_DIR, the log level BANK_LOG_LEVEL and
// so on.
package config

// Data locates the text files the bank persists its state in.
type Data struct {
	Dir string `envconfig:"DIR" default:"data"`
}

// Log controls the logger. Level follows slog conventions: -4 debug,
// 0 info, 4 warn, 8 error.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bank]"`
}

// Accrual schedules the monthly interest run. Spec is a cron expression or
// one of cron's descriptors such as @monthly.
type Accrual struct {
	Spec string `envconfig:"SPEC" default:"@monthly"`
}

// App is the root configuration.
type App struct {
	Env     string   `envconfig:"ENV" default:"development"`
	Data    *Data    `envconfig:"DATA"`
	Log     *Log     `envconfig:"LOG"`
	Accrual *Accrual `envconfig:"ACCRUAL"`
}
