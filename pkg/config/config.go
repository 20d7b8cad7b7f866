package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Database  DatabaseConfig
	Log       LogConfig
	Timetable TimetableConfig
	Solver    SolverConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type LogConfig struct {
	Level  string
	Format string
}

// TimetableConfig describes the weekly slot grid.
type TimetableConfig struct {
	DaysPerWeek       int
	PeriodsPerDay     int
	PeriodsOnShortDay int
	ShortDayIndex     int
	StartTime         string
	PeriodMinutes     int
}

// SolverConfig governs the search budget and determinism.
type SolverConfig struct {
	TimeLimit time.Duration
	Seed      int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Timetable = TimetableConfig{
		DaysPerWeek:       v.GetInt("TIMETABLE_DAYS"),
		PeriodsPerDay:     v.GetInt("TIMETABLE_PERIODS_PER_DAY"),
		PeriodsOnShortDay: v.GetInt("TIMETABLE_PERIODS_SHORT_DAY"),
		ShortDayIndex:     v.GetInt("TIMETABLE_SHORT_DAY_INDEX"),
		StartTime:         v.GetString("TIMETABLE_START_TIME"),
		PeriodMinutes:     v.GetInt("TIMETABLE_PERIOD_MINUTES"),
	}

	cfg.Solver = SolverConfig{
		TimeLimit: parseDuration(v.GetString("SOLVER_TIME_LIMIT"), 30*time.Second),
		Seed:      v.GetInt64("SOLVER_SEED"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "emploi_du_temps")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TIMETABLE_DAYS", 5)
	v.SetDefault("TIMETABLE_PERIODS_PER_DAY", 8)
	v.SetDefault("TIMETABLE_PERIODS_SHORT_DAY", 4)
	v.SetDefault("TIMETABLE_SHORT_DAY_INDEX", 4)
	v.SetDefault("TIMETABLE_START_TIME", "08:00")
	v.SetDefault("TIMETABLE_PERIOD_MINUTES", 45)

	v.SetDefault("SOLVER_TIME_LIMIT", "30s")
	v.SetDefault("SOLVER_SEED", 1)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
