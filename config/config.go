package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	Clinic    ClinicConfig
	RateLimit RateLimitConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Port    string
	Env     string
	BaseURL string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// ClinicConfig holds booking-facing clinic settings. Timezone defaults to
// Asia/Bangkok, which every scheduled job and booking rule runs in.
type ClinicConfig struct {
	Timezone    string
	OpeningHour int
	ClosingHour int
	SlotMinutes int
	MinLeadTime time.Duration
	ResetExpiry time.Duration
}

type RateLimitConfig struct {
	BookingWindow time.Duration
	BookingMax    int
}

type SchedulerConfig struct {
	Enabled bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port:    viper.GetString("APP_PORT"),
			Env:     viper.GetString("APP_ENV"),
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("SMTP_FROM"),
		},
		Clinic: ClinicConfig{
			Timezone:    viper.GetString("CLINIC_TIMEZONE"),
			OpeningHour: viper.GetInt("CLINIC_OPENING_HOUR"),
			ClosingHour: viper.GetInt("CLINIC_CLOSING_HOUR"),
			SlotMinutes: viper.GetInt("CLINIC_SLOT_MINUTES"),
			MinLeadTime: viper.GetDuration("CLINIC_MIN_LEAD_TIME"),
			ResetExpiry: viper.GetDuration("RESET_TOKEN_EXPIRY"),
		},
		RateLimit: RateLimitConfig{
			BookingWindow: viper.GetDuration("BOOKING_RATE_WINDOW"),
			BookingMax:    viper.GetInt("BOOKING_RATE_MAX"),
		},
		Scheduler: SchedulerConfig{
			Enabled: viper.GetBool("SCHEDULER_ENABLED"),
		},
	}

	applyDefaults(config)

	return config, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Clinic.Timezone == "" {
		cfg.Clinic.Timezone = "Asia/Bangkok"
	}
	if cfg.Clinic.OpeningHour == 0 {
		cfg.Clinic.OpeningHour = 9
	}
	if cfg.Clinic.ClosingHour == 0 {
		cfg.Clinic.ClosingHour = 18
	}
	if cfg.Clinic.SlotMinutes == 0 {
		cfg.Clinic.SlotMinutes = 30
	}
	if cfg.Clinic.MinLeadTime == 0 {
		cfg.Clinic.MinLeadTime = 24 * time.Hour
	}
	if cfg.Clinic.ResetExpiry == 0 {
		cfg.Clinic.ResetExpiry = time.Hour
	}
	if cfg.RateLimit.BookingWindow == 0 {
		cfg.RateLimit.BookingWindow = 5 * time.Minute
	}
	if cfg.RateLimit.BookingMax == 0 {
		cfg.RateLimit.BookingMax = 3
	}
}
