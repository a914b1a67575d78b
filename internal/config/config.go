package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml.
// Секреты (пароли, токены) подставляются из переменных окружения
// через ${VAR}-синтаксис; main загружает .env до чтения конфига.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Auth         AuthConfig         `toml:"auth"`
	Booking      BookingConfig      `toml:"booking"`
	Redis        RedisConfig        `toml:"redis"`
	AMQP         AMQPConfig         `toml:"amqp"`
	Line         LineConfig         `toml:"line"`
	Email        EmailConfig        `toml:"email"`
	CalendarSync CalendarSyncConfig `toml:"calendar_sync"`
	Reminders    RemindersConfig    `toml:"reminders"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// DatabaseConfig настройки подключения к postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN собирает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки прометей-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AuthConfig настройки доступа к административным ручкам
type AuthConfig struct {
	AdminToken string `toml:"admin_token"`
}

// BookingConfig рабочие часы и шаг генерации слотов
type BookingConfig struct {
	MorningStart   string   `toml:"morning_start"`
	MorningEnd     string   `toml:"morning_end"`
	AfternoonStart string   `toml:"afternoon_start"`
	AfternoonEnd   string   `toml:"afternoon_end"`
	StepMinutes    int      `toml:"step_minutes"`
	ClosedWeekdays []string `toml:"closed_weekdays"` // ["Sunday", "Monday"]
}

// RedisConfig настройки кэша слотов
type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	SlotsTTLSeconds int    `toml:"slots_ttl_seconds"`
}

// AMQPConfig настройки публикации событий в RabbitMQ
type AMQPConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// LineConfig настройки LINE Messaging API
type LineConfig struct {
	Enabled      bool   `toml:"enabled"`
	APIURL       string `toml:"api_url"`
	ChannelToken string `toml:"channel_token"`
	Timeout      int    `toml:"timeout"` // seconds
}

// EmailConfig настройки почтового провайдера
type EmailConfig struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"api_key"`
	From    string `toml:"from"`
	AdminTo string `toml:"admin_to"`
}

// CalendarSyncConfig настройки вебхука синхронизации календаря
type CalendarSyncConfig struct {
	Enabled    bool   `toml:"enabled"`
	WebhookURL string `toml:"webhook_url"`
	Timeout    int    `toml:"timeout"` // seconds
}

// RemindersConfig настройки фонового воркера напоминаний
type RemindersConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds"`
	LeadMinutes     int  `toml:"lead_minutes"`
	WindowMinutes   int  `toml:"window_minutes"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	// Подстановка секретов из окружения
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if _, err := toml.Decode(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "piste-reserve"
	}
	if c.Booking.MorningStart == "" {
		c.Booking.MorningStart = string(domain.DefaultMorningStart)
	}
	if c.Booking.MorningEnd == "" {
		c.Booking.MorningEnd = string(domain.DefaultMorningEnd)
	}
	if c.Booking.AfternoonStart == "" {
		c.Booking.AfternoonStart = string(domain.DefaultAfternoonStart)
	}
	if c.Booking.AfternoonEnd == "" {
		c.Booking.AfternoonEnd = string(domain.DefaultAfternoonEnd)
	}
	if c.Booking.StepMinutes == 0 {
		c.Booking.StepMinutes = domain.DefaultStepMinutes
	}
	if len(c.Booking.ClosedWeekdays) == 0 {
		c.Booking.ClosedWeekdays = []string{"Sunday", "Monday"}
	}
	if c.Line.APIURL == "" {
		c.Line.APIURL = "https://api.line.me"
	}
	if c.Line.Timeout == 0 {
		c.Line.Timeout = 10
	}
	if c.CalendarSync.Timeout == 0 {
		c.CalendarSync.Timeout = 15
	}
	if c.Redis.SlotsTTLSeconds == 0 {
		c.Redis.SlotsTTLSeconds = 30
	}
	if c.Reminders.IntervalSeconds == 0 {
		c.Reminders.IntervalSeconds = 300
	}
	if c.Reminders.LeadMinutes == 0 {
		c.Reminders.LeadMinutes = 180
	}
	if c.Reminders.WindowMinutes == 0 {
		c.Reminders.WindowMinutes = 15
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database host and dbname are required")
	}
	if _, err := c.BusinessHours(); err != nil {
		return err
	}
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// BusinessHours конвертирует booking-секцию в доменную модель рабочих часов
func (c *Config) BusinessHours() (domain.BusinessHours, error) {
	hours := domain.BusinessHours{StepMinutes: c.Booking.StepMinutes}

	var err error
	if hours.MorningStart, err = types.NewTimeStringFromString(c.Booking.MorningStart); err != nil {
		return hours, fmt.Errorf("config: booking.morning_start: %w", err)
	}
	if hours.MorningEnd, err = types.NewTimeStringFromString(c.Booking.MorningEnd); err != nil {
		return hours, fmt.Errorf("config: booking.morning_end: %w", err)
	}
	if hours.AfternoonStart, err = types.NewTimeStringFromString(c.Booking.AfternoonStart); err != nil {
		return hours, fmt.Errorf("config: booking.afternoon_start: %w", err)
	}
	if hours.AfternoonEnd, err = types.NewTimeStringFromString(c.Booking.AfternoonEnd); err != nil {
		return hours, fmt.Errorf("config: booking.afternoon_end: %w", err)
	}
	if hours.StepMinutes <= 0 {
		return hours, fmt.Errorf("config: booking.step_minutes must be positive")
	}

	for _, name := range c.Booking.ClosedWeekdays {
		wd, ok := weekdayNames[name]
		if !ok {
			return hours, fmt.Errorf("config: unknown weekday %q in booking.closed_weekdays", name)
		}
		hours.ClosedWeekdays = append(hours.ClosedWeekdays, wd)
	}

	return hours, nil
}
