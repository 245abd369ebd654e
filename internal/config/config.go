package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "SEATBOOKING"

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Redis          RedisConfig          `toml:"redis"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	PaymentGateway PaymentGatewayConfig `toml:"payment_gateway" envconfig:"PAYMENT_GATEWAY"`
	UserService    UserServiceConfig    `toml:"user_service" envconfig:"USER_SERVICE"`
	Booking        BookingConfig        `toml:"booking"`
	Pricing        PricingConfig        `toml:"pricing"`
	Events         EventsConfig         `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"`
	ApplySchema     bool   `toml:"apply_schema" envconfig:"APPLY_SCHEMA"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки Redis. Без Redis маркеры оплаты хранятся в памяти процесса.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// PaymentGatewayConfig настройки платежного шлюза
type PaymentGatewayConfig struct {
	URL         string `toml:"url"`
	APIKey      string `toml:"api_key" envconfig:"API_KEY"`
	Currency    string `toml:"currency"`
	CallbackURL string `toml:"callback_url" envconfig:"CALLBACK_URL"`
	Timeout     int    `toml:"timeout"`
}

// UserServiceConfig настройки клиента UserService
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig правила бронирования и хранения состояния оплаты
type BookingConfig struct {
	EveningStartHour       int `toml:"evening_start_hour" envconfig:"EVENING_START_HOUR"`
	NextDayCutoffHour      int `toml:"next_day_cutoff_hour" envconfig:"NEXT_DAY_CUTOFF_HOUR"`
	MarkerTTLSeconds       int `toml:"marker_ttl_seconds" envconfig:"MARKER_TTL_SECONDS"`
	CarryOverTTLSeconds    int `toml:"carry_over_ttl_seconds" envconfig:"CARRY_OVER_TTL_SECONDS"`
	CleanupIntervalSeconds int `toml:"cleanup_interval_seconds" envconfig:"CLEANUP_INTERVAL_SECONDS"`
}

// PricingConfig резервные тарифы и комиссии, если источник тарифов пуст
type PricingConfig struct {
	ReloadIntervalSeconds int         `toml:"reload_interval_seconds" envconfig:"RELOAD_INTERVAL_SECONDS"`
	PayNowFixedFee        float64     `toml:"paynow_fixed_fee" envconfig:"PAYNOW_FIXED_FEE"`
	CardPercentage        float64     `toml:"card_percentage" envconfig:"CARD_PERCENTAGE"`
	TaxPercentage         float64     `toml:"tax_percentage" envconfig:"TAX_PERCENTAGE"`
	Rates                 []RateEntry `toml:"rates" ignored:"true"`
}

// RateEntry резервная почасовая ставка
type RateEntry struct {
	MemberType string  `toml:"member_type"`
	Bucket     string  `toml:"bucket"`
	HourlyRate float64 `toml:"hourly_rate"`
}

// EventsConfig публикация событий бронирования в Redis Streams
type EventsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load читает config.toml, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnv, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Redis.Addr, "localhost:6379")

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.Path, "/metrics")
	setDefault(&c.Metrics.ServiceName, "seatbooking")

	setDefault(&c.PaymentGateway.Currency, "SGD")
	setDefault(&c.PaymentGateway.Timeout, 10)
	setDefault(&c.UserService.Timeout, 3)

	setDefault(&c.Booking.EveningStartHour, domain.DefaultEveningStartHour)
	setDefault(&c.Booking.NextDayCutoffHour, domain.DefaultNextDayCutoffHour)
	setDefault(&c.Booking.MarkerTTLSeconds, 7*24*3600)
	setDefault(&c.Booking.CarryOverTTLSeconds, 24*3600)
	setDefault(&c.Booking.CleanupIntervalSeconds, 600)

	setDefault(&c.Pricing.ReloadIntervalSeconds, 60)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// Validate проверяет значения, с которыми сервис не сможет работать
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalid, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalid)
	}
	if _, err := url.ParseRequestURI(c.PaymentGateway.URL); err != nil {
		return fmt.Errorf("%w: payment_gateway.url: %v", ErrInvalid, err)
	}
	if c.PaymentGateway.CallbackURL == "" {
		return fmt.Errorf("%w: payment_gateway.callback_url is required", ErrInvalid)
	}
	if c.Booking.EveningStartHour < 0 || c.Booking.EveningStartHour > 23 ||
		c.Booking.NextDayCutoffHour < 0 || c.Booking.NextDayCutoffHour > 23 {
		return fmt.Errorf("%w: booking hours must be within 0..23", ErrInvalid)
	}
	if c.Events.Enabled && !c.Redis.Enabled {
		return fmt.Errorf("%w: events require redis.enabled", ErrInvalid)
	}
	if c.Pricing.PayNowFixedFee < 0 || c.Pricing.CardPercentage < 0 || c.Pricing.TaxPercentage < 0 {
		return fmt.Errorf("%w: pricing fees must not be negative", ErrInvalid)
	}
	for i, r := range c.Pricing.Rates {
		if !domain.MemberType(r.MemberType).IsValid() {
			return fmt.Errorf("%w: pricing.rates[%d].member_type=%q", ErrInvalid, i, r.MemberType)
		}
		switch domain.DurationBucket(r.Bucket) {
		case domain.BucketShort, domain.BucketStandard:
		default:
			return fmt.Errorf("%w: pricing.rates[%d].bucket=%q", ErrInvalid, i, r.Bucket)
		}
		if r.HourlyRate < 0 {
			return fmt.Errorf("%w: pricing.rates[%d].hourly_rate=%v", ErrInvalid, i, r.HourlyRate)
		}
	}
	return nil
}

// WindowRules правила окна бронирования
func (c *Config) WindowRules() domain.WindowRules {
	return domain.WindowRules{
		EveningStartHour:  c.Booking.EveningStartHour,
		NextDayCutoffHour: c.Booking.NextDayCutoffHour,
	}
}

// FallbackRates резервные тарифы из config.toml
func (c *Config) FallbackRates() []domain.RateCardEntry {
	entries := make([]domain.RateCardEntry, 0, len(c.Pricing.Rates))
	for _, r := range c.Pricing.Rates {
		entries = append(entries, domain.RateCardEntry{
			MemberType: domain.MemberType(r.MemberType),
			Bucket:     domain.DurationBucket(r.Bucket),
			HourlyRate: r.HourlyRate,
		})
	}
	return entries
}

// FallbackFees резервные настройки комиссий из config.toml
func (c *Config) FallbackFees() domain.FeeSettings {
	return domain.FeeSettings{
		PayNowFixedFee: c.Pricing.PayNowFixedFee,
		CardPercentage: c.Pricing.CardPercentage,
		TaxPercentage:  c.Pricing.TaxPercentage,
	}
}

// Seconds переводит значение конфигурации в time.Duration
func Seconds(v int) time.Duration {
	return time.Duration(v) * time.Second
}
