package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway credentials) and anything security sensitive
// - default: Values common across all environments (timeouts, sweep cadence)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Gateway GatewayConfig
	IDCodec IDCodecConfig
	Sweep   SweepConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// GatewayConfig configures the external payment gateway. The secret signs
// payment confirmations; the key id is handed to clients so they can complete
// checkout out-of-band.
type GatewayConfig struct {
	BaseURL string        `envconfig:"GATEWAY_BASE_URL" required:"true"`
	KeyID   string        `envconfig:"GATEWAY_KEY_ID" required:"true"`
	Secret  string        `envconfig:"GATEWAY_SECRET" required:"true"`
	Timeout time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
}

type IDCodecConfig struct {
	Key string `envconfig:"ID_CODEC_KEY" required:"true"`
}

type SweepConfig struct {
	// Cron spec for the booking sweeper (completion + unpaid-hold expiry).
	Schedule string `envconfig:"SWEEP_SCHEDULE" default:"@every 5m"`
	// How long a PAYMENT_PENDING booking holds the vehicle before the sweeper
	// releases it.
	PaymentHold time.Duration `envconfig:"BOOKING_PAYMENT_HOLD" default:"30m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level: "error",
		},
		Gateway: GatewayConfig{
			BaseURL: "http://localhost:9999",
			KeyID:   "key_test",
			Secret:  "secret_test",
			Timeout: time.Second,
		},
		IDCodec: IDCodecConfig{
			Key: "0123456789abcdef0123456789abcdef",
		},
		Sweep: SweepConfig{
			Schedule:    "@every 5m",
			PaymentHold: 30 * time.Minute,
		},
	}
}
