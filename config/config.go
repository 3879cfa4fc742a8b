package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Operator OperatorConfig
	PayPal   PayPalConfig
	IPN      IPNConfig
	Firebase FirebaseConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RateLimit is requests per minute per client IP.
	RateLimit int
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// OperatorConfig seeds the first console operator on startup.
type OperatorConfig struct {
	Email    string
	Password string
}

type PayPalConfig struct {
	Sandbox   bool
	User      string
	Password  string
	Signature string
	Version   string
	// Endpoint overrides the NVP endpoint, mostly for local simulators.
	Endpoint string
	Debug    bool
	Timeout  time.Duration
}

type IPNConfig struct {
	ReceiverEmail           string
	PostbackEndpoint        string
	SandboxPostbackEndpoint string
}

type FirebaseConfig struct {
	ServiceAccountPath string
	// AlertTopic receives a push for every event listed in AlertEvents.
	AlertTopic  string
	AlertEvents []string
}

type LogConfig struct {
	Level string
}

// Load reads .env (if present) and the environment over defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()
	env := &envLoader{}

	cfg := &Config{
		Server: ServerConfig{
			Port:         env.getString("PORT", "8099"),
			Env:          env.getString("APP_ENV", "development"),
			ReadTimeout:  env.getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: env.getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			RateLimit:    env.getInt("RATE_LIMIT_PER_MINUTE", 100),
		},
		Database: DatabaseConfig{
			DSN:             env.getString("DATABASE_DSN", "paygate:paygate@tcp(localhost:3306)/paygate?charset=utf8mb4&parseTime=True&loc=UTC"),
			MaxIdleConns:    env.getInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    env.getInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: env.getDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			AccessSecret:  env.getString("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: env.getString("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  env.getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: env.getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),
			Issuer:        env.getString("JWT_ISSUER", "paygate"),
		},
		Operator: OperatorConfig{
			Email:    env.getString("OPERATOR_EMAIL", ""),
			Password: env.getString("OPERATOR_PASSWORD", ""),
		},
		PayPal: PayPalConfig{
			Sandbox:   env.getBool("PAYPAL_TEST", true),
			User:      env.getString("PAYPAL_WPP_USER", ""),
			Password:  env.getString("PAYPAL_WPP_PASSWORD", ""),
			Signature: env.getString("PAYPAL_WPP_SIGNATURE", ""),
			Version:   env.getString("PAYPAL_API_VERSION", ""),
			Endpoint:  env.getString("PAYPAL_NVP_ENDPOINT", ""),
			Debug:     env.getBool("PAYPAL_DEBUG", false),
			Timeout:   env.getDuration("PAYPAL_TIMEOUT", 30*time.Second),
		},
		IPN: IPNConfig{
			ReceiverEmail:           env.getString("PAYPAL_RECEIVER_EMAIL", ""),
			PostbackEndpoint:        env.getString("PAYPAL_POSTBACK_ENDPOINT", ""),
			SandboxPostbackEndpoint: env.getString("PAYPAL_SANDBOX_POSTBACK_ENDPOINT", ""),
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: env.getString("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
			AlertTopic:         env.getString("FIREBASE_ALERT_TOPIC", "paypal-alerts"),
			AlertEvents:        env.getList("FIREBASE_ALERT_EVENTS", []string{"ipn.payment_flagged", "ipn.recurring_cancel", "ipn.subscription_cancel"}),
		},
		Log: LogConfig{
			Level: env.getString("LOG_LEVEL", "info"),
		},
	}

	if cfg.Server.Env == "production" {
		if cfg.JWT.AccessSecret == "change-me-in-production" || cfg.JWT.RefreshSecret == "change-me-refresh" {
			env.fail("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set in production")
		}
		if cfg.PayPal.User == "" || cfg.PayPal.Password == "" || cfg.PayPal.Signature == "" {
			env.fail("PAYPAL_WPP_USER, PAYPAL_WPP_PASSWORD and PAYPAL_WPP_SIGNATURE are required in production")
		}
	}
	if err := env.err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type envLoader struct {
	errs []string
}

func (l *envLoader) fail(msg string) { l.errs = append(l.errs, msg) }

func (l *envLoader) err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (l *envLoader) getString(key, def string) string {
	if v, ok := l.lookup(key); ok {
		return v
	}
	return def
}

func (l *envLoader) getInt(key string, def int) int {
	v, ok := l.lookup(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		l.fail(key + " must be an integer")
		return def
	}
	return i
}

func (l *envLoader) getBool(key string, def bool) bool {
	v, ok := l.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		l.fail(key + " must be a boolean")
		return def
	}
	return b
}

func (l *envLoader) getDuration(key string, def time.Duration) time.Duration {
	v, ok := l.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		l.fail(key + " must be a duration like 30s")
		return def
	}
	return d
}

func (l *envLoader) getList(key string, def []string) []string {
	v, ok := l.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
