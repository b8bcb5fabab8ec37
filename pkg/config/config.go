package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ISYNCSO_DB_DSN"
	EnvDBHost = "ISYNCSO_DB_HOST"
	EnvDBUser = "ISYNCSO_DB_USER"
	EnvDBName = "ISYNCSO_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Invoicing    InvoicingConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"ISYNCSO_APP_ENV" required:"true"`
	Port         string   `envconfig:"ISYNCSO_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"ISYNCSO_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"ISYNCSO_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"ISYNCSO_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ISYNCSO_DB_DSN"`
	Driver string `envconfig:"ISYNCSO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ISYNCSO_DB_HOST"`
	LegacyPort     int    `envconfig:"ISYNCSO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ISYNCSO_DB_USER"`
	LegacyPassword string `envconfig:"ISYNCSO_DB_PASSWORD"`
	LegacyName     string `envconfig:"ISYNCSO_DB_NAME"`
	LegacySSLMode  string `envconfig:"ISYNCSO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ISYNCSO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ISYNCSO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ISYNCSO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ISYNCSO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ISYNCSO_REDIS_URL"`
	Address      string        `envconfig:"ISYNCSO_REDIS_ADDR"`
	Password     string        `envconfig:"ISYNCSO_REDIS_PASSWORD"`
	DB           int           `envconfig:"ISYNCSO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ISYNCSO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ISYNCSO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ISYNCSO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ISYNCSO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ISYNCSO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type InvoicingConfig struct {
	DefaultCurrency string        `envconfig:"ISYNCSO_INVOICING_DEFAULT_CURRENCY" default:"EUR"`
	IdempotencyTTL  time.Duration `envconfig:"ISYNCSO_INVOICING_IDEMPOTENCY_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ISYNCSO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
