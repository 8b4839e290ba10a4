package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	AdminJWT     AdminJWTConfig
	Postal       PostalConfig
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
	Env          string `envconfig:"BANGLAMART_APP_ENV" required:"true"`
	Port         string `envconfig:"BANGLAMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BANGLAMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BANGLAMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"BANGLAMART_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"BANGLAMART_DB_DSN"`
	Driver string `envconfig:"BANGLAMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BANGLAMART_DB_HOST"`
	LegacyPort     int    `envconfig:"BANGLAMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BANGLAMART_DB_USER"`
	LegacyPassword string `envconfig:"BANGLAMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"BANGLAMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"BANGLAMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BANGLAMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BANGLAMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BANGLAMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BANGLAMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BANGLAMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BANGLAMART_REDIS_ADDR"`
	Password     string        `envconfig:"BANGLAMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"BANGLAMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BANGLAMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BANGLAMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BANGLAMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BANGLAMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BANGLAMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AdminJWTConfig signs the bearer tokens used by the admin console.
type AdminJWTConfig struct {
	Secret            string `envconfig:"BANGLAMART_ADMIN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BANGLAMART_ADMIN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BANGLAMART_ADMIN_JWT_EXPIRATION_MINUTES" default:"720"`
}

// PostalConfig points at the pincode lookup collaborator.
type PostalConfig struct {
	BaseURL string        `envconfig:"BANGLAMART_POSTAL_BASE_URL" default:"https://api.postalpincode.in"`
	Timeout time.Duration `envconfig:"BANGLAMART_POSTAL_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BANGLAMART_AUTO_MIGRATE" default:"false"`
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
