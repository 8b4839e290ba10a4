package config

// EnvPrefix is passed to envconfig; individual fields carry explicit keys so
// the prefix only matters for variables without a tag.
const EnvPrefix = "BANGLAMART"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Env var names referenced outside struct tags (error messages, tests).
const (
	EnvAppEnv   = "BANGLAMART_APP_ENV"
	EnvPort     = "BANGLAMART_APP_PORT"
	EnvDBDSN    = "BANGLAMART_DB_DSN"
	EnvDBHost   = "BANGLAMART_DB_HOST"
	EnvDBUser   = "BANGLAMART_DB_USER"
	EnvDBName   = "BANGLAMART_DB_NAME"
	EnvRedisURL = "BANGLAMART_REDIS_URL"

	EnvAdminJWTSecret = "BANGLAMART_ADMIN_JWT_SECRET"
	EnvAdminJWTIssuer = "BANGLAMART_ADMIN_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
