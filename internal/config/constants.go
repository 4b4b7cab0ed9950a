package config

import "time"

const (
	// DefaultConfigPath is empty: the YAML file is optional and only read when --config is given.
	DefaultConfigPath = ""

	defaultBackendPort     = 5001
	defaultFrontendPort    = 5000
	defaultEnv             = "production"
	developmentEnv         = "development"
	defaultDBHost          = "localhost"
	defaultDBPort          = 3306
	defaultDBUser          = "admin"
	defaultDBPassword      = ""
	defaultDBName          = "appdb"
	defaultDBCharset       = "utf8mb4"
	defaultDBLoc           = "Local"
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 2
	defaultConnMaxLifetime = 5 * time.Minute
	defaultBackendURL      = "http://localhost:5001"
	defaultUpstreamTimeout = 5 * time.Second
)

// Environment variable names read by Load*.
const (
	EnvPort            = "PORT"
	EnvAppEnv          = "APP_ENV"
	EnvLogDir          = "LOG_DIR"
	EnvAllowedOrigins  = "ALLOWED_ORIGINS"
	EnvDBDSN           = "DB_DSN"
	EnvDBHost          = "DB_HOST"
	EnvDBPort          = "DB_PORT"
	EnvDBName          = "DB_NAME"
	EnvDBUser          = "DB_USER"
	EnvDBPassword      = "DB_PASSWORD"
	EnvRedisURL        = "REDIS_URL"
	EnvBackendURL      = "BACKEND_URL"
	EnvUpstreamTimeout = "UPSTREAM_TIMEOUT"
)
