package config

import (
	"bytes"
	"errors"
	"fmt"
	neturl "net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// BackendConfig holds the startup configuration of the backend service.
type BackendConfig struct {
	Port           int
	Env            string
	LogDir         string
	AllowedOrigins []string
	Database       DatabaseConfig
	// RedisURL enables contact event publishing when set.
	RedisURL string
}

// FrontendConfig holds the startup configuration of the frontend service.
type FrontendConfig struct {
	Port            int
	Env             string
	LogDir          string
	AllowedOrigins  []string
	BackendURL      string
	UpstreamTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	Charset         string
	ParseTime       bool
	Loc             string
	Params          map[string]string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type rawConfig struct {
	Port            int               `yaml:"port"`
	Env             string            `yaml:"env"`
	LogDir          string            `yaml:"log_dir"`
	AllowedOrigins  []string          `yaml:"allowed_origins"`
	Database        rawDatabaseConfig `yaml:"database"`
	RedisURL        string            `yaml:"redis_url"`
	BackendURL      string            `yaml:"backend_url"`
	UpstreamTimeout string            `yaml:"upstream_timeout"`
}

type rawDatabaseConfig struct {
	DSN             string            `yaml:"dsn"`
	Host            string            `yaml:"host"`
	Port            int               `yaml:"port"`
	User            string            `yaml:"user"`
	Password        string            `yaml:"password"`
	Name            string            `yaml:"name"`
	Charset         string            `yaml:"charset"`
	ParseTime       *bool             `yaml:"parse_time"`
	Loc             string            `yaml:"loc"`
	Params          map[string]string `yaml:"params"`
	MaxOpenConns    int               `yaml:"max_open_conns"`
	MaxIdleConns    int               `yaml:"max_idle_conns"`
	ConnMaxLifetime string            `yaml:"conn_max_lifetime"`
}

// LoadBackend builds the backend config from defaults, the optional YAML file,
// an optional .env file and the process environment, in that order.
func LoadBackend(configPath string) (*BackendConfig, error) {
	raw, err := readRaw(configPath)
	if err != nil {
		return nil, err
	}

	cfg := defaultBackendConfig()
	if err := applyRawBackend(&cfg, raw); err != nil {
		return nil, err
	}
	if err := applyBackendEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFrontend builds the frontend config the same way LoadBackend does.
func LoadFrontend(configPath string) (*FrontendConfig, error) {
	raw, err := readRaw(configPath)
	if err != nil {
		return nil, err
	}

	cfg := defaultFrontendConfig()
	if err := applyRawFrontend(&cfg, raw); err != nil {
		return nil, err
	}
	if err := applyFrontendEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readRaw(configPath string) (rawConfig, error) {
	raw := rawConfig{}

	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return raw, fmt.Errorf("load .env: %w", err)
	}

	path := strings.TrimSpace(configPath)
	if path == "" {
		return raw, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return raw, fmt.Errorf("read config file %q: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return raw, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return raw, nil
}

func defaultBackendConfig() BackendConfig {
	return BackendConfig{
		Port: defaultBackendPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:            defaultDBHost,
			Port:            defaultDBPort,
			User:            defaultDBUser,
			Password:        defaultDBPassword,
			Name:            defaultDBName,
			Charset:         defaultDBCharset,
			ParseTime:       true,
			Loc:             defaultDBLoc,
			MaxOpenConns:    defaultMaxOpenConns,
			MaxIdleConns:    defaultMaxIdleConns,
			ConnMaxLifetime: defaultConnMaxLifetime,
		},
	}
}

func defaultFrontendConfig() FrontendConfig {
	return FrontendConfig{
		Port:            defaultFrontendPort,
		Env:             defaultEnv,
		BackendURL:      defaultBackendURL,
		UpstreamTimeout: defaultUpstreamTimeout,
	}
}

func applyRawBackend(cfg *BackendConfig, raw rawConfig) error {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = v
	}
	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.RedisURL = v
	}

	db, err := applyRawDatabase(cfg.Database, raw.Database)
	if err != nil {
		return err
	}
	cfg.Database = db
	return nil
}

func applyRawDatabase(cfg DatabaseConfig, raw rawDatabaseConfig) (DatabaseConfig, error) {
	if v := strings.TrimSpace(raw.DSN); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.Host); v != "" {
		cfg.Host = v
	}
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.User); v != "" {
		cfg.User = v
	}
	if raw.Password != "" {
		cfg.Password = raw.Password
	}
	if v := strings.TrimSpace(raw.Name); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(raw.Charset); v != "" {
		cfg.Charset = v
	}
	if raw.ParseTime != nil {
		cfg.ParseTime = *raw.ParseTime
	}
	if v := strings.TrimSpace(raw.Loc); v != "" {
		cfg.Loc = v
	}
	if len(raw.Params) > 0 {
		cfg.Params = copyStringMap(raw.Params)
	}
	if raw.MaxOpenConns != 0 {
		cfg.MaxOpenConns = raw.MaxOpenConns
	}
	if raw.MaxIdleConns != 0 {
		cfg.MaxIdleConns = raw.MaxIdleConns
	}
	if v := strings.TrimSpace(raw.ConnMaxLifetime); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid database.conn_max_lifetime %q: %w", v, err)
		}
		cfg.ConnMaxLifetime = d
	}
	return cfg, nil
}

func applyRawFrontend(cfg *FrontendConfig, raw rawConfig) error {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = v
	}
	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}
	if v := strings.TrimSpace(raw.BackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(raw.UpstreamTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid upstream_timeout %q: %w", v, err)
		}
		cfg.UpstreamTimeout = d
	}
	return nil
}

func applyBackendEnv(cfg *BackendConfig) error {
	port, err := envInt(EnvPort, cfg.Port)
	if err != nil {
		return err
	}
	cfg.Port = port
	cfg.Env = envString(EnvAppEnv, cfg.Env)
	cfg.LogDir = envString(EnvLogDir, cfg.LogDir)
	if v, ok := os.LookupEnv(EnvAllowedOrigins); ok {
		cfg.AllowedOrigins = normalizeOrigins(strings.Split(v, ","))
	}
	cfg.RedisURL = envString(EnvRedisURL, cfg.RedisURL)

	db := cfg.Database
	db.DSN = envString(EnvDBDSN, db.DSN)
	db.Host = envString(EnvDBHost, db.Host)
	if db.Port, err = envInt(EnvDBPort, db.Port); err != nil {
		return err
	}
	db.Name = envString(EnvDBName, db.Name)
	db.User = envString(EnvDBUser, db.User)
	// An empty DB_PASSWORD is meaningful, so presence is checked instead of value.
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		db.Password = v
	}
	cfg.Database = db
	return nil
}

func applyFrontendEnv(cfg *FrontendConfig) error {
	port, err := envInt(EnvPort, cfg.Port)
	if err != nil {
		return err
	}
	cfg.Port = port
	cfg.Env = envString(EnvAppEnv, cfg.Env)
	cfg.LogDir = envString(EnvLogDir, cfg.LogDir)
	if v, ok := os.LookupEnv(EnvAllowedOrigins); ok {
		cfg.AllowedOrigins = normalizeOrigins(strings.Split(v, ","))
	}
	cfg.BackendURL = envString(EnvBackendURL, cfg.BackendURL)
	if v := strings.TrimSpace(os.Getenv(EnvUpstreamTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvUpstreamTimeout, v, err)
		}
		cfg.UpstreamTimeout = d
	}
	return nil
}

func (c *BackendConfig) validate() error {
	c.Env = normalizeEnv(c.Env)
	c.LogDir = ResolveRuntimePath(c.LogDir)
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port %d, expected 1-65535", c.Database.Port)
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return errors.New("database connection limits must be >= 0")
	}
	return nil
}

func (c *FrontendConfig) validate() error {
	c.Env = normalizeEnv(c.Env)
	c.LogDir = ResolveRuntimePath(c.LogDir)
	c.BackendURL = strings.TrimRight(strings.TrimSpace(c.BackendURL), "/")
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("invalid upstream timeout %s, expected > 0", c.UpstreamTimeout)
	}
	u, err := neturl.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend url %q: %w", c.BackendURL, err)
	}
	if !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("backend url must be an absolute http(s) url, got %q", c.BackendURL)
	}
	return nil
}

// IsDev reports whether the backend runs in development mode.
func (c *BackendConfig) IsDev() bool { return strings.EqualFold(c.Env, developmentEnv) }

// IsDev reports whether the frontend runs in development mode.
func (c *FrontendConfig) IsDev() bool { return strings.EqualFold(c.Env, developmentEnv) }

// Addr returns the listen address.
func (c *BackendConfig) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Addr returns the listen address.
func (c *FrontendConfig) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func copyStringMap(input map[string]string) map[string]string {
	out := make(map[string]string, len(input))
	for k, v := range input {
		out[k] = v
	}
	return out
}
