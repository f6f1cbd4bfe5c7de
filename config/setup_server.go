package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

const (
	defaultIssuer          = "auth-service"
	defaultAccessTokenTTL  = "1h"
	defaultRefreshTokenTTL = "8760h"
	defaultCookieDomain    = "localhost"
	defaultJanitorInterval = "1h"
	defaultUserCacheTTL    = 300

	minRefreshSecretLength = 32
)

// envReference : значение поля целиком вида ${NAME}
var envReference = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

type AppConfig struct {
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	ServerAddr     string         `yaml:"serverAddr"`
	JWT            JWTConfig      `yaml:"jwt"`
	Keys           KeysConfig     `yaml:"keys"`
	Cookie         CookieConfig   `yaml:"cookie"`
	Admin          AdminConfig    `yaml:"admin"`
	TTL            TTL            `yaml:"TTL"`
	Janitor        JanitorConfig  `yaml:"janitor"`
	Logging        LoggingConfig  `yaml:"logging"`
}

// LoadConfig читает yaml-файл, подставляет переменные окружения,
// проставляет значения по умолчанию и валидирует результат
func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(file)
}

func ParseConfig(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.expandEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandEnv : подставляет переменные окружения после разбора yaml.
// Заменяется только значение целиком вида ${NAME}, остальное остается как есть
func (c *AppConfig) expandEnv() {
	for _, field := range []*string{
		&c.DatabaseConfig.DSN,
		&c.RedisConfig.Addr,
		&c.RedisConfig.Password,
		&c.ServerAddr,
		&c.JWT.Issuer,
		&c.JWT.RefreshTokenSecret,
		&c.Keys.PrivateKeyPath,
		&c.Keys.S3.Bucket,
		&c.Keys.S3.Key,
		&c.Keys.S3.Region,
		&c.Keys.S3.Endpoint,
		&c.Cookie.Domain,
		&c.Admin.Email,
		&c.Admin.Password,
	} {
		*field = lookupEnvReference(*field)
	}
}

func lookupEnvReference(value string) string {
	match := envReference.FindStringSubmatch(value)
	if match == nil {
		return value
	}
	resolved, _ := os.LookupEnv(match[1])
	return resolved
}

func (c *AppConfig) applyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = ":5501"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = defaultIssuer
	}
	if c.JWT.AccessTokenTTL == "" {
		c.JWT.AccessTokenTTL = defaultAccessTokenTTL
	}
	if c.JWT.RefreshTokenTTL == "" {
		c.JWT.RefreshTokenTTL = defaultRefreshTokenTTL
	}
	if c.Keys.Source == "" {
		c.Keys.Source = "file"
	}
	if c.Cookie.Domain == "" {
		c.Cookie.Domain = defaultCookieDomain
	}
	if c.Janitor.Interval == "" {
		c.Janitor.Interval = defaultJanitorInterval
	}
	if c.TTL.UserCache == 0 {
		c.TTL.UserCache = defaultUserCacheTTL
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *AppConfig) Validate() error {
	var errs []error

	if c.DatabaseConfig.DSN == "" {
		errs = append(errs, errors.New("databaseConfig.dsn is required"))
	}
	switch {
	case c.JWT.RefreshTokenSecret == "":
		errs = append(errs, errors.New("jwt.refresh_token_secret is required"))
	case len(c.JWT.RefreshTokenSecret) < minRefreshSecretLength:
		errs = append(errs, fmt.Errorf("jwt.refresh_token_secret must be at least %d bytes", minRefreshSecretLength))
	}
	for name, value := range map[string]string{
		"jwt.access_token_ttl":  c.JWT.AccessTokenTTL,
		"jwt.refresh_token_ttl": c.JWT.RefreshTokenTTL,
		"janitor.interval":      c.Janitor.Interval,
	} {
		d, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}

	switch c.Keys.Source {
	case "file":
		if c.Keys.PrivateKeyPath == "" {
			errs = append(errs, errors.New("keys.private_key_path is required for file source"))
		}
	case "s3":
		if c.Keys.S3.Bucket == "" || c.Keys.S3.Key == "" {
			errs = append(errs, errors.New("keys.s3.bucket and keys.s3.key are required for s3 source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown keys.source %q", c.Keys.Source))
	}

	return errors.Join(errs...)
}

func (c *AppConfig) JanitorInterval() time.Duration {
	d, _ := time.ParseDuration(c.Janitor.Interval)
	return d
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
