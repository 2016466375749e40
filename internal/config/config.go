// Package config loads the service configuration from the environment.
package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sethvargo/go-envconfig"
)

// Supported DB_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Supported CACHE_BACKEND values.
const (
	CacheLRU   = "lru"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full runtime configuration of the API process.
type Config struct {
	Port           int           `env:"PORT,default=8080"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT,default=15s"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT,default=60s"`
	IdleTimeout    time.Duration `env:"SERVER_IDLE_TIMEOUT,default=120s"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
	ServiceHost    string        `env:"SERVICE_HOST,default=localhost"`

	Database Database
	Cache    Cache
	Redis    Redis
	Log      Log
	Consul   Consul
}

// Database holds connection settings for the relational store.
type Database struct {
	Driver       string `env:"DB_DRIVER,default=postgres"`
	Host         string `env:"DB_HOST,default=localhost"`
	Port         int    `env:"DB_PORT"`
	Name         string `env:"DB_NAME,default=mindfulnessdb"`
	User         string `env:"DB_USER,default=root"`
	Password     string `env:"DB_PASSWORD"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS,default=10"`
	InitSchema   bool   `env:"DB_INIT_SCHEMA,default=false"`
}

type Cache struct {
	Backend string        `env:"CACHE_BACKEND,default=lru"`
	Size    int           `env:"CACHE_SIZE,default=1024"`
	TTL     time.Duration `env:"CACHE_TTL,default=5m"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR,default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,default=0"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=json"`
}

// Consul registration is enabled only when Addr is set.
type Consul struct {
	Addr  string `env:"CONSUL_HTTP_ADDR"`
	Token string `env:"CONSUL_HTTP_TOKEN"`
}

// Load reads the configuration from the process environment (and .env, if present).
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return finish(&cfg)
}

// LoadWith reads the configuration through l instead of the process environment.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "pgx" {
		cfg.Database.Driver = DriverPostgres
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = cfg.Database.DefaultPort()
	}
	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPort is the conventional port of the configured engine.
func (d Database) DefaultPort() int {
	if d.Driver == DriverMySQL {
		return 3306
	}
	return 5432
}

// DriverName is the database/sql driver registered for the configured engine.
func (d Database) DriverName() string {
	if d.Driver == DriverMySQL {
		return "mysql"
	}
	return "pgx"
}

// DSN builds the data source name understood by DriverName.
func (d Database) DSN() string {
	addr := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	if d.Driver == DriverMySQL {
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = d.Name
		mc.ParseTime = true
		mc.Loc = time.Local
		// Report matched rows, not changed rows, so an update that rewrites
		// identical values still counts as one row.
		mc.ClientFoundRows = true
		return mc.FormatDSN()
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     addr,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
