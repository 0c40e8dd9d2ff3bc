package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pngfun/backend/pkg/storage"
	"github.com/spf13/viper"
)

type Configs struct {
	Env      string `mapstructure:"env" validate:"oneof=local dev staging prod"`
	LogLevel string `mapstructure:"log_level"`

	Database    DatabaseConfigs    `mapstructure:"db"`
	ApiServer   ServerConfigs      `mapstructure:"api"`
	Auth        AuthConfigs        `mapstructure:"auth"`
	Session     SessionConfigs     `mapstructure:"session"`
	Storage     storage.S3Configs  `mapstructure:"storage"`
	File        FileConfigs        `mapstructure:"photo"`
	Redis       RedisConfigs       `mapstructure:"redis"`
	WorldID     WorldIDConfigs     `mapstructure:"world_id"`
	Leaderboard LeaderboardConfigs `mapstructure:"leaderboard"`
	Challenge   ChallengeConfigs   `mapstructure:"challenge"`
	RateLimit   RateLimitConfigs   `mapstructure:"rate_limit"`
	Network     NetworkConfigs     `mapstructure:"network"`
}

func (c Configs) IsProduction() bool {
	return c.Env == "prod"
}

type DatabaseConfigs struct {
	// URL takes precedence over the separated fields when it is set.
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Database string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxOpenConns int `mapstructure:"max_open_conns"`
	MaxIdleConns int `mapstructure:"max_idle_conns"`
}

func (d DatabaseConfigs) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Database,
		d.SSLMode,
	)
}

type ServerConfigs struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	AllowOrigins []string      `mapstructure:"allow_origins"`

	// TrustedProxies lists the proxies whose X-Forwarded-For header is
	// honored when resolving the client IP. Empty trusts no proxy.
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"dive,ip|cidr"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret  string       `mapstructure:"token_secret" validate:"required"`
	TokenIssuer  string       `mapstructure:"token_issuer"`
	SessionToken TokenConfigs `mapstructure:"session_token"`
}

type TokenConfigs struct {
	Name       string        `mapstructure:"name"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type SessionConfigs struct {
	Secret string        `mapstructure:"secret" validate:"required"`
	Name   string        `mapstructure:"name"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

type FileConfigs struct {
	Bucket   string `mapstructure:"bucket"`
	MaxSize  int    `mapstructure:"max_size"`
	MaxWidth uint   `mapstructure:"max_width"`

	// MaxDimension bounds the declared width and height before decoding.
	MaxDimension int `mapstructure:"max_dimension"`
}

type RedisConfigs struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WorldIDConfigs struct {
	Endpoint string        `mapstructure:"endpoint"`
	AppID    string        `mapstructure:"app_id" validate:"startswith=app_"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LeaderboardConfigs struct {
	DefaultLimit int           `mapstructure:"default_limit" validate:"gt=0"`
	MaxLimit     int           `mapstructure:"max_limit" validate:"gtefield=DefaultLimit"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

type ChallengeConfigs struct {
	VotingPeriod      time.Duration `mapstructure:"voting_period"`
	StatusInterval    time.Duration `mapstructure:"status_interval" validate:"gt=0"`
	AggregateInterval time.Duration `mapstructure:"aggregate_interval" validate:"gt=0"`
}

type RateLimitConfigs struct {
	RequestsPerSecond float64 `mapstructure:"rps"`
	Burst             int     `mapstructure:"burst"`
}

type NetworkConfigs struct {
	Name string `mapstructure:"name" validate:"oneof=sepolia mainnet"`
}

// Every key needs a default, otherwise viper does not look it up in the
// environment during Unmarshal. The environment name of a key is its
// upper-cased path, e.g. db.host is DB_HOST.
var defaults = map[string]any{
	"env":       "local",
	"log_level": "info",

	"db.url":            "",
	"db.host":           "localhost",
	"db.port":           "5432",
	"db.name":           "postgres",
	"db.user":           "postgres",
	"db.password":       "",
	"db.sslmode":        "require",
	"db.max_open_conns": 20,
	"db.max_idle_conns": 5,

	"api.host":          "",
	"api.port":          "8080",
	"api.read_timeout":  "15s",
	"api.write_timeout": "30s",
	"api.allow_origins": "*",

	"api.trusted_proxies": "",

	"auth.token_secret":             "",
	"auth.token_issuer":             "png.fun",
	"auth.session_token.name":       "user_session",
	"auth.session_token.expiration": "720h",

	"session.secret":  "",
	"session.name":    "siwe",
	"session.max_age": "10m",

	"storage.endpoint":        "",
	"storage.public_endpoint": "",
	"storage.region":          "us-east-1",
	"storage.access_key":      "",
	"storage.secret_key":      "",
	"storage.ssl_disabled":    false,

	"photo.bucket":        "pngfun",
	"photo.max_size":      10 << 20,
	"photo.max_width":     1080,
	"photo.max_dimension": 8192,

	"redis.enabled":  false,
	"redis.addr":     "localhost:6379",
	"redis.password": "",
	"redis.db":       0,

	"world_id.endpoint": "https://developer.worldcoin.org",
	"world_id.app_id":   "app_a9e1e8a3c65d60bcf0432ec93883b524",
	"world_id.timeout":  "10s",

	"leaderboard.default_limit": 10,
	"leaderboard.max_limit":     100,
	"leaderboard.cache_ttl":     "5m",

	"challenge.voting_period":      "24h",
	"challenge.status_interval":    "1m",
	"challenge.aggregate_interval": "1m",

	"rate_limit.rps":   5,
	"rate_limit.burst": 10,

	"network.name": "sepolia",
}

// Load reads optional .env files into the process environment and decodes
// the environment into Configs.
func Load(envFiles ...string) (Configs, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Configs{}, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Configs
	if err := v.Unmarshal(&cfg); err != nil {
		return Configs{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}
