// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Источники токена авторизации.
const (
	TokenSourceCookie = "cookie"
	TokenSourceBearer = "bearer"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string        `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string        `yaml:"storage_connection_string" env:"STORAGE_DSN" env-required:"true"`
	StorageTimeout          time.Duration `yaml:"storage_timeout" env:"STORAGE_TIMEOUT" env-default:"3s"`
	MigrationsPath          string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Auth                    `yaml:"auth"`
	CORS                    `yaml:"cors"`
	Uploads                 `yaml:"uploads"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	Hashing                 `yaml:"hashing"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":4000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"168h"`
}

// Auth описывает, откуда берётся токен и как выставляется cookie.
type Auth struct {
	TokenSource    string `yaml:"token_source" env:"AUTH_TOKEN_SOURCE" env-default:"cookie"`
	CookieName     string `yaml:"cookie_name" env:"AUTH_COOKIE_NAME" env-default:"token"`
	CookieSecure   bool   `yaml:"cookie_secure" env:"AUTH_COOKIE_SECURE" env-default:"true"`
	CookieSameSite string `yaml:"cookie_same_site" env:"AUTH_COOKIE_SAME_SITE" env-default:"none"`
}

// CORS ограничивает кросс-доменные запросы одним origin.
type CORS struct {
	AllowedOrigin string `yaml:"allowed_origin" env:"CORS_ALLOWED_ORIGIN" env-default:"http://localhost:5173"`
}

// Uploads настройки загрузки фотографий.
type Uploads struct {
	Dir          string        `yaml:"dir" env:"UPLOADS_DIR" env-default:"./uploads"`
	MaxFiles     int           `yaml:"max_files" env:"UPLOADS_MAX_FILES" env-default:"100"`
	MaxMemory    int64         `yaml:"max_memory" env:"UPLOADS_MAX_MEMORY" env-default:"33554432"`
	MaxBodySize  int64         `yaml:"max_body_size" env:"UPLOADS_MAX_BODY_SIZE" env-default:"209715200"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"UPLOADS_FETCH_TIMEOUT" env-default:"15s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"1h"`
}

// RabbitMQ настройки публикации событий. Пустой URL отключает события.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"bookings"`
	Retries    int           `yaml:"retries" env:"RABBITMQ_RETRIES" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"RABBITMQ_RETRY_DELAY" env-default:"2s"`
}

// Hashing настройки хеширования паролей.
type Hashing struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"12"`
}

// MustLoad функция для загрузки конфига. Если задан CONFIG_PATH, читается yaml-файл
// (переменные окружения его перекрывают), иначе конфиг собирается только из окружения.
func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("file: %s - does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from env: %s", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}
	return &cfg
}

// Validate проверяет значения, которые cleanenv проверить не может.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return errors.New("jwt_secret_key must not be empty")
	}
	if c.TokenTTL <= 0 {
		return errors.New("token_ttl must be positive")
	}
	if c.TokenSource != TokenSourceCookie && c.TokenSource != TokenSourceBearer {
		return fmt.Errorf("token_source must be %q or %q, got %q", TokenSourceCookie, TokenSourceBearer, c.TokenSource)
	}
	if c.BcryptCost < 10 {
		return fmt.Errorf("bcrypt_cost must be at least 10, got %d", c.BcryptCost)
	}
	if c.MaxFiles <= 0 {
		return errors.New("uploads max_files must be positive")
	}
	if c.MaxBodySize <= 0 {
		return errors.New("uploads max_body_size must be positive")
	}
	if c.StorageTimeout <= 0 {
		return errors.New("storage_timeout must be positive")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"StorageTimeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"Auth:\n"+
			"  TokenSource: %s\n"+
			"  CookieName: %s\n"+
			"CORS:\n"+
			"  AllowedOrigin: %s\n"+
			"Uploads:\n"+
			"  Dir: %s\n"+
			"  MaxFiles: %d\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		maskDSN(c.StorageConnectionString),
		c.StorageTimeout,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.TokenSource,
		c.CookieName,
		c.AllowedOrigin,
		c.Dir,
		c.MaxFiles,
		c.AddressRedis,
		c.DB,
		c.RabbitMQ.URL != "",
		c.Exchange,
	)
}

var dsnPassword = regexp.MustCompile(`(password\s*=\s*)('[^']*'|\S+)`)

// maskDSN скрывает пароль в DSN как в URL-форме, так и в форме key=value.
func maskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		return u.Redacted()
	}
	return dsnPassword.ReplaceAllString(dsn, "${1}****")
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "****"
}
