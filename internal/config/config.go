package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	Jaeger      JaegerConfig      `yaml:"jaeger"`
	Log         LogConfig         `yaml:"log"`
	HTTP        HTTPConfig        `yaml:"http"`
	GRPC        GRPCConfig        `yaml:"grpc"`
	Redis       RedisConfig       `yaml:"redis"`
	DB          DBConfig          `yaml:"db"`
	OpenWeather OpenWeatherConfig `yaml:"openweather"`
	Trip        TripConfig        `yaml:"trip"`
}

type JaegerConfig struct {
	Enabled     bool    `yaml:"enabled" env:"JAEGER_ENABLED" env-default:"false"`
	Address     string  `yaml:"address" env:"JAEGER_ADDRESS" env-default:"jaeger"`
	SampleRatio float64 `yaml:"sample_ratio" env:"JAEGER_SAMPLE_RATIO" env-default:"1"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"20s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

func (c HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// HandlerTimeout is the budget for one request's work. It stays below
// WriteTimeout so the response can still be written.
func (c HTTPConfig) HandlerTimeout() time.Duration {
	if c.WriteTimeout <= 0 {
		return c.RequestTimeout
	}
	if c.RequestTimeout > 0 && c.RequestTimeout < c.WriteTimeout {
		return c.RequestTimeout
	}
	return c.WriteTimeout * 3 / 4
}

type GRPCConfig struct {
	Host    string        `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port    int           `yaml:"port" env:"GRPC_PORT" env-default:"44046"`
	Timeout time.Duration `yaml:"timeout" env:"GRPC_TIMEOUT" env-default:"30s"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type DBConfig struct {
	DSN      string `yaml:"dsn" env:"DB_DSN"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"require"`
}

// Enabled reports whether trip plan storage is configured at all.
func (c DBConfig) Enabled() bool {
	return strings.TrimSpace(c.DSN) != "" || strings.TrimSpace(c.Host) != ""
}

func (c DBConfig) DatabaseURL() string {
	if c.DSN != "" {
		return c.DSN
	}

	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}

	q := u.Query()
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()

	return u.String()
}

type OpenWeatherConfig struct {
	BaseURL        string        `yaml:"base_url" env:"OPENWEATHERMAP_BASE_URL" env-default:"https://api.openweathermap.org"`
	APIKey         string        `yaml:"api_key" env:"OPENWEATHERMAP_API_KEY"`
	Units          string        `yaml:"units" env:"OPENWEATHERMAP_UNITS" env-default:"metric"`
	Timeout        time.Duration `yaml:"timeout" env:"OPENWEATHERMAP_TIMEOUT" env-default:"5s"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps" env:"OPENWEATHERMAP_RATE_LIMIT_RPS" env-default:"10"`
	RateLimitBurst int           `yaml:"rate_limit_burst" env:"OPENWEATHERMAP_RATE_LIMIT_BURST" env-default:"5"`
}

type TripConfig struct {
	MaxStops           int           `yaml:"max_stops" env:"TRIP_MAX_STOPS" env-default:"10"`
	MaxConcurrentStops int           `yaml:"max_concurrent_stops" env:"TRIP_MAX_CONCURRENT_STOPS" env-default:"4"`
	GeocodeCacheTTL    time.Duration `yaml:"geocode_cache_ttl" env:"TRIP_GEOCODE_CACHE_TTL" env-default:"24h"`
	ForecastCacheTTL   time.Duration `yaml:"forecast_cache_ttl" env:"TRIP_FORECAST_CACHE_TTL" env-default:"30m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exists: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read the config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	if res == "" {
		res = "config/local.yaml"
	}

	return res
}
