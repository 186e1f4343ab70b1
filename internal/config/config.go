package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/babygenie/service-planner/internal/platform/cache"
	"github.com/babygenie/service-planner/internal/platform/database"
)

// envPrefix namespaces every variable read by the service, e.g. PLANNER_DB_HOST.
const envPrefix = "PLANNER"

// KafkaConfig holds broker and consumer-group settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// LLMConfig holds settings for the recipe text generator.
type LLMConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

// PlannerConfig holds tuning for the weekend planner pipeline.
type PlannerConfig struct {
	SourceTimeout  time.Duration
	CacheTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// ServiceConfig holds all configuration for the planner service.
type ServiceConfig struct {
	Port           string
	AppEnv         string
	AdminToken     string
	AllowedOrigins []string
	MigrationsDir  string
	DBConfig       database.PostgresConfig
	RedisConfig    cache.RedisConfig
	KafkaConfig    KafkaConfig
	LLMConfig      LLMConfig
	PlannerConfig  PlannerConfig
}

// Load reads configuration from the environment, after loading an optional .env file.
func Load() (*ServiceConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_port", "8000")
	v.SetDefault("app_env", "development")
	v.SetDefault("admin_token", "")
	v.SetDefault("allowed_origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("migrations_dir", "migrations")

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "weekend_genie")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("redis_address", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_group_prefix", "")

	v.SetDefault("openai_api_key", "")
	v.SetDefault("llm_model", "gpt-4o-mini")
	v.SetDefault("llm_base_url", "")
	v.SetDefault("llm_temperature", 0.7)
	v.SetDefault("llm_timeout", "30s")

	v.SetDefault("source_timeout", "5s")
	v.SetDefault("cache_ttl", "90m")
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)
}

// FromViper builds a ServiceConfig from an already-populated viper instance.
func FromViper(v *viper.Viper) (*ServiceConfig, error) {
	cfg := &ServiceConfig{
		Port:           normalizePort(v.GetString("service_port")),
		AppEnv:         v.GetString("app_env"),
		AdminToken:     v.GetString("admin_token"),
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
		MigrationsDir:  v.GetString("migrations_dir"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		RedisConfig: cache.RedisConfig{
			Address:  v.GetString("redis_address"),
			Password: v.GetString("redis_password"),
			Database: v.GetInt("redis_db"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     splitList(v.GetString("kafka_brokers")),
			GroupPrefix: v.GetString("kafka_group_prefix"),
		},
		LLMConfig: LLMConfig{
			APIKey:      v.GetString("openai_api_key"),
			Model:       v.GetString("llm_model"),
			BaseURL:     v.GetString("llm_base_url"),
			Temperature: v.GetFloat64("llm_temperature"),
			Timeout:     v.GetDuration("llm_timeout"),
		},
		PlannerConfig: PlannerConfig{
			SourceTimeout:  v.GetDuration("source_timeout"),
			CacheTTL:       v.GetDuration("cache_ttl"),
			RateLimitRPS:   v.GetFloat64("rate_limit_rps"),
			RateLimitBurst: v.GetInt("rate_limit_burst"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServiceConfig) validate() error {
	if len(c.KafkaConfig.Brokers) == 0 {
		return errors.New("at least one kafka broker is required")
	}
	if c.PlannerConfig.SourceTimeout <= 0 {
		return errors.New("source timeout must be positive")
	}
	if c.PlannerConfig.RateLimitRPS <= 0 || c.PlannerConfig.RateLimitBurst <= 0 {
		return errors.New("rate limit rps and burst must be positive")
	}
	return nil
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func normalizePort(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
