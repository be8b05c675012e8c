package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server       ServerConfig
	Storage      StorageConfig
	Redis        RedisConfig
	Admin        AdminConfig
	Ads          AdsConfig
	Interactions InteractionsConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

// StorageConfig points at the S3-compatible bucket holding videos, covers
// and metadata sidecars. Cloudflare R2 in production, MinIO locally.
type StorageConfig struct {
	Endpoint       string `envconfig:"R2_ENDPOINT" default:"localhost:9000"`
	PublicEndpoint string `envconfig:"R2_PUBLIC_ENDPOINT"`
	PublicBaseURL  string `envconfig:"R2_PUBLIC_BASE_URL"`
	AccessKey      string `envconfig:"R2_ACCESS_KEY_ID" default:"minioadmin"`
	SecretKey      string `envconfig:"R2_SECRET_ACCESS_KEY" default:"minioadmin"`
	Bucket         string `envconfig:"R2_BUCKET" default:"videos"`
	UseSSL         bool   `envconfig:"R2_USE_SSL" default:"false"`
}

type RedisConfig struct {
	Enabled  bool          `envconfig:"REDIS_ENABLED" default:"false"`
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"5m"`
}

type AdminConfig struct {
	Password   string        `envconfig:"ADMIN_PASSWORD"`
	SessionTTL time.Duration `envconfig:"ADMIN_SESSION_TTL" default:"168h"`
}

type AdsConfig struct {
	Enabled  bool   `envconfig:"ADS_ENABLED" default:"false"`
	Provider string `envconfig:"AD_PROVIDER" default:"none"`

	ExoClickPreRoll  string `envconfig:"VAST_EXOCLICK_PRE_ROLL"`
	ExoClickMidRoll  string `envconfig:"VAST_EXOCLICK_MID_ROLL"`
	ExoClickPostRoll string `envconfig:"VAST_EXOCLICK_POST_ROLL"`
	AdsterraPreRoll  string `envconfig:"VAST_ADSTERRA_PRE_ROLL"`
	AdsterraMidRoll  string `envconfig:"VAST_ADSTERRA_MID_ROLL"`
	AdsterraPostRoll string `envconfig:"VAST_ADSTERRA_POST_ROLL"`
}

// InteractionsConfig selects the like/comment backend. "memory" keeps them
// process-local, "redis" shares them across instances.
type InteractionsConfig struct {
	Backend string `envconfig:"INTERACTIONS_BACKEND" default:"memory"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
