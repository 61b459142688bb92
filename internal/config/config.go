package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/adoptme/service-adoption/internal/platform/config"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// ServiceConfig holds all configuration for the adoption service.
type ServiceConfig struct {
	Port               string
	AppEnv             string
	StorageDriver      string
	CORSAllowedOrigins []string
	DBConfig           config.DatabaseConfig
	JWTConfig          config.JWTConfig
	KafkaConfig        config.KafkaConfig
	BootstrapAdmin     BootstrapAdmin
}

// BootstrapAdmin is an admin account created at startup when Email is set.
type BootstrapAdmin struct {
	Email    string
	Password string
}

// Enabled reports whether a bootstrap admin is configured.
func (b BootstrapAdmin) Enabled() bool {
	return b.Email != ""
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("ADOPTION")
	if err != nil {
		return nil, err
	}
	cfg := fromViper(v)
	if cfg.BootstrapAdmin.Enabled() && len(cfg.BootstrapAdmin.Password) < 8 {
		return nil, fmt.Errorf("ADOPTION_BOOTSTRAP_ADMIN_PASSWORD must be at least 8 characters when ADOPTION_BOOTSTRAP_ADMIN_EMAIL is set")
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *ServiceConfig {
	v.SetDefault("DB_NAME", "adoption")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER")))
	if driver != StorageMemory {
		driver = StoragePostgres
	}

	return &ServiceConfig{
		Port:               config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:             config.GetAppEnv(v),
		StorageDriver:      driver,
		CORSAllowedOrigins: config.SplitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DBConfig:           config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:          config.LoadJWTConfig(v),
		KafkaConfig:        config.LoadKafkaConfig(v),
		BootstrapAdmin: BootstrapAdmin{
			Email:    strings.TrimSpace(v.GetString("BOOTSTRAP_ADMIN_EMAIL")),
			Password: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
		},
	}
}

// KafkaEnabled reports whether brokers are configured.
func (c *ServiceConfig) KafkaEnabled() bool {
	return len(c.KafkaConfig.Brokers) > 0
}
