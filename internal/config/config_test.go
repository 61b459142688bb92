package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "adoption", cfg.DBConfig.DBName)
	assert.Equal(t, 5432, cfg.DBConfig.Port)
	assert.False(t, cfg.KafkaEnabled())
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.BootstrapAdmin.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADOPTION_SERVICE_PORT", "9090")
	t.Setenv("ADOPTION_STORAGE_DRIVER", " Memory ")
	t.Setenv("ADOPTION_KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("ADOPTION_CORS_ALLOWED_ORIGINS", "https://adoptme.np,https://admin.adoptme.np")
	t.Setenv("ADOPTION_DB_NAME", "adoption_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaConfig.Brokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, []string{"https://adoptme.np", "https://admin.adoptme.np"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "adoption_test", cfg.DBConfig.DBName)
}

func TestLoad_UnknownDriverFallsBackToPostgres(t *testing.T) {
	t.Setenv("ADOPTION_STORAGE_DRIVER", "mongodb")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("ADOPTION_APP_ENV", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "ADOPTION_JWT_SECRET")

	t.Setenv("ADOPTION_JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.JWTConfig.Secret)
}

func TestLoad_BootstrapAdmin(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantErr   string
		wantAdmin BootstrapAdmin
	}{
		{name: "unset"},
		{
			name:      "email and password",
			email:     " root@adoptme.np ",
			password:  "a-long-password",
			wantAdmin: BootstrapAdmin{Email: "root@adoptme.np", Password: "a-long-password"},
		},
		{name: "missing password", email: "root@adoptme.np", wantErr: "ADOPTION_BOOTSTRAP_ADMIN_PASSWORD"},
		{name: "short password", email: "root@adoptme.np", password: "short", wantErr: "at least 8 characters"},
		{name: "password alone is ignored", password: "a-long-password", wantAdmin: BootstrapAdmin{Password: "a-long-password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADOPTION_BOOTSTRAP_ADMIN_EMAIL", tt.email)
			t.Setenv("ADOPTION_BOOTSTRAP_ADMIN_PASSWORD", tt.password)

			cfg, err := Load()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAdmin, cfg.BootstrapAdmin)
			assert.Equal(t, tt.wantAdmin.Email != "", cfg.BootstrapAdmin.Enabled())
		})
	}
}
