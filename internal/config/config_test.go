package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid development config",
			config: Config{Port: "8490", JWTSecret: "dev-secret", Env: "development"},
		},
		{
			name:    "missing port",
			config:  Config{JWTSecret: "dev-secret"},
			wantErr: true,
		},
		{
			name:    "missing jwt secret",
			config:  Config{Port: "8490"},
			wantErr: true,
		},
		{
			name: "production rejects default secret",
			config: Config{
				Port:      "8490",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "production",
			},
			wantErr: true,
		},
		{
			name: "production rejects short secret",
			config: Config{
				Port:       "8490",
				JWTSecret:  "short",
				DBPassword: "sturdy-db-password",
				Env:        "production",
			},
			wantErr: true,
		},
		{
			name: "production rejects default db password",
			config: Config{
				Port:       "8490",
				JWTSecret:  "0123456789abcdef0123456789abcdef",
				DBPassword: "password",
				Env:        "production",
			},
			wantErr: true,
		},
		{
			name: "valid production config",
			config: Config{
				Port:       "8490",
				JWTSecret:  "0123456789abcdef0123456789abcdef",
				DBPassword: "sturdy-db-password",
				DBSSLMode:  "require",
				Env:        "production",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.Port)
	assert.NotEmpty(t, cfg.GithubAPIURL)
}
