package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(values map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("BUSINESS_TIMEZONE", "UTC")
	v.SetDefault("JWT_SECRET", "secret")
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "UTC", cfg.BusinessLocation.String())
	assert.Empty(t, cfg.APIKeys)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestFromViper_ParsesListsAndTimezone(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"BUSINESS_TIMEZONE":    "America/Mexico_City",
		"API_KEYS":             "pos:abc123, finance:def456",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
		"STORE_DRIVER":         " SQLite ",
		"SQLITE_PATH":          "/tmp/test.db",
	}))
	require.NoError(t, err)

	assert.Equal(t, "America/Mexico_City", cfg.BusinessLocation.String())
	assert.Equal(t, map[string]string{"pos": "abc123", "finance": "def456"}, cfg.APIKeys)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
}

func TestFromViper_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{name: "unknown driver", values: map[string]any{"STORE_DRIVER": "mongo"}},
		{name: "bad timezone", values: map[string]any{"BUSINESS_TIMEZONE": "Mars/Olympus"}},
		{name: "malformed api key", values: map[string]any{"API_KEYS": "pos-without-key"}},
		{name: "sqlite without path", values: map[string]any{"STORE_DRIVER": "sqlite", "SQLITE_PATH": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newTestViper(tt.values))
			assert.Error(t, err)
		})
	}
}
