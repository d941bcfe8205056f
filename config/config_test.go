package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("SALT_ROUND", "")

	LoadConfig()

	assert.Equal(t, "5000", AppConfig.Port)
	assert.Equal(t, "postgres", AppConfig.DBDriver)
	assert.Equal(t, time.Hour, AppConfig.JWTTTL)
	assert.Equal(t, 10, AppConfig.SaltRound)
	assert.False(t, AppConfig.IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("SALT_ROUND", "12")

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.Port)
	assert.Equal(t, "sqlite", AppConfig.DBDriver)
	assert.Equal(t, 30*time.Minute, AppConfig.JWTTTL)
	assert.Equal(t, 12, AppConfig.SaltRound)
	assert.True(t, AppConfig.IsProduction())
}

func TestGetEnvFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "empty uses default", value: "", want: 7},
		{name: "number is parsed", value: "42", want: 42},
		{name: "garbage uses default", value: "forty", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SOME_INT", tt.value)
			assert.Equal(t, tt.want, getEnvInt("SOME_INT", 7))
		})
	}

	t.Setenv("SOME_DURATION", "-5s")
	assert.Equal(t, time.Minute, getEnvDuration("SOME_DURATION", time.Minute))
}
