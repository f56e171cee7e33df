package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bayleaf/config"
)

func TestConfig_StoreConfigured(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		accessKey string
		expected  bool
	}{
		{name: "both present", url: "postgres://bayleaf@localhost:5432/bayleaf", accessKey: "secret", expected: true},
		{name: "missing url", url: "", accessKey: "secret", expected: false},
		{name: "missing access key", url: "postgres://bayleaf@localhost:5432/bayleaf", accessKey: "", expected: false},
		{name: "both missing", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.DB.Postgres.URL = tt.url
			cfg.DB.Postgres.AccessKey = tt.accessKey

			assert.Equal(t, tt.expected, cfg.StoreConfigured())
		})
	}
}

func TestGet_AppliesDefaults(t *testing.T) {
	cfg := config.Get()

	assert.NotNil(t, cfg)
	assert.Equal(t, 1000, cfg.Reservation.DemoDelayMillis)
	assert.Equal(t, 10, cfg.Reservation.SubmitTimeoutSeconds)
	assert.Equal(t, "en", cfg.App.Language)
}
