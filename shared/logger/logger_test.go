package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"bayleaf/config"
	"bayleaf/shared/constant"
	"bayleaf/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("reservation insert failed"))

	assert.Contains(t, buf.String(), "reservation insert failed")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
		{"disabled level", "disabled", zerolog.Disabled},
		{"invalid level defaults to trace", "invalid_level", zerolog.TraceLevel},
		{"empty level uses NoLevel", "", zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			var buf bytes.Buffer
			log.Logger = log.Output(&buf)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestUseJSONOutput(t *testing.T) {
	t.Run("production writes json", func(t *testing.T) {
		restore(t)
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

		var buf bytes.Buffer
		cfg := &config.Config{}
		cfg.Server.Env = constant.ServerEnvProduction
		cfg.App.Name = "bayleaf"

		logger.UseJSONOutput(cfg, &buf)
		log.Info().Msg("hello")

		assert.Contains(t, buf.String(), `"app":"bayleaf"`)
		assert.Contains(t, buf.String(), `"message":"hello"`)
	})

	t.Run("development leaves logger untouched", func(t *testing.T) {
		restore(t)

		before := log.Logger
		var buf bytes.Buffer
		cfg := &config.Config{}
		cfg.Server.Env = constant.ServerEnvDevelopment

		logger.UseJSONOutput(cfg, &buf)

		assert.Equal(t, before, log.Logger)
		assert.Empty(t, buf.String())
	})
}
