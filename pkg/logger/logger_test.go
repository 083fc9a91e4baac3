package logx

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLevels(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	Init(Config{Debug: true})
	assert.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())

	Init()
	assert.Equal(t, zerolog.InfoLevel, log.Logger.GetLevel())
}

func TestNewTagsService(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Service: "storeassist"})

	logger.Info().Msg("ready")
	logger.Debug().Msg("hidden")

	assert.Contains(t, buf.String(), `"service":"storeassist"`)
	assert.Contains(t, buf.String(), `"message":"ready"`)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestComponentTagsGlobalLogger(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	log.Logger = New(&buf, Config{Service: "storeassist"})

	logger := Component("orchestrator")
	logger.Info().Msg("routed")

	assert.Contains(t, buf.String(), `"component":"orchestrator"`)
	assert.Contains(t, buf.String(), `"service":"storeassist"`)
	assert.Contains(t, buf.String(), `"message":"routed"`)
}
