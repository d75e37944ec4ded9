package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewConsole_Level(t *testing.T) {
	log := NewConsole(&bytes.Buffer{}, "debug")
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())

	log = NewConsole(&bytes.Buffer{}, "bogus")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNewConsole(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewConsole(buf, "warn")

	log.Info().Msg("hidden")
	log.Warn().Str("sheet", "ATM").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "sheet=ATM")
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), zerolog.New(buf))

	retrieved := FromContext(ctx)
	retrieved.Info().Msg("test")

	assert.NotZero(t, buf.Len(), "expected log output from retrieved logger")
}

func TestFromContext_Default(t *testing.T) {
	log := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithFields(zerolog.New(buf), map[string]interface{}{
		"sheet": "Money Transfer",
		"rows":  12,
	})
	log.Info().Msg("extracted")

	out := buf.String()
	assert.Contains(t, out, `"sheet":"Money Transfer"`)
	assert.Contains(t, out, `"rows":12`)
}
