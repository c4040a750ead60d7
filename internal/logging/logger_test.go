package logging

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "app=repaso")
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "chatty")
	log.Debug().Msg("debug line")
	log.Info().Msg("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ctx := IntoContext(context.Background(), New(&buf, "info"))
	log := FromContext(ctx)
	log.Info().Msg("via context")
	assert.Contains(t, buf.String(), "via context")

	// No logger in context: must not panic.
	nop := FromContext(context.Background())
	nop.Info().Msg("dropped")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repaso.log")
	log, closer, err := OpenFile(path, "info")
	require.NoError(t, err)
	log.Info().Msg("to file")
	require.NoError(t, closer.Close())
	assert.FileExists(t, path)
}
