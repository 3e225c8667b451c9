package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Re-serialization:
// - MarshalDocuments output parses back to an equal Config (round-trip)
// - Round-trip holds for the sample file, kwargs included
// - Output starts with an llm document and contains a settings document

func TestMarshalDocuments_RoundTripSampleFile(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)

	out, err := cfg.MarshalDocuments()
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)

	assert.Equal(t, cfg, again)
}

func TestMarshalDocuments_RoundTripMinimal(t *testing.T) {
	doc := `type: engine
provider: wren_ui
endpoint: http://localhost:3000
---
settings:
  port: 8080
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	out, err := cfg.MarshalDocuments()
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)

	assert.Equal(t, cfg, again)
}

func TestMarshalDocuments_Shape(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)

	out, err := cfg.MarshalDocuments()
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "type: llm")
	assert.Contains(t, text, "type: pipeline")
	assert.Contains(t, text, "settings:")
	assert.Contains(t, text, "---")
}
