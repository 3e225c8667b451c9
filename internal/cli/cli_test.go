package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for CLI:
// - validate reports OK for a valid config file
// - validate fails with the loader's error for an invalid file
// - show re-serializes the resolved configuration
// - pipes lists all pipes, and filters with a glob pattern
// - version prints the build version

const testConfig = `type: llm
provider: litellm_llm
models:
  - model: gpt-4o
    alias: default
    timeout: 120
---
type: embedder
provider: litellm_embedder
models:
  - model: text-embedding-3-large
    alias: default
---
type: engine
provider: wren_ui
endpoint: http://localhost:3000
---
type: document_store
provider: qdrant
location: http://localhost:6333
embedding_model_dim: 3072
---
type: pipeline
pipes:
  - name: indexing
    embedder: litellm_embedder.default
    document_store: qdrant
  - name: sql_generation
    llm: litellm_llm.default
    engine: wren_ui
  - name: sql_correction
    llm: litellm_llm.default
    engine: wren_ui
---
settings:
  port: 5556
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestValidateCommand_ValidFile(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	out, err := runCommand(t, "validate", "--config", path)

	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "3 pipes")
}

func TestValidateCommand_InvalidFile(t *testing.T) {
	path := writeTestConfig(t, "provider: litellm_llm\n")

	_, err := runCommand(t, "validate", "--config", path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing type field")
}

func TestShowCommand(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	out, err := runCommand(t, "show", "--config", path)

	require.NoError(t, err)
	assert.Contains(t, out, "type: llm")
	assert.Contains(t, out, "settings:")
}

func TestPipesCommand_ListsAll(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	out, err := runCommand(t, "pipes", "--config", path)

	require.NoError(t, err)
	assert.Contains(t, out, "indexing")
	assert.Contains(t, out, "sql_generation")
	assert.Contains(t, out, "document_store=qdrant")
}

func TestPipesCommand_GlobFilter(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	out, err := runCommand(t, "pipes", "sql_*", "--config", path)

	require.NoError(t, err)
	assert.Contains(t, out, "sql_generation")
	assert.Contains(t, out, "sql_correction")
	assert.NotContains(t, out, "indexing")
}

func TestPipesCommand_NoMatch(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	out, err := runCommand(t, "pipes", "zzz*", "--config", path)

	require.NoError(t, err)
	assert.Contains(t, out, "no pipes matched")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "Kestrel")
}
