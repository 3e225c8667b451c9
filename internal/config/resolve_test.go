package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Reference Resolution:
// - A pipe referencing a nonexistent document_store fails with ErrUnresolvedReference
// - A pipe referencing a nonexistent engine fails with ErrUnresolvedReference
// - A pipe referencing an unknown llm alias fails with ErrUnresolvedReference
// - An embedder reference does not resolve against the llm registry
// - A model reference without the provider.alias form is rejected
// - Declarations after the pipeline document still resolve (two-pass build)

const resolveHeader = `type: llm
provider: litellm_llm
models:
  - model: gpt-4o
    alias: default
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
`

func TestParse_UnresolvedDocumentStore(t *testing.T) {
	doc := resolveHeader + `type: pipeline
pipes:
  - name: indexing
    embedder: litellm_embedder.default
    document_store: nonexistent
`
	cfg, err := Parse([]byte(doc))

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
	assert.Contains(t, err.Error(), "indexing")
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestParse_UnresolvedEngine(t *testing.T) {
	doc := resolveHeader + `type: pipeline
pipes:
  - name: sql_generation
    llm: litellm_llm.default
    engine: wren_engine
`
	cfg, err := Parse([]byte(doc))

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
	assert.Contains(t, err.Error(), "wren_engine")
}

func TestParse_UnresolvedLLMAlias(t *testing.T) {
	doc := resolveHeader + `type: pipeline
pipes:
  - name: sql_generation
    llm: litellm_llm.fast
`
	cfg, err := Parse([]byte(doc))

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
	assert.Contains(t, err.Error(), "litellm_llm.fast")
}

func TestParse_EmbedderDoesNotResolveAgainstLLMs(t *testing.T) {
	doc := resolveHeader + `type: pipeline
pipes:
  - name: indexing
    embedder: litellm_llm.default
`
	cfg, err := Parse([]byte(doc))

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
}

func TestParse_ModelReferenceFormat(t *testing.T) {
	doc := resolveHeader + `type: pipeline
pipes:
  - name: sql_generation
    llm: litellm_llm
`
	cfg, err := Parse([]byte(doc))

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "provider.alias")
}

func TestParse_ForwardReferencesResolve(t *testing.T) {
	// Pipeline document first, declarations after. The two-pass build
	// must resolve these regardless of order.
	doc := `type: pipeline
pipes:
  - name: retrieval
    llm: litellm_llm.default
    document_store: qdrant
---
` + resolveHeader

	cfg, err := Parse([]byte(doc))

	require.NoError(t, err)
	require.Len(t, cfg.Pipes, 1)
	assert.Equal(t, "retrieval", cfg.Pipes[0].Name)
}
