// Package config loads and validates Kestrel's multi-document YAML
// configuration.
//
// A configuration file is a stream of `---`-separated YAML documents.
// Each document is a mapping tagged by a `type` field (llm, embedder,
// engine, document_store, pipeline); one additional untagged document
// carries global service settings under a `settings` key.
//
// The loader is strict: every document is classified, decoded into its
// typed spec, and validated; pipeline references are resolved against
// the declared providers in a second pass. All violations found in a
// file are accumulated and reported together, and no partial Config is
// ever returned.
//
// Configuration Hierarchy for settings (highest to lowest priority):
//  1. Environment variables (KESTREL_*)
//  2. The settings document in the config file
//  3. Built-in defaults
//
// The resulting Config is immutable after Load/Parse and safe to share
// across goroutines without locking.
package config

// DocumentType tags one YAML document in the configuration stream.
type DocumentType string

const (
	TypeLLM           DocumentType = "llm"
	TypeEmbedder      DocumentType = "embedder"
	TypeEngine        DocumentType = "engine"
	TypeDocumentStore DocumentType = "document_store"
	TypePipeline      DocumentType = "pipeline"
)

// Model is one model entry under an llm or embedder provider.
type Model struct {
	Model   string         `yaml:"model"`
	Alias   string         `yaml:"alias"`             // defaults to the model name when omitted
	Timeout int            `yaml:"timeout,omitempty"` // request timeout in seconds
	Kwargs  map[string]any `yaml:"kwargs,omitempty"`  // opaque generation parameters, passed through
}

// ModelSpec declares the models exposed by one llm or embedder provider.
type ModelSpec struct {
	Type     DocumentType `yaml:"type"`
	Provider string       `yaml:"provider"`
	Models   []Model      `yaml:"models"`
}

// EngineSpec declares a query engine backend.
type EngineSpec struct {
	Type     DocumentType `yaml:"type"`
	Provider string       `yaml:"provider"`
	Endpoint string       `yaml:"endpoint"`
}

// DocumentStoreSpec declares a vector document store backend.
type DocumentStoreSpec struct {
	Type              DocumentType `yaml:"type"`
	Provider          string       `yaml:"provider"`
	Location          string       `yaml:"location"`
	EmbeddingModelDim int          `yaml:"embedding_model_dim"`
	Timeout           int          `yaml:"timeout,omitempty"`
}

// Pipe is one named stage in the pipeline configuration. Each reference
// is optional: llm and embedder use the form `provider.alias`, engine
// and document_store are bare provider names. Every non-empty reference
// must resolve to a declaration elsewhere in the file.
type Pipe struct {
	Name          string `yaml:"name"`
	LLM           string `yaml:"llm,omitempty"`
	Embedder      string `yaml:"embedder,omitempty"`
	Engine        string `yaml:"engine,omitempty"`
	DocumentStore string `yaml:"document_store,omitempty"`
}

// PipelineSpec declares the ordered list of pipes.
type PipelineSpec struct {
	Type  DocumentType `yaml:"type"`
	Pipes []Pipe       `yaml:"pipes"`
}

// Settings holds the flat global service settings from the untagged
// settings document. Absent fields fall back to DefaultSettings(); KESTREL_*
// environment variables override both when loading from a file.
type Settings struct {
	Host                     string `yaml:"host" mapstructure:"host"`
	Port                     int    `yaml:"port" mapstructure:"port"`
	EngineTimeout            int    `yaml:"engine_timeout" mapstructure:"engine_timeout"`
	ColumnIndexingBatchSize  int    `yaml:"column_indexing_batch_size" mapstructure:"column_indexing_batch_size"`
	TableRetrievalSize       int    `yaml:"table_retrieval_size" mapstructure:"table_retrieval_size"`
	TableColumnRetrievalSize int    `yaml:"table_column_retrieval_size" mapstructure:"table_column_retrieval_size"`
	QueryCacheMaxsize        int    `yaml:"query_cache_maxsize" mapstructure:"query_cache_maxsize"`
	QueryCacheTTL            int    `yaml:"query_cache_ttl" mapstructure:"query_cache_ttl"`
	LangfuseHost             string `yaml:"langfuse_host" mapstructure:"langfuse_host"`
	LangfuseEnable           bool   `yaml:"langfuse_enable" mapstructure:"langfuse_enable"`
	LoggingLevel             string `yaml:"logging_level" mapstructure:"logging_level"`
	Development              bool   `yaml:"development" mapstructure:"development"`
	IsOSS                    bool   `yaml:"is_oss" mapstructure:"is_oss"`
	DocEndpoint              string `yaml:"doc_endpoint" mapstructure:"doc_endpoint"`
}

// Config is the validated, immutable configuration assembled from a
// single file. Slices preserve file order.
type Config struct {
	LLMs           []ModelSpec
	Embedders      []ModelSpec
	Engines        []EngineSpec
	DocumentStores []DocumentStoreSpec
	Pipes          []Pipe
	Settings       Settings
}

// DefaultSettings returns the built-in settings used when the settings
// document omits a field (or is absent entirely).
func DefaultSettings() Settings {
	return Settings{
		Host:                     "127.0.0.1",
		Port:                     5556,
		EngineTimeout:            30,
		ColumnIndexingBatchSize:  50,
		TableRetrievalSize:       10,
		TableColumnRetrievalSize: 100,
		QueryCacheMaxsize:        1000,
		QueryCacheTTL:            3600,
		LangfuseHost:             "https://cloud.langfuse.com",
		LangfuseEnable:           false,
		LoggingLevel:             "INFO",
		Development:              false,
		IsOSS:                    false,
		DocEndpoint:              "",
	}
}

// LLM looks up an llm model by provider and alias.
func (c *Config) LLM(provider, alias string) (Model, bool) {
	return findModel(c.LLMs, provider, alias)
}

// Embedder looks up an embedder model by provider and alias.
func (c *Config) Embedder(provider, alias string) (Model, bool) {
	return findModel(c.Embedders, provider, alias)
}

// Engine looks up an engine by provider name.
func (c *Config) Engine(provider string) (EngineSpec, bool) {
	for _, e := range c.Engines {
		if e.Provider == provider {
			return e, true
		}
	}
	return EngineSpec{}, false
}

// DocumentStore looks up a document store by provider name.
func (c *Config) DocumentStore(provider string) (DocumentStoreSpec, bool) {
	for _, d := range c.DocumentStores {
		if d.Provider == provider {
			return d, true
		}
	}
	return DocumentStoreSpec{}, false
}

// Pipe looks up a pipe by name.
func (c *Config) Pipe(name string) (Pipe, bool) {
	for _, p := range c.Pipes {
		if p.Name == name {
			return p, true
		}
	}
	return Pipe{}, false
}

func findModel(specs []ModelSpec, provider, alias string) (Model, bool) {
	for _, spec := range specs {
		if spec.Provider != provider {
			continue
		}
		for _, m := range spec.Models {
			if m.Alias == alias {
				return m, true
			}
		}
	}
	return Model{}, false
}
