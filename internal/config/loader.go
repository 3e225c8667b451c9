package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix for settings overrides, e.g. KESTREL_PORT.
const envPrefix = "KESTREL"

// settingsKeys lists every settings field for env binding and defaults.
var settingsKeys = []string{
	"host",
	"port",
	"engine_timeout",
	"column_indexing_batch_size",
	"table_retrieval_size",
	"table_column_retrieval_size",
	"query_cache_maxsize",
	"query_cache_ttl",
	"langfuse_host",
	"langfuse_enable",
	"logging_level",
	"development",
	"is_oss",
	"doc_endpoint",
}

// Load reads the configuration file at path and parses it. Settings are
// layered with the following priority (highest to lowest):
//  1. Environment variables (KESTREL_*)
//  2. The settings document in the file
//  3. Built-in defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parse(data, true)
}

// Parse builds a Config from raw multi-document YAML. Unlike Load it
// consults no environment variables, so it is a pure function of its
// input: defaults fill absent settings fields and nothing else does.
func Parse(data []byte) (*Config, error) {
	return parse(data, false)
}

func parse(data []byte, withEnv bool) (*Config, error) {
	docs, err := splitDocuments(data)
	if err != nil {
		return nil, err
	}

	var (
		cfg          Config
		errs         []error
		reg          = newRegistries()
		settingsNode *yaml.Node
	)

	for i, doc := range docs {
		docType, node, err := classify(i, doc)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		switch docType {
		case TypeLLM, TypeEmbedder:
			var spec ModelSpec
			if err := decodeSpec(i, node, &spec); err != nil {
				errs = append(errs, err)
				continue
			}
			normalizeModels(&spec)
			errs = append(errs, validateModelSpec(&spec)...)
			errs = append(errs, reg.registerModels(&spec)...)
			if docType == TypeLLM {
				cfg.LLMs = append(cfg.LLMs, spec)
			} else {
				cfg.Embedders = append(cfg.Embedders, spec)
			}

		case TypeEngine:
			var spec EngineSpec
			if err := decodeSpec(i, node, &spec); err != nil {
				errs = append(errs, err)
				continue
			}
			errs = append(errs, validateEngine(&spec)...)
			errs = append(errs, reg.registerEngine(&spec)...)
			cfg.Engines = append(cfg.Engines, spec)

		case TypeDocumentStore:
			var spec DocumentStoreSpec
			if err := decodeSpec(i, node, &spec); err != nil {
				errs = append(errs, err)
				continue
			}
			errs = append(errs, validateDocumentStore(&spec)...)
			errs = append(errs, reg.registerDocumentStore(&spec)...)
			cfg.DocumentStores = append(cfg.DocumentStores, spec)

		case TypePipeline:
			var spec PipelineSpec
			if err := decodeSpec(i, node, &spec); err != nil {
				errs = append(errs, err)
				continue
			}
			cfg.Pipes = append(cfg.Pipes, spec.Pipes...)

		case typeSettings:
			if settingsNode != nil {
				errs = append(errs, fmt.Errorf("%w: settings declared twice", ErrDuplicate))
				continue
			}
			settingsNode = node
		}
	}

	errs = append(errs, validatePipes(cfg.Pipes)...)
	errs = append(errs, reg.resolve(cfg.Pipes)...)

	settings, serrs := buildSettings(settingsNode, withEnv)
	errs = append(errs, serrs...)

	if err := joinErrors(errs); err != nil {
		return nil, err
	}

	cfg.Settings = settings
	return &cfg, nil
}

// buildSettings layers the settings document over the defaults, with
// environment variables on top when enabled.
func buildSettings(node *yaml.Node, withEnv bool) (Settings, []error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("host", defaults.Host)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("engine_timeout", defaults.EngineTimeout)
	v.SetDefault("column_indexing_batch_size", defaults.ColumnIndexingBatchSize)
	v.SetDefault("table_retrieval_size", defaults.TableRetrievalSize)
	v.SetDefault("table_column_retrieval_size", defaults.TableColumnRetrievalSize)
	v.SetDefault("query_cache_maxsize", defaults.QueryCacheMaxsize)
	v.SetDefault("query_cache_ttl", defaults.QueryCacheTTL)
	v.SetDefault("langfuse_host", defaults.LangfuseHost)
	v.SetDefault("langfuse_enable", defaults.LangfuseEnable)
	v.SetDefault("logging_level", defaults.LoggingLevel)
	v.SetDefault("development", defaults.Development)
	v.SetDefault("is_oss", defaults.IsOSS)
	v.SetDefault("doc_endpoint", defaults.DocEndpoint)

	if node != nil {
		var fields map[string]any
		if err := node.Decode(&fields); err != nil {
			return Settings{}, []error{fmt.Errorf("%w: settings: %v", ErrMalformedDocument, err)}
		}
		if err := v.MergeConfigMap(fields); err != nil {
			return Settings{}, []error{fmt.Errorf("%w: settings: %v", ErrMalformedDocument, err)}
		}
	}

	if withEnv {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		for _, key := range settingsKeys {
			v.BindEnv(key)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, []error{fmt.Errorf("%w: settings: %v", ErrTypeMismatch, err)}
	}

	return s, validateSettings(&s)
}
