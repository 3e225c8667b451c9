package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// settingsDocument wraps Settings for serialization as the untagged
// settings document.
type settingsDocument struct {
	Settings Settings `yaml:"settings"`
}

// MarshalDocuments re-serializes the configuration to the same
// multi-document YAML form it was loaded from: declaration documents in
// file order, then the pipeline, then settings. Parsing the output
// yields an equal Config.
func (c *Config) MarshalDocuments() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	encode := func(doc any) error {
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		return nil
	}

	for i := range c.LLMs {
		if err := encode(&c.LLMs[i]); err != nil {
			return nil, err
		}
	}
	for i := range c.Embedders {
		if err := encode(&c.Embedders[i]); err != nil {
			return nil, err
		}
	}
	for i := range c.Engines {
		if err := encode(&c.Engines[i]); err != nil {
			return nil, err
		}
	}
	for i := range c.DocumentStores {
		if err := encode(&c.DocumentStores[i]); err != nil {
			return nil, err
		}
	}
	if len(c.Pipes) > 0 {
		if err := encode(&PipelineSpec{Type: TypePipeline, Pipes: c.Pipes}); err != nil {
			return nil, err
		}
	}
	if err := encode(&settingsDocument{Settings: c.Settings}); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}
