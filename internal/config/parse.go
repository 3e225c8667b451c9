package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// splitDocuments decodes the raw text into one yaml node per document.
// Empty documents (separators with nothing between them) are skipped.
func splitDocuments(data []byte) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []*yaml.Node
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, fmt.Errorf("%w: document %d: %v", ErrMalformedDocument, len(docs)+1, err)
		}
		if isEmptyDocument(&node) {
			continue
		}
		docs = append(docs, &node)
	}
}

// isEmptyDocument reports whether a document holds no content, e.g. the
// gap between two consecutive separators. yaml represents these as null
// scalar documents.
func isEmptyDocument(doc *yaml.Node) bool {
	n := doc
	if n.Kind == 0 {
		return true
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return true
		}
		n = n.Content[0]
	}
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// mapping unwraps a document node down to its top-level mapping.
func mapping(doc *yaml.Node) (*yaml.Node, bool) {
	n := doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, false
		}
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, false
	}
	return n, true
}

// mappingValue returns the value node for key, or nil if absent.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// classify determines the document type of one parsed document. Tagged
// documents dispatch on their `type` field; the untagged settings
// document is recognized by its `settings` key.
func classify(index int, doc *yaml.Node) (DocumentType, *yaml.Node, error) {
	m, ok := mapping(doc)
	if !ok {
		return "", nil, fmt.Errorf("%w: document %d is not a mapping", ErrMalformedDocument, index+1)
	}

	if tn := mappingValue(m, "type"); tn != nil {
		switch t := DocumentType(tn.Value); t {
		case TypeLLM, TypeEmbedder, TypeEngine, TypeDocumentStore, TypePipeline:
			return t, m, nil
		default:
			return "", nil, fmt.Errorf("%w: document %d has type %q", ErrUnknownDocumentType, index+1, tn.Value)
		}
	}

	if sn := mappingValue(m, "settings"); sn != nil {
		return typeSettings, sn, nil
	}

	return "", nil, fmt.Errorf("%w: document %d has no type and no settings key", ErrMissingTypeField, index+1)
}

// typeSettings marks the untagged settings document internally; it is
// not a valid value for a `type` field.
const typeSettings DocumentType = "settings"

// decodeSpec decodes a classified mapping node into its typed spec.
// Decode failures on typed fields (a string where an integer belongs,
// a scalar where a list belongs) surface as type mismatches.
func decodeSpec(index int, m *yaml.Node, out any) error {
	if err := m.Decode(out); err != nil {
		return fmt.Errorf("%w: document %d: %v", ErrTypeMismatch, index+1, err)
	}
	return nil
}

// normalizeModels fills in the default alias for model entries that
// omit one: the model name itself.
func normalizeModels(spec *ModelSpec) {
	for i := range spec.Models {
		if spec.Models[i].Alias == "" {
			spec.Models[i].Alias = spec.Models[i].Model
		}
	}
}

// splitModelRef splits a `provider.alias` reference at the first dot.
// Provider names never contain dots; aliases may (a defaulted alias is
// the model name, and model names routinely carry version dots).
func splitModelRef(ref string) (provider, alias string, ok bool) {
	return strings.Cut(ref, ".")
}
