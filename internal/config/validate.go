package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrMalformedDocument indicates a document that is not a valid YAML mapping
	ErrMalformedDocument = errors.New("malformed document")

	// ErrMissingTypeField indicates a document with no type field and no settings key
	ErrMissingTypeField = errors.New("missing type field")

	// ErrUnknownDocumentType indicates an unrecognized type field value
	ErrUnknownDocumentType = errors.New("unknown document type")

	// ErrValidation indicates a required-field or value-range violation
	ErrValidation = errors.New("invalid configuration")

	// ErrUnresolvedReference indicates a pipe reference with no matching declaration
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrTypeMismatch indicates a field whose value has the wrong type
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDuplicate indicates conflicting declarations for the same key
	ErrDuplicate = errors.New("duplicate declaration")
)

func validateModelSpec(spec *ModelSpec) []error {
	var errs []error

	kind := string(spec.Type)
	if strings.TrimSpace(spec.Provider) == "" {
		errs = append(errs, fmt.Errorf("%w: %s document requires a provider", ErrValidation, kind))
	}
	if len(spec.Models) == 0 {
		errs = append(errs, fmt.Errorf("%w: %s provider %q requires a non-empty models list", ErrValidation, kind, spec.Provider))
	}

	seen := make(map[string]bool, len(spec.Models))
	for _, m := range spec.Models {
		if strings.TrimSpace(m.Model) == "" {
			errs = append(errs, fmt.Errorf("%w: %s provider %q has a model entry with no model name", ErrValidation, kind, spec.Provider))
			continue
		}
		if m.Timeout < 0 {
			errs = append(errs, fmt.Errorf("%w: %s model %q timeout cannot be negative, got %d", ErrValidation, kind, m.Model, m.Timeout))
		}
		if seen[m.Alias] {
			errs = append(errs, fmt.Errorf("%w: %s provider %q declares alias %q twice", ErrDuplicate, kind, spec.Provider, m.Alias))
		}
		seen[m.Alias] = true
	}

	return errs
}

func validateEngine(spec *EngineSpec) []error {
	var errs []error

	if strings.TrimSpace(spec.Provider) == "" {
		errs = append(errs, fmt.Errorf("%w: engine document requires a provider", ErrValidation))
	}
	if err := requireURL("engine", spec.Provider, "endpoint", spec.Endpoint); err != nil {
		errs = append(errs, err)
	}

	return errs
}

func validateDocumentStore(spec *DocumentStoreSpec) []error {
	var errs []error

	if strings.TrimSpace(spec.Provider) == "" {
		errs = append(errs, fmt.Errorf("%w: document_store document requires a provider", ErrValidation))
	}
	if err := requireURL("document_store", spec.Provider, "location", spec.Location); err != nil {
		errs = append(errs, err)
	}
	if spec.EmbeddingModelDim <= 0 {
		errs = append(errs, fmt.Errorf("%w: document_store %q embedding_model_dim must be positive, got %d", ErrValidation, spec.Provider, spec.EmbeddingModelDim))
	}
	if spec.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: document_store %q timeout cannot be negative, got %d", ErrValidation, spec.Provider, spec.Timeout))
	}

	return errs
}

// validatePipes checks the aggregated pipe list: every pipe needs a
// unique, non-empty name. Reference resolution happens separately in
// the registry pass.
func validatePipes(pipes []Pipe) []error {
	var errs []error

	seen := make(map[string]bool, len(pipes))
	for _, p := range pipes {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%w: pipeline has a pipe with no name", ErrValidation))
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("%w: pipe %q declared twice", ErrDuplicate, p.Name))
		}
		seen[p.Name] = true
	}

	return errs
}

func validateSettings(s *Settings) []error {
	var errs []error

	if s.Port <= 0 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: settings port must be in 1..65535, got %d", ErrValidation, s.Port))
	}
	if s.QueryCacheMaxsize < 0 {
		errs = append(errs, fmt.Errorf("%w: settings query_cache_maxsize cannot be negative, got %d", ErrValidation, s.QueryCacheMaxsize))
	}
	if s.QueryCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("%w: settings query_cache_ttl cannot be negative, got %d", ErrValidation, s.QueryCacheTTL))
	}
	if s.ColumnIndexingBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: settings column_indexing_batch_size must be positive, got %d", ErrValidation, s.ColumnIndexingBatchSize))
	}
	if s.LangfuseHost != "" {
		if err := requireURL("settings", "", "langfuse_host", s.LangfuseHost); err != nil {
			errs = append(errs, err)
		}
	}
	if s.DocEndpoint != "" {
		if err := requireURL("settings", "", "doc_endpoint", s.DocEndpoint); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// requireURL checks that value is a well-formed absolute URL.
func requireURL(kind, provider, field, value string) error {
	where := kind
	if provider != "" {
		where = fmt.Sprintf("%s %q", kind, provider)
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s %s is required", ErrValidation, where, field)
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s %s %q is not a valid URL", ErrValidation, where, field, value)
	}
	return nil
}

// joinErrors combines multiple errors into a single error. The sentinel
// chain of every joined error stays intact for errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return fmt.Errorf("configuration invalid (%d problems):\n%w", len(errs), errors.Join(errs...))
}
