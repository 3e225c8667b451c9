package config

import "fmt"

// registries holds the lookup tables built from the declaration
// documents. The first pass over the file registers every declaration;
// the second pass resolves pipe references against these tables, so
// declaration order relative to the pipeline document does not matter.
type registries struct {
	llms      map[string]bool // provider.alias
	embedders map[string]bool // provider.alias
	engines   map[string]bool // provider
	stores    map[string]bool // provider
}

func newRegistries() *registries {
	return &registries{
		llms:      make(map[string]bool),
		embedders: make(map[string]bool),
		engines:   make(map[string]bool),
		stores:    make(map[string]bool),
	}
}

// registerModels adds every (provider, alias) pair of an llm or
// embedder spec. Conflicting re-declarations are rejected rather than
// silently overridden.
func (r *registries) registerModels(spec *ModelSpec) []error {
	table := r.llms
	if spec.Type == TypeEmbedder {
		table = r.embedders
	}

	var errs []error
	for _, m := range spec.Models {
		key := spec.Provider + "." + m.Alias
		if table[key] {
			errs = append(errs, fmt.Errorf("%w: %s %q declared twice", ErrDuplicate, spec.Type, key))
			continue
		}
		table[key] = true
	}
	return errs
}

func (r *registries) registerEngine(spec *EngineSpec) []error {
	if r.engines[spec.Provider] {
		return []error{fmt.Errorf("%w: engine %q declared twice", ErrDuplicate, spec.Provider)}
	}
	r.engines[spec.Provider] = true
	return nil
}

func (r *registries) registerDocumentStore(spec *DocumentStoreSpec) []error {
	if r.stores[spec.Provider] {
		return []error{fmt.Errorf("%w: document_store %q declared twice", ErrDuplicate, spec.Provider)}
	}
	r.stores[spec.Provider] = true
	return nil
}

// resolve checks every declared reference of every pipe against the
// registries. All unresolved references are reported, not just the
// first.
func (r *registries) resolve(pipes []Pipe) []error {
	var errs []error

	for _, p := range pipes {
		if p.LLM != "" {
			errs = append(errs, r.resolveModelRef(p.Name, "llm", p.LLM, r.llms)...)
		}
		if p.Embedder != "" {
			errs = append(errs, r.resolveModelRef(p.Name, "embedder", p.Embedder, r.embedders)...)
		}
		if p.Engine != "" && !r.engines[p.Engine] {
			errs = append(errs, unresolved(p.Name, "engine", p.Engine))
		}
		if p.DocumentStore != "" && !r.stores[p.DocumentStore] {
			errs = append(errs, unresolved(p.Name, "document_store", p.DocumentStore))
		}
	}

	return errs
}

func (r *registries) resolveModelRef(pipe, field, ref string, table map[string]bool) []error {
	if _, _, ok := splitModelRef(ref); !ok {
		return []error{fmt.Errorf("%w: pipe %q %s reference %q must have the form provider.alias", ErrValidation, pipe, field, ref)}
	}
	if !table[ref] {
		return []error{unresolved(pipe, field, ref)}
	}
	return nil
}

func unresolved(pipe, field, value string) error {
	return fmt.Errorf("%w: pipe %q %s %q", ErrUnresolvedReference, pipe, field, value)
}
