package parser

import (
	"fmt"

	"dentrack/internal/config"
	"dentrack/internal/port"
)

// Registry resolves a clinic name to its amount parser. It is built once
// at startup from the clinics config and read-only afterwards; clinics
// without an override share the default rule parser.
type Registry struct {
	overrides map[string]port.AmountParser
	fallback  port.AmountParser
}

// NewRegistry creates a registry with the given fallback parser.
func NewRegistry(fallback port.AmountParser) *Registry {
	return &Registry{
		overrides: make(map[string]port.AmountParser),
		fallback:  fallback,
	}
}

// NewRegistryFromConfig builds the lookup table from clinic seed entries,
// compiling per-clinic override rule sets. Compile errors propagate.
func NewRegistryFromConfig(entries []config.ClinicEntry) (*Registry, error) {
	r := NewRegistry(NewDefaultRuleParser())
	for _, entry := range entries {
		if len(entry.ProductionPatterns) == 0 && len(entry.CollectionsPatterns) == 0 {
			continue
		}
		prod := entry.ProductionPatterns
		coll := entry.CollectionsPatterns
		if len(prod) == 0 {
			prod = defaultProductionPatterns
		}
		if len(coll) == 0 {
			coll = defaultCollectionsPatterns
		}
		p, err := NewRuleParser(prod, coll)
		if err != nil {
			return nil, fmt.Errorf("clinic %q: %w", entry.Name, err)
		}
		r.Register(entry.Name, p)
	}
	return r, nil
}

// Register installs an override parser for a clinic name.
func (r *Registry) Register(clinicName string, p port.AmountParser) {
	r.overrides[clinicName] = p
}

// ForClinic returns the parser for a clinic name, falling back to the
// default when the name is empty or has no override.
func (r *Registry) ForClinic(name string) port.AmountParser {
	if name != "" {
		if p, ok := r.overrides[name]; ok {
			return p
		}
	}
	return r.fallback
}
