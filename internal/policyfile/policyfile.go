// Package policyfile reads deprecation policy documents from disk and turns
// them into frozen registries.
//
// A policy document is TOML or YAML, chosen by file extension, and must
// declare schema = 1. Entries live in two sections: plain features and
// dependency transitions (which carry an opt-in gate).
package policyfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/sunset/pkg/policy"
	"github.com/bft-labs/sunset/pkg/registry"
	"github.com/bft-labs/sunset/pkg/release"
)

// SchemaVersion is the policy document schema this build reads.
const SchemaVersion = 1

// Document is a parsed policy file, not yet frozen into a registry.
type Document struct {
	Schema       int          `toml:"schema" yaml:"schema"`
	Features     []Feature    `toml:"feature" yaml:"features"`
	Dependencies []Dependency `toml:"dependency" yaml:"dependencies"`
}

// Feature is one plain deprecation entry in a policy document.
type Feature struct {
	ID           string `toml:"id" yaml:"id"`
	Tier         string `toml:"tier" yaml:"tier"`
	DeprecatedAt int    `toml:"deprecated_at" yaml:"deprecated_at"`
	RemovalAt    int    `toml:"removal_at" yaml:"removal_at"`
	Replacement  string `toml:"replacement" yaml:"replacement"`
}

// Dependency is one third-party dependency transition entry. The fields
// mirror Feature plus the opt-in gate; they stay flat so the same struct
// decodes cleanly from both TOML and YAML.
type Dependency struct {
	ID           string `toml:"id" yaml:"id"`
	Tier         string `toml:"tier" yaml:"tier"`
	DeprecatedAt int    `toml:"deprecated_at" yaml:"deprecated_at"`
	RemovalAt    int    `toml:"removal_at" yaml:"removal_at"`
	Replacement  string `toml:"replacement" yaml:"replacement"`
	Gate         string `toml:"gate" yaml:"gate"`
}

// Load reads a policy file and returns the frozen registry it describes.
// It fails on the first invalid or duplicate entry; use Parse plus
// Document.Lint to collect every problem instead.
func Load(path string) (*registry.Registry, error) {
	doc, err := Parse(path)
	if err != nil {
		return nil, err
	}
	reg, err := doc.Registry()
	if err != nil {
		return nil, fmt.Errorf("policy %s: %w", path, err)
	}
	return reg, nil
}

// Parse reads and decodes a policy file without building a registry.
func Parse(path string) (Document, error) {
	var doc Document

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("policy: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, fmt.Errorf("policy %s: file is empty", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("policy %s: decode: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("policy %s: decode: %w", path, err)
		}
	default:
		return doc, fmt.Errorf("policy %s: unsupported extension %q (want .toml, .yaml, or .yml)", path, ext)
	}

	switch doc.Schema {
	case SchemaVersion:
	case 0:
		return doc, fmt.Errorf("policy %s: missing schema version (want schema = %d)", path, SchemaVersion)
	default:
		return doc, fmt.Errorf("policy %s: unsupported schema %d (this build reads schema %d)", path, doc.Schema, SchemaVersion)
	}

	return doc, nil
}

// Registry freezes the document into a registry, failing on the first
// invalid or duplicate entry.
func (d Document) Registry() (*registry.Registry, error) {
	b := registry.NewBuilder()

	for _, f := range d.Features {
		rec, err := f.record()
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", f.ID, err)
		}
		if err := b.Register(policy.FeatureID(f.ID), rec); err != nil {
			return nil, err
		}
	}

	for _, dep := range d.Dependencies {
		rec, err := dep.record()
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", dep.ID, err)
		}
		if err := b.RegisterDependency(policy.FeatureID(dep.ID), rec); err != nil {
			return nil, err
		}
	}

	return b.Freeze(), nil
}

// Lint validates every entry and returns all problems found, one error per
// bad entry, in document order. An empty result means the document would
// freeze cleanly.
func (d Document) Lint() []error {
	var problems []error
	seen := make(map[string]bool)

	checkDuplicate := func(section, id string) {
		if id == "" {
			return
		}
		if seen[id] {
			problems = append(problems, fmt.Errorf("%s %q: %w", section, id, policy.ErrDuplicateFeature))
			return
		}
		seen[id] = true
	}

	for _, f := range d.Features {
		if f.ID == "" {
			problems = append(problems, fmt.Errorf("feature: %w: empty feature id", policy.ErrInvalidRecord))
			continue
		}
		checkDuplicate("feature", f.ID)
		if rec, err := f.record(); err != nil {
			problems = append(problems, fmt.Errorf("feature %q: %w", f.ID, err))
		} else if err := rec.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("feature %q: %w", f.ID, err))
		}
	}

	for _, dep := range d.Dependencies {
		if dep.ID == "" {
			problems = append(problems, fmt.Errorf("dependency: %w: empty feature id", policy.ErrInvalidRecord))
			continue
		}
		checkDuplicate("dependency", dep.ID)
		if rec, err := dep.record(); err != nil {
			problems = append(problems, fmt.Errorf("dependency %q: %w", dep.ID, err))
		} else if err := rec.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("dependency %q: %w", dep.ID, err))
		}
	}

	return problems
}

func (f Feature) record() (policy.Record, error) {
	tier, err := policy.ParseTier(f.Tier)
	if err != nil {
		return policy.Record{}, err
	}
	return policy.Record{
		Tier:         tier,
		DeprecatedAt: release.Number(f.DeprecatedAt),
		RemovalAt:    release.Number(f.RemovalAt),
		Replacement:  policy.FeatureID(f.Replacement),
	}, nil
}

func (d Dependency) record() (policy.DependencyRecord, error) {
	tier, err := policy.ParseTier(d.Tier)
	if err != nil {
		return policy.DependencyRecord{}, err
	}
	return policy.DependencyRecord{
		Record: policy.Record{
			Tier:         tier,
			DeprecatedAt: release.Number(d.DeprecatedAt),
			RemovalAt:    release.Number(d.RemovalAt),
			Replacement:  policy.FeatureID(d.Replacement),
		},
		Gate: policy.FlagID(d.Gate),
	}, nil
}
