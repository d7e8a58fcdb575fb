package audit

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Wildcard matches every entity type in Policy.Entities and every property
// in a rule's property list.
const Wildcard = "*"

const (
	PolicyAllProperties  = "v1-all"
	PolicyNameOnly       = "v2-name-only"
	PolicyRedactedImages = "v3-redacted"

	DefaultPolicyVersion = PolicyRedactedImages
)

var ErrUnknownPolicy = errors.New("unknown audit policy version")

// EntityRule lists the properties tracked for one entity type.
// Lifecycle applies to Create and Delete entries, Update to Update entries.
type EntityRule struct {
	Lifecycle []string `yaml:"lifecycle"`
	Update    []string `yaml:"update"`
}

// Policy decides which property changes are written to the audit log and
// how their values are rendered. Lookups that find no rule are not tracked.
type Policy struct {
	Version          string                `yaml:"version"`
	Entities         map[string]EntityRule `yaml:"entities"`
	RedactedOnUpdate []string              `yaml:"redactOnUpdate"`
	SuppressDefaults bool                  `yaml:"suppressDefaults"`
}

func (p *Policy) IsTracked(entityType, property string) bool {
	rule, ok := p.rule(entityType)
	return ok && matches(rule.Lifecycle, property)
}

func (p *Policy) IsTrackedOnUpdate(entityType, property string) bool {
	rule, ok := p.rule(entityType)
	return ok && matches(rule.Update, property)
}

// RedactOnUpdate reports whether an Update entry for property must be
// written without its old and new values.
func (p *Policy) RedactOnUpdate(property string) bool {
	if p == nil {
		return false
	}
	for _, name := range p.RedactedOnUpdate {
		if strings.EqualFold(name, property) {
			return true
		}
	}
	return false
}

func (p *Policy) rule(entityType string) (EntityRule, bool) {
	if p == nil {
		return EntityRule{}, false
	}
	if r, ok := p.Entities[entityType]; ok {
		return r, true
	}
	r, ok := p.Entities[Wildcard]
	return r, ok
}

func matches(list []string, property string) bool {
	for _, name := range list {
		if name == Wildcard || strings.EqualFold(name, property) {
			return true
		}
	}
	return false
}

// PolicyVersion returns one of the built-in policies.
func PolicyVersion(version string) (*Policy, error) {
	switch strings.TrimSpace(version) {
	case PolicyAllProperties:
		return &Policy{
			Version: PolicyAllProperties,
			Entities: map[string]EntityRule{
				Wildcard: {Lifecycle: []string{Wildcard}, Update: []string{Wildcard}},
			},
		}, nil
	case PolicyNameOnly:
		return &Policy{
			Version: PolicyNameOnly,
			Entities: map[string]EntityRule{
				Wildcard: {Lifecycle: []string{"Name"}, Update: []string{Wildcard}},
			},
			SuppressDefaults: true,
		}, nil
	case PolicyRedactedImages, "":
		return &Policy{
			Version: PolicyRedactedImages,
			Entities: map[string]EntityRule{
				Wildcard: {Lifecycle: []string{Wildcard}, Update: []string{Wildcard}},
			},
			RedactedOnUpdate: []string{"Image"},
			SuppressDefaults: true,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, version)
}

// ParsePolicy reads a policy from its YAML form.
func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse audit policy: %w", err)
	}
	if len(p.Entities) == 0 {
		return nil, errors.New("parse audit policy: no entity rules")
	}
	if p.Version == "" {
		p.Version = "custom"
	}
	return &p, nil
}

func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audit policy: %w", err)
	}
	return ParsePolicy(data)
}
