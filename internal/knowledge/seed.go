// Package knowledge ships the default legal knowledge base.
package knowledge

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"nyaya/internal/domain"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Entries []domain.KnowledgeEntry `yaml:"entries"`
}

// Defaults returns the embedded knowledge base entries.
func Defaults() ([]domain.KnowledgeEntry, error) {
	return Parse(seedYAML)
}

// Parse decodes a knowledge seed document and validates each entry.
func Parse(data []byte) ([]domain.KnowledgeEntry, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("knowledge.Parse: %w", err)
	}
	for i := range f.Entries {
		if err := Validate(&f.Entries[i]); err != nil {
			return nil, fmt.Errorf("knowledge.Parse entry %d: %w", i, err)
		}
	}
	return f.Entries, nil
}

// Validate checks the fields every knowledge entry needs and normalizes the category.
func Validate(e *domain.KnowledgeEntry) error {
	e.Category = domain.Category(strings.ToLower(strings.TrimSpace(string(e.Category))))
	if !domain.ValidCategories[e.Category] {
		return domain.ErrInvalidCategory
	}
	if strings.TrimSpace(e.LawSection) == "" || strings.TrimSpace(e.Description) == "" {
		return domain.ErrInvalidKnowledge
	}
	return nil
}
