package migration

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// CategoryMapping links one WordPress category to its Liferay counterpart.
// The JSON keys are the contract the mapping file has always used; later
// stages and operator tooling read them as-is.
type CategoryMapping struct {
	WordPressID   int    `json:"WordPress ID"`
	WordPressName string `json:"WordPress Name"`
	LiferayID     int64  `json:"Liferay ID"`
	LiferayName   string `json:"Liferay Name"`
}

// URLMapping records one migrated URL.  The sequence is append-only;
// reprocessing may produce duplicate entries and that is accepted.
type URLMapping struct {
	OriginalURL string `json:"original_url"`
	NewURL      string `json:"new_url"`
}

// NormalizeCategoryName is how category names are compared across the two
// systems: whitespace-trimmed, case-insensitive.
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LoadCategoryMapping reads the category mapping file.  An absent file is an
// empty mapping, which downstream stages treat as "migrate everything".
func LoadCategoryMapping(path string) ([]CategoryMapping, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []CategoryMapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("migration: couldn't read category mapping %s: %w", path, err)
	}

	var mapping []CategoryMapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("migration: couldn't parse category mapping %s: %w", path, err)
	}

	return mapping, nil
}

// SaveCategoryMapping writes the whole mapping with an atomic replace.
func SaveCategoryMapping(path string, mapping []CategoryMapping) error {
	data, err := json.MarshalIndent(mapping, "", "    ")
	if err != nil {
		return fmt.Errorf("migration: couldn't marshal category mapping: %w", err)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("migration: couldn't write category mapping %s: %w", path, err)
	}

	return nil
}
