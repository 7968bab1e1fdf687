package migration

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/clevesson-mendonca-sea/migrador/liferay"
	"github.com/clevesson-mendonca-sea/migrador/wordpress"
)

// VocabularyName is the Liferay taxonomy vocabulary the migration maintains.
const VocabularyName = "Categorias"

// CategoryMapper is the first stage: it mirrors the WordPress category set
// into the Liferay vocabulary and persists the ID mapping the later stages
// consume.
type CategoryMapper struct {
	WordPress *wordpress.API
	Liferay   *liferay.API

	VocabularyName string
	MappingFile    string

	Logger *log.Logger
}

type CategoryResult struct {
	Fetched int // categories read from WordPress
	Matched int // already present in Liferay
	Created int // created in Liferay this run
	Skipped int // creation failed; left out of the mapping
}

func (m *CategoryMapper) Run(ctx context.Context) (*CategoryResult, error) {
	// A failed page ends the listing with what we have; a missing tail of
	// categories only narrows the migration, it doesn't corrupt it.
	categories, err := m.WordPress.ListAllCategories(ctx, wordpress.PartialResults)
	if err != nil {
		return nil, fmt.Errorf("migration: couldn't list WordPress categories: %w", err)
	}
	m.Logger.Info("fetched WordPress categories", "count", len(categories))

	vocabularyID, err := m.Liferay.EnsureVocabulary(ctx, m.VocabularyName)
	if err != nil {
		// Without the vocabulary there is nothing to map into; this is fatal
		// for the whole stage.
		return nil, fmt.Errorf("migration: couldn't obtain vocabulary %q: %w", m.VocabularyName, err)
	}
	m.Logger.Info("using vocabulary", "name", m.VocabularyName, "id", vocabularyID)

	existing, err := m.Liferay.ListCategories(ctx, vocabularyID)
	if err != nil {
		return nil, fmt.Errorf("migration: couldn't list Liferay categories: %w", err)
	}

	byName := map[string]int64{}
	for _, category := range existing {
		byName[NormalizeCategoryName(category.Name)] = category.ID
	}
	m.Logger.Info("fetched Liferay categories", "count", len(existing))

	result := &CategoryResult{Fetched: len(categories)}
	mapping := []CategoryMapping{}

	for _, wpCategory := range categories {
		key := NormalizeCategoryName(wpCategory.Name)

		liferayID, ok := byName[key]
		if ok {
			m.Logger.Debug("category already exists", "name", wpCategory.Name, "liferayID", liferayID)
			result.Matched++
		} else {
			liferayID, err = m.Liferay.CreateCategory(ctx, vocabularyID, wpCategory.Name)
			if err != nil {
				m.Logger.Error("couldn't create category", "name", wpCategory.Name, "err", err)
				result.Skipped++
				continue
			}
			m.Logger.Info("created category", "name", wpCategory.Name, "liferayID", liferayID)
			byName[key] = liferayID
			result.Created++
		}

		mapping = append(mapping, CategoryMapping{
			WordPressID:   wpCategory.ID,
			WordPressName: wpCategory.Name,
			LiferayID:     liferayID,
			LiferayName:   wpCategory.Name,
		})
	}

	if err := SaveCategoryMapping(m.MappingFile, mapping); err != nil {
		return result, err
	}
	m.Logger.Info("category mapping saved", "file", m.MappingFile, "entries", len(mapping))

	return result, nil
}
