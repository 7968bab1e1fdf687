package liferay

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// vocabularyRecheckDelay is the settle time allowed before re-fetching a
// vocabulary that was just created.
const vocabularyRecheckDelay = 5 * time.Second

// FindVocabularyID looks up a taxonomy vocabulary by exact name.  Returns zero
// when the site has no vocabulary with that name.
func (api *API) FindVocabularyID(ctx context.Context, name string) (int64, error) {
	ep, err := api.vocabulariesEndpoint()
	if err != nil {
		return 0, err
	}

	var page vocabularyPage
	if err := api.getJSON(ctx, ep, &page); err != nil {
		return 0, fmt.Errorf("liferay: couldn't list vocabularies: %w", err)
	}

	for _, vocab := range page.Items {
		if vocab.Name == name {
			return vocab.ID, nil
		}
	}

	return 0, nil
}

func (api *API) CreateVocabulary(ctx context.Context, name string) (int64, error) {
	ep, err := api.vocabulariesEndpoint()
	if err != nil {
		return 0, err
	}

	var created Vocabulary
	if err := api.sendJSON(ctx, http.MethodPost, ep, Vocabulary{Name: name}, &created); err != nil {
		return 0, fmt.Errorf("liferay: couldn't create vocabulary %q: %w", name, err)
	}

	return created.ID, nil
}

// EnsureVocabulary finds the vocabulary by name, creating it when absent.
// After a create, the vocabulary is re-fetched once after a fixed delay so the
// ID the caller gets is one the portal actually serves; failing that single
// re-fetch is fatal.
func (api *API) EnsureVocabulary(ctx context.Context, name string) (int64, error) {
	id, err := api.FindVocabularyID(ctx, name)
	if err != nil {
		return 0, err
	}
	if id != 0 {
		return id, nil
	}

	if _, err := api.CreateVocabulary(ctx, name); err != nil {
		return 0, err
	}

	backoff := retry.WithMaxRetries(1, retry.NewConstant(vocabularyRecheckDelay))
	var confirmed int64
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		found, err := api.FindVocabularyID(ctx, name)
		if err != nil {
			return err
		}
		if found == 0 {
			return retry.RetryableError(fmt.Errorf("liferay: vocabulary %q not visible after creation", name))
		}
		confirmed = found
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("liferay: couldn't confirm vocabulary %q: %w", name, err)
	}

	return confirmed, nil
}

// ListCategories walks every page of categories under the vocabulary.
func (api *API) ListCategories(ctx context.Context, vocabularyID int64) ([]Category, error) {
	categories := []Category{}
	pageNum := 1

	for {
		ep, err := api.vocabularyCategoriesEndpoint(vocabularyID, PageQuery{Page: pageNum, PageSize: 100})
		if err != nil {
			return nil, err
		}

		var page categoryPage
		if err := api.getJSON(ctx, ep, &page); err != nil {
			return nil, fmt.Errorf("liferay: couldn't list categories page %d: %w", pageNum, err)
		}

		categories = append(categories, page.Items...)

		if len(page.Items) == 0 || pageNum >= page.LastPage {
			return categories, nil
		}
		pageNum++
	}
}

func (api *API) CreateCategory(ctx context.Context, vocabularyID int64, name string) (int64, error) {
	ep, err := api.vocabularyCategoriesEndpoint(vocabularyID, PageQuery{})
	if err != nil {
		return 0, err
	}

	var created Category
	if err := api.sendJSON(ctx, http.MethodPost, ep, Category{Name: name}, &created); err != nil {
		return 0, fmt.Errorf("liferay: couldn't create category %q: %w", name, err)
	}

	return created.ID, nil
}
