package wordpress

import (
	"context"
	"fmt"
)

// FailurePolicy decides what a paginated listing does when one of its page
// requests fails.
type FailurePolicy int

const (
	// Abort fails the whole listing on the first failed page request.
	Abort FailurePolicy = iota
	// PartialResults ends the listing quietly and returns whatever pages
	// were already accumulated.
	PartialResults
)

// PageSize is the number of items requested per page.  WordPress caps
// per_page at 100 anyway.
const PageSize = 100

// ListAllCategories walks every page of the categories collection.
// Termination follows X-WP-TotalPages when the server reports it, and falls
// back to stopping on a page shorter than the page size.
func (api *API) ListAllCategories(ctx context.Context, policy FailurePolicy) ([]Category, error) {
	categories := []Category{}
	page := 1

	for {
		batch, pages, err := api.GetCategories(ctx, CategoriesQuery{Page: page, PerPage: PageSize})
		if err != nil {
			if policy == PartialResults {
				return categories, nil
			}
			return nil, fmt.Errorf("wordpress: couldn't list categories page %d: %w", page, err)
		}

		categories = append(categories, batch...)

		if done(page, len(batch), pages) {
			return categories, nil
		}
		page++
	}
}

// ListAllPosts walks every page of posts in the given category.  A categoryID
// of zero lists posts without a category filter.
func (api *API) ListAllPosts(ctx context.Context, categoryID int, policy FailurePolicy) ([]Post, error) {
	posts := []Post{}
	page := 1

	for {
		batch, pages, err := api.GetPosts(ctx, PostsQuery{
			Categories: categoryID,
			Page:       page,
			PerPage:    PageSize,
		})
		if err != nil {
			if policy == PartialResults {
				return posts, nil
			}
			return nil, fmt.Errorf("wordpress: couldn't list posts page %d (category %d): %w", page, categoryID, err)
		}

		posts = append(posts, batch...)

		if done(page, len(batch), pages) {
			return posts, nil
		}
		page++
	}
}

func done(page, batchSize, totalPages int) bool {
	if totalPages > 0 {
		return page >= totalPages
	}
	return batchSize < PageSize
}
