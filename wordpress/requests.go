package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// GetCategories fetches one page of categories.  The second return value is the
// page count reported in X-WP-TotalPages, or zero when the header is absent.
func (api *API) GetCategories(ctx context.Context, opts CategoriesQuery) ([]Category, int, error) {
	ep, err := api.getCategoriesEndpoint(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("wordpress: couldn't get categories endpoint: %w", err)
	}

	body, header, err := api.request(ctx, ep)
	if err != nil {
		return nil, 0, fmt.Errorf("wordpress: couldn't perform request: %w", err)
	}

	var categories []Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, 0, fmt.Errorf("wordpress: couldn't parse json response: %w", err)
	}

	return categories, totalPages(header), nil
}

// GetPosts fetches one page of posts.  The second return value is the page
// count reported in X-WP-TotalPages, or zero when the header is absent.
func (api *API) GetPosts(ctx context.Context, opts PostsQuery) ([]Post, int, error) {
	ep, err := api.getPostsEndpoint(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("wordpress: couldn't get posts endpoint: %w", err)
	}

	body, header, err := api.request(ctx, ep)
	if err != nil {
		return nil, 0, fmt.Errorf("wordpress: couldn't perform request: %w", err)
	}

	var posts []Post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, 0, fmt.Errorf("wordpress: couldn't parse json response: %w", err)
	}

	return posts, totalPages(header), nil
}

func totalPages(header http.Header) int {
	n, err := strconv.Atoi(header.Get("X-WP-TotalPages"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Request implements the basic Request function
func (api *API) request(ctx context.Context, url *url.URL) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url.String(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("wordpress: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("wordpress: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("wordpress: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, nil, fmt.Errorf("wordpress: couldn't close response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK:
		return body, response.Header, nil
	case http.StatusBadRequest:
		// WordPress answers 400 rest_post_invalid_page_number when a page is out of range.
		return nil, nil, fmt.Errorf("wordpress: bad request: %s: %s", response.Status, url.String())
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, nil, fmt.Errorf("wordpress: access denied: %s", response.Status)
	case http.StatusNotFound:
		return nil, nil, fmt.Errorf("wordpress: endpoint not found: %s", url.String())
	case http.StatusServiceUnavailable:
		return nil, nil, fmt.Errorf("wordpress: service is not available: %s", response.Status)
	case http.StatusInternalServerError:
		return nil, nil, fmt.Errorf("wordpress: internal server error: %s", response.Status)
	}

	return nil, nil, fmt.Errorf("wordpress: unknown HTTP response status: %s: %s", response.Status, url.String())
}
