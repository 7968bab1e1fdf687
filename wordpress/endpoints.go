package wordpress

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// getCategoriesEndpoint returns the API endpoint to list categories:
// https://developer.wordpress.org/rest-api/reference/categories/#list-categories
func (a *API) getCategoriesEndpoint(opts CategoriesQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint("categories")
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// getPostsEndpoint returns the API endpoint to list posts:
// https://developer.wordpress.org/rest-api/reference/posts/#list-posts
func (a *API) getPostsEndpoint(opts PostsQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint("posts")
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("wordpress: failed to parse endpoint ref: %w", err)
	}

	// The base is a namespace, not a document, so make sure resolution keeps its last segment.
	base := *a.BaseURI
	if base.Path != "" && base.Path[len(base.Path)-1] != '/' {
		base.Path += "/"
	}

	return base.ResolveReference(ref), nil
}
