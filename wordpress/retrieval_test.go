package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pagedPostsServer(t *testing.T, pageSizes []int, sendHeader bool, requests *int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		require.LessOrEqual(t, page, len(pageSizes), "requested a page past the last one")

		if sendHeader {
			w.Header().Set("X-WP-TotalPages", strconv.Itoa(len(pageSizes)))
		}

		posts := make([]Post, pageSizes[page-1])
		for i := range posts {
			posts[i].ID = (page-1)*PageSize + i + 1
		}
		require.NoError(t, json.NewEncoder(w).Encode(posts))
	}))
}

func TestListAllPosts_TotalPagesHeader(t *testing.T) {
	requests := 0
	server := pagedPostsServer(t, []int{100, 100, 37}, true, &requests)
	defer server.Close()

	api, err := NewAPI(server.URL + "/wp-json/wp/v2")
	require.NoError(t, err)

	posts, err := api.ListAllPosts(context.Background(), 0, Abort)
	require.NoError(t, err)

	assert.Len(t, posts, 237)
	assert.Equal(t, 3, requests)
}

func TestListAllPosts_NoHeaderStopsOnShortPage(t *testing.T) {
	requests := 0
	server := pagedPostsServer(t, []int{100, 100, 37}, false, &requests)
	defer server.Close()

	api, err := NewAPI(server.URL + "/wp-json/wp/v2")
	require.NoError(t, err)

	posts, err := api.ListAllPosts(context.Background(), 0, Abort)
	require.NoError(t, err)

	assert.Len(t, posts, 237)
	assert.Equal(t, 3, requests)
}

func TestListAllPosts_ExactMultipleOfPageSize(t *testing.T) {
	requests := 0
	server := pagedPostsServer(t, []int{100, 100}, true, &requests)
	defer server.Close()

	api, err := NewAPI(server.URL + "/wp-json/wp/v2")
	require.NoError(t, err)

	posts, err := api.ListAllPosts(context.Background(), 0, Abort)
	require.NoError(t, err)

	assert.Len(t, posts, 200)
	assert.Equal(t, 2, requests)
}

func TestListAllCategories_AbortPolicy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page != "1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("X-WP-TotalPages", "2")
		categories := make([]Category, PageSize)
		for i := range categories {
			categories[i] = Category{ID: i + 1, Name: fmt.Sprintf("cat-%d", i+1)}
		}
		require.NoError(t, json.NewEncoder(w).Encode(categories))
	}))
	defer server.Close()

	api, err := NewAPI(server.URL + "/wp-json/wp/v2")
	require.NoError(t, err)

	_, err = api.ListAllCategories(context.Background(), Abort)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
}

func TestListAllCategories_PartialResultsPolicy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page != "1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("X-WP-TotalPages", "2")
		categories := make([]Category, PageSize)
		for i := range categories {
			categories[i] = Category{ID: i + 1, Name: fmt.Sprintf("cat-%d", i+1)}
		}
		require.NoError(t, json.NewEncoder(w).Encode(categories))
	}))
	defer server.Close()

	api, err := NewAPI(server.URL + "/wp-json/wp/v2")
	require.NoError(t, err)

	categories, err := api.ListAllCategories(context.Background(), PartialResults)
	require.NoError(t, err)
	assert.Len(t, categories, PageSize)
}

func TestGetPosts_CategoryFilterInQuery(t *testing.T) {
	var gotCategories string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCategories = r.URL.Query().Get("categories")
		require.NoError(t, json.NewEncoder(w).Encode([]Post{}))
	}))
	defer server.Close()

	api, err := NewAPI(server.URL + "/wp-json/wp/v2")
	require.NoError(t, err)

	_, _, err = api.GetPosts(context.Background(), PostsQuery{Categories: 7, Page: 1, PerPage: PageSize})
	require.NoError(t, err)
	assert.Equal(t, "7", gotCategories)
}

func TestResolveEndpoint_KeepsNamespace(t *testing.T) {
	api, err := NewAPI("https://example.org/wp-json/wp/v2")
	require.NoError(t, err)

	ep, err := api.getCategoriesEndpoint(CategoriesQuery{Page: 1, PerPage: 100})
	require.NoError(t, err)
	assert.Equal(t, "/wp-json/wp/v2/categories", ep.Path)
}
