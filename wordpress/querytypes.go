package wordpress

// CategoriesQuery defines the query parameters for:
// https://developer.wordpress.org/rest-api/reference/categories/#list-categories
type CategoriesQuery struct {
	Page    int `url:"page,omitempty"`     // page of the collection, 1-based
	PerPage int `url:"per_page,omitempty"` // items per page; WordPress caps this at 100
}

// PostsQuery defines the query parameters for:
// https://developer.wordpress.org/rest-api/reference/posts/#list-posts
type PostsQuery struct {
	// Limit the result set to posts assigned to a category.  Zero means no filter.
	Categories int `url:"categories,omitempty"`

	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"`
}
