package wordpress

// Rendered wraps the fields WordPress serves as {"rendered": "..."} objects.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// See https://developer.wordpress.org/rest-api/reference/categories/
type Category struct {
	ID     int    `json:"id"`
	Count  int    `json:"count"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent int    `json:"parent"`
}

// See https://developer.wordpress.org/rest-api/reference/posts/
//
// Title, Content and Excerpt arrive as raw HTML under .Rendered.
type Post struct {
	ID         int      `json:"id"`
	Date       string   `json:"date"`
	DateGMT    string   `json:"date_gmt"`
	Link       string   `json:"link"`
	Title      Rendered `json:"title"`
	Content    Rendered `json:"content"`
	Excerpt    Rendered `json:"excerpt"`
	Categories []int    `json:"categories"`
}
