package migration

import "github.com/gosimple/slug"

// FriendlyURL derives the deterministic URL slug for a post title: accents
// stripped, lowercased, non-alphanumerics dropped, whitespace to hyphens.
// "Notícia Importante!" becomes "noticia-importante".
//
// Distinct titles can still collide on the same slug; the portal gets the
// final word on the assigned path, so callers must use what the create
// response reports rather than this value.
func FriendlyURL(title string) string {
	return slug.Make(title)
}
