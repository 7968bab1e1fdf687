package migration

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractImageURLs collects the src attribute of every <img> in the post HTML,
// in document order.
func ExtractImageURLs(content string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("migration: couldn't parse post HTML: %w", err)
	}

	urls := []string{}
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok && src != "" {
			urls = append(urls, src)
		}
	})

	return urls, nil
}

// FilterImageURLs keeps only URLs the migration may move: absolute URLs on the
// source host, and relative paths under the known upload prefixes.  Anything
// else (other hosts, data URIs, tracking pixels) is dropped.
func FilterImageURLs(urls []string, sourceHost string, uploadPrefixes []string) []string {
	valid := []string{}
	for _, u := range urls {
		if strings.HasPrefix(u, sourceHost) {
			valid = append(valid, u)
			continue
		}
		for _, prefix := range uploadPrefixes {
			if strings.HasPrefix(u, prefix) {
				valid = append(valid, u)
				break
			}
		}
	}
	return valid
}

// ResolveImageURL turns a source-relative path into an absolute URL on the
// source host.  Already-absolute URLs pass through.
func ResolveImageURL(raw, sourceHost string) string {
	if strings.HasPrefix(raw, "/") {
		return sourceHost + raw
	}
	return raw
}

// ImageFileName is the filename a migrated image keeps on the destination.
func ImageFileName(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		return path.Base(parsed.Path)
	}
	return path.Base(rawURL)
}

// ReplaceURLs rewrites every mapped URL inside content, applying entries in
// file order as literal substring replacements.
func ReplaceURLs(content string, mappings []URLMapping) string {
	for _, mapping := range mappings {
		if mapping.OriginalURL == "" {
			continue
		}
		content = strings.ReplaceAll(content, mapping.OriginalURL, mapping.NewURL)
	}
	return content
}
