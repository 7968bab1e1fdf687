package migration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clevesson-mendonca-sea/migrador/liferay"
	"github.com/clevesson-mendonca-sea/migrador/wordpress"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func wordpressCategoriesServer(t *testing.T, categories []wordpress.Category) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/categories"))
		w.Header().Set("X-WP-TotalPages", "1")
		require.NoError(t, json.NewEncoder(w).Encode(categories))
	}))
}

// liferayTaxonomyServer fakes the vocabulary and category endpoints.  One
// vocabulary exists up front; categories start from seed and creates append.
func liferayTaxonomyServer(t *testing.T, seed []liferay.Category, created *[]string) *httptest.Server {
	t.Helper()

	categories := append([]liferay.Category{}, seed...)
	nextID := int64(500)

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/taxonomy-vocabularies"):
			require.NoError(t, json.NewEncoder(w).Encode(struct {
				Items    []liferay.Vocabulary `json:"items"`
				LastPage int                  `json:"lastPage"`
			}{Items: []liferay.Vocabulary{{ID: 55, Name: "Categorias"}}, LastPage: 1}))

		case strings.HasSuffix(r.URL.Path, "/taxonomy-categories") && r.Method == http.MethodGet:
			require.NoError(t, json.NewEncoder(w).Encode(struct {
				Items    []liferay.Category `json:"items"`
				LastPage int                `json:"lastPage"`
			}{Items: categories, LastPage: 1}))

		case strings.HasSuffix(r.URL.Path, "/taxonomy-categories") && r.Method == http.MethodPost:
			var payload liferay.Category
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			nextID++
			payload.ID = nextID
			categories = append(categories, payload)
			*created = append(*created, payload.Name)
			require.NoError(t, json.NewEncoder(w).Encode(payload))

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestCategoryMapper_MatchesAndCreates(t *testing.T) {
	wpServer := wordpressCategoriesServer(t, []wordpress.Category{
		{ID: 1, Name: "Notícias"},
		{ID: 2, Name: "Editais"},
	})
	defer wpServer.Close()

	var created []string
	lrServer := liferayTaxonomyServer(t, []liferay.Category{{ID: 100, Name: "notícias "}}, &created)
	defer lrServer.Close()

	wpAPI, err := wordpress.NewAPI(wpServer.URL + "/wp-json/wp/v2")
	require.NoError(t, err)
	lrAPI, err := liferay.NewAPI(lrServer.URL, "20123", "admin@example.org", "secret")
	require.NoError(t, err)

	mappingFile := filepath.Join(t.TempDir(), "category_mapping.json")
	mapper := &CategoryMapper{
		WordPress:      wpAPI,
		Liferay:        lrAPI,
		VocabularyName: VocabularyName,
		MappingFile:    mappingFile,
		Logger:         testLogger(),
	}

	result, err := mapper.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Fetched)
	// "Notícias" matches the existing "notícias " case- and space-insensitively.
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, []string{"Editais"}, created)

	mapping, err := LoadCategoryMapping(mappingFile)
	require.NoError(t, err)
	require.Len(t, mapping, 2)
	assert.Equal(t, CategoryMapping{WordPressID: 1, WordPressName: "Notícias", LiferayID: 100, LiferayName: "Notícias"}, mapping[0])
	assert.Equal(t, 2, mapping[1].WordPressID)
	assert.NotZero(t, mapping[1].LiferayID)
}

func TestCategoryMapper_Idempotent(t *testing.T) {
	wpServer := wordpressCategoriesServer(t, []wordpress.Category{{ID: 1, Name: "Notícias"}})
	defer wpServer.Close()

	var created []string
	lrServer := liferayTaxonomyServer(t, nil, &created)
	defer lrServer.Close()

	wpAPI, err := wordpress.NewAPI(wpServer.URL + "/wp-json/wp/v2")
	require.NoError(t, err)
	lrAPI, err := liferay.NewAPI(lrServer.URL, "20123", "admin@example.org", "secret")
	require.NoError(t, err)

	mapper := &CategoryMapper{
		WordPress:      wpAPI,
		Liferay:        lrAPI,
		VocabularyName: VocabularyName,
		MappingFile:    filepath.Join(t.TempDir(), "category_mapping.json"),
		Logger:         testLogger(),
	}

	first, err := mapper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	second, err := mapper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Matched)

	assert.Equal(t, []string{"Notícias"}, created)
}
