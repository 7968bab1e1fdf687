package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clevesson-mendonca-sea/migrador/liferay"
	"github.com/clevesson-mendonca-sea/migrador/wordpress"
)

// fakeDelivery fakes the Documents and Media endpoints: site folders,
// subfolders, and per-folder documents with multipart upload.
type fakeDelivery struct {
	t *testing.T

	folders    []liferay.Folder
	subfolders map[int64][]liferay.Folder
	documents  map[int64][]liferay.Document
	uploads    []string
	nextID     int64
}

func newFakeDelivery(t *testing.T) *fakeDelivery {
	return &fakeDelivery{
		t:          t,
		subfolders: map[int64][]liferay.Folder{},
		documents:  map[int64][]liferay.Document{},
		nextID:     1000,
	}
}

type folderPageJSON struct {
	Items    []liferay.Folder `json:"items"`
	LastPage int              `json:"lastPage"`
}

type documentPageJSON struct {
	Items    []liferay.Document `json:"items"`
	LastPage int                `json:"lastPage"`
}

func (d *fakeDelivery) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	segments := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case strings.HasSuffix(path, "/sites/20123/document-folders"):
		if r.Method == http.MethodGet {
			require.NoError(d.t, json.NewEncoder(w).Encode(folderPageJSON{Items: d.folders, LastPage: 1}))
			return
		}
		var folder liferay.Folder
		require.NoError(d.t, json.NewDecoder(r.Body).Decode(&folder))
		d.nextID++
		folder.ID = d.nextID
		d.folders = append(d.folders, folder)
		require.NoError(d.t, json.NewEncoder(w).Encode(folder))

	case strings.HasSuffix(path, "/document-folders") && len(segments) > 2:
		parentID, err := strconv.ParseInt(segments[len(segments)-2], 10, 64)
		require.NoError(d.t, err)

		if r.Method == http.MethodGet {
			require.NoError(d.t, json.NewEncoder(w).Encode(folderPageJSON{Items: d.subfolders[parentID], LastPage: 1}))
			return
		}
		var folder liferay.Folder
		require.NoError(d.t, json.NewDecoder(r.Body).Decode(&folder))
		d.nextID++
		folder.ID = d.nextID
		d.subfolders[parentID] = append(d.subfolders[parentID], folder)
		require.NoError(d.t, json.NewEncoder(w).Encode(folder))

	case strings.HasSuffix(path, "/documents"):
		folderID, err := strconv.ParseInt(segments[len(segments)-2], 10, 64)
		require.NoError(d.t, err)

		if r.Method == http.MethodGet {
			require.NoError(d.t, json.NewEncoder(w).Encode(documentPageJSON{Items: d.documents[folderID], LastPage: 1}))
			return
		}

		_, header, err := r.FormFile("file")
		require.NoError(d.t, err)

		d.nextID++
		document := liferay.Document{
			ID:         d.nextID,
			Title:      header.Filename,
			ContentURL: fmt.Sprintf("/documents/%d/%s", d.nextID, header.Filename),
		}
		d.documents[folderID] = append(d.documents[folderID], document)
		d.uploads = append(d.uploads, header.Filename)
		require.NoError(d.t, json.NewEncoder(w).Encode(document))

	default:
		d.t.Errorf("unexpected delivery request: %s %s", r.Method, path)
		w.WriteHeader(http.StatusNotFound)
	}
}

func imageMigratorFixture(t *testing.T, posts []wordpress.Post) (*ImageMigrator, *fakeDelivery, string) {
	t.Helper()

	// Source site: serves posts under the REST namespace and image bytes
	// everywhere else.
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/posts") {
			w.Header().Set("X-WP-TotalPages", "1")
			require.NoError(t, json.NewEncoder(w).Encode(posts))
			return
		}
		w.Write([]byte("jpeg-bytes"))
	}))
	t.Cleanup(source.Close)

	delivery := newFakeDelivery(t)
	lrServer := httptest.NewServer(delivery)
	t.Cleanup(lrServer.Close)

	wpAPI, err := wordpress.NewAPI(source.URL + "/wp-json/wp/v2")
	require.NoError(t, err)
	lrAPI, err := liferay.NewAPI(lrServer.URL, "20123", "admin@example.org", "secret")
	require.NoError(t, err)

	dir := t.TempDir()
	mappingFile := filepath.Join(dir, "category_mapping.json")
	require.NoError(t, SaveCategoryMapping(mappingFile, []CategoryMapping{
		{WordPressID: 1, WordPressName: "Notícias", LiferayID: 100, LiferayName: "Notícias"},
	}))

	urlMappingFile := filepath.Join(dir, "url_mapping.json")
	store, err := OpenMappingStore(urlMappingFile)
	require.NoError(t, err)

	return &ImageMigrator{
		WordPress:           wpAPI,
		Liferay:             lrAPI,
		Store:               store,
		CategoryMappingFile: mappingFile,
		TempDir:             filepath.Join(dir, "images_temp"),
		SourceHost:          source.URL,
		UploadPrefixes:      []string{"/wp-content", "/wp-conteudo"},
		Client:              http.DefaultClient,
		Logger:              testLogger(),
	}, delivery, urlMappingFile
}

func TestImageMigrator_UploadsAndRecordsMappings(t *testing.T) {
	posts := []wordpress.Post{
		{
			ID:    10,
			Title: wordpress.Rendered{Rendered: "Notícia Importante!"},
			Content: wordpress.Rendered{Rendered: `
				<img src="/wp-content/uploads/foto1.jpg">
				<img src="/wp-conteudo/uploads/foto2.png">
				<img src="https://evil.com/tracker.gif">
			`},
		},
		{
			ID:      11,
			Title:   wordpress.Rendered{Rendered: "Sem Imagens"},
			Content: wordpress.Rendered{Rendered: "<p>só texto</p>"},
		},
	}

	migrator, delivery, urlMappingFile := imageMigratorFixture(t, posts)

	result, err := migrator.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.PostsSeen)
	assert.Equal(t, 1, result.PostsWithImages)
	assert.Equal(t, 1, result.FoldersCreated)
	assert.Equal(t, 1, result.SubfoldersCreated)
	assert.Equal(t, 2, result.ImagesUploaded)
	assert.Equal(t, 0, result.ImagesReused)
	assert.Equal(t, 0, result.ImagesFailed)

	require.Len(t, delivery.folders, 1)
	assert.Equal(t, "Notícias", delivery.folders[0].Name)
	assert.Equal(t, "Pasta para Notícias", delivery.folders[0].Description)

	subfolders := delivery.subfolders[delivery.folders[0].ID]
	require.Len(t, subfolders, 1)
	assert.Equal(t, "Notícia Importante!", subfolders[0].Name)
	assert.Equal(t, "Subpasta para Notícia Importante!", subfolders[0].Description)

	assert.ElementsMatch(t, []string{"foto1.jpg", "foto2.png"}, delivery.uploads)

	store, err := OpenMappingStore(urlMappingFile)
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())
	assert.Equal(t, "/wp-content/uploads/foto1.jpg", store.Entries()[0].OriginalURL)
	assert.Contains(t, store.Entries()[0].NewURL, "foto1.jpg")
}

func TestImageMigrator_ReusesExistingDocuments(t *testing.T) {
	posts := []wordpress.Post{
		{
			ID:      10,
			Title:   wordpress.Rendered{Rendered: "Notícia"},
			Content: wordpress.Rendered{Rendered: `<img src="/wp-content/uploads/foto1.jpg">`},
		},
	}

	migrator, delivery, _ := imageMigratorFixture(t, posts)

	first, err := migrator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.ImagesUploaded)

	second, err := migrator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.ImagesUploaded)
	assert.Equal(t, 1, second.ImagesReused)

	// Still only one copy on the portal.
	assert.Len(t, delivery.uploads, 1)
}

func TestImageMigrator_DuplicateTitlesGetSuffixedSubfolders(t *testing.T) {
	posts := []wordpress.Post{
		{
			ID:      10,
			Title:   wordpress.Rendered{Rendered: "Titulo Repetido"},
			Content: wordpress.Rendered{Rendered: `<img src="/wp-content/uploads/foto1.jpg">`},
		},
		{
			ID:      11,
			Title:   wordpress.Rendered{Rendered: "Titulo Repetido"},
			Content: wordpress.Rendered{Rendered: `<img src="/wp-content/uploads/foto2.jpg">`},
		},
	}

	migrator, delivery, _ := imageMigratorFixture(t, posts)

	result, err := migrator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.SubfoldersCreated)

	subfolders := delivery.subfolders[delivery.folders[0].ID]
	names := []string{}
	for _, folder := range subfolders {
		names = append(names, folder.Name)
	}
	assert.Equal(t, []string{"Titulo Repetido", "Titulo Repetido_1"}, names)

	// One image in each subfolder, not two in a shared one.
	for _, folder := range subfolders {
		assert.Len(t, delivery.documents[folder.ID], 1)
	}
}

func TestImageMigrator_DuplicateTitlesIdempotentOnRerun(t *testing.T) {
	posts := []wordpress.Post{
		{
			ID:      10,
			Title:   wordpress.Rendered{Rendered: "Titulo Repetido"},
			Content: wordpress.Rendered{Rendered: `<img src="/wp-content/uploads/foto1.jpg">`},
		},
		{
			ID:      11,
			Title:   wordpress.Rendered{Rendered: "Titulo Repetido"},
			Content: wordpress.Rendered{Rendered: `<img src="/wp-content/uploads/foto2.jpg">`},
		},
	}

	migrator, delivery, _ := imageMigratorFixture(t, posts)

	_, err := migrator.Run(context.Background())
	require.NoError(t, err)

	second, err := migrator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.SubfoldersCreated)
	assert.Equal(t, 2, second.ImagesReused)

	assert.Len(t, delivery.subfolders[delivery.folders[0].ID], 2)
	assert.Len(t, delivery.uploads, 2)
}

func TestImageMigrator_RequiresCategoryMapping(t *testing.T) {
	migrator, _, _ := imageMigratorFixture(t, nil)
	migrator.CategoryMappingFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := migrator.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category stage")
}
