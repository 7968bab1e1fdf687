package migration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/clevesson-mendonca-sea/migrador/liferay"
	"github.com/clevesson-mendonca-sea/migrador/wordpress"
)

// fallbackFolderTitle names the post subfolder when the post has no title.
const fallbackFolderTitle = "SEM TITULO"

// ImageMigrator is the second stage: for every mapped category it walks the
// posts, downloads the images those posts embed and re-uploads them into a
// Documents and Media folder tree mirroring category/post.  Every uploaded or
// reused image lands in the URL mapping store for the content stage to rewrite.
type ImageMigrator struct {
	WordPress *wordpress.API
	Liferay   *liferay.API
	Store     *MappingStore

	CategoryMappingFile string
	TempDir             string
	SourceHost          string
	UploadPrefixes      []string

	// Client downloads the source images.  Separate from the API clients so
	// tests and cassette recording can swap it independently.
	Client *http.Client

	Logger   *log.Logger
	Progress bool
}

type ImageResult struct {
	PostsSeen         int
	PostsWithImages   int
	FoldersCreated    int
	SubfoldersCreated int
	ImagesUploaded    int
	ImagesReused      int
	ImagesFailed      int
}

func (m *ImageMigrator) Run(ctx context.Context) (*ImageResult, error) {
	mapping, err := LoadCategoryMapping(m.CategoryMappingFile)
	if err != nil {
		return nil, err
	}
	if len(mapping) == 0 {
		return nil, fmt.Errorf("migration: no category mapping in %s; run the category stage first", m.CategoryMappingFile)
	}

	if err := os.MkdirAll(m.TempDir, 0755); err != nil {
		return nil, fmt.Errorf("migration: couldn't create temp dir %s: %w", m.TempDir, err)
	}

	result := &ImageResult{}
	// Posts can carry several mapped categories; the first category that
	// reaches a post wins and later ones skip it.
	processed := map[int]bool{}

	for _, entry := range mapping {
		if err := m.migrateCategoryImages(ctx, entry, processed, result); err != nil {
			return result, err
		}
	}

	if err := m.Store.Flush(); err != nil {
		return result, err
	}
	m.Logger.Info("image migration finished",
		"posts", result.PostsSeen,
		"withImages", result.PostsWithImages,
		"uploaded", result.ImagesUploaded,
		"reused", result.ImagesReused,
		"failed", result.ImagesFailed)

	return result, nil
}

func (m *ImageMigrator) migrateCategoryImages(ctx context.Context, entry CategoryMapping, processed map[int]bool, result *ImageResult) error {
	m.Logger.Info("processing category", "name", entry.WordPressName, "wordpressID", entry.WordPressID)

	posts, err := m.WordPress.ListAllPosts(ctx, entry.WordPressID, wordpress.PartialResults)
	if err != nil {
		return fmt.Errorf("migration: couldn't list posts for category %q: %w", entry.WordPressName, err)
	}

	var bar *mpb.Bar
	var progress *mpb.Progress
	if m.Progress {
		progress = mpb.New(mpb.WithWidth(64))
		bar = progress.AddBar(int64(len(posts)),
			mpb.PrependDecorators(
				decor.Name(fmt.Sprintf("%s:", entry.WordPressName),
					decor.WC{C: decor.DindentRight | decor.DextraSpace}),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d/%d) "),
				decor.NewPercentage("%d"),
			),
		)
	}

	// The category folder is created lazily: categories whose posts carry no
	// migratable images leave no folder behind.
	var folderID int64
	haveFolder := false

	// Subfolder names handed out to posts in this run.  Two distinct posts
	// with the same title must not share a subfolder.
	claimed := map[string]bool{}

	for _, post := range posts {
		if processed[post.ID] {
			if bar != nil {
				bar.Increment()
			}
			continue
		}
		processed[post.ID] = true
		result.PostsSeen++

		urls, err := ExtractImageURLs(post.Content.Rendered)
		if err != nil {
			m.Logger.Error("couldn't parse post content", "postID", post.ID, "err", err)
			if bar != nil {
				bar.Increment()
			}
			continue
		}
		urls = FilterImageURLs(urls, m.SourceHost, m.UploadPrefixes)
		if len(urls) == 0 {
			if bar != nil {
				bar.Increment()
			}
			continue
		}
		result.PostsWithImages++

		if !haveFolder {
			folderID, err = m.ensureCategoryFolder(ctx, entry, result)
			if err != nil {
				return err
			}
			haveFolder = true
		}

		subfolderID := m.ensurePostSubfolder(ctx, folderID, post, claimed, result)

		for _, rawURL := range urls {
			if err := m.migrateImage(ctx, subfolderID, rawURL, result); err != nil {
				m.Logger.Error("couldn't migrate image", "postID", post.ID, "url", rawURL, "err", err)
				result.ImagesFailed++
				continue
			}
		}

		if bar != nil {
			bar.Increment()
		}
	}

	if progress != nil {
		progress.Wait()
	}
	return nil
}

func (m *ImageMigrator) ensureCategoryFolder(ctx context.Context, entry CategoryMapping, result *ImageResult) (int64, error) {
	name, err := SanitizeFolderName(entry.LiferayName)
	if err != nil {
		return 0, fmt.Errorf("migration: category %q has no usable folder name: %w", entry.LiferayName, err)
	}

	folderID, created, err := m.Liferay.EnsureFolder(ctx, name, fmt.Sprintf("Pasta para %s", name))
	if err != nil {
		return 0, fmt.Errorf("migration: couldn't ensure folder for category %q: %w", entry.LiferayName, err)
	}
	if created {
		m.Logger.Info("created category folder", "name", name, "id", folderID)
		result.FoldersCreated++
	}
	return folderID, nil
}

// ensurePostSubfolder finds or creates the per-post subfolder.  A subfolder
// left behind by an earlier run is reused, but a name another post claimed in
// this run gets a numeric suffix instead of being shared.  When the subfolder
// can't be arranged the images go into the category folder itself, so this
// never fails the post.
func (m *ImageMigrator) ensurePostSubfolder(ctx context.Context, folderID int64, post wordpress.Post, claimed map[string]bool, result *ImageResult) int64 {
	title := post.Title.Rendered
	if title == "" {
		title = fallbackFolderTitle
	}

	name, err := SanitizeFolderName(title)
	if err != nil {
		name = fallbackFolderTitle
	}

	siblings, err := m.Liferay.ListSubfolders(ctx, folderID)
	if err != nil {
		m.Logger.Warn("couldn't list subfolders, uploading into category folder", "postID", post.ID, "err", err)
		return folderID
	}

	siblingIDs := map[string]int64{}
	for _, folder := range siblings {
		siblingIDs[folder.Name] = folder.ID
	}

	// Skip past names other posts took in this run, then reuse or create.
	name = UniqueName(name, claimed)
	claimed[name] = true

	if subfolderID, ok := siblingIDs[name]; ok {
		return subfolderID
	}

	subfolderID, err := m.Liferay.CreateSubfolder(ctx, folderID, name, fmt.Sprintf("Subpasta para %s", name))
	if err != nil {
		m.Logger.Warn("couldn't create subfolder, uploading into category folder", "postID", post.ID, "name", name, "err", err)
		return folderID
	}
	m.Logger.Debug("created post subfolder", "name", name, "id", subfolderID)
	result.SubfoldersCreated++
	return subfolderID
}

func (m *ImageMigrator) migrateImage(ctx context.Context, folderID int64, rawURL string, result *ImageResult) error {
	fileName := ImageFileName(rawURL)
	if fileName == "" || fileName == "." || fileName == "/" {
		return fmt.Errorf("migration: image URL %q yields no file name", rawURL)
	}

	// An earlier run (or an earlier post sharing the image) may have uploaded
	// this file already; reuse the existing document instead of duplicating.
	contentURL, err := m.Liferay.FindDocumentURL(ctx, folderID, fileName)
	if err != nil {
		return err
	}

	if contentURL != "" {
		m.Store.Append(rawURL, contentURL)
		if err := m.Store.Flush(); err != nil {
			return err
		}
		m.Logger.Debug("image already uploaded", "file", fileName)
		result.ImagesReused++
		return nil
	}

	localPath := filepath.Join(m.TempDir, fileName)
	if err := m.downloadImage(ctx, rawURL, localPath); err != nil {
		return err
	}
	defer os.Remove(localPath)

	contentURL, err = m.Liferay.UploadDocument(ctx, folderID, localPath)
	if err != nil {
		return err
	}

	m.Store.Append(rawURL, contentURL)
	if err := m.Store.Flush(); err != nil {
		return err
	}
	m.Logger.Debug("image uploaded", "file", fileName, "contentUrl", contentURL)
	result.ImagesUploaded++
	return nil
}

func (m *ImageMigrator) downloadImage(ctx context.Context, rawURL, localPath string) error {
	resolved := ResolveImageURL(rawURL, m.SourceHost)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return fmt.Errorf("migration: couldn't build image request: %w", err)
	}

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("migration: couldn't download image %s: %w", resolved, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("migration: image download %s returned %s", resolved, resp.Status)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("migration: couldn't create temp file %s: %w", localPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("migration: couldn't write temp file %s: %w", localPath, err)
	}
	return nil
}
