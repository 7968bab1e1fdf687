package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/clevesson-mendonca-sea/migrador/liferay"
	"github.com/clevesson-mendonca-sea/migrador/wordpress"
)

// ContentMigrator is the third stage: it recreates WordPress posts as Liferay
// structured content, rewriting the image URLs the image stage recorded, then
// makes a second pass patching cross-post links once every article's new URL
// is known.
type ContentMigrator struct {
	WordPress *wordpress.API
	Liferay   *liferay.API
	Store     *MappingStore

	CategoryMappingFile string
	ContentStructureID  int64

	Logger   *log.Logger
	Progress bool
}

type ContentResult struct {
	PostsFetched   int
	Created        int
	CreateFailed   int
	LinksUpdated   int
	LinksUnchanged int
	LinksFailed    int // lookup or update request failed
	NotFound       int // no content record matches the recomputed slug
}

func (m *ContentMigrator) Run(ctx context.Context) (*ContentResult, error) {
	mapping, err := LoadCategoryMapping(m.CategoryMappingFile)
	if err != nil {
		return nil, err
	}

	posts, err := m.fetchPosts(ctx, mapping)
	if err != nil {
		return nil, err
	}

	categoryIDs := map[int][]int64{}
	for _, entry := range mapping {
		categoryIDs[entry.WordPressID] = append(categoryIDs[entry.WordPressID], entry.LiferayID)
	}

	result := &ContentResult{PostsFetched: len(posts)}

	bar, progress := m.newBar("creating", len(posts))
	for _, post := range posts {
		if err := m.createContent(ctx, post, categoryIDs); err != nil {
			m.Logger.Error("couldn't create content", "postID", post.ID, "title", post.Title.Rendered, "err", err)
			result.CreateFailed++
		} else {
			result.Created++
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if progress != nil {
		progress.Wait()
	}

	// Every article URL is in the store now; walk the posts again and patch
	// the bodies whose links the first pass couldn't know about yet.
	bar, progress = m.newBar("relinking", len(posts))
	for _, post := range posts {
		m.relinkContent(ctx, post, result)
		if bar != nil {
			bar.Increment()
		}
	}
	if progress != nil {
		progress.Wait()
	}

	m.Logger.Info("content migration finished",
		"fetched", result.PostsFetched,
		"created", result.Created,
		"failed", result.CreateFailed,
		"relinked", result.LinksUpdated,
		"unchanged", result.LinksUnchanged,
		"relinkFailed", result.LinksFailed,
		"missing", result.NotFound)

	return result, nil
}

// fetchPosts lists the posts to migrate.  With a category mapping present it
// walks each mapped category; without one it lists the whole site.  A listing
// failure aborts the stage: migrating a silently truncated post set would
// leave the portal half-populated with no record of what's missing.
func (m *ContentMigrator) fetchPosts(ctx context.Context, mapping []CategoryMapping) ([]wordpress.Post, error) {
	if len(mapping) == 0 {
		m.Logger.Warn("no category mapping, migrating all posts", "file", m.CategoryMappingFile)
		posts, err := m.WordPress.ListAllPosts(ctx, 0, wordpress.Abort)
		if err != nil {
			return nil, fmt.Errorf("migration: couldn't list posts: %w", err)
		}
		return posts, nil
	}

	posts := []wordpress.Post{}
	seen := map[int]bool{}
	for _, entry := range mapping {
		batch, err := m.WordPress.ListAllPosts(ctx, entry.WordPressID, wordpress.Abort)
		if err != nil {
			return nil, fmt.Errorf("migration: couldn't list posts for category %q: %w", entry.WordPressName, err)
		}
		for _, post := range batch {
			if seen[post.ID] {
				continue
			}
			seen[post.ID] = true
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (m *ContentMigrator) createContent(ctx context.Context, post wordpress.Post, categoryIDs map[int][]int64) error {
	title := post.Title.Rendered
	if title == "" {
		title = fallbackFolderTitle
	}

	taxonomyIDs := []int64{}
	for _, wpCategoryID := range post.Categories {
		taxonomyIDs = append(taxonomyIDs, categoryIDs[wpCategoryID]...)
	}

	body := ReplaceURLs(post.Content.Rendered, m.Store.Entries())

	fields := []liferay.ContentField{
		{Name: liferay.BodyFieldName, ContentFieldValue: liferay.ContentFieldValue{Data: body}},
	}
	if excerpt := post.Excerpt.Rendered; excerpt != "" {
		fields = append(fields, liferay.ContentField{
			Name:              liferay.ExcerptFieldName,
			ContentFieldValue: liferay.ContentFieldValue{Data: excerpt},
		})
	}

	created, err := m.Liferay.CreateStructuredContent(ctx, liferay.ContentCreate{
		ContentStructureID:  m.ContentStructureID,
		Title:               title,
		FriendlyURLPath:     FriendlyURL(title),
		DateCreated:         LiferayDate(post.DateGMT),
		TaxonomyCategoryIDs: taxonomyIDs,
		ContentFields:       fields,
	})
	if err != nil {
		return err
	}

	m.Logger.Debug("created content", "postID", post.ID, "contentID", created.ID, "friendlyUrl", created.FriendlyURLPath)
	m.Store.Append(post.Link, created.FriendlyURLPath)
	return m.Store.Flush()
}

// relinkContent rewrites one article's body with the full URL mapping and
// patches it on the portal when that changed anything.
func (m *ContentMigrator) relinkContent(ctx context.Context, post wordpress.Post, result *ContentResult) {
	title := post.Title.Rendered
	if title == "" {
		title = fallbackFolderTitle
	}

	contentID, err := m.Liferay.FindContentIDByFriendlyURL(ctx, FriendlyURL(title))
	if err != nil {
		m.Logger.Error("couldn't look up content", "postID", post.ID, "err", err)
		result.LinksFailed++
		return
	}
	if contentID == 0 {
		m.Logger.Warn("content not found for relinking", "postID", post.ID, "title", title)
		result.NotFound++
		return
	}

	rewritten := ReplaceURLs(post.Content.Rendered, m.Store.Entries())
	if rewritten == post.Content.Rendered {
		result.LinksUnchanged++
		return
	}

	if err := m.Liferay.UpdateContentBody(ctx, contentID, rewritten); err != nil {
		m.Logger.Error("couldn't update content links", "postID", post.ID, "contentID", contentID, "err", err)
		result.LinksFailed++
		return
	}
	m.Logger.Debug("updated content links", "postID", post.ID, "contentID", contentID)
	result.LinksUpdated++
}

func (m *ContentMigrator) newBar(phase string, total int) (*mpb.Bar, *mpb.Progress) {
	if !m.Progress {
		return nil, nil
	}
	progress := mpb.New(mpb.WithWidth(64))
	bar := progress.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(fmt.Sprintf("%s:", phase),
				decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
		),
	)
	return bar, progress
}

// LiferayDate converts a WordPress GMT timestamp to the portal's expected
// dateCreated format.  An unparseable or empty input yields empty, which the
// creation payload omits.
func LiferayDate(wordpressDate string) string {
	if wordpressDate == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02T15:04:05", wordpressDate)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02T15:04:05") + ".000Z"
}
