package liferay

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// BodyFieldName is the structured content field carrying the article HTML.
const BodyFieldName = "TextoMateria"

// ExcerptFieldName is the optional structured content field carrying the teaser.
const ExcerptFieldName = "Chamada"

// CreateStructuredContent posts a new content record and returns what the
// portal reports back.  Callers care about the assigned FriendlyURLPath: the
// portal may disambiguate the slug it was sent.
func (api *API) CreateStructuredContent(ctx context.Context, payload ContentCreate) (*StructuredContent, error) {
	ep, err := api.structuredContentsEndpoint(PageQuery{})
	if err != nil {
		return nil, err
	}

	var created StructuredContent
	if err := api.sendJSON(ctx, http.MethodPost, ep, payload, &created); err != nil {
		return nil, fmt.Errorf("liferay: couldn't create structured content %q: %w", payload.Title, err)
	}

	return &created, nil
}

// FindContentIDByFriendlyURL resolves a content record by exact friendly URL.
// Returns zero when no record matches.
func (api *API) FindContentIDByFriendlyURL(ctx context.Context, friendlyURL string) (int64, error) {
	filter := fmt.Sprintf("friendlyUrlPath eq '%s'", strings.ReplaceAll(friendlyURL, "'", "''"))
	ep, err := api.structuredContentsEndpoint(PageQuery{Filter: filter})
	if err != nil {
		return 0, err
	}

	var page contentPage
	if err := api.getJSON(ctx, ep, &page); err != nil {
		return 0, fmt.Errorf("liferay: couldn't search content by friendly URL %q: %w", friendlyURL, err)
	}

	if len(page.Items) == 0 {
		return 0, nil
	}
	return page.Items[0].ID, nil
}

// UpdateContentBody patches only the body field of an existing content record.
func (api *API) UpdateContentBody(ctx context.Context, contentID int64, html string) error {
	ep, err := api.structuredContentEndpoint(contentID)
	if err != nil {
		return err
	}

	payload := struct {
		ContentFields []ContentField `json:"contentFields"`
	}{
		ContentFields: []ContentField{
			{Name: BodyFieldName, ContentFieldValue: ContentFieldValue{Data: html}},
		},
	}

	if err := api.sendJSON(ctx, http.MethodPatch, ep, payload, nil); err != nil {
		return fmt.Errorf("liferay: couldn't update content %d: %w", contentID, err)
	}

	return nil
}
