package liferay

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

const (
	taxonomyBase = "/o/headless-admin-taxonomy/v1.0"
	deliveryBase = "/o/headless-delivery/v1.0"
)

// PageQuery defines the shared pagination/filter parameters of the headless
// collection endpoints.
type PageQuery struct {
	Page     int    `url:"page,omitempty"`
	PageSize int    `url:"pageSize,omitempty"`
	Filter   string `url:"filter,omitempty"` // OData-ish filter, e.g. friendlyUrlPath eq 'x'
}

// vocabulariesEndpoint lists/creates taxonomy vocabularies on the site.
func (a *API) vocabulariesEndpoint() (*url.URL, error) {
	return a.resolveEndpoint(fmt.Sprintf("%s/sites/%s/taxonomy-vocabularies", taxonomyBase, a.SiteID), PageQuery{})
}

// vocabularyCategoriesEndpoint lists/creates categories under one vocabulary.
func (a *API) vocabularyCategoriesEndpoint(vocabularyID int64, opts PageQuery) (*url.URL, error) {
	return a.resolveEndpoint(fmt.Sprintf("%s/taxonomy-vocabularies/%d/taxonomy-categories", taxonomyBase, vocabularyID), opts)
}

// siteFoldersEndpoint lists/creates top-level document folders on the site.
func (a *API) siteFoldersEndpoint(opts PageQuery) (*url.URL, error) {
	return a.resolveEndpoint(fmt.Sprintf("%s/sites/%s/document-folders", deliveryBase, a.SiteID), opts)
}

// subfoldersEndpoint lists/creates folders nested under a document folder.
func (a *API) subfoldersEndpoint(parentID int64, opts PageQuery) (*url.URL, error) {
	return a.resolveEndpoint(fmt.Sprintf("%s/document-folders/%d/document-folders", deliveryBase, parentID), opts)
}

// folderDocumentsEndpoint lists/uploads documents in a folder.
func (a *API) folderDocumentsEndpoint(folderID int64, opts PageQuery) (*url.URL, error) {
	return a.resolveEndpoint(fmt.Sprintf("%s/document-folders/%d/documents", deliveryBase, folderID), opts)
}

// structuredContentsEndpoint lists/creates structured contents on the site.
func (a *API) structuredContentsEndpoint(opts PageQuery) (*url.URL, error) {
	return a.resolveEndpoint(fmt.Sprintf("%s/sites/%s/structured-contents", deliveryBase, a.SiteID), opts)
}

// structuredContentEndpoint addresses one structured content record.
func (a *API) structuredContentEndpoint(contentID int64) (*url.URL, error) {
	return a.resolveEndpoint(fmt.Sprintf("%s/structured-contents/%d", deliveryBase, contentID), PageQuery{})
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string, opts PageQuery) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("liferay: failed to parse endpoint ref: %w", err)
	}

	ep := a.BaseURI.ResolveReference(ref)

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("liferay: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}
