package liferay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListFolders walks every page of top-level document folders on the site.
func (api *API) ListFolders(ctx context.Context) ([]Folder, error) {
	return api.listFolderPages(ctx, func(opts PageQuery) (*url.URL, error) {
		return api.siteFoldersEndpoint(opts)
	})
}

// ListSubfolders walks every page of folders nested under parentID.
func (api *API) ListSubfolders(ctx context.Context, parentID int64) ([]Folder, error) {
	return api.listFolderPages(ctx, func(opts PageQuery) (*url.URL, error) {
		return api.subfoldersEndpoint(parentID, opts)
	})
}

func (api *API) listFolderPages(ctx context.Context, endpoint func(PageQuery) (*url.URL, error)) ([]Folder, error) {
	folders := []Folder{}
	pageNum := 1

	for {
		ep, err := endpoint(PageQuery{Page: pageNum, PageSize: 100})
		if err != nil {
			return nil, err
		}

		var page folderPage
		if err := api.getJSON(ctx, ep, &page); err != nil {
			return nil, fmt.Errorf("liferay: couldn't list folders page %d: %w", pageNum, err)
		}

		folders = append(folders, page.Items...)

		if len(page.Items) == 0 || pageNum >= page.LastPage {
			return folders, nil
		}
		pageNum++
	}
}

func (api *API) CreateFolder(ctx context.Context, name, description string) (int64, error) {
	ep, err := api.siteFoldersEndpoint(PageQuery{})
	if err != nil {
		return 0, err
	}

	var created Folder
	if err := api.sendJSON(ctx, http.MethodPost, ep, Folder{Name: name, Description: description}, &created); err != nil {
		return 0, fmt.Errorf("liferay: couldn't create folder %q: %w", name, err)
	}

	return created.ID, nil
}

func (api *API) CreateSubfolder(ctx context.Context, parentID int64, name, description string) (int64, error) {
	ep, err := api.subfoldersEndpoint(parentID, PageQuery{})
	if err != nil {
		return 0, err
	}

	var created Folder
	if err := api.sendJSON(ctx, http.MethodPost, ep, Folder{Name: name, Description: description}, &created); err != nil {
		return 0, fmt.Errorf("liferay: couldn't create subfolder %q under %d: %w", name, parentID, err)
	}

	return created.ID, nil
}

// EnsureFolder returns the ID of the site folder with the given name, creating
// it when absent.  The second return value reports whether a create happened.
func (api *API) EnsureFolder(ctx context.Context, name, description string) (int64, bool, error) {
	folders, err := api.ListFolders(ctx)
	if err != nil {
		return 0, false, err
	}

	for _, folder := range folders {
		if folder.Name == name {
			return folder.ID, false, nil
		}
	}

	id, err := api.CreateFolder(ctx, name, description)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
