package liferay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// ListDocuments walks every page of documents in the folder.
func (api *API) ListDocuments(ctx context.Context, folderID int64) ([]Document, error) {
	documents := []Document{}
	pageNum := 1

	for {
		ep, err := api.folderDocumentsEndpoint(folderID, PageQuery{Page: pageNum, PageSize: 100})
		if err != nil {
			return nil, err
		}

		var page documentPage
		if err := api.getJSON(ctx, ep, &page); err != nil {
			return nil, fmt.Errorf("liferay: couldn't list documents page %d: %w", pageNum, err)
		}

		documents = append(documents, page.Items...)

		if len(page.Items) == 0 || pageNum >= page.LastPage {
			return documents, nil
		}
		pageNum++
	}
}

// FindDocumentURL returns the content URL of the document titled title in the
// folder, or empty when the folder holds no such document.
func (api *API) FindDocumentURL(ctx context.Context, folderID int64, title string) (string, error) {
	documents, err := api.ListDocuments(ctx, folderID)
	if err != nil {
		return "", err
	}

	for _, document := range documents {
		if document.Title == title {
			return document.ContentURL, nil
		}
	}

	return "", nil
}

// UploadDocument posts the file at path into the folder as a multipart upload
// and returns the content URL the portal assigns.
func (api *API) UploadDocument(ctx context.Context, folderID int64, path string) (string, error) {
	ep, err := api.folderDocumentsEndpoint(folderID, PageQuery{})
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("liferay: couldn't open upload file %s: %w", path, err)
	}
	defer file.Close()

	// The upload is buffered whole; migrated images are small.
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("liferay: couldn't create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("liferay: couldn't buffer upload file %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("liferay: couldn't finalise multipart body: %w", err)
	}

	respBody, err := api.request(ctx, http.MethodPost, ep, &body, writer.FormDataContentType())
	if err != nil {
		return "", fmt.Errorf("liferay: couldn't upload document %s: %w", filepath.Base(path), err)
	}

	var uploaded Document
	if err := json.Unmarshal(respBody, &uploaded); err != nil {
		return "", fmt.Errorf("liferay: couldn't parse json response: %w", err)
	}
	if uploaded.ContentURL == "" {
		return "", fmt.Errorf("liferay: upload response for %s carries no contentUrl", filepath.Base(path))
	}

	return uploaded.ContentURL, nil
}
