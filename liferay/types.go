package liferay

// See https://learn.liferay.com/w/dxp/headless-delivery-apis.  Types carry only
// the fields the migration reads or sends.

type Vocabulary struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Category struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Folder struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type Document struct {
	ID         int64  `json:"id,omitempty"`
	Title      string `json:"title,omitempty"`
	ContentURL string `json:"contentUrl,omitempty"`
}

type StructuredContent struct {
	ID              int64  `json:"id,omitempty"`
	Title           string `json:"title,omitempty"`
	FriendlyURLPath string `json:"friendlyUrlPath,omitempty"`
}

// ContentFieldValue is the value envelope of a structured content field.
type ContentFieldValue struct {
	Data string `json:"data"`
}

type ContentField struct {
	Name              string            `json:"name"`
	ContentFieldValue ContentFieldValue `json:"contentFieldValue"`
}

// ContentCreate is the creation payload for POST /sites/{id}/structured-contents.
type ContentCreate struct {
	ContentStructureID  int64          `json:"contentStructureId"`
	Title               string         `json:"title"`
	FriendlyURLPath     string         `json:"friendlyUrlPath"`
	DateCreated         string         `json:"dateCreated,omitempty"`
	TaxonomyCategoryIDs []int64        `json:"taxonomyCategoryIds"`
	ContentFields       []ContentField `json:"contentFields"`
}

// Liferay collection responses share one envelope shape.

type vocabularyPage struct {
	Items    []Vocabulary `json:"items"`
	LastPage int          `json:"lastPage"`
}

type categoryPage struct {
	Items    []Category `json:"items"`
	LastPage int        `json:"lastPage"`
}

type folderPage struct {
	Items    []Folder `json:"items"`
	LastPage int      `json:"lastPage"`
}

type documentPage struct {
	Items    []Document `json:"items"`
	LastPage int        `json:"lastPage"`
}

type contentPage struct {
	Items    []StructuredContent `json:"items"`
	LastPage int                 `json:"lastPage"`
}
