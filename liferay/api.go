package liferay

import (
	"fmt"
	"net/http"
	"net/url"
)

func NewAPI(base string, siteID string, username string, password string) (*API, error) {
	if base == "" {
		return &API{}, fmt.Errorf("liferay: configure the destination portal base with --liferay-api-base")
	}
	if siteID == "" {
		return &API{}, fmt.Errorf("liferay: configure the destination site with --liferay-site-id")
	}
	if username == "" {
		return &API{}, fmt.Errorf("liferay: configure your Liferay username with --liferay-username")
	}
	if password == "" {
		return &API{}, fmt.Errorf("liferay: password is empty, please check liferay-password-cmd")
	}

	u, err := url.ParseRequestURI(base)
	if err != nil {
		return nil, fmt.Errorf("liferay: couldn't parse portal base URL: %w", err)
	}

	a := &API{
		BaseURI: u,
		SiteID:  siteID,

		username: username,
		password: password,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Root of the Liferay portal, e.g. https://portal.example.org.  The headless
	// API namespaces hang off this under /o/.
	BaseURI *url.URL

	// Site the migration targets; used in site-scoped endpoints.
	SiteID string

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Auth info
	username, password string
}
