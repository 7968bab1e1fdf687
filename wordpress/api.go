package wordpress

import (
	"fmt"
	"net/http"
	"net/url"
)

func NewAPI(baseURL string) (*API, error) {
	if baseURL == "" {
		return &API{}, fmt.Errorf("wordpress: configure the source REST base with --wordpress-api-url")
	}

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't parse REST API URL: %w", err)
	}

	a := &API{
		BaseURI: u,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Base of the source site's REST namespace, e.g. https://www2.tc.df.gov.br/wp-json/wp/v2
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client
}
