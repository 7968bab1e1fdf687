package liferay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// request performs one authenticated call and returns the raw response body.
// Every call carries basic auth; the headless APIs reject anonymous writes.
func (api *API) request(ctx context.Context, method string, url *url.URL, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url.String(), body)
	if err != nil {
		return nil, fmt.Errorf("liferay: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.SetBasicAuth(api.username, api.password)

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("liferay: couldn't perform http request: %w", err)
	}

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("liferay: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("liferay: couldn't close response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return respBody, nil
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("liferay: authentication failed")
	case http.StatusForbidden:
		return nil, fmt.Errorf("liferay: access denied: %s: %s", response.Status, url.String())
	case http.StatusNotFound:
		return nil, fmt.Errorf("liferay: not found: %s", url.String())
	case http.StatusConflict:
		return nil, fmt.Errorf("liferay: conflict: %s: %s", response.Status, excerpt(respBody))
	case http.StatusBadRequest:
		return nil, fmt.Errorf("liferay: bad request: %s: %s", response.Status, excerpt(respBody))
	case http.StatusServiceUnavailable:
		return nil, fmt.Errorf("liferay: service is not available: %s", response.Status)
	case http.StatusInternalServerError:
		return nil, fmt.Errorf("liferay: internal server error: %s: %s", response.Status, excerpt(respBody))
	}

	return nil, fmt.Errorf("liferay: unknown HTTP response status: %s: %s", response.Status, url.String())
}

func (api *API) getJSON(ctx context.Context, url *url.URL, into any) error {
	body, err := api.request(ctx, http.MethodGet, url, nil, "")
	if err != nil {
		return fmt.Errorf("liferay: couldn't perform request: %w", err)
	}

	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("liferay: couldn't parse json response: %w", err)
	}

	return nil
}

func (api *API) sendJSON(ctx context.Context, method string, url *url.URL, payload any, into any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("liferay: couldn't marshal request payload: %w", err)
	}

	body, err := api.request(ctx, method, url, bytes.NewReader(encoded), "application/json")
	if err != nil {
		return fmt.Errorf("liferay: couldn't perform request: %w", err)
	}

	if into == nil {
		return nil
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("liferay: couldn't parse json response: %w", err)
	}

	return nil
}

// Error payloads can be big HTML pages; keep logged bodies short.
func excerpt(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
