// Package browser drives the record browser from outside the server: an
// API client and a Session holding per-section filter state.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abiiranathan/recordroom/database"
	"github.com/abiiranathan/recordroom/ui"
)

// maxBody caps the size of an API response.
const maxBody = 32 << 20

// APIError is returned for non-2xx responses and success:false bodies.
type APIError struct {
	Status  int
	Label   string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Label, e.Status)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Label, e.Message, e.Status)
}

// Client calls the JSON API of a running server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the server at baseURL. A nil hc uses a
// client with a 30 second timeout.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type status struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("GET %s: reading body: %w", path, err)
	}

	var st status
	if err := json.Unmarshal(body, &st); err != nil {
		if resp.StatusCode/100 != 2 {
			return &APIError{Status: resp.StatusCode, Label: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("GET %s: invalid response: %w", path, err)
	}

	if resp.StatusCode/100 != 2 || !st.Success {
		label := st.Error
		if label == "" {
			label = "An error occurred"
		}
		return &APIError{Status: resp.StatusCode, Label: label, Message: st.Message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: invalid response: %w", path, err)
	}
	return nil
}

func queryPath(s ui.FilterState) string {
	return s.Target.APIPath() + "?" + s.Values().Encode()
}

// Taluk fetches one page of taluk office records for s.
func (c *Client) Taluk(ctx context.Context, s ui.FilterState) (database.TalukPage, error) {
	var page database.TalukPage
	err := c.get(ctx, queryPath(s), &page)
	return page, err
}

// Village fetches one page of village records for s.
func (c *Client) Village(ctx context.Context, s ui.FilterState) (database.VillagePage, error) {
	var page database.VillagePage
	err := c.get(ctx, queryPath(s), &page)
	return page, err
}

// ViewFile asks the server to open a file and returns its message.
func (c *Client) ViewFile(ctx context.Context, fileID int64) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.get(ctx, "/files/"+strconv.FormatInt(fileID, 10), &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
