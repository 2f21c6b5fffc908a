package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tdnortheast/artistportal/changeset"
)

var ErrSave = errors.New("save release error")

// SaveClient talks to the remote save-release endpoint.
type SaveClient struct {
	httpClient *http.Client
	url        string
	token      string
}

func NewSaveClient(url, token string) *SaveClient {
	return NewSaveClientCustom(http.DefaultClient, url, token)
}

func NewSaveClientCustom(httpClient *http.Client, url, token string) *SaveClient {
	return &SaveClient{httpClient: httpClient, url: url, token: token}
}

// Save POSTs the request. Anything other than a 2xx response fails the whole
// submission.
func (c *SaveClient) Save(ctx context.Context, request changeset.SaveRequest) error {
	var payloadBuf bytes.Buffer
	if err := json.NewEncoder(&payloadBuf).Encode(request); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &payloadBuf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %w", resp.StatusCode, ErrSave)
	}
	return nil
}
