// Package blobstore writes binary assets to the hosted object store and
// reports back their public URLs. The portal never reads objects back.
package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrUpload = errors.New("upload error")

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(baseURL, token string) *Client {
	return NewClientCustom(http.DefaultClient, baseURL, token)
}

func NewClientCustom(httpClient *http.Client, baseURL, token string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
	}
}

type putResponse struct {
	URL string `json:"url"`
}

// Put stores data under the given path and returns the object's public
// retrieval URL. Anything other than a 2xx response is an error.
func (c *Client) Put(ctx context.Context, path string, data []byte) (string, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimPrefix(path, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http put: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %w", resp.StatusCode, ErrUpload)
	}

	// the store may hand back a download URL of its own, otherwise the
	// object is reachable where we put it
	var putResp putResponse
	if err := json.NewDecoder(resp.Body).Decode(&putResp); err == nil && putResp.URL != "" {
		return putResp.URL, nil
	}
	return url, nil
}
