// Package tidal is a client for the Tidal open API, authenticated with a
// client-credentials grant.
package tidal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	AuthURL = "https://auth.tidalapi.com/v1/oauth2/token"
	BaseURL = "https://openapi.tidal.com"

	countryCode = "US"
	albumsLimit = 50
)

var ErrTidal = errors.New("tidal error")

type Client struct {
	httpClient   *http.Client
	authURL      string
	baseURL      string
	clientID     string
	clientSecret string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(clientID, clientSecret string) *Client {
	return NewClientCustom(http.DefaultClient, AuthURL, BaseURL, clientID, clientSecret)
}

func NewClientCustom(httpClient *http.Client, authURL, baseURL, clientID, clientSecret string) *Client {
	return &Client{
		httpClient:   httpClient,
		authURL:      authURL,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

type Album struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"releaseDate"`
	Cover       string `json:"cover"`
	Type        string `json:"type"`
}

type Track struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Duration    int    `json:"duration"` // seconds
	Explicit    bool   `json:"explicit"`
	TrackNumber int    `json:"trackNumber"`
}

// ArtistAlbums lists the catalog albums of an artist.
func (c *Client) ArtistAlbums(ctx context.Context, artistID int) ([]Album, error) {
	var resp struct {
		Data []Album `json:"data"`
	}
	path := fmt.Sprintf("/artists/%d/albums?countryCode=%s&limit=%d", artistID, countryCode, albumsLimit)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("get artist albums: %w", err)
	}
	return resp.Data, nil
}

// AlbumTracks lists the tracks of an album.
func (c *Client) AlbumTracks(ctx context.Context, albumID int) ([]Track, error) {
	var resp struct {
		Data []Track `json:"data"`
	}
	path := fmt.Sprintf("/albums/%d/tracks?countryCode=%s", albumID, countryCode)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("get album tracks: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("get access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("status %d: %w", resp.StatusCode, ErrTidal)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// token returns a cached access token, requesting a fresh one with the
// client-credentials grant when the cache is empty or expired.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("status %d: %w", resp.StatusCode, ErrTidal)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token: %w", ErrTidal)
	}

	c.accessToken = tokenResp.AccessToken
	expiresIn := time.Duration(tokenResp.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = time.Hour
	}
	// refresh a little early
	c.tokenExpiry = time.Now().Add(expiresIn - 30*time.Second)
	return c.accessToken, nil
}

// FormatDuration renders a track length in seconds as "m:ss".
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
