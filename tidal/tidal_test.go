package tidal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdnortheast/artistportal/tidal"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*tidal.Client, *int32) {
	t.Helper()

	var tokenRequests int32
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenRequests, 1)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		require.Equal(t, "id1", r.PostForm.Get("client_id"))
		require.Equal(t, "secret1", r.PostForm.Get("client_secret"))
		w.Write([]byte(`{"access_token": "token1", "expires_in": 3600}`))
	}))
	t.Cleanup(authServer.Close)

	apiServer := httptest.NewServer(handler)
	t.Cleanup(apiServer.Close)

	client := tidal.NewClientCustom(http.DefaultClient, authServer.URL, apiServer.URL, "id1", "secret1")
	return client, &tokenRequests
}

func TestArtistAlbums(t *testing.T) {
	t.Parallel()

	client, tokenRequests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/artists/42/albums", r.URL.Path)
		require.Equal(t, "US", r.URL.Query().Get("countryCode"))
		require.Equal(t, "Bearer token1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data": [
			{"id": 1, "title": "First", "releaseDate": "2026-01-01", "cover": "https://cdn/1.jpg", "type": "EP"},
			{"id": 2, "title": "Second", "releaseDate": "2026-02-01", "cover": "https://cdn/2.jpg", "type": "SINGLE"}
		]}`))
	})

	albums, err := client.ArtistAlbums(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, albums, 2)
	require.Equal(t, "First", albums[0].Title)
	require.Equal(t, "EP", albums[0].Type)

	// token fetched once, then cached
	_, err = client.ArtistAlbums(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(tokenRequests))
}

func TestAlbumTracks(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/albums/7/tracks", r.URL.Path)
		w.Write([]byte(`{"data": [
			{"id": 10, "title": "One", "duration": 120, "explicit": true, "trackNumber": 1}
		]}`))
	})

	tracks, err := client.AlbumTracks(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	require.Equal(t, 120, tracks[0].Duration)
	require.True(t, tracks[0].Explicit)
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.ArtistAlbums(context.Background(), 42)
	require.ErrorIs(t, err, tidal.ErrTidal)
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	require.Equal(t, "2:00", tidal.FormatDuration(120))
	require.Equal(t, "2:49", tidal.FormatDuration(169))
	require.Equal(t, "0:05", tidal.FormatDuration(5))
	require.Equal(t, "10:09", tidal.FormatDuration(609))
}
