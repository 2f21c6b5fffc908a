package tidalsync_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdnortheast/artistportal/db"
	"github.com/tdnortheast/artistportal/tidal"
	"github.com/tdnortheast/artistportal/tidal/tidalsync"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	testDB, err := db.NewMock()
	require.NoError(t, err)
	require.NoError(t, testDB.Migrate(db.MigrationContext{}))
	return testDB
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *tidal.Client {
	t.Helper()

	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token": "token1", "expires_in": 3600}`))
	}))
	t.Cleanup(authServer.Close)

	apiServer := httptest.NewServer(handler)
	t.Cleanup(apiServer.Close)

	return tidal.NewClientCustom(http.DefaultClient, authServer.URL, apiServer.URL, "id1", "secret1")
}

func TestSync(t *testing.T) {
	t.Parallel()

	testDB := newTestDB(t)
	require.NoError(t, testDB.Create(&db.Artist{ID: "yuno-sweez", Name: "Yuno $weez", TidalID: "42"}).Error)
	require.NoError(t, testDB.Create(&db.Artist{ID: "jamar", Name: "J@M@R"}).Error) // no tidal id, skipped

	// one release already present under its catalog title
	require.NoError(t, testDB.Create(&db.Release{ID: "sweez-city", ArtistID: "yuno-sweez", Title: "$weezCity", Type: "album", ReleaseDate: "2025-12-25"}).Error)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/artists/42/albums":
			w.Write([]byte(`{"data": [
				{"id": 1, "title": "$weezCity", "releaseDate": "2025-12-25", "cover": "https://cdn/1.jpg", "type": "EP"},
				{"id": 2, "title": "Fresh Tape", "releaseDate": "2026-03-01", "cover": "https://cdn/2.jpg", "type": "EP"},
				{"id": 3, "title": "Loose Single", "releaseDate": "2026-04-01", "cover": "https://cdn/3.jpg", "type": "SINGLE"}
			]}`))
		case "/albums/2/tracks":
			w.Write([]byte(`{"data": [
				{"id": 20, "title": "Opener", "duration": 169, "explicit": true, "trackNumber": 1},
				{"id": 21, "title": "Closer", "duration": 120, "trackNumber": 2}
			]}`))
		case "/albums/3/tracks":
			w.Write([]byte(`{"data": []}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	require.NoError(t, tidalsync.New(testDB, client).Sync(context.Background()))

	// the existing release was left alone, the two new ones inserted
	var releases []*db.Release
	require.NoError(t, testDB.Where("artist_id=?", "yuno-sweez").Find(&releases).Error)
	require.Len(t, releases, 3)

	var fresh db.Release
	require.NoError(t, testDB.Where("id=?", "tidal-2").First(&fresh).Error)
	require.Equal(t, "Fresh Tape", fresh.Title)
	require.Equal(t, "album", fresh.Type) // EP maps to album
	require.Equal(t, "https://cdn/2.jpg", fresh.CoverArtURL)

	var loose db.Release
	require.NoError(t, testDB.Where("id=?", "tidal-3").First(&loose).Error)
	require.Equal(t, "single", loose.Type)

	var tracks []*db.Track
	require.NoError(t, testDB.Where("release_id=?", "tidal-2").Order("created_at").Find(&tracks).Error)
	require.Len(t, tracks, 2)
	require.Equal(t, "tidal-track-20", tracks[0].ID)
	require.Equal(t, "2:49", tracks[0].Duration)
	require.True(t, tracks[0].Explicit)
	require.Equal(t, "Closer", tracks[1].Title)
	require.False(t, tracks[1].Explicit)
}

func TestSyncIsIdempotent(t *testing.T) {
	t.Parallel()

	testDB := newTestDB(t)
	require.NoError(t, testDB.Create(&db.Artist{ID: "yuno-sweez", Name: "Yuno $weez", TidalID: "42"}).Error)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/artists/42/albums":
			w.Write([]byte(`{"data": [{"id": 2, "title": "Fresh Tape", "releaseDate": "2026-03-01", "cover": "", "type": "EP"}]}`))
		case "/albums/2/tracks":
			w.Write([]byte(`{"data": []}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	syncer := tidalsync.New(testDB, client)
	require.NoError(t, syncer.Sync(context.Background()))
	require.NoError(t, syncer.Sync(context.Background()))

	var count int
	require.NoError(t, testDB.Model(db.Release{}).Count(&count).Error)
	require.Equal(t, 1, count)
}

func TestSyncContinuesPastFailingArtist(t *testing.T) {
	t.Parallel()

	testDB := newTestDB(t)
	require.NoError(t, testDB.Create(&db.Artist{ID: "bad", Name: "bad artist", TidalID: "1"}).Error)
	require.NoError(t, testDB.Create(&db.Artist{ID: "good", Name: "good artist", TidalID: "2"}).Error)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/artists/1/albums":
			w.WriteHeader(http.StatusInternalServerError)
		case "/artists/2/albums":
			w.Write([]byte(`{"data": [{"id": 9, "title": "Survivor", "releaseDate": "2026-05-01", "cover": "", "type": "SINGLE"}]}`))
		case "/albums/9/tracks":
			w.Write([]byte(`{"data": []}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	err := tidalsync.New(testDB, client).Sync(context.Background())
	require.Error(t, err)

	var count int
	require.NoError(t, testDB.Model(db.Release{}).Where("artist_id=?", "good").Count(&count).Error)
	require.Equal(t, 1, count)
}

func TestSyncNoRegisteredArtists(t *testing.T) {
	t.Parallel()

	testDB := newTestDB(t)
	require.NoError(t, testDB.Create(&db.Artist{ID: "jamar", Name: "J@M@R"}).Error)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request to %s", r.URL.Path)
	})

	require.NoError(t, tidalsync.New(testDB, client).Sync(context.Background()))
}
