// Package gateway assembles the catalog from the store, falling back to the
// bundled dataset when the store can't be read.
package gateway

import (
	"fmt"
	"log"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"github.com/tdnortheast/artistportal/catalog"
	"github.com/tdnortheast/artistportal/db"
)

type Gateway struct {
	db *db.DB
}

func New(dbc *db.DB) *Gateway {
	return &Gateway{db: dbc}
}

// LoadAll fetches every artist with their releases and tracks. Failures at
// any stage, and an empty artist table, both resolve to the bundled fallback
// dataset. Callers never see an error, only possibly-stale data.
func (g *Gateway) LoadAll() []catalog.Artist {
	artists, err := g.loadAll()
	if err != nil {
		log.Printf("loading artists from store, using fallback: %v", err)
		return catalog.Fallback()
	}
	if len(artists) == 0 {
		log.Printf("store returned no artists, using fallback")
		return catalog.Fallback()
	}
	return artists
}

func (g *Gateway) loadAll() ([]catalog.Artist, error) {
	var dbArtists []*db.Artist
	if err := g.db.Order("id").Find(&dbArtists).Error; err != nil {
		return nil, fmt.Errorf("find artists: %w", err)
	}

	var artists []catalog.Artist
	for _, dbArtist := range dbArtists {
		artist := catalog.Artist{
			ID:       dbArtist.ID,
			Name:     dbArtist.Name,
			Password: dbArtist.Password,
		}

		var dbReleases []*db.Release
		err := g.db.
			Where("artist_id=?", dbArtist.ID).
			Find(&dbReleases).
			Error
		if err != nil {
			return nil, fmt.Errorf("find releases for artist %q: %w", dbArtist.ID, err)
		}

		for _, dbRelease := range dbReleases {
			release := catalog.Release{
				ID:          dbRelease.ID,
				Title:       dbRelease.Title,
				Type:        catalog.ReleaseType(dbRelease.Type),
				ReleaseDate: dbRelease.ReleaseDate,
				CoverArt:    dbRelease.CoverArtURL,
			}

			var dbTracks []*db.Track
			err := g.db.
				Where("release_id=?", dbRelease.ID).
				Order("created_at").
				Find(&dbTracks).
				Error
			if err != nil {
				return nil, fmt.Errorf("find tracks for release %q: %w", dbRelease.ID, err)
			}

			for _, dbTrack := range dbTracks {
				release.Tracks = append(release.Tracks, catalog.Track{
					ID:       dbTrack.ID,
					Title:    dbTrack.Title,
					Duration: dbTrack.Duration,
					Explicit: dbTrack.Explicit,
				})
			}
			artist.Releases = append(artist.Releases, release)
		}

		// newest first
		sort.SliceStable(artist.Releases, func(i, j int) bool {
			return artist.Releases[i].ReleaseDate > artist.Releases[j].ReleaseDate
		})

		artists = append(artists, artist)
	}
	return artists, nil
}

// Authenticate finds the artist whose shared secret matches the given
// password. Artists with a stored hash are checked with bcrypt, the rest by
// plain comparison for parity with the fallback dataset.
func (g *Gateway) Authenticate(password string) (*catalog.Artist, bool) {
	var dbArtists []*db.Artist
	if err := g.db.Find(&dbArtists).Error; err != nil || len(dbArtists) == 0 {
		return authenticateFallback(password)
	}

	for _, dbArtist := range dbArtists {
		if dbArtist.PasswordHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(dbArtist.PasswordHash), []byte(password)) == nil {
				return g.findArtist(dbArtist.ID)
			}
			continue
		}
		if dbArtist.Password != "" && dbArtist.Password == password {
			return g.findArtist(dbArtist.ID)
		}
	}
	return nil, false
}

// Artist looks up one artist by id, fallback rules included.
func (g *Gateway) Artist(id string) (*catalog.Artist, bool) {
	return g.findArtist(id)
}

func (g *Gateway) findArtist(id string) (*catalog.Artist, bool) {
	for _, artist := range g.LoadAll() {
		if artist.ID == id {
			artist := artist
			return &artist, true
		}
	}
	return nil, false
}

func authenticateFallback(password string) (*catalog.Artist, bool) {
	for _, artist := range catalog.Fallback() {
		if artist.Password == password {
			artist := artist
			return &artist, true
		}
	}
	return nil, false
}
