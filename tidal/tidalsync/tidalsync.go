// Package tidalsync imports catalog releases from Tidal for artists that
// carry a Tidal identifier, writing rows into the same store schema the
// portal reads.
package tidalsync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/tdnortheast/artistportal/db"
	"github.com/tdnortheast/artistportal/tidal"
)

type Syncer struct {
	db     *db.DB
	client *tidal.Client
}

func New(dbc *db.DB, client *tidal.Client) *Syncer {
	return &Syncer{db: dbc, client: client}
}

// Sync enumerates registered artists and inserts any release not already
// present, deduplicated on release title + artist id. A failure syncing one
// artist doesn't stop the rest.
func (s *Syncer) Sync(ctx context.Context) error {
	var artists []*db.Artist
	err := s.db.
		Where("tidal_id IS NOT NULL AND tidal_id != ''").
		Find(&artists).
		Error
	if err != nil {
		return fmt.Errorf("find artists with tidal ids: %w", err)
	}
	if len(artists) == 0 {
		log.Printf("no artists with tidal ids found")
		return nil
	}

	var errs []error
	for _, artist := range artists {
		if err := s.syncArtist(ctx, artist); err != nil {
			log.Printf("error syncing artist %q: %v", artist.Name, err)
			errs = append(errs, fmt.Errorf("artist %q: %w", artist.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Syncer) syncArtist(ctx context.Context, artist *db.Artist) error {
	tidalID, err := strconv.Atoi(artist.TidalID)
	if err != nil {
		return fmt.Errorf("parse tidal id %q: %w", artist.TidalID, err)
	}

	albums, err := s.client.ArtistAlbums(ctx, tidalID)
	if err != nil {
		return fmt.Errorf("list albums: %w", err)
	}

	for _, album := range albums {
		exists, err := s.releaseExists(artist.ID, album.Title)
		if err != nil {
			return fmt.Errorf("check release %q: %w", album.Title, err)
		}
		if exists {
			continue
		}

		tracks, err := s.client.AlbumTracks(ctx, album.ID)
		if err != nil {
			log.Printf("error fetching tracks for album %q: %v", album.Title, err)
			tracks = nil
		}

		if err := s.insertRelease(artist.ID, album, tracks); err != nil {
			log.Printf("error inserting release %q: %v", album.Title, err)
			continue
		}
	}
	return nil
}

func (s *Syncer) releaseExists(artistID, title string) (bool, error) {
	var count int
	err := s.db.
		Model(db.Release{}).
		Where("artist_id=? AND title=?", artistID, title).
		Count(&count).
		Error
	return count > 0, err
}

func (s *Syncer) insertRelease(artistID string, album tidal.Album, tracks []tidal.Track) error {
	release := db.Release{
		ID:          fmt.Sprintf("tidal-%d", album.ID),
		ArtistID:    artistID,
		Title:       album.Title,
		Type:        releaseType(album.Type),
		ReleaseDate: album.ReleaseDate,
		CoverArtURL: album.Cover,
	}
	var rows []db.Track
	for _, track := range tracks {
		rows = append(rows, db.Track{
			ID:       fmt.Sprintf("tidal-track-%d", track.ID),
			Title:    track.Title,
			Duration: tidal.FormatDuration(track.Duration),
			Explicit: track.Explicit,
		})
	}
	return s.db.WithTx(func(tx *gorm.DB) error {
		return db.InsertRelease(tx, release, rows, time.Now())
	})
}

// releaseType mirrors the catalog source's mapping: EPs land as albums,
// everything else as singles.
func releaseType(albumType string) string {
	if albumType == "EP" || albumType == "ep" {
		return "album"
	}
	return "single"
}
