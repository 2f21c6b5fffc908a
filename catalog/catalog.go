// Package catalog holds the portal's view of artists, releases, and tracks.
package catalog

import (
	"fmt"
	"time"
)

type ReleaseType string

const (
	TypeAlbum  ReleaseType = "album"
	TypeSingle ReleaseType = "single"
)

type Track struct {
	ID       string
	Title    string
	Duration string // "m:ss", kept as-is from the store
	Explicit bool
}

type Release struct {
	ID          string
	Title       string
	Type        ReleaseType
	ReleaseDate string // ISO "2006-01-02"
	CoverArt    string
	Tracks      []Track
}

type Artist struct {
	ID       string
	Name     string
	Password string
	Releases []Release
}

func (a *Artist) FindRelease(id string) (Release, bool) {
	for _, release := range a.Releases {
		if release.ID == id {
			return release, true
		}
	}
	return Release{}, false
}

func (r *Release) FindTrack(id string) (Track, bool) {
	for _, track := range r.Tracks {
		if track.ID == id {
			return track, true
		}
	}
	return Track{}, false
}

// FormatReleaseDate renders an ISO date like "2026-01-19" as
// "January 19, 2026". Dates that don't parse are passed through untouched.
func FormatReleaseDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%s %d, %d", t.Month(), t.Day(), t.Year())
}
