// Package changeset computes the minimal difference between a release and a
// draft, and renders it into submission payloads.
package changeset

import (
	"github.com/tdnortheast/artistportal/catalog"
	"github.com/tdnortheast/artistportal/draft"
)

// Uploads maps finished asset uploads to their public URLs.
type Uploads struct {
	CoverURL   string
	TrackAudio map[string]string // track id -> url
}

// TrackChange is one diverging track. NewTitle and Explicit always carry the
// current values, changed or not; AudioURL is set only when new audio was
// uploaded for the track.
type TrackChange struct {
	TrackID  string
	NewTitle string
	Explicit bool
	AudioURL string
}

type ChangeSet struct {
	TitleChanged bool
	NewTitle     string // valid when TitleChanged
	CoverChanged bool
	CoverURL     string
	Tracks       []TrackChange
}

func (cs ChangeSet) Empty() bool {
	return !cs.TitleChanged && !cs.CoverChanged && len(cs.Tracks) == 0
}

// Build diffs a draft against its original release. A release-title override
// counts as a change by presence, even when textually identical to the
// original. Track entries appear in original track order, one per diverging
// track.
func Build(original catalog.Release, d draft.Draft, uploaded Uploads) ChangeSet {
	var cs ChangeSet

	if title, ok := d.TitleOverride(); ok {
		cs.TitleChanged = true
		cs.NewTitle = title
	}
	if uploaded.CoverURL != "" {
		cs.CoverChanged = true
		cs.CoverURL = uploaded.CoverURL
	}

	for _, track := range original.Tracks {
		edit, ok := d.Edit(track.ID)
		if !ok {
			continue
		}
		audioURL := uploaded.TrackAudio[track.ID]
		if edit.Title == track.Title && edit.Explicit == track.Explicit && audioURL == "" {
			continue
		}
		cs.Tracks = append(cs.Tracks, TrackChange{
			TrackID:  track.ID,
			NewTitle: edit.Title,
			Explicit: edit.Explicit,
			AudioURL: audioURL,
		})
	}
	return cs
}
