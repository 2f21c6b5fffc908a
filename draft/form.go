package draft

import (
	"strings"

	"github.com/tdnortheast/artistportal/catalog"
)

// FormTrack is one track row on the new-release form.
type FormTrack struct {
	Title    string
	Duration string
	Explicit bool
	Audio    []byte
}

// Form collects everything needed to upload a brand new release.
type Form struct {
	Title  string
	Type   catalog.ReleaseType
	Date   string // ISO "2006-01-02"
	Cover  []byte
	Tracks []FormTrack
}

// NewForm starts a form with a single empty track, matching the portal's
// initial state.
func NewForm() Form {
	return Form{
		Type:   catalog.TypeSingle,
		Tracks: []FormTrack{{Duration: "0:00"}},
	}
}

func (f Form) AddTrack() Form {
	tracks := make([]FormTrack, len(f.Tracks), len(f.Tracks)+1)
	copy(tracks, f.Tracks)
	f.Tracks = append(tracks, FormTrack{Duration: "0:00"})
	return f
}

// RemoveTrack drops the track at index i. The last remaining track can't be
// removed.
func (f Form) RemoveTrack(i int) Form {
	if len(f.Tracks) <= 1 || i < 0 || i >= len(f.Tracks) {
		return f
	}
	tracks := make([]FormTrack, 0, len(f.Tracks)-1)
	tracks = append(tracks, f.Tracks[:i]...)
	tracks = append(tracks, f.Tracks[i+1:]...)
	f.Tracks = tracks
	return f
}

func (f Form) UpdateTrack(i int, update func(*FormTrack)) Form {
	if i < 0 || i >= len(f.Tracks) {
		return f
	}
	tracks := make([]FormTrack, len(f.Tracks))
	copy(tracks, f.Tracks)
	update(&tracks[i])
	f.Tracks = tracks
	return f
}

// CanSubmit reports whether every mandatory field is present: a title, a
// release date, a cover, and for every track a title, a duration, and an
// audio file.
func (f Form) CanSubmit() bool {
	if strings.TrimSpace(f.Title) == "" {
		return false
	}
	if f.Date == "" {
		return false
	}
	if len(f.Cover) == 0 {
		return false
	}
	if len(f.Tracks) == 0 {
		return false
	}
	for _, track := range f.Tracks {
		if strings.TrimSpace(track.Title) == "" || track.Duration == "" || len(track.Audio) == 0 {
			return false
		}
	}
	return true
}
