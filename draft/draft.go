// Package draft holds the in-memory edit buffer for a release. Drafts are
// values: every setter returns a new Draft and leaves the receiver alone, so
// a session can throw away an edit by simply dropping the value.
package draft

import (
	"github.com/tdnortheast/artistportal/catalog"
)

// TrackEdit carries the pending state of one original track. There is
// exactly one per original track, in original order, looked up by id.
type TrackEdit struct {
	ID       string
	Title    string
	Explicit bool
	Audio    []byte // pending audio upload, nil if none
}

type Draft struct {
	original     catalog.Release
	title        *string // presence means "changed", even if equal
	cover        []byte
	coverPreview string
	edits        []TrackEdit
}

// New seeds a clean draft from a release.
func New(release catalog.Release) Draft {
	edits := make([]TrackEdit, 0, len(release.Tracks))
	for _, track := range release.Tracks {
		edits = append(edits, TrackEdit{
			ID:       track.ID,
			Title:    track.Title,
			Explicit: track.Explicit,
		})
	}
	return Draft{
		original:     release,
		coverPreview: release.CoverArt,
		edits:        edits,
	}
}

func (d Draft) Original() catalog.Release { return d.original }

// TitleOverride reports the release-title override and whether one is set.
func (d Draft) TitleOverride() (string, bool) {
	if d.title == nil {
		return "", false
	}
	return *d.title, true
}

// Title is the release title as the user currently sees it.
func (d Draft) Title() string {
	if d.title != nil {
		return *d.title
	}
	return d.original.Title
}

func (d Draft) Cover() []byte { return d.cover }

// CoverPreview is a displayable stand-in for the cover: the original URL
// until a new image is attached, a data URL afterwards.
func (d Draft) CoverPreview() string { return d.coverPreview }

func (d Draft) Edits() []TrackEdit {
	out := make([]TrackEdit, len(d.edits))
	copy(out, d.edits)
	return out
}

func (d Draft) Edit(trackID string) (TrackEdit, bool) {
	for _, edit := range d.edits {
		if edit.ID == trackID {
			return edit, true
		}
	}
	return TrackEdit{}, false
}

func (d Draft) SetReleaseTitle(title string) Draft {
	d.title = &title
	return d
}

// SetCover attaches new cover bytes and refreshes the preview.
func (d Draft) SetCover(data []byte) Draft {
	d.cover = data
	d.coverPreview = previewDataURL(data)
	return d
}

func (d Draft) SetTrackTitle(trackID, title string) Draft {
	return d.updateEdit(trackID, func(edit *TrackEdit) { edit.Title = title })
}

func (d Draft) SetTrackExplicit(trackID string, explicit bool) Draft {
	return d.updateEdit(trackID, func(edit *TrackEdit) { edit.Explicit = explicit })
}

func (d Draft) SetTrackAudio(trackID string, data []byte) Draft {
	return d.updateEdit(trackID, func(edit *TrackEdit) { edit.Audio = data })
}

func (d Draft) updateEdit(trackID string, update func(*TrackEdit)) Draft {
	edits := make([]TrackEdit, len(d.edits))
	copy(edits, d.edits)
	for i := range edits {
		if edits[i].ID == trackID {
			update(&edits[i])
			break
		}
	}
	d.edits = edits
	return d
}

// Dirty reports whether submitting would change anything. A release-title
// override counts by presence alone; track edits count by value.
func (d Draft) Dirty() bool {
	if d.title != nil {
		return true
	}
	if len(d.cover) > 0 {
		return true
	}
	for _, edit := range d.edits {
		orig, ok := d.original.FindTrack(edit.ID)
		if !ok {
			continue
		}
		if edit.Title != orig.Title || edit.Explicit != orig.Explicit || len(edit.Audio) > 0 {
			return true
		}
	}
	return false
}

// Reset returns a clean draft of the same release.
func (d Draft) Reset() Draft {
	return New(d.original)
}
