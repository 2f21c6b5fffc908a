package draft_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdnortheast/artistportal/catalog"
	"github.com/tdnortheast/artistportal/draft"
)

func completeForm() draft.Form {
	f := draft.NewForm()
	f.Title = "EP One"
	f.Type = catalog.TypeAlbum
	f.Date = "2026-03-01"
	f.Cover = []byte("cover bytes")
	f = f.UpdateTrack(0, func(track *draft.FormTrack) {
		track.Title = "One"
		track.Duration = "2:00"
		track.Audio = []byte("audio one")
	})
	f = f.AddTrack()
	f = f.UpdateTrack(1, func(track *draft.FormTrack) {
		track.Title = "Two"
		track.Duration = "2:00"
		track.Audio = []byte("audio two")
	})
	return f
}

func TestFormCanSubmit(t *testing.T) {
	t.Parallel()

	require.True(t, completeForm().CanSubmit())
}

func TestFormMissingFieldsBlockSubmit(t *testing.T) {
	t.Parallel()

	f := completeForm()
	f.Title = "   "
	require.False(t, f.CanSubmit())

	f = completeForm()
	f.Date = ""
	require.False(t, f.CanSubmit())

	f = completeForm()
	f.Cover = nil
	require.False(t, f.CanSubmit())

	f = completeForm().UpdateTrack(1, func(track *draft.FormTrack) { track.Title = "" })
	require.False(t, f.CanSubmit())

	f = completeForm().UpdateTrack(1, func(track *draft.FormTrack) { track.Duration = "" })
	require.False(t, f.CanSubmit())

	f = completeForm().UpdateTrack(0, func(track *draft.FormTrack) { track.Audio = nil })
	require.False(t, f.CanSubmit())
}

func TestFormTrackManagement(t *testing.T) {
	t.Parallel()

	f := draft.NewForm()
	require.Len(t, f.Tracks, 1)
	require.Equal(t, "0:00", f.Tracks[0].Duration)

	// the last track can't be removed
	f = f.RemoveTrack(0)
	require.Len(t, f.Tracks, 1)

	f = f.AddTrack().AddTrack()
	require.Len(t, f.Tracks, 3)

	f = f.UpdateTrack(1, func(track *draft.FormTrack) { track.Title = "middle" })
	f = f.RemoveTrack(0)
	require.Len(t, f.Tracks, 2)
	require.Equal(t, "middle", f.Tracks[0].Title)
}
