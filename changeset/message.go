package changeset

import (
	"fmt"
	"strings"
	"time"

	"github.com/tdnortheast/artistportal/catalog"
	"github.com/tdnortheast/artistportal/webhook"
)

const embedColor = 16745216

const stampFormat = "1/2/2006, 3:04:05 PM"

// EditRequestMessage renders a change-set as the human-readable notification
// sent when an artist requests edits to an existing release.
func EditRequestMessage(artistName string, original catalog.Release, cs ChangeSet, now time.Time) webhook.Message {
	description := original.Title
	if cs.TitleChanged {
		description = cs.NewTitle
	}

	coverUpdated := "No"
	if cs.CoverChanged {
		coverUpdated = "Yes"
	}

	nameChange := "None"
	if cs.TitleChanged {
		nameChange = fmt.Sprintf("%s → %s", original.Title, cs.NewTitle)
	}

	trackChanges := "None"
	if len(cs.Tracks) > 0 {
		lines := make([]string, 0, len(cs.Tracks))
		for _, change := range cs.Tracks {
			line := fmt.Sprintf("Track %s: %q", change.TrackID, change.NewTitle)
			if change.Explicit {
				line += " [EXPLICIT]"
			}
			if change.AudioURL != "" {
				line += " (with new audio)"
			}
			lines = append(lines, line)
		}
		trackChanges = strings.Join(lines, "\n")
	}

	return webhook.Message{
		Content: fmt.Sprintf("**New Change Request from %s**", artistName),
		Embeds: []webhook.Embed{{
			Title:       original.Title,
			Description: fmt.Sprintf("Release: %s", description),
			Color:       embedColor,
			Fields: []webhook.Field{
				{Name: "Artist", Value: artistName, Inline: true},
				{Name: "Release Type", Value: string(original.Type), Inline: true},
				{Name: "Cover Art Updated", Value: coverUpdated, Inline: true},
				{Name: "Album Name Change", Value: nameChange},
				{Name: "Track Changes", Value: trackChanges},
			},
			Footer: &webhook.Footer{Text: fmt.Sprintf("Requested at %s", now.Format(stampFormat))},
		}},
	}
}

// NewReleaseMessage renders the notification relayed when a brand new
// release is saved.
func NewReleaseMessage(artistID string, release SaveRelease, now time.Time) webhook.Message {
	lines := make([]string, 0, len(release.Tracks))
	for i, track := range release.Tracks {
		line := fmt.Sprintf("%d. %s (%s)", i+1, track.Title, track.Duration)
		if track.Explicit {
			line += " [EXPLICIT]"
		}
		lines = append(lines, line)
	}

	return webhook.Message{
		Content: "**New Release Uploaded**",
		Embeds: []webhook.Embed{{
			Title:       release.Title,
			Description: fmt.Sprintf("New %s by artist", release.Type),
			Color:       embedColor,
			Fields: []webhook.Field{
				{Name: "Artist ID", Value: artistID, Inline: true},
				{Name: "Release Type", Value: string(release.Type), Inline: true},
				{Name: "Release Date", Value: release.ReleaseDate, Inline: true},
				{Name: "Number of Tracks", Value: fmt.Sprint(len(release.Tracks)), Inline: true},
				{Name: "Tracks", Value: strings.Join(lines, "\n")},
			},
			Footer: &webhook.Footer{Text: fmt.Sprintf("Uploaded at %s", now.Format(stampFormat))},
		}},
	}
}
