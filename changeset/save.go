package changeset

import (
	"github.com/tdnortheast/artistportal/catalog"
)

// SaveTrack is the wire shape of a track in a save-release request.
type SaveTrack struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Explicit bool   `json:"explicit"`
}

// SaveRelease is the wire shape of a release in a save-release request.
type SaveRelease struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Type        catalog.ReleaseType `json:"type"`
	ReleaseDate string              `json:"releaseDate"`
	CoverArt    string              `json:"coverArt"`
	Tracks      []SaveTrack         `json:"tracks"`
}

// SaveRequest is the machine payload POSTed to the save-release endpoint.
type SaveRequest struct {
	ArtistID   string      `json:"artistId"`
	Release    SaveRelease `json:"release"`
	WebhookURL string      `json:"webhookUrl"`
}
