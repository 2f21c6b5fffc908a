// Package publish sequences uploads, diffing, and delivery for release
// submissions. A submission is all-or-nothing: nothing is sent downstream
// until every required asset upload has finished.
package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tdnortheast/artistportal/blobstore"
	"github.com/tdnortheast/artistportal/changeset"
	"github.com/tdnortheast/artistportal/draft"
	"github.com/tdnortheast/artistportal/webhook"
)

var ErrIncomplete = errors.New("release form incomplete")

type Submitter struct {
	uploader   *blobstore.Uploader
	webhook    *webhook.Client
	save       *SaveClient
	webhookURL string
	now        func() time.Time
}

func NewSubmitter(uploader *blobstore.Uploader, webhookClient *webhook.Client, save *SaveClient, webhookURL string) *Submitter {
	return &Submitter{
		uploader:   uploader,
		webhook:    webhookClient,
		save:       save,
		webhookURL: webhookURL,
		now:        time.Now,
	}
}

// NewSubmitterAt is NewSubmitter with an injected clock.
func NewSubmitterAt(uploader *blobstore.Uploader, webhookClient *webhook.Client, save *SaveClient, webhookURL string, now func() time.Time) *Submitter {
	s := NewSubmitter(uploader, webhookClient, save, webhookURL)
	s.now = now
	return s
}

// SubmitEdit uploads the draft's pending assets, builds the change-set, and
// posts the change request notification. A clean draft is a guarded no-op.
func (s *Submitter) SubmitEdit(ctx context.Context, artistName string, d draft.Draft) error {
	if !d.Dirty() {
		return nil
	}

	uploads, err := s.uploader.UploadPending(ctx, d)
	if err != nil {
		return fmt.Errorf("upload pending assets: %w", err)
	}

	original := d.Original()
	cs := changeset.Build(original, d, uploads)
	message := changeset.EditRequestMessage(artistName, original, cs, s.now())

	if err := s.webhook.Send(ctx, s.webhookURL, message); err != nil {
		return fmt.Errorf("send change request: %w", err)
	}
	return nil
}

// SubmitNew uploads every asset on a complete new-release form, then POSTs
// the assembled release to the save endpoint. Incomplete forms never reach
// the network.
func (s *Submitter) SubmitNew(ctx context.Context, artistID string, f draft.Form) error {
	if !f.CanSubmit() {
		return ErrIncomplete
	}

	releaseID := fmt.Sprintf("release-%d", s.now().UnixMilli())

	coverURL, _, err := s.uploader.UploadForm(ctx, releaseID, f)
	if err != nil {
		return fmt.Errorf("upload release assets: %w", err)
	}

	release := changeset.SaveRelease{
		ID:          releaseID,
		Title:       f.Title,
		Type:        f.Type,
		ReleaseDate: f.Date,
		CoverArt:    coverURL,
		Tracks:      make([]changeset.SaveTrack, 0, len(f.Tracks)),
	}
	for i, track := range f.Tracks {
		release.Tracks = append(release.Tracks, changeset.SaveTrack{
			ID:       fmt.Sprint(i + 1),
			Title:    track.Title,
			Duration: track.Duration,
			Explicit: track.Explicit,
		})
	}

	request := changeset.SaveRequest{
		ArtistID:   artistID,
		Release:    release,
		WebhookURL: s.webhookURL,
	}
	if err := s.save.Save(ctx, request); err != nil {
		return fmt.Errorf("save release: %w", err)
	}
	return nil
}
