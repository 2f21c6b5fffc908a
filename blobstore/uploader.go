package blobstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tdnortheast/artistportal/changeset"
	"github.com/tdnortheast/artistportal/draft"
)

// Uploader pushes a draft's pending assets to the store before submission.
// Track uploads fan out concurrently; the join is all-or-nothing, so a
// partial upload set is never handed to the caller.
type Uploader struct {
	client *Client
	now    func() time.Time
}

func NewUploader(client *Client) *Uploader {
	return &Uploader{client: client, now: time.Now}
}

// NewUploaderAt is NewUploader with an injected clock.
func NewUploaderAt(client *Client, now func() time.Time) *Uploader {
	return &Uploader{client: client, now: now}
}

func CoverPath(releaseID string, stamp time.Time) string {
	return fmt.Sprintf("releases/%s/cover-%d", releaseID, stamp.UnixMilli())
}

func TrackPath(releaseID, trackID string, stamp time.Time) string {
	return fmt.Sprintf("releases/%s/tracks/%s-%d.mp3", releaseID, trackID, stamp.UnixMilli())
}

// UploadPending uploads the draft's new cover and any new track audio,
// returning the resulting URLs keyed by role. Any single failure aborts the
// whole set.
func (u *Uploader) UploadPending(ctx context.Context, d draft.Draft) (changeset.Uploads, error) {
	releaseID := d.Original().ID
	stamp := u.now()

	uploads := changeset.Uploads{TrackAudio: map[string]string{}}

	if cover := d.Cover(); len(cover) > 0 {
		coverURL, err := u.client.Put(ctx, CoverPath(releaseID, stamp), cover)
		if err != nil {
			return changeset.Uploads{}, fmt.Errorf("upload cover: %w", err)
		}
		uploads.CoverURL = coverURL
	}

	var mu sync.Mutex
	group, ctx := errgroup.WithContext(ctx)
	for _, edit := range d.Edits() {
		edit := edit
		if len(edit.Audio) == 0 {
			continue
		}
		group.Go(func() error {
			audioURL, err := u.client.Put(ctx, TrackPath(releaseID, edit.ID, stamp), edit.Audio)
			if err != nil {
				return fmt.Errorf("upload audio for track %s: %w", edit.ID, err)
			}
			mu.Lock()
			uploads.TrackAudio[edit.ID] = audioURL
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return changeset.Uploads{}, err
	}
	return uploads, nil
}

// UploadForm uploads a new-release form's cover and every track audio. The
// returned audio URLs are indexed like the form's tracks.
func (u *Uploader) UploadForm(ctx context.Context, releaseID string, f draft.Form) (string, []string, error) {
	stamp := u.now()

	coverURL, err := u.client.Put(ctx, CoverPath(releaseID, stamp), f.Cover)
	if err != nil {
		return "", nil, fmt.Errorf("upload cover: %w", err)
	}

	audioURLs := make([]string, len(f.Tracks))
	group, ctx := errgroup.WithContext(ctx)
	for i, track := range f.Tracks {
		i, track := i, track
		group.Go(func() error {
			trackID := fmt.Sprint(i + 1)
			audioURL, err := u.client.Put(ctx, TrackPath(releaseID, trackID, stamp), track.Audio)
			if err != nil {
				return fmt.Errorf("upload audio for track %s: %w", trackID, err)
			}
			audioURLs[i] = audioURL
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return "", nil, err
	}
	return coverURL, audioURLs, nil
}
