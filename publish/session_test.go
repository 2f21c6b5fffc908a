package publish_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tdnortheast/artistportal/blobstore"
	"github.com/tdnortheast/artistportal/draft"
	"github.com/tdnortheast/artistportal/publish"
	"github.com/tdnortheast/artistportal/webhook"
)

const (
	testSuccessDelay = 20 * time.Millisecond
	testErrorDelay   = 30 * time.Millisecond
)

func newSubmitter(t *testing.T, webhookStatus int) *publish.Submitter {
	t.Helper()

	blobServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(blobServer.Close)

	webhookServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(webhookStatus)
	}))
	t.Cleanup(webhookServer.Close)

	return publish.NewSubmitter(
		blobstore.NewUploader(blobstore.NewClient(blobServer.URL, "")),
		webhook.NewClient(),
		publish.NewSaveClient(webhookServer.URL, ""),
		webhookServer.URL,
	)
}

func waitForStatus(t *testing.T, status func() publish.Status, want publish.Status) {
	t.Helper()
	require.Eventually(t, func() bool { return status() == want }, time.Second, time.Millisecond)
}

func TestSessionSuccessClearsDraft(t *testing.T) {
	t.Parallel()

	session := publish.NewSessionDelays(testRelease(), testSuccessDelay, testErrorDelay)
	require.Equal(t, publish.StatusIdle, session.Status())

	session.Update(func(d draft.Draft) draft.Draft {
		return d.SetTrackTitle("1", "Intro (Remix)")
	})
	require.True(t, session.Draft().Dirty())

	err := session.Submit(context.Background(), newSubmitter(t, http.StatusOK), "artist")
	require.NoError(t, err)
	require.Equal(t, publish.StatusSuccess, session.Status())

	// draft kept until the success state dismisses
	require.True(t, session.Draft().Dirty())

	waitForStatus(t, session.Status, publish.StatusIdle)
	require.False(t, session.Draft().Dirty())
}

func TestSessionErrorPreservesDraft(t *testing.T) {
	t.Parallel()

	session := publish.NewSessionDelays(testRelease(), testSuccessDelay, testErrorDelay)
	session.Update(func(d draft.Draft) draft.Draft {
		return d.SetReleaseTitle("Second Light")
	})

	err := session.Submit(context.Background(), newSubmitter(t, http.StatusInternalServerError), "artist")
	require.Error(t, err)
	require.Equal(t, publish.StatusError, session.Status())

	waitForStatus(t, session.Status, publish.StatusIdle)

	// the artist can retry without re-entering anything
	require.True(t, session.Draft().Dirty())
	title, ok := session.Draft().TitleOverride()
	require.True(t, ok)
	require.Equal(t, "Second Light", title)
}

func TestSessionCleanSubmitStaysIdle(t *testing.T) {
	t.Parallel()

	session := publish.NewSessionDelays(testRelease(), testSuccessDelay, testErrorDelay)
	err := session.Submit(context.Background(), newSubmitter(t, http.StatusOK), "artist")
	require.NoError(t, err)
	require.Equal(t, publish.StatusIdle, session.Status())
}

func TestSessionRejectsConcurrentSubmit(t *testing.T) {
	t.Parallel()

	session := publish.NewSessionDelays(testRelease(), time.Minute, time.Minute)
	session.Update(func(d draft.Draft) draft.Draft {
		return d.SetReleaseTitle("Second Light")
	})

	require.NoError(t, session.Submit(context.Background(), newSubmitter(t, http.StatusOK), "artist"))
	require.Equal(t, publish.StatusSuccess, session.Status())

	// still in success, a second submit is refused
	err := session.Submit(context.Background(), newSubmitter(t, http.StatusOK), "artist")
	require.ErrorIs(t, err, publish.ErrSubmitting)
}

func TestSessionCancel(t *testing.T) {
	t.Parallel()

	session := publish.NewSession(testRelease())
	session.Update(func(d draft.Draft) draft.Draft {
		return d.SetTrackExplicit("1", true)
	})
	require.True(t, session.Draft().Dirty())

	session.Cancel()
	require.False(t, session.Draft().Dirty())
}

func TestFormSessionLifecycle(t *testing.T) {
	t.Parallel()

	session := publish.NewFormSessionDelays(testSuccessDelay, testErrorDelay)

	// incomplete form rejected with no state change
	err := session.Submit(context.Background(), newSubmitter(t, http.StatusOK), "yuno-sweez")
	require.ErrorIs(t, err, publish.ErrIncomplete)
	require.Equal(t, publish.StatusIdle, session.Status())

	session.Update(func(draft.Form) draft.Form { return completeForm() })

	err = session.Submit(context.Background(), newSubmitter(t, http.StatusOK), "yuno-sweez")
	require.NoError(t, err)
	require.Equal(t, publish.StatusSuccess, session.Status())

	waitForStatus(t, session.Status, publish.StatusIdle)
	require.False(t, session.Form().CanSubmit()) // cleared back to an empty form
}
