package webhook_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdnortheast/artistportal/webhook"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestSend(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		bodyBytes, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{
			"content": "**New Change Request from artist**",
			"embeds": [{
				"title": "First Light",
				"description": "Release: First Light",
				"color": 16745216,
				"fields": [{"name": "Artist", "value": "artist", "inline": true}]
			}]
		}`, string(bodyBytes))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	err := webhook.NewClient().Send(context.Background(), server.URL, webhook.Message{
		Content: "**New Change Request from artist**",
		Embeds: []webhook.Embed{{
			Title:       "First Light",
			Description: "Release: First Light",
			Color:       16745216,
			Fields:      []webhook.Field{{Name: "Artist", Value: "artist", Inline: true}},
		}},
	})
	require.NoError(t, err)
}

func TestSendRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "Invalid Webhook Token"}`))
	}))
	t.Cleanup(server.Close)

	err := webhook.NewClient().Send(context.Background(), server.URL, webhook.Message{Content: "hi"})
	require.ErrorIs(t, err, webhook.ErrWebhook)
}
