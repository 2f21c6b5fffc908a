package ctrlportal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/jinzhu/gorm"

	"github.com/tdnortheast/artistportal/catalog"
	"github.com/tdnortheast/artistportal/changeset"
	"github.com/tdnortheast/artistportal/db"
	"github.com/tdnortheast/artistportal/draft"
	"github.com/tdnortheast/artistportal/publish"
)

// uploads top out around a cover image plus a handful of mp3s
const maxSubmissionBytes = 512 << 20

type artistResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type trackResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Explicit bool   `json:"explicit"`
}

type releaseResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Type        string          `json:"type"`
	ReleaseDate string          `json:"releaseDate"`
	CoverArt    string          `json:"coverArt"`
	Tracks      []trackResponse `json:"tracks"`
}

func newReleaseResponse(release catalog.Release) releaseResponse {
	resp := releaseResponse{
		ID:          release.ID,
		Title:       release.Title,
		Type:        string(release.Type),
		ReleaseDate: release.ReleaseDate,
		CoverArt:    release.CoverArt,
		Tracks:      []trackResponse{},
	}
	for _, track := range release.Tracks {
		resp.Tracks = append(resp.Tracks, trackResponse(track))
	}
	return resp
}

func (c *Controller) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}
	artist, ok := c.gateway.Authenticate(payload.Password)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	session := r.Context().Value(CtxSession).(*sessions.Session)
	session.Values["artist"] = artist.ID
	if err := session.Save(r, w); err != nil {
		respondError(w, http.StatusInternalServerError, "error saving session")
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Artist artistResponse `json:"artist"`
	}{Artist: artistResponse{ID: artist.ID, Name: artist.Name}})
}

func (c *Controller) ServeLogout(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(CtxSession).(*sessions.Session)
	session.Options.MaxAge = -1
	sessLogSave(session, w, r)
	respondJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func (c *Controller) ServeReleases(w http.ResponseWriter, r *http.Request) {
	artist := r.Context().Value(CtxArtist).(*catalog.Artist)
	releases := []releaseResponse{}
	for _, release := range artist.Releases {
		releases = append(releases, newReleaseResponse(release))
	}
	respondJSON(w, http.StatusOK, struct {
		Releases []releaseResponse `json:"releases"`
	}{Releases: releases})
}

// ServeSubmitChanges accepts a multipart edit request for one release and
// relays it as a change-set webhook. Fields: "title" (presence means the
// artist touched the release name), file "cover", and per track
// "track-{id}-title", "track-{id}-explicit", file "track-{id}-audio".
func (c *Controller) ServeSubmitChanges(w http.ResponseWriter, r *http.Request) {
	artist := r.Context().Value(CtxArtist).(*catalog.Artist)
	release, ok := artist.FindRelease(mux.Vars(r)["id"])
	if !ok {
		respondError(w, http.StatusNotFound, "release not found")
		return
	}
	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		respondError(w, http.StatusBadRequest, "bad multipart form")
		return
	}

	d := draft.New(release)
	if titles, ok := r.MultipartForm.Value["title"]; ok && len(titles) > 0 {
		d = d.SetReleaseTitle(titles[0])
	}
	if data, err := formFile(r.MultipartForm, "cover"); err != nil {
		respondError(w, http.StatusBadRequest, "reading cover upload")
		return
	} else if data != nil {
		d = d.SetCover(data)
	}
	for _, track := range release.Tracks {
		if title := r.FormValue(fmt.Sprintf("track-%s-title", track.ID)); title != "" {
			d = d.SetTrackTitle(track.ID, title)
		}
		if explicit := r.FormValue(fmt.Sprintf("track-%s-explicit", track.ID)); explicit != "" {
			d = d.SetTrackExplicit(track.ID, explicit == "true")
		}
		data, err := formFile(r.MultipartForm, fmt.Sprintf("track-%s-audio", track.ID))
		if err != nil {
			respondError(w, http.StatusBadRequest, "reading audio upload")
			return
		}
		if data != nil {
			d = d.SetTrackAudio(track.ID, data)
		}
	}

	if !d.Dirty() {
		respondJSON(w, http.StatusOK, struct {
			Submitted bool `json:"submitted"`
		}{Submitted: false})
		return
	}

	if !c.beginSubmission(artist.ID) {
		respondError(w, http.StatusConflict, publish.ErrSubmitting.Error())
		return
	}
	defer c.endSubmission(artist.ID)

	if err := c.submitter.SubmitEdit(r.Context(), artist.Name, d); err != nil {
		log.Printf("error submitting changes for artist %q: %v\n", artist.ID, err)
		respondError(w, http.StatusBadGateway, "submission failed")
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Submitted bool `json:"submitted"`
	}{Submitted: true})
}

// ServeSubmitRelease accepts a multipart new-release form. Fields: "title",
// "type", "date", file "cover", and per track index "track-{i}-title",
// "track-{i}-duration", "track-{i}-explicit", file "track-{i}-audio".
func (c *Controller) ServeSubmitRelease(w http.ResponseWriter, r *http.Request) {
	artist := r.Context().Value(CtxArtist).(*catalog.Artist)
	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		respondError(w, http.StatusBadRequest, "bad multipart form")
		return
	}

	form := draft.Form{
		Title: r.FormValue("title"),
		Type:  catalog.ReleaseType(r.FormValue("type")),
		Date:  r.FormValue("date"),
	}
	if data, err := formFile(r.MultipartForm, "cover"); err != nil {
		respondError(w, http.StatusBadRequest, "reading cover upload")
		return
	} else if data != nil {
		form.Cover = data
	}
	for i := 0; ; i++ {
		titles, ok := r.MultipartForm.Value[fmt.Sprintf("track-%d-title", i)]
		if !ok {
			break
		}
		track := draft.FormTrack{
			Title:    first(titles),
			Duration: r.FormValue(fmt.Sprintf("track-%d-duration", i)),
			Explicit: r.FormValue(fmt.Sprintf("track-%d-explicit", i)) == "true",
		}
		data, err := formFile(r.MultipartForm, fmt.Sprintf("track-%d-audio", i))
		if err != nil {
			respondError(w, http.StatusBadRequest, "reading audio upload")
			return
		}
		track.Audio = data
		form.Tracks = append(form.Tracks, track)
	}

	if !c.beginSubmission(artist.ID) {
		respondError(w, http.StatusConflict, publish.ErrSubmitting.Error())
		return
	}
	defer c.endSubmission(artist.ID)

	err := c.submitter.SubmitNew(r.Context(), artist.ID, form)
	switch {
	case errors.Is(err, publish.ErrIncomplete):
		respondError(w, http.StatusBadRequest, "missing required fields")
		return
	case err != nil:
		log.Printf("error submitting release for artist %q: %v\n", artist.ID, err)
		respondError(w, http.StatusBadGateway, "submission failed")
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Submitted bool `json:"submitted"`
	}{Submitted: true})
}

// ServeSaveRelease is the relay endpoint the submitter POSTs finished
// releases to. It persists the release and its tracks, then announces it on
// the webhook from the payload. A refused webhook fails the whole request so
// the caller sees the error state.
func (c *Controller) ServeSaveRelease(w http.ResponseWriter, r *http.Request) {
	var payload changeset.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}
	if payload.ArtistID == "" || payload.Release.ID == "" || payload.Release.Title == "" {
		respondError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	now := c.now()
	release := db.Release{
		ID:          payload.Release.ID,
		ArtistID:    payload.ArtistID,
		Title:       payload.Release.Title,
		Type:        string(payload.Release.Type),
		ReleaseDate: payload.Release.ReleaseDate,
		CoverArtURL: payload.Release.CoverArt,
	}
	var tracks []db.Track
	for _, saveTrack := range payload.Release.Tracks {
		tracks = append(tracks, db.Track{
			ID:       saveTrack.ID,
			Title:    saveTrack.Title,
			Duration: saveTrack.Duration,
			Explicit: saveTrack.Explicit,
		})
	}
	err := c.dbc.WithTx(func(tx *gorm.DB) error {
		return db.InsertRelease(tx, release, tracks, now)
	})
	if err != nil {
		log.Printf("error persisting release %q: %v\n", payload.Release.ID, err)
		respondError(w, http.StatusInternalServerError, "error saving release")
		return
	}

	webhookURL := payload.WebhookURL
	if webhookURL == "" {
		webhookURL = c.webhookURL
	}
	message := changeset.NewReleaseMessage(payload.ArtistID, payload.Release, now)
	if err := c.webhook.Send(r.Context(), webhookURL, message); err != nil {
		log.Printf("error relaying release %q to webhook: %v\n", payload.Release.ID, err)
		respondError(w, http.StatusInternalServerError, "error relaying to webhook")
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}

func formFile(form *multipart.Form, key string) ([]byte, error) {
	headers, ok := form.File[key]
	if !ok || len(headers) == 0 {
		return nil, nil
	}
	file, err := headers[0].Open()
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", key, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func sessLogSave(s *sessions.Session, w http.ResponseWriter, r *http.Request) {
	if err := s.Save(r, w); err != nil {
		log.Printf("error saving session: %v\n", err)
	}
}
