// Package ctrlportal provides the portal's HTTP surface.
package ctrlportal

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/sentriz/gormstore"

	"github.com/tdnortheast/artistportal/catalog/gateway"
	"github.com/tdnortheast/artistportal/db"
	"github.com/tdnortheast/artistportal/publish"
	"github.com/tdnortheast/artistportal/webhook"
)

type CtxKey int

const (
	CtxSession CtxKey = iota
	CtxArtist
)

const sessionName = "artistportal"

type Controller struct {
	dbc        *db.DB
	gateway    *gateway.Gateway
	submitter  *publish.Submitter
	webhook    *webhook.Client
	webhookURL string
	relayToken string
	sessDB     *gormstore.Store
	now        func() time.Time

	// one submission per artist at a time
	inFlightMu sync.Mutex
	inFlight   map[string]struct{}
}

func New(dbc *db.DB, gw *gateway.Gateway, submitter *publish.Submitter, webhookClient *webhook.Client, webhookURL, relayToken string) (*Controller, error) {
	sessKey, err := dbc.GetSetting(db.SettingSessionKey)
	if err != nil {
		return nil, err
	}
	if sessKey == "" {
		sessKey = string(securecookie.GenerateRandomKey(32))
		if err := dbc.SetSetting(db.SettingSessionKey, sessKey); err != nil {
			return nil, err
		}
	}
	sessDB := gormstore.New(dbc.DB, []byte(sessKey))
	sessDB.SessionOpts.HttpOnly = true
	sessDB.SessionOpts.SameSite = http.SameSiteLaxMode

	return &Controller{
		dbc:        dbc,
		gateway:    gw,
		submitter:  submitter,
		webhook:    webhookClient,
		webhookURL: webhookURL,
		relayToken: relayToken,
		sessDB:     sessDB,
		now:        time.Now,
		inFlight:   map[string]struct{}{},
	}, nil
}

func (c *Controller) CleanupSessions() {
	c.sessDB.Cleanup()
}

func (c *Controller) beginSubmission(artistID string) bool {
	c.inFlightMu.Lock()
	defer c.inFlightMu.Unlock()
	if _, ok := c.inFlight[artistID]; ok {
		return false
	}
	c.inFlight[artistID] = struct{}{}
	return true
}

func (c *Controller) endSubmission(artistID string) {
	c.inFlightMu.Lock()
	defer c.inFlightMu.Unlock()
	delete(c.inFlight, artistID)
}

func respondJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, struct {
		Error string `json:"error"`
	}{Error: message})
}
