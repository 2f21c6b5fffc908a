package ctrlportal

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

func (c *Controller) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := c.sessDB.Get(r, sessionName)
		withSession := context.WithValue(r.Context(), CtxSession, session)
		next.ServeHTTP(w, r.WithContext(withSession))
	})
}

func (c *Controller) WithArtistSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// session exists at this point
		session := r.Context().Value(CtxSession).(*sessions.Session)
		artistID, ok := session.Values["artist"].(string)
		if !ok {
			respondError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		artist, ok := c.gateway.Artist(artistID)
		if !ok {
			// the artist in the client's session no longer exists in the
			// store, drop the session
			session.Options.MaxAge = -1
			sessLogSave(session, w, r)
			respondError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		withArtist := context.WithValue(r.Context(), CtxArtist, artist)
		next.ServeHTTP(w, r.WithContext(withArtist))
	})
}

// WithRelayToken guards the machine-to-machine save-release endpoint. A
// controller with no token configured leaves it open.
func (c *Controller) WithRelayToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.relayToken != "" && r.Header.Get("Authorization") != "Bearer "+c.relayToken {
			respondError(w, http.StatusUnauthorized, "bad token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
