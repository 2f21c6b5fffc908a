package ctrlportal

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tdnortheast/artistportal/handlerutil"
)

func AddRoutes(c *Controller, r *mux.Router, logHTTP bool) {
	if logHTTP {
		r.Use(handlerutil.Log)
	}
	r.Use(handlerutil.BasicCORS)

	// public routes (creates session)
	r.Use(c.WithSession)
	r.Handle("/login", http.HandlerFunc(c.ServeLogin)).Methods(http.MethodPost)
	r.Handle("/logout", http.HandlerFunc(c.ServeLogout)).Methods(http.MethodPost)

	// relay route (token, not session)
	r.Handle("/save-release", c.WithRelayToken(http.HandlerFunc(c.ServeSaveRelease))).Methods(http.MethodPost)

	// artist routes (if session is valid)
	routArtist := r.NewRoute().Subrouter()
	routArtist.Use(c.WithArtistSession)
	routArtist.Handle("/api/releases", http.HandlerFunc(c.ServeReleases)).Methods(http.MethodGet)
	routArtist.Handle("/api/releases", http.HandlerFunc(c.ServeSubmitRelease)).Methods(http.MethodPost)
	routArtist.Handle("/api/releases/{id}/changes", http.HandlerFunc(c.ServeSubmitChanges)).Methods(http.MethodPost)

	notFoundHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})
	// middlewares should be run for not found handler
	// https://github.com/gorilla/mux/issues/416
	notFoundRoute := r.NewRoute().Handler(notFoundHandler)
	r.NotFoundHandler = notFoundRoute.GetHandler()
}
