package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/oklog/run"
	"go.senan.xyz/flagconf"

	"github.com/tdnortheast/artistportal"
	"github.com/tdnortheast/artistportal/blobstore"
	"github.com/tdnortheast/artistportal/catalog/gateway"
	"github.com/tdnortheast/artistportal/db"
	"github.com/tdnortheast/artistportal/publish"
	"github.com/tdnortheast/artistportal/server/ctrlportal"
	"github.com/tdnortheast/artistportal/tidal"
	"github.com/tdnortheast/artistportal/tidal/tidalsync"
	"github.com/tdnortheast/artistportal/webhook"
)

func main() {
	confListenAddr := flag.String("listen-addr", "0.0.0.0:4848", "listen address (optional)")

	confTLSCert := flag.String("tls-cert", "", "path to TLS certificate (optional)")
	confTLSKey := flag.String("tls-key", "", "path to TLS private key (optional)")

	confDBPath := flag.String("db-path", "artistportal.db", "path to database (optional)")

	confBlobstoreURL := flag.String("blobstore-url", "", "base url of the release asset store")
	confBlobstoreToken := flag.String("blobstore-token", "", "bearer token for the release asset store (optional)")

	confWebhookURL := flag.String("webhook-url", "", "webhook url for change request and release notifications")
	confSaveReleaseURL := flag.String("save-release-url", "", "url of the save-release endpoint (optional, defaults to this server)")
	confRelayToken := flag.String("relay-token", "", "bearer token guarding the save-release endpoint (optional)")

	confTidalClientID := flag.String("tidal-client-id", "", "tidal api client id (optional)")
	confTidalClientSecret := flag.String("tidal-client-secret", "", "tidal api client secret (optional)")
	confTidalSyncInterval := flag.Int("tidal-sync-interval", 0, "interval (in minutes) to sync the catalog from tidal (optional)")
	confTidalSyncAtStart := flag.Bool("tidal-sync-at-start-enabled", false, "whether to sync the catalog from tidal at startup (optional)")

	confHTTPLog := flag.Bool("http-log", true, "http request logging (optional)")

	confShowVersion := flag.Bool("version", false, "show artistportal version")
	confConfigPath := flag.String("config-path", "", "path to config (optional)")

	flag.Parse()
	flagconf.ParseEnv()
	flagconf.ParseConfig(*confConfigPath)

	if *confShowVersion {
		fmt.Printf("v%s\n", artistportal.Version)
		os.Exit(0)
	}

	if *confWebhookURL == "" {
		log.Fatalf("please provide a webhook url")
	}
	if *confBlobstoreURL == "" {
		log.Fatalf("please provide a blobstore url")
	}

	if *confSaveReleaseURL == "" {
		host := *confListenAddr
		if strings.HasPrefix(host, ":") {
			host = "localhost" + host
		}
		*confSaveReleaseURL = fmt.Sprintf("http://%s/save-release", host)
	}

	log.Printf("starting artistportal v%s\n", artistportal.Version)
	log.Printf("provided config\n")
	flag.VisitAll(func(f *flag.Flag) {
		value := strings.ReplaceAll(f.Value.String(), "\n", "")
		log.Printf("    %-25s %s\n", f.Name, value)
	})

	dbc, err := db.New(*confDBPath)
	if err != nil {
		log.Fatalf("error opening database: %v\n", err)
	}
	defer dbc.Close()

	if err := dbc.Migrate(db.MigrationContext{}); err != nil {
		log.Panicf("error migrating database: %v\n", err)
	}

	gw := gateway.New(dbc)
	uploader := blobstore.NewUploader(blobstore.NewClient(*confBlobstoreURL, *confBlobstoreToken))
	webhookClient := webhook.NewClient()
	saveClient := publish.NewSaveClient(*confSaveReleaseURL, *confRelayToken)
	submitter := publish.NewSubmitter(uploader, webhookClient, saveClient, *confWebhookURL)

	ctrlPortal, err := ctrlportal.New(dbc, gw, submitter, webhookClient, *confWebhookURL, *confRelayToken)
	if err != nil {
		log.Panicf("error creating portal controller: %v\n", err)
	}

	router := mux.NewRouter()
	ctrlportal.AddRoutes(ctrlPortal, router, *confHTTPLog)

	var syncer *tidalsync.Syncer
	if *confTidalClientID != "" && *confTidalClientSecret != "" {
		tidalClient := tidal.NewClient(*confTidalClientID, *confTidalClientSecret)
		syncer = tidalsync.New(dbc, tidalClient)
	}

	noCleanup := func(_ error) {}

	var g run.Group
	g.Add(func() error {
		log.Print("starting job 'http'\n")
		server := &http.Server{
			Addr:              *confListenAddr,
			Handler:           router,
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      80 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		if *confTLSCert != "" && *confTLSKey != "" {
			return server.ListenAndServeTLS(*confTLSCert, *confTLSKey)
		}
		return server.ListenAndServe()
	}, noCleanup)

	g.Add(func() error {
		log.Printf("starting job 'session clean'\n")
		ticker := time.NewTicker(10 * time.Minute)
		for range ticker.C {
			ctrlPortal.CleanupSessions()
		}
		return nil
	}, noCleanup)

	if syncer != nil && *confTidalSyncInterval > 0 {
		g.Add(func() error {
			log.Printf("starting job 'tidal sync'\n")
			ticker := time.NewTicker(time.Duration(*confTidalSyncInterval) * time.Minute)
			for range ticker.C {
				if err := syncer.Sync(context.Background()); err != nil {
					log.Printf("error syncing from tidal: %v", err)
				}
			}
			return nil
		}, noCleanup)
	}

	if syncer != nil && *confTidalSyncAtStart {
		if err := syncer.Sync(context.Background()); err != nil {
			log.Printf("error syncing from tidal at start: %v", err)
		}
	}

	if err := g.Run(); err != nil {
		log.Panicf("error in job: %v", err)
	}
}
