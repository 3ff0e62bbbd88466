package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ramp-client/internal/adapter"
	"github.com/MKhiriev/go-ramp-client/internal/client"
	"github.com/MKhiriev/go-ramp-client/internal/config"
	"github.com/MKhiriev/go-ramp-client/internal/credstore"
	"github.com/MKhiriev/go-ramp-client/internal/crypto"
	"github.com/MKhiriev/go-ramp-client/internal/logger"
	"github.com/MKhiriev/go-ramp-client/internal/ramp"
	"github.com/MKhiriev/go-ramp-client/internal/store"
	"github.com/MKhiriev/go-ramp-client/internal/tui"
	"github.com/MKhiriev/go-ramp-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("go-ramp-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	records, err := store.NewRecordStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("create record store")
	}

	creds := credstore.New(crypto.NewKeyChain(), records, cfg.App.Secret, log)

	rampAdapter := adapter.NewRampHTTPAdapter(cfg.Adapter, creds, log, func() {
		log.Info().Msg("session expired, signed out")
	})

	flow := ramp.NewOrchestrator(rampAdapter, records, log)

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	ui, err := tui.New(rampAdapter, flow, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(creds, rampAdapter, flow, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
