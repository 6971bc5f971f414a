package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fx-desk/internal/client"
	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewClientLogger("fx-desk-client", false).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("fx-desk-client", cfg.App.DevMode)
	log.Debug().Any("config", cfg).Msg("received configs")

	app, err := client.NewApp(context.Background(), cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
