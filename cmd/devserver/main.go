package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fx-desk/internal/backend"
	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/crypto"
	"github.com/MKhiriev/fx-desk/internal/handler"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/server"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/juju/clock"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewLogger("fx-desk-devserver")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" && buildInfo.Known() {
		cfg.Version = buildInfo.Version
	}

	log.Debug().Str("address", cfg.HTTPAddress).Dur("request_timeout", cfg.RequestTimeout).Msg("received configs")

	b := backend.New(crypto.NewPasswordHasher(), clock.WallClock, log)
	if err = b.Seed(context.Background(), backend.DemoPassword); err != nil {
		log.Fatal().Err(err).Msg("error seeding demo data")
	}
	log.Info().
		Strs("accounts", []string{backend.DemoClientEmail, backend.DemoAdminEmail, backend.DemoSuperAdminEmail, backend.DemoAgentEmail}).
		Str("password", backend.DemoPassword).
		Msg("demo accounts ready")

	handlers, err := handler.NewHandlers(b, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
