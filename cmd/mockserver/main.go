package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/config"
	"github.com/MKhiriev/go-exam-admin/internal/handler"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/server"
	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo.String())

	log := logger.NewLogger("exam-mockserver")
	cfg, err := config.GetMockServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := log.WithContext(context.Background())

	storages, err := store.NewMockStorages(ctx, cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = service.SeedDemoData(ctx, services, cfg.AdminPhone); err != nil {
		log.Fatal().Err(err).Msg("error seeding mock data")
	}

	handlers, err := handler.NewHandlers(services, *cfg, false, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
