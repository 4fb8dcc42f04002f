package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-exam-admin/internal/adapter"
	"github.com/MKhiriev/go-exam-admin/internal/client"
	"github.com/MKhiriev/go-exam-admin/internal/config"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/internal/session"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/internal/tui"
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

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	// the terminal belongs to the console, so logs go to a file
	log := logger.NewFileLogger("exam-admin", cfg.App.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	var closers []io.Closer

	var backend *client.MockBackend
	if cfg.App.MockData {
		backend, err = client.StartMockBackend(ctx, cfg.Mock, log)
		if err != nil {
			log.Fatal().Err(err).Msg("start embedded mock backend")
		}
		closers = append(closers, backend)
		cfg.Adapter.BaseURL = backend.URL()
	}

	sessionStorage, err := store.NewSessionStorage(ctx, cfg.Storage.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create session storage")
	}
	closers = append(closers, sessionStorage)

	sess, err := session.New(ctx, sessionStorage.KV, log)
	if err != nil {
		log.Fatal().Err(err).Msg("load session")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, sess, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	services := service.NewClientServices(serverAdapter, sess, log)

	ui, err := tui.New(services, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(ui, backend, log, closers...)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
