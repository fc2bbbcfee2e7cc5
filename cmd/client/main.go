// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/smart-notes/internal/adapter"
	"github.com/MKhiriev/smart-notes/internal/client"
	"github.com/MKhiriev/smart-notes/internal/config"
	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/internal/service"
	"github.com/MKhiriev/smart-notes/internal/store"
	"github.com/MKhiriev/smart-notes/internal/workers"
	"github.com/MKhiriev/smart-notes/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("smart-notes-client")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	log.Info().Str("backend", storages.Backend()).Msg("local storage ready")

	remote, err := adapter.NewNoteService(cfg.Adapter, cfg.Session, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote note service")
	}

	session, err := adapter.NewSessionResolver(cfg.Session, cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create session resolver")
	}

	services := service.NewServices(storages.Notes, remote, session, log)
	app := client.NewApp(
		services,
		workers.NewWorkers(services, cfg.Workers, log),
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		os.Stdout,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := app.Run(ctx, cfg.Args)
	stop()

	if err = storages.Close(); err != nil {
		log.Err(err).Msg("close local storage")
	}

	if runErr != nil {
		log.Err(runErr).Strs("args", cfg.Args).Msg("command failed")
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}
