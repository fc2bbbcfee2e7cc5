// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/smart-notes/internal/app"
	"github.com/MKhiriev/smart-notes/internal/logger"
	"github.com/MKhiriev/smart-notes/internal/service"
	"github.com/MKhiriev/smart-notes/internal/store"
	"github.com/MKhiriev/smart-notes/internal/workers"
	"github.com/MKhiriev/smart-notes/models"
)

type App struct {
	notes   service.NoteService
	sync    service.SyncService
	workers *workers.Workers
	build   models.AppBuildInfo

	out    io.Writer
	logger *logger.Logger
}

func NewApp(services *service.Services, w *workers.Workers, build models.AppBuildInfo, out io.Writer, log *logger.Logger) *App {
	return &App{
		notes:   services.NoteService,
		sync:    services.SyncService,
		workers: w,
		build:   build,
		out:     out,
		logger:  log,
	}
}

// Run executes one command. Remote work started by a mutation is awaited
// before Run returns, so the process never exits mid-push.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(a.out, app.MsgUsage)
		return err
	}
	defer a.notes.Wait()

	command, operands := args[0], args[1:]
	switch command {
	case "add":
		return a.add(ctx, operands)
	case "update":
		return a.update(ctx, operands)
	case "rm":
		return a.remove(ctx, operands)
	case "get":
		return a.get(ctx, operands)
	case "list":
		return a.list(ctx, operands)
	case "recent":
		return a.recent(ctx, operands)
	case "today":
		return a.today(ctx)
	case "sync":
		return a.syncNow(ctx)
	case "run":
		return a.runWorkers(ctx)
	case "version":
		return a.version()
	case "help":
		_, err := fmt.Fprintln(a.out, app.MsgUsage)
		return err
	default:
		return fmt.Errorf("%w %q\n%s", ErrUnknownCommand, command, app.MsgUsage)
	}
}

func (a *App) add(ctx context.Context, operands []string) error {
	if len(operands) < 1 {
		return fmt.Errorf("add: %w: note json", ErrMissingArgument)
	}

	var note models.SmartNote
	if err := json.Unmarshal([]byte(operands[0]), &note); err != nil {
		return fmt.Errorf("add: %w: %w", ErrInvalidData, err)
	}

	stored, err := a.notes.Add(ctx, note)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return a.print(stored)
}

func (a *App) update(ctx context.Context, operands []string) error {
	if len(operands) < 2 {
		return fmt.Errorf("update: %w: id and patch json", ErrMissingArgument)
	}

	var patch models.NotePatch
	if err := json.Unmarshal([]byte(operands[1]), &patch); err != nil {
		return fmt.Errorf("update: %w: %w", ErrInvalidData, err)
	}
	if patch.IsEmpty() {
		return fmt.Errorf("update: %w", ErrNothingToUpdate)
	}

	updated, ok, err := a.notes.Update(ctx, operands[0], patch)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if !ok {
		return fmt.Errorf("update %s: %w", operands[0], ErrNoteNotFound)
	}
	return a.print(updated)
}

func (a *App) remove(ctx context.Context, operands []string) error {
	if len(operands) < 1 {
		return fmt.Errorf("rm: %w: id", ErrMissingArgument)
	}

	if err := a.notes.Remove(ctx, operands[0]); err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	_, err := fmt.Fprintln(a.out, app.MsgNoteRemoved)
	return err
}

func (a *App) get(ctx context.Context, operands []string) error {
	if len(operands) < 1 {
		return fmt.Errorf("get: %w: id", ErrMissingArgument)
	}

	note, err := a.notes.Get(ctx, operands[0])
	if errors.Is(err, store.ErrNoteNotFound) {
		return fmt.Errorf("get %s: %w", operands[0], ErrNoteNotFound)
	}
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	return a.print(note)
}

func (a *App) list(ctx context.Context, operands []string) error {
	var cursor *int64
	if len(operands) > 0 {
		ts, err := strconv.ParseInt(operands[0], 10, 64)
		if err != nil {
			return fmt.Errorf("list: %s: %w", app.MsgInvalidCursor, err)
		}
		cursor = &ts
	}

	limit := 0
	if len(operands) > 1 {
		n, err := strconv.Atoi(operands[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("list: %s", app.MsgInvalidLimit)
		}
		limit = n
	}

	page, err := a.notes.List(ctx, cursor, limit)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return a.print(page)
}

func (a *App) recent(ctx context.Context, operands []string) error {
	limit := 0
	if len(operands) > 0 {
		n, err := strconv.Atoi(operands[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("recent: %s", app.MsgInvalidLimit)
		}
		limit = n
	}

	notes, err := a.notes.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("recent: %w", err)
	}
	return a.print(notes)
}

func (a *App) today(ctx context.Context) error {
	agg, err := a.notes.TodayAggregates(ctx)
	if err != nil {
		return fmt.Errorf("today: %w", err)
	}
	return a.print(agg)
}

// syncNow reports remote failures on the terminal but does not fail the
// command: local data is authoritative either way.
func (a *App) syncNow(ctx context.Context) error {
	pullErr := a.sync.SyncFromRemote(ctx)
	retryErr := a.sync.RetryFailed(ctx)

	if err := errors.Join(pullErr, retryErr); err != nil {
		a.logger.Warn().Err(err).Str("func", "App.syncNow").Msg("manual sync finished with errors")
		_, werr := fmt.Fprintln(a.out, app.MsgSyncFailed)
		return werr
	}

	_, err := fmt.Fprintln(a.out, app.MsgSyncFinished)
	return err
}

func (a *App) runWorkers(ctx context.Context) error {
	if _, err := fmt.Fprintln(a.out, app.MsgBackgroundSync); err != nil {
		return err
	}

	a.workers.Start(ctx)
	<-ctx.Done()
	a.workers.Stop()

	a.logger.Info().Str("func", "App.runWorkers").Msg("background sync stopped")
	return nil
}

func (a *App) version() error {
	_, err := fmt.Fprintf(a.out, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		orNA(a.build.BuildVersion()), orNA(a.build.BuildDate()), orNA(a.build.BuildCommit()))
	return err
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
