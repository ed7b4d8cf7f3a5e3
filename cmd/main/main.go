package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matt-steen/lifequest/pkg/auth"
	"github.com/matt-steen/lifequest/pkg/cache"
	"github.com/matt-steen/lifequest/pkg/calendar"
	"github.com/matt-steen/lifequest/pkg/config"
	"github.com/matt-steen/lifequest/pkg/controller"
	"github.com/matt-steen/lifequest/pkg/rowstore"
	"github.com/matt-steen/lifequest/pkg/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func configPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		panic(err)
	}

	return filepath.Join(dir, "lifequest", "config.yaml")
}

// getStore wires the remote row store: a configured spreadsheet wins, then the
// cached one, and a fresh spreadsheet is created when neither exists. When the
// remote side can't be reached at all, the session still starts and loads from
// the offline cache.
func getStore(
	ctx context.Context, cfg *config.Config, snapshots *cache.Cache, srv *sheets.Service,
) rowstore.Store {
	spreadsheetID := cfg.Google.SpreadsheetID

	if spreadsheetID == "" {
		cached, err := snapshots.SpreadsheetID(ctx, cfg.User.ID)
		if err != nil && !errors.Is(err, cache.ErrNoSpreadsheet) {
			panic(err)
		}

		spreadsheetID = cached
	}

	if spreadsheetID == "" {
		store, err := rowstore.CreateSpreadsheet(ctx, srv, cfg.User.Name)
		if err != nil {
			log.Warn().Err(err).Msg("error creating spreadsheet; starting offline")

			return rowstore.Unavailable{Err: err}
		}

		if err := snapshots.SaveSpreadsheetID(ctx, cfg.User.ID, store.SpreadsheetID()); err != nil {
			log.Warn().Err(err).Msg("error memoizing spreadsheet id")
		}

		return store
	}

	store, err := rowstore.NewSheetsStore(ctx, srv, spreadsheetID)
	if err != nil {
		log.Warn().Err(err).Msg("error opening spreadsheet; starting offline")

		return rowstore.Unavailable{Err: err}
	}

	return store
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(configPath())
	if err != nil {
		panic(err)
	}

	filePerms := 0o666

	logFile, err := os.OpenFile(cfg.LogPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		panic(err)
	}

	defer logFile.Close()

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Msg("starting application...")

	// an auth failure blocks everything; there is no degraded mode without scopes
	client, err := auth.Client(ctx, cfg.Google.CredentialsPath, cfg.Google.TokenPath)
	if err != nil {
		panic(err)
	}

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		panic(err)
	}

	calendarService, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		panic(err)
	}

	snapshots, err := cache.New(ctx, cfg.CachePath)
	if err != nil {
		panic(err)
	}

	defer snapshots.Close()

	store := getStore(ctx, cfg, snapshots, sheetsService)
	bridge := calendar.NewGoogleBridge(calendarService, cfg.Google.CalendarID, cfg.TimeZone)

	sess := session.New(cfg.User.ID, store, snapshots, bridge)
	if err := sess.Load(ctx); err != nil {
		panic(err)
	}

	c, err := controller.NewController(ctx, sess)
	if err != nil {
		panic(err)
	}

	c.Go()
}
