package main

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"

	"github.com/0x0BSoD/featfeed/internal/bench"
	"github.com/0x0BSoD/featfeed/internal/config"
	"github.com/0x0BSoD/featfeed/internal/feature"
	"github.com/0x0BSoD/featfeed/internal/network"
	"github.com/0x0BSoD/featfeed/internal/reporter"
	"github.com/0x0BSoD/featfeed/internal/server"
	"github.com/0x0BSoD/featfeed/internal/source"
	"github.com/0x0BSoD/featfeed/internal/storage"
)

// app is the set of components every command is wired from.
type app struct {
	cfg      config.Config
	catalog  *feature.Catalog
	db       *sqlx.DB
	runs     *storage.RunStorage
	reporter *reporter.Reporter
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	api, err := newAPI(cfg)
	if err != nil {
		return nil, err
	}

	var client network.Client = network.NewFakeClient()
	if cfg.PingBaseURL != "" {
		client = network.NewHTTPClient(cfg.PingBaseURL, cfg.PingTimeout)
	}

	catalog, err := newCatalog(cfg, api, client)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, catalog: catalog}

	if cfg.DatabaseDSN != "" {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("connect to db: %w", err)
		}

		runs := storage.NewRunStorage(db)
		if err := runs.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}

		a.db = db
		a.runs = runs
	}

	if cfg.TelegramBotToken != "" {
		botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("create bot api: %w", err)
		}
		a.reporter = reporter.New(botAPI, cfg.TelegramAdminChatID)
	}

	return a, nil
}

// newCatalog validates the configured feature names and builds their pipelines.
func newCatalog(cfg config.Config, api network.API, client network.Client) (*feature.Catalog, error) {
	configs := make([]feature.Config, 0, len(cfg.Features))
	for _, name := range cfg.Features {
		configs = append(configs, feature.Config{
			Name:          name,
			PageSize:      cfg.PageSize,
			EnableLogging: cfg.EnableLogging,
		})
	}

	catalog, err := feature.NewCatalog(configs, api, client)
	if err != nil {
		return nil, fmt.Errorf("build feature catalog: %w", err)
	}

	return catalog, nil
}

func newAPI(cfg config.Config) (network.API, error) {
	switch cfg.APIType {
	case "", "fake":
		return network.NewFakeAPI(), nil
	case "rss":
		if cfg.RSSURLTemplate == "" {
			return nil, fmt.Errorf("rss_url_template is required when api_type is \"rss\"")
		}
		log.Printf("[INFO] using RSS API (%s)", cfg.RSSURLTemplate)
		return source.NewRSSAPI(cfg.RSSURLTemplate, cfg.RSSInsecure), nil
	default:
		return nil, fmt.Errorf("unknown api_type %q", cfg.APIType)
	}
}

// The accessors below hand out untyped nils for components that are not
// configured so that consumers can compare against nil.

func (a *app) benchStorage() bench.RunStorage {
	if a.runs == nil {
		return nil
	}
	return a.runs
}

func (a *app) runProvider() server.RunProvider {
	if a.runs == nil {
		return nil
	}
	return a.runs
}

func (a *app) benchReporter() bench.Reporter {
	if a.reporter == nil {
		return nil
	}
	return a.reporter
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
