package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"setu/internal/bootstrap/config"
	"setu/internal/bootstrap/database"
	"setu/internal/bootstrap/logging"
	"setu/internal/domain/commerce"
	cacheinfra "setu/internal/infrastructure/cache"
	"setu/internal/infrastructure/network"
	sqliterepo "setu/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "setu/internal/infrastructure/persistence/sqlite/uow"
	"setu/internal/infrastructure/translate"
	"setu/internal/ports"
	"setu/internal/server"
	"setu/internal/usecase/listing"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewCommerceRepository,
			fx.As(new(ports.CommerceRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(provideTranslator),
	fx.Provide(provideBuyerNetwork),
	fx.Provide(server.NewHub),
	fx.Provide(providePublishers),
	fx.Provide(provideSimulatorSettings),
	fx.Provide(listing.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

// provideTranslator returns a nil Translator when no API key is configured;
// the listing service then always uses the fallback parser.
func provideTranslator(ctx context.Context, cfg config.Config) (ports.Translator, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	if cfg.Translator.APIKey == "" {
		logging.Info(logCtx, "translator api key not set, using fallback parser only")
		return nil, nil
	}

	translator, err := translate.NewOpenAITranslator(cfg.Translator)
	if err != nil {
		return nil, err
	}
	logging.Info(logCtx, "hosted translator configured", slog.String("model", cfg.Translator.Model))
	return translator, nil
}

func provideBuyerNetwork(cfg config.Config) (commerce.BuyerNetwork, error) {
	if cfg.Network.BuyersFile != "" {
		return commerce.LoadBuyerNetwork(cfg.Network.BuyersFile)
	}
	return commerce.DefaultBuyerNetwork()
}

// providePublishers fans broadcast and bid events out to the websocket hub
// and, when configured, a NATS subject.
func providePublishers(lc fx.Lifecycle, ctx context.Context, cfg config.Config, hub *server.Hub) ([]ports.NetworkPublisher, error) {
	publishers := []ports.NetworkPublisher{hub}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			hub.Close()
			return nil
		},
	})

	if cfg.Network.NATSURL != "" {
		logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))
		nc, err := network.NewNATSPublisher(logCtx, cfg.Network.NATSURL)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, nc)
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				nc.Close()
				return nil
			},
		})
	}

	return publishers, nil
}

func provideSimulatorSettings(cfg config.Config) listing.SimulatorSettings {
	return listing.SimulatorSettings{
		MaxBids:  cfg.Network.MaxBids,
		MinDelay: cfg.Network.MinDelay(),
		MaxDelay: cfg.Network.MaxDelay(),
	}
}
