package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/email"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/observability"
	redispkg "github.com/Mahsabeigi33/AdminKingsCare/pkg/redis"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/session"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/storage"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideGorm),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideSessionManager),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideStorageBackend),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideValidator),
	fx.Provide(ProvideOTel),
)

func ProvideGorm(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(database.FromCentralConfig(cfg.Database), slog.Default())
	if err != nil {
		return nil, err
	}
	if cfg.Database.Migrations.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("auto-migrate schema: %w", err)
		}
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing main database connection")
			return database.Close(db)
		},
	})
	return db, nil
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideSessionManager(cfg *config.Config, rdb *redis.Client) *session.Manager {
	return session.NewManager(cfg.Session, rdb)
}

func ProvideAuthorization() (authorize.IAuthorization, error) {
	auth, err := authorize.NewAuthorization()
	if err != nil {
		return nil, err
	}
	return authorize.NewAuditedAuthorization(auth, slog.Default()), nil
}

// ProvideStorageBackend selects where uploads land based on config.
func ProvideStorageBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Uploads.Backend {
	case "s3":
		return storage.NewS3Backend(cfg.S3)
	default:
		return storage.NewLocalBackend(cfg.Uploads.LocalDir, cfg.Uploads.BaseURL)
	}
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

func ProvideValidator(cfg *config.Config) *validate.Validator {
	return validate.New(cfg.Validation)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
