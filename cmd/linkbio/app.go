package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/zazjoe90-oss/go-linkbio/activity"
	"github.com/zazjoe90-oss/go-linkbio/adapter/gemini"
	"github.com/zazjoe90-oss/go-linkbio/adapter/zaplogger"
	"github.com/zazjoe90-oss/go-linkbio/config"
	"github.com/zazjoe90-oss/go-linkbio/editor"
	"github.com/zazjoe90-oss/go-linkbio/generation"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"github.com/zazjoe90-oss/go-linkbio/profile"
	"github.com/zazjoe90-oss/go-linkbio/service"
	"go.uber.org/zap"
)

// activityCapacity bounds the in-memory activity trail.
const activityCapacity = 1000

type app struct {
	svc    *service.Service
	db     *bun.DB
	logger types.Logger
}

func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// buildApp wires storage, the completion backend and the service from cfg.
func buildApp(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*app, error) {
	log := zaplogger.New(zl)
	clock := types.SystemClock{}
	seed := cfg.ApplyProfile(profile.DefaultProfile())

	out := &app{logger: log}
	svcCfg := service.Config{
		FeatureGate: editor.StaticGate{editor.FeatureAIEditor: cfg.Features.AIEditor},
		Clock:       clock,
		Logger:      log,
		Hooks: types.Hooks{
			AfterGeneration: func(_ context.Context, event types.GenerationEvent) {
				log.Info("editor: cycle settled", "seq", event.Seq, "outcome", event.Outcome)
			},
		},
	}

	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		db, err := openSQLite(cfg.Storage.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		out.db = db
		if err := profile.EnsureSchema(ctx, db); err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("profile schema: %w", err)
		}
		if err := activity.EnsureSchema(ctx, db); err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("activity schema: %w", err)
		}
		profileRepo, err := profile.NewRepository(profile.RepositoryConfig{DB: db, Clock: clock})
		if err != nil {
			_ = out.Close()
			return nil, err
		}
		if err := profileRepo.Seed(ctx, seed); err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("seed profile: %w", err)
		}
		activityRepo, err := activity.NewRepository(activity.RepositoryConfig{DB: db, Clock: clock})
		if err != nil {
			_ = out.Close()
			return nil, err
		}
		svcCfg.ProfileRepository = profileRepo
		svcCfg.ActivitySink = activityRepo
	default:
		profileRepo, err := profile.NewMemoryRepository(seed, clock)
		if err != nil {
			return nil, err
		}
		svcCfg.ProfileRepository = profileRepo
		svcCfg.ActivitySink = activity.NewMemoryStore(activity.MemoryConfig{
			Clock:    clock,
			Capacity: activityCapacity,
		})
	}

	if cfg.AI.APIKey != "" {
		backend, err := gemini.New(ctx, gemini.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			BaseURL: cfg.AI.BaseURL,
			Timeout: cfg.AI.TimeoutDuration(),
			Logger:  log,
		})
		if err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("gemini: %w", err)
		}
		generator, err := generation.NewClient(generation.Config{Service: backend, Logger: log})
		if err != nil {
			_ = out.Close()
			return nil, err
		}
		svcCfg.TextGenerator = generator
	} else {
		log.Info("linkbio: no API key configured, ai editor unavailable")
	}

	out.svc = service.New(svcCfg)
	if err := out.svc.HealthCheck(ctx); err != nil {
		_ = out.Close()
		return nil, err
	}
	return out, nil
}

func openSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
