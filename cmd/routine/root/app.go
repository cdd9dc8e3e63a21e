package root

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AndrejKiraly/RoutineGamification/internal/config"
	"github.com/AndrejKiraly/RoutineGamification/internal/engine"
	"github.com/AndrejKiraly/RoutineGamification/internal/loader"
	"github.com/AndrejKiraly/RoutineGamification/internal/storage"
)

// app bundles the wired services every command needs.
type app struct {
	cfg          *config.Config
	log          *zap.Logger
	db           *sql.DB
	store        *storage.Store
	library      *loader.Library
	user         *engine.User
	manager      *engine.RoutineManager
	achievements *engine.AchievementManager
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	log, err := buildLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	db, err := storage.Open(ctx, cfg.Storage.DBPath)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	cleanup := func() {
		_ = log.Sync()
		_ = db.Close()
	}

	if err := os.MkdirAll(cfg.Routines.Dir, 0o755); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create routines dir: %w", err)
	}
	library, err := loader.Load(cfg.Routines.Dir, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	store := storage.NewStore(db, cfg.User.Name)
	snap, err := store.LoadUserSnapshot(ctx)
	if err != nil {
		// A broken snapshot must not block the session; start from defaults.
		log.Warn("user load failed, starting fresh", zap.Error(err))
		snap = nil
	}
	var user *engine.User
	if snap == nil {
		user = engine.NewUser(cfg.User.Name, log)
	} else {
		user = engine.UserFromSnapshot(snap, log)
	}

	achievements := engine.NewAchievementManager()
	achievements.RestoreUnlocked(user.Stats.Achievements)

	a := &app{
		cfg:          cfg,
		log:          log,
		db:           db,
		store:        store,
		library:      library,
		user:         user,
		manager:      engine.NewRoutineManager(library, store, log),
		achievements: achievements,
	}
	return a, cleanup, nil
}

// saveUser persists the user snapshot. A failed save is reported, not fatal;
// the in-memory state stays authoritative for the rest of the command.
func (a *app) saveUser(ctx context.Context) bool {
	if err := a.store.SaveUserSnapshot(ctx, a.user.Snapshot()); err != nil {
		a.log.Warn("user save unconfirmed", zap.Error(err))
		return false
	}
	return true
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
