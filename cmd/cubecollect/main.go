package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/cubecollect/internal/config"
	"github.com/l1jgo/cubecollect/internal/core/event"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"github.com/l1jgo/cubecollect/internal/data"
	"github.com/l1jgo/cubecollect/internal/persist"
	"github.com/l1jgo/cubecollect/internal/physics"
	"github.com/l1jgo/cubecollect/internal/scripting"
	"github.com/l1jgo/cubecollect/internal/system"
	"github.com/l1jgo/cubecollect/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("CUBECOLLECT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Build the world from the layout
	layout, err := data.LoadSpawnLayout(cfg.Data.SpawnLayout)
	if err != nil {
		return fmt.Errorf("spawn layout: %w", err)
	}
	ws := world.NewState()
	spawned := layout.Spawn(ws)
	log.Info("level loaded",
		zap.String("layout", cfg.Data.SpawnLayout),
		zap.Int("collectibles", spawned.Collectibles))

	// 4. Input script
	input, err := scripting.NewEngine(cfg.Data.InputScript, log)
	if err != nil {
		return fmt.Errorf("input script: %w", err)
	}
	defer input.Close()

	// 5. Optional run journal
	bus := event.NewBus()
	score := world.NewScoreboard()
	var (
		runRepo *persist.RunRepo
		journal *system.JournalSystem
	)
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(ctx, db.Pool, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		runRepo = persist.NewRunRepo(db)
		runID, err := runRepo.Start(ctx, cfg.Game.Name)
		if err != nil {
			return err
		}
		log.Info("run started", zap.Int64("run_id", runID))
		journal = system.NewJournalSystem(runRepo, bus, cfg.Journal.FlushTicks, log)
	}

	// 6. Systems
	inputState := &system.InputState{}
	phys := system.NewPhysicsSystem(physics.NewSim(ws))
	spawner := system.NewSpawnSystem(ws, score, bus, system.SpawnConfig{
		InsaneMode:   cfg.Game.InsaneMode,
		MaxScore:     cfg.Game.MaxScore,
		CubesPerTick: cfg.Game.CubesPerTick,
		CubeSpeed:    cfg.Game.CubeSpeed,
		CubeRadius:   cfg.Game.CubeRadius,
		RotateSpeed:  cfg.Game.CubeRotateSpeed,
		Area:         cfg.Game.SpawnArea,
	}, cfg.Game.Seed, log)
	camera := system.NewCameraSystem(ws, spawned.Mover, mgl32.Vec3(cfg.Camera.Offset))

	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewInputSystem(input, inputState, log))
	runner.Register(system.NewMovementSystem(ws, inputState))
	runner.Register(system.NewRotationSystem(ws))
	runner.Register(phys)
	runner.Register(system.NewCollectionSystem(ws, phys, cfg.Game.CollectChunkSize, log))
	runner.Register(system.NewSyncSystem(ws.ECS, coresys.PhaseCollectSync, log))
	runner.Register(system.NewDeletionSystem(ws, score, bus, log))
	runner.Register(spawner)
	runner.Register(system.NewSyncSystem(ws.ECS, coresys.PhaseCleanup, log))
	runner.Register(camera)
	runner.Register(system.NewScoreDisplay(score, os.Stdout, cfg.Game.Locale))
	if journal != nil {
		runner.Register(journal)
	}

	// 7. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()
	log.Info("game loop started", zap.Duration("tick", cfg.Game.TickRate))

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Game.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()),
				zap.Int64("score", score.Score()),
				zap.Uint64("ticks", runner.Ticks()),
				zap.Any("camera", camera.Position()))
			if journal != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				if err := journal.Shutdown(ctx); err != nil {
					log.Error("final journal flush failed", zap.Error(err))
				}
				if err := runRepo.Finish(ctx, score.Score(), runner.Ticks()); err != nil {
					log.Error("finish run failed", zap.Error(err))
				}
				cancel()
			}
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
