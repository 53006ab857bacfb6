package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	collabruntime "npcmind/internal/adapter/collab/runtime"
	httpadapter "npcmind/internal/adapter/http"
	metricsinmem "npcmind/internal/adapter/metrics/inmemory"
	"npcmind/internal/adapter/notify/webhook"
	gormrepo "npcmind/internal/adapter/repo/gorm"
	memrepo "npcmind/internal/adapter/repo/memory"
	statictriggers "npcmind/internal/adapter/triggers/static"
	"npcmind/internal/app/auth"
	"npcmind/internal/app/detect"
	"npcmind/internal/app/fairness"
	"npcmind/internal/app/interaction"
	"npcmind/internal/app/ports"
	"npcmind/internal/app/report"
	"npcmind/internal/app/shared/keylock"
	"npcmind/internal/app/task"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/hertz/pkg/app/server"
)

type config struct {
	Addr              string        `env:"NPCMIND_ADDR" envDefault:":8080"`
	DBDSN             string        `env:"NPCMIND_DB_DSN"`
	MigrationsDir     string        `env:"NPCMIND_MIGRATIONS_DIR" envDefault:"./migrations"`
	TriggerCatalog    string        `env:"NPCMIND_TRIGGER_CATALOG"`
	WebhookURL        string        `env:"NPCMIND_TRANSITION_WEBHOOK_URL"`
	StageTimeout      time.Duration `env:"NPCMIND_STAGE_TIMEOUT" envDefault:"10s"`
	FairnessInterval  time.Duration `env:"NPCMIND_FAIRNESS_INTERVAL" envDefault:"1m"`
	RetentionHorizon  time.Duration `env:"NPCMIND_RETENTION" envDefault:"168h"`
	RetentionInterval time.Duration `env:"NPCMIND_RETENTION_SWEEP_INTERVAL" envDefault:"1h"`
	DemoNPC           string        `env:"NPCMIND_DEMO_NPC" envDefault:"demo-npc"`
}

type repos struct {
	States      ports.EmotionStateRepository
	Reputations ports.ReputationRepository
	Transitions ports.TransitionRepository
	Actions     ports.ActionLogRepository
	Sessions    ports.SessionRepository
	Exploits    ports.ExploitRepository
	Credentials ports.PlayerCredentialRepository
	Memory      ports.MemoryStore
	TxManager   ports.TxManager
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}

	r := mustBuildRepos(cfg, logger)
	seedDemoNPC(r, cfg.DemoNPC, logger)

	catalog, err := statictriggers.Provider{Path: cfg.TriggerCatalog}.Catalog(context.Background())
	if err != nil {
		log.Fatalf("load trigger catalog: %v", err)
	}

	var notifier ports.TransitionNotifier = webhook.NoopNotifier{}
	if cfg.WebhookURL != "" {
		notifier = webhook.NewNotifier(cfg.WebhookURL)
	}

	kpiRecorder := metricsinmem.NewRecorder()
	collaborators := collabruntime.NewProvider()

	interactionUC := interaction.UseCase{
		TxManager:   r.TxManager,
		StateRepo:   r.States,
		Reputations: r.Reputations,
		Transitions: r.Transitions,
		Memory:      r.Memory,
		Notifier:    notifier,
		Catalog:     catalog,
		Locks:       keylock.New(),
		Logger:      logger,
	}
	detectUC := detect.UseCase{
		Actions:  r.Actions,
		Sessions: r.Sessions,
		Exploits: r.Exploits,
		Metrics:  kpiRecorder,
	}
	fairnessUC := fairness.UseCase{
		Actions:  r.Actions,
		Sessions: r.Sessions,
		Exploits: r.Exploits,
	}
	fairnessRunner := &fairness.Runner{
		UseCase:  fairnessUC,
		Interval: cfg.FairnessInterval,
		Logger:   logger,
	}
	go fairnessRunner.Run(context.Background())
	go runRetentionSweeps(r, cfg, logger)

	h := httpadapter.Handler{
		RegisterUC:    auth.RegisterUseCase{Credentials: r.Credentials},
		AuthUC:        auth.VerifyUseCase{Credentials: r.Credentials},
		InteractionUC: interactionUC,
		TaskUC: task.UseCase{
			Interaction:  interactionUC,
			Detector:     detectUC,
			Perception:   collaborators,
			Planner:      collaborators,
			Executor:     collaborators,
			Referee:      collaborators,
			Memory:       r.Memory,
			Metrics:      kpiRecorder,
			StageTimeout: cfg.StageTimeout,
			Logger:       logger,
		},
		ReportUC: report.UseCase{
			Fairness: fairnessUC,
			Actions:  r.Actions,
			Sessions: r.Sessions,
			Exploits: r.Exploits,
		},
		Fairness: fairnessRunner,
		KPI:      kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	logger.Info("npcmind server listening", "addr", cfg.Addr, "demo_npc", cfg.DemoNPC)
	s.Spin()
}

func mustBuildRepos(cfg config, logger *slog.Logger) repos {
	if cfg.DBDSN == "" {
		logger.Warn("NPCMIND_DB_DSN is empty, using in-memory repositories")
		store := memrepo.NewStore()
		return repos{
			States:      memrepo.NewEmotionStateRepo(store),
			Reputations: memrepo.NewReputationRepo(store),
			Transitions: memrepo.NewTransitionRepo(store),
			Actions:     memrepo.NewActionLogRepo(store),
			Sessions:    memrepo.NewSessionRepo(store),
			Exploits:    memrepo.NewExploitRepo(store),
			Credentials: memrepo.NewPlayerCredentialRepo(store),
			Memory:      memrepo.NewNPCMemoryStore(store),
			TxManager:   memrepo.NewTxManager(),
		}
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if cfg.MigrationsDir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}
	return repos{
		States:      gormrepo.NewNPCStateRepo(db),
		Reputations: gormrepo.NewReputationRepo(db),
		Transitions: gormrepo.NewTransitionRepo(db),
		Actions:     gormrepo.NewActionLogRepo(db),
		Sessions:    gormrepo.NewSessionRepo(db),
		Exploits:    gormrepo.NewExploitRepo(db),
		Credentials: gormrepo.NewPlayerCredentialRepo(db),
		Memory:      gormrepo.NewNPCMemoryStore(db),
		TxManager:   gormrepo.NewTxManager(db),
	}
}

func seedDemoNPC(r repos, npcID string, logger *slog.Logger) {
	if npcID == "" {
		return
	}
	uc := interaction.UseCase{
		TxManager: r.TxManager,
		StateRepo: r.States,
		Logger:    logger,
	}
	_, err := uc.InitializeNPC(context.Background(), interaction.InitRequest{
		NPCID:     npcID,
		Archetype: "merchant",
		Quirks:    []string{"cheerful"},
	})
	if err != nil && !errors.Is(err, ports.ErrConflict) {
		log.Fatalf("seed demo npc: %v (did migrations apply?)", err)
	}
}

// runRetentionSweeps prunes actions and transitions past the retention
// horizon. Reputation aggregates and exploit detections are kept.
func runRetentionSweeps(r repos, cfg config, logger *slog.Logger) {
	if cfg.RetentionHorizon <= 0 || cfg.RetentionInterval <= 0 {
		return
	}
	ticker := time.NewTicker(cfg.RetentionInterval)
	defer ticker.Stop()
	for range ticker.C {
		horizon := time.Now().UTC().Add(-cfg.RetentionHorizon)
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		actions, err := r.Actions.PruneBefore(ctx, horizon)
		if err != nil {
			logger.Warn("prune actions failed", "err", err)
		}
		transitions, err := r.Transitions.PruneBefore(ctx, horizon)
		if err != nil {
			logger.Warn("prune transitions failed", "err", err)
		}
		cancel()
		if actions > 0 || transitions > 0 {
			logger.Info("retention sweep", "actions_pruned", actions, "transitions_pruned", transitions)
		}
	}
}
