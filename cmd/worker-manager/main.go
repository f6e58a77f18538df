// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cardmatch-workers/internal/catalog"
	"cardmatch-workers/internal/common/config"
	"cardmatch-workers/internal/common/database"
	"cardmatch-workers/internal/common/genai"
	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/common/observability"
	"cardmatch-workers/internal/matching"
	"cardmatch-workers/internal/profile"
	"cardmatch-workers/internal/roadmap"
	"cardmatch-workers/pkg/registry"

	asp "cardmatch-workers/internal/workers/recommendation/analyze-spending"
	cpa "cardmatch-workers/internal/workers/recommendation/calculate-preapproval"
	grm "cardmatch-workers/internal/workers/recommendation/generate-roadmap"
	muc "cardmatch-workers/internal/workers/recommendation/match-user-cards"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Shared domain services ---
	genaiClient := genai.NewClient(genai.Config{
		BaseURL:         cfg.GenAI.BaseURL,
		APIKey:          cfg.GenAI.APIKey,
		EmbeddingModel:  cfg.GenAI.EmbeddingModel,
		GenerationModel: cfg.GenAI.GenerationModel,
		BatchSize:       cfg.GenAI.BatchSize,
		MaxRetries:      cfg.GenAI.MaxRetries,
		Timeout:         time.Duration(cfg.GenAI.Timeout) * time.Millisecond,
	})

	catalogStore := catalog.NewStore(pg.DB, redis.Client,
		time.Duration(cfg.Matching.CatalogCacheTTL)*time.Second, log)
	profileStore := profile.NewStore(pg.DB, redis.Client,
		time.Duration(cfg.Matching.ProfileCacheTTL)*time.Second, log)
	matcher := matching.NewMatcher(catalogStore, genaiClient, cfg.Matching.MaxCandidates, log)
	roadmapGen := roadmap.NewGenerator(genaiClient, log)

	// --- Activity registry (informational, used by modelers) ---
	if reg, err := registry.LoadRegistry("configs/activity-registry.json"); err == nil {
		for _, taskType := range reg.TaskTypes() {
			if _, ok := cfg.Workers[taskType]; !ok {
				zapLog.Warn("registry declares a task type with no worker config",
					zap.String("taskType", taskType))
			}
		}
	} else {
		zapLog.Warn("activity registry not loaded", zap.Error(err))
	}

	// --- Register Workers ---
	if cfg.Workers[muc.TaskType].Enabled {
		handler := muc.NewHandler(
			&muc.Config{
				DefaultTopN: cfg.Matching.DefaultTopN,
				Timeout:     time.Duration(cfg.Workers[muc.TaskType].Timeout) * time.Millisecond,
			},
			matcher, profileStore, log,
		)
		startWorker(zeebeClient, muc.TaskType, cfg.Workers[muc.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cpa.TaskType].Enabled {
		handler := cpa.NewHandler(
			&cpa.Config{
				Timeout: time.Duration(cfg.Workers[cpa.TaskType].Timeout) * time.Millisecond,
			},
			profileStore, catalogStore, log,
		)
		startWorker(zeebeClient, cpa.TaskType, cfg.Workers[cpa.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[grm.TaskType].Enabled {
		handler := grm.NewHandler(
			&grm.Config{
				Timeout: time.Duration(cfg.Workers[grm.TaskType].Timeout) * time.Millisecond,
			},
			roadmapGen, profileStore, log,
		)
		startWorker(zeebeClient, grm.TaskType, cfg.Workers[grm.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[asp.TaskType].Enabled {
		handler := asp.NewHandler(
			&asp.Config{
				Timeout: time.Duration(cfg.Workers[asp.TaskType].Timeout) * time.Millisecond,
			},
			profileStore, log,
		)
		startWorker(zeebeClient, asp.TaskType, cfg.Workers[asp.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
