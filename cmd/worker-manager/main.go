// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"appraisal-workers/internal/assistant"
	"appraisal-workers/internal/assistant/compose"
	"appraisal-workers/internal/assistant/intent"
	"appraisal-workers/internal/assistant/retrieve"
	"appraisal-workers/internal/assistant/rewrite"
	"appraisal-workers/internal/common/aws"
	"appraisal-workers/internal/common/camunda"
	"appraisal-workers/internal/common/config"
	"appraisal-workers/internal/common/database"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/common/observability"
	"appraisal-workers/internal/repository"

	calcscore "appraisal-workers/internal/workers/appraisal/calculate-appraisal-score"
	updatestatus "appraisal-workers/internal/workers/appraisal/update-appraisal-status"
	answerfaq "appraisal-workers/internal/workers/assistant/answer-faq-question"
	listfaqs "appraisal-workers/internal/workers/assistant/list-faqs"
	searchinteractions "appraisal-workers/internal/workers/assistant/search-interactions"
	sendnotification "appraisal-workers/internal/workers/communication/send-appraisal-notification"
)

// retryWithBackoff retries an operation with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = operation()
		if err == nil {
			if attempt > 1 {
				log.Info("operation succeeded after retry",
					zap.String("operation", operationName),
					zap.Int("attempt", attempt),
				)
			}
			return nil
		}

		log.Warn("operation failed, retrying",
			zap.String("operation", operationName),
			zap.Int("attempt", attempt),
			zap.Int("maxRetries", maxRetries),
			zap.Duration("nextDelay", delay),
			zap.Error(err),
		)

		if attempt < maxRetries {
			time.Sleep(delay)
			delay *= 2
			if delay > 30*time.Second {
				delay = 30 * time.Second
			}
		}
	}

	return err
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
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
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
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

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

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

	// --- Build Repositories ---
	faqRepo := repository.NewFaqRepository(
		pg.DB,
		redis.Client,
		time.Duration(cfg.Assistant.CacheTTL)*time.Second,
		log,
	)
	interactionStore := repository.NewInteractionStore(
		esClient.Client,
		cfg.Assistant.InteractionIndex,
		log,
	)

	// --- Build Assistant Service ---
	assistantService := assistant.NewService(
		intent.NewClassifier(intent.DefaultCatalog(), intent.NewRegexExtractor(), log),
		rewrite.NewRewriter(rewrite.DefaultSynonyms()),
		retrieve.NewRetriever(faqRepo, cfg.Assistant.RelevanceFloor, cfg.Assistant.MaxAlternatives, log),
		compose.NewComposer(compose.Thresholds{
			High:   cfg.Assistant.HighConfidence,
			Medium: cfg.Assistant.MediumConfidence,
			Low:    cfg.Assistant.LowConfidence,
		}),
		interactionStore,
		log,
	)

	zapLog.Info("Assistant service initialized")

	var workers []*camunda.CamundaWorker
	register := func(taskType string, handler camunda.JobHandler) {
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		w := camunda.NewWorker(zeebeClient, taskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
		}, handler, zapLog)
		workers = append(workers, w)
	}

	// --- Assistant Workers ---
	register(answerfaq.TaskType, answerfaq.NewHandler(answerfaq.LoadConfig(), assistantService, log))
	register(listfaqs.TaskType, listfaqs.NewHandler(listfaqs.LoadConfig(), faqRepo, log))
	register(searchinteractions.TaskType, searchinteractions.NewHandler(searchinteractions.LoadConfig(), interactionStore, log))

	// --- Appraisal Workers ---
	register(calcscore.TaskType, calcscore.NewHandler(calcscore.LoadConfig(), pg.DB, log))
	register(updatestatus.TaskType, updatestatus.NewHandler(updatestatus.LoadConfig(), pg.DB, log))

	// --- Notification Worker ---
	if config.IsWorkerEnabled(cfg, sendnotification.TaskType) {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}

		notifyCfg := sendnotification.LoadConfig()
		notifyCfg.FromEmail = cfg.Notifications.Email.FromEmail
		register(sendnotification.TaskType, sendnotification.NewHandler(notifyCfg, sesClient, snsClient, log))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", sendnotification.TaskType))
	}

	zapLog.Info("All workers registered", zap.Int("count", len(workers)))

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
			status := "ready"
			code := http.StatusOK
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				status = "not ready"
				code = http.StatusServiceUnavailable
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Stop()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
