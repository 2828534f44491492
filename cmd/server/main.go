package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"connectrpc.com/connect"
	"github.com/castlemilk/pfinsight/internal/config"
	"github.com/castlemilk/pfinsight/internal/insights"
	"github.com/castlemilk/pfinsight/internal/metrics"
	"github.com/castlemilk/pfinsight/internal/seed"
	"github.com/castlemilk/pfinsight/internal/service"
	"github.com/castlemilk/pfinsight/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Server] %v", err)
	}

	// Initialize context
	ctx := context.Background()

	var storeImpl store.Store

	if cfg.UseMemoryStore {
		log.Println("[Server] Using in-memory store for local development")
		storeImpl = store.NewMemoryStore()
	} else {
		// Production mode - use Firestore
		firestoreClient, err := firestore.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("[Server] Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		log.Printf("[Server] Using Firestore store (project %s)", cfg.ProjectID)
		storeImpl = store.NewFirestoreStore(firestoreClient)
	}

	clock := insights.SystemClock{}

	if cfg.SeedDemoData {
		ledger := seed.DemoLedger(seed.DemoUserID, clock.Now())
		if err := seed.Populate(ctx, storeImpl, ledger); err != nil {
			log.Fatalf("[Server] Failed to seed demo data: %v", err)
		}
	}

	opts := []service.Option{
		service.WithHistoryMonths(cfg.HistoryMonths),
		service.WithForecastMonths(cfg.ForecastMonths),
	}

	var interceptors []connect.Interceptor
	mux := http.NewServeMux()

	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		collector := metrics.NewCollector("pfinsight")
		if err := collector.Register(registry); err != nil {
			log.Fatalf("[Server] Failed to register metrics: %v", err)
		}

		opts = append(opts, service.WithRecorder(collector))
		interceptors = append(interceptors, collector.Interceptor())
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		log.Println("[Server] Metrics enabled on /metrics")
	}

	insightsService := service.NewInsightsService(storeImpl, clock, opts...)

	path, handler := service.NewInsightsServiceHandler(
		insightsService,
		connect.WithInterceptors(interceptors...),
	)
	mux.Handle(path, handler)

	// Add health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Set up CORS
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
			"Content-Type",
			"Grpc-Timeout",
			"User-Agent",
			"X-Grpc-Web",
			"X-User-Agent",
		},
		ExposedHeaders: []string{
			"Grpc-Status",
			"Grpc-Message",
			"Grpc-Status-Details-Bin",
		},
		AllowCredentials: true,
	})

	// Create HTTP/2 server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(c.Handler(mux), &http2.Server{}),
	}

	log.Printf("[Server] Starting server on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("[Server] Failed to start server: %v", err)
	}
}
