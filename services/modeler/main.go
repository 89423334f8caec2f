// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/credentials/insecure"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"

	"github.com/Ag-Linings/uml-diagram/services/extract"
	"github.com/Ag-Linings/uml-diagram/services/modeler/backup"
	"github.com/Ag-Linings/uml-diagram/services/modeler/config"
	"github.com/Ag-Linings/uml-diagram/services/modeler/middleware"
	"github.com/Ag-Linings/uml-diagram/services/modeler/observability"
	"github.com/Ag-Linings/uml-diagram/services/modeler/routes"
	"github.com/Ag-Linings/uml-diagram/services/modeler/store"
)

func initTracer(endpoint string) (func(context.Context), error) {
	ctx := context.Background()

	if endpoint == "" {
		endpoint = "uml-otel-collector:4317"
	}
	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("modeler-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

// buildExtractor wires the lexicon file and optional LLM enhancer into
// the extractor.
func buildExtractor(cfg config.Config) *extract.Extractor {
	lex := extract.DefaultLexicon()
	if cfg.LexiconPath != "" {
		loaded, err := extract.LoadLexicon(cfg.LexiconPath)
		if err != nil {
			slog.Warn("failed to load lexicon file, using built-in tables",
				"path", cfg.LexiconPath, "error", err)
		} else {
			lex = loaded
		}
	}

	opts := []extract.Option{}
	if cfg.OpenAIAPIKey != "" {
		enhancer, err := extract.NewOpenAIEnhancer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			slog.Warn("failed to build LLM enhancer, descriptions stay heuristic",
				"error", err)
		} else {
			opts = append(opts, extract.WithEnhancer(enhancer))
			slog.Info("LLM description enhancer enabled")
		}
	}
	return extract.New(lex, opts...)
}

// buildSnapshotter picks the backup backend: GCS when a bucket is
// configured, the local directory otherwise.
func buildSnapshotter(ctx context.Context, cfg config.Config, diagrams *store.DiagramStore) *backup.Snapshotter {
	var backend backup.Backend
	if cfg.BackupBucket != "" {
		gcs, err := backup.NewGCSBackend(ctx, cfg.BackupBucket, cfg.BackupCredentials)
		if err != nil {
			slog.Error("failed to create GCS backup backend, falling back to local",
				"bucket", cfg.BackupBucket, "error", err)
		} else {
			backend = gcs
		}
	}
	if backend == nil {
		backend = &backup.LocalBackend{Dir: cfg.BackupDir}
	}
	return backup.NewSnapshotter(diagrams, backend, slog.Default())
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("MODELER_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// --- Init the tracer ---
	cleanup, err := initTracer(cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	metrics := observability.InitMetrics()

	diagrams, err := store.Open(store.DefaultConfig(cfg.DataDir))
	if err != nil {
		log.Fatalf("failed to open the diagram store: %v", err)
	}
	defer diagrams.Close()

	extractor := buildExtractor(cfg)
	snapshotter := buildSnapshotter(context.Background(), cfg, diagrams)

	router := gin.Default()
	router.Use(otelgin.Middleware("modeler-service"))

	routes.SetupRoutes(router, routes.Dependencies{
		Extractor:   extractor,
		Diagrams:    diagrams,
		Snapshotter: snapshotter,
		Metrics:     metrics,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, metrics),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	if cfg.LexiconPath != "" {
		watcher := extract.NewWatcher(cfg.LexiconPath, extractor, slog.Default())
		group.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	group.Go(func() error {
		slog.Info("starting the modeler server", "port", cfg.Port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server error: %v", err)
	}
}
