package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aiocean/docsync/config"
	"github.com/aiocean/docsync/implement/extractor"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/indexer"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/implement/rpc"
	"github.com/aiocean/docsync/logger"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// newIndexerServer wires qdrant and the embedding provider. The indexer
// service is left out when either cannot be set up.
func newIndexerServer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*indexer.IndexerServer, func(), error) {
	model, err := indexer.NewEmbeddingModel(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := indexer.NewQdrantStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	srv := &indexer.IndexerServer{
		Indexer: &indexer.Indexer{Model: model, Store: store, Logger: log},
		Logger:  log,
	}
	closeAll := func() {
		if c, ok := model.(io.Closer); ok {
			_ = c.Close()
		}
		_ = store.Close()
	}
	return srv, closeAll, nil
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	conv, err := markdown.ByName(cfg.Converter)
	if err != nil {
		return fmt.Errorf("invalid converter: %w", err)
	}

	// The server fetches over plain HTTP only.
	f := fetcher.NewHTTPFetcher(fetcher.Options{
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
		UserAgent: cfg.UserAgent,
	})
	defer f.Close()

	mux := http.NewServeMux()

	extractorPath, extractorHandler := rpc.NewExtractorServiceHandler(&extractor.ExtractorServer{
		Fetcher:   f,
		Converter: conv,
		Logger:    log,
	})
	mux.Handle(extractorPath, extractorHandler)

	indexerServer, closeIndexer, err := newIndexerServer(ctx, cfg, log)
	if err != nil {
		log.Warn("indexer service disabled", zap.Error(err))
	} else {
		defer closeIndexer()
		indexerPath, indexerHandler := rpc.NewIndexerServiceHandler(indexerServer)
		mux.Handle(indexerPath, indexerHandler)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("server listening", zap.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func main() {
	cfg := config.LoadConfig()
	log := logger.Init(cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("server stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}
