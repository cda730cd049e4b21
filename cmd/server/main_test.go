package main

import (
	"context"
	"testing"

	"github.com/aiocean/docsync/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRunInvalidConverter(t *testing.T) {
	err := run(context.Background(), &config.Config{Converter: "pandoc", Port: "0"}, zap.NewNop())
	assert.ErrorContains(t, err, "invalid converter")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &config.Config{Port: "0", EmbeddingProvider: "none"}
	assert.NoError(t, run(ctx, cfg, zap.NewNop()))
}
