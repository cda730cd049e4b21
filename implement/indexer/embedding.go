package indexer

import (
	"context"
	"errors"
	"fmt"

	"github.com/aiocean/docsync/config"
	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

const geminiEmbeddingModel = "text-embedding-004"

type EmbeddingModel interface {
	EmbedContent(ctx context.Context, content string) ([]float32, error)
	// Dimensions is the length of the vectors the model returns.
	Dimensions() uint64
}

type OpenAIEmbeddingModel struct {
	client *openai.Client
}

func NewOpenAIEmbeddingModel(client *openai.Client) *OpenAIEmbeddingModel {
	return &OpenAIEmbeddingModel{client: client}
}

func (m *OpenAIEmbeddingModel) EmbedContent(ctx context.Context, content string) ([]float32, error) {
	resp, err := m.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{content},
		Model: openai.LargeEmbedding3,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("openai returned no embedding")
	}

	return resp.Data[0].Embedding, nil
}

func (m *OpenAIEmbeddingModel) Dimensions() uint64 { return 3072 }

type GeminiEmbeddingModel struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

func NewGeminiEmbeddingModel(client *genai.Client) *GeminiEmbeddingModel {
	return &GeminiEmbeddingModel{client: client, model: client.EmbeddingModel(geminiEmbeddingModel)}
}

func (m *GeminiEmbeddingModel) EmbedContent(ctx context.Context, content string) ([]float32, error) {
	res, err := m.model.EmbedContent(ctx, genai.Text(content))
	if err != nil {
		return nil, err
	}
	if res.Embedding == nil {
		return nil, errors.New("gemini returned no embedding")
	}
	return res.Embedding.Values, nil
}

func (m *GeminiEmbeddingModel) Dimensions() uint64 { return 768 }

func (m *GeminiEmbeddingModel) Close() error {
	return m.client.Close()
}

// NewEmbeddingModel builds the model named by cfg.EmbeddingProvider.
func NewEmbeddingModel(ctx context.Context, cfg *config.Config) (EmbeddingModel, error) {
	switch cfg.EmbeddingProvider {
	case "", "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIEmbeddingModel(openai.NewClient(cfg.OpenAIAPIKey)), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("GEMINI_API_KEY environment variable is not set")
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiEmbeddingModel(client), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}
