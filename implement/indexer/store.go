package indexer

import (
	"context"
	"fmt"

	"github.com/aiocean/docsync/config"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

type Point struct {
	ID        string
	Vector    []float32
	Content   string
	Title     string
	SourceURL string
	// Order is the position of a section in its document, -1 for the
	// document itself.
	Order int
}

// PointID is the stable id of whatever is stored for url.
func PointID(url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
}

type Store interface {
	EnsureCollection(ctx context.Context, size uint64) error
	Upsert(ctx context.Context, points ...Point) error
}

type QdrantStore struct {
	client     *qdrant.Client
	collection string
}

func NewQdrantStore(cfg *config.Config) (*QdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.QdrantHost,
		Port:   cfg.QdrantPort,
		APIKey: cfg.QdrantAPIKey,
		UseTLS: cfg.QdrantUseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}
	return &QdrantStore{client: client, collection: cfg.QdrantCollection}, nil
}

func (s *QdrantStore) EnsureCollection(ctx context.Context, size uint64) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	if err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     size,
			Distance: qdrant.Distance_Cosine,
		}),
	}); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
	}

	return nil
}

func (s *QdrantStore) Upsert(ctx context.Context, points ...Point) error {
	structs := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		structs[i] = &qdrant.PointStruct{
			Id: &qdrant.PointId{
				PointIdOptions: &qdrant.PointId_Uuid{
					Uuid: p.ID,
				},
			},
			Vectors: &qdrant.Vectors{
				VectorsOptions: &qdrant.Vectors_Vector{
					Vector: &qdrant.Vector{
						Data: p.Vector,
					},
				},
			},
			Payload: map[string]*qdrant.Value{
				"content":      qdrant.NewValueString(p.Content),
				"source_title": qdrant.NewValueString(p.Title),
				"source_url":   qdrant.NewValueString(p.SourceURL),
				"source_order": qdrant.NewValueInt(int64(p.Order)),
			},
		}
	}

	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         structs,
	}); err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}
	return nil
}

func (s *QdrantStore) Close() error {
	return s.client.Close()
}
