// Package rpc defines the connect services exposed by cmd/server. Messages
// are plain Go structs carried as JSON.
package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/aiocean/docsync/models"
)

const (
	ExtractorServiceName = "docsync.extractor.v1.ExtractorService"
	IndexerServiceName   = "docsync.indexer.v1.IndexerService"

	ExtractorServiceExtractProcedure = "/" + ExtractorServiceName + "/Extract"
	IndexerServiceIndexProcedure     = "/" + IndexerServiceName + "/Index"
)

// jsonCodec replaces connect's protojson codec so that non-protobuf types
// can travel over the "json" content type.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Codec is the option both ends of a docsync service must use.
func Codec() connect.Option {
	return connect.WithCodec(jsonCodec{})
}

type ExtractRequest struct {
	Site string `json:"site"`
	// Target is the name of one of the site's targets.
	Target string `json:"target,omitempty"`
	// URL is fetched directly when Target is empty.
	URL string `json:"url,omitempty"`
}

type ExtractResponse struct {
	Component *models.ComponentDoc `json:"component,omitempty"`
	Page      *models.DocPage      `json:"page,omitempty"`
	Markdown  string               `json:"markdown"`
}

type IndexRequest struct {
	Title     string `json:"title"`
	SourceURL string `json:"source_url"`
	Markdown  string `json:"markdown"`
}

type IndexResponse struct {
	Success  bool `json:"success"`
	Sections int  `json:"sections"`
}

type ExtractorServiceHandler interface {
	Extract(context.Context, *connect.Request[ExtractRequest]) (*connect.Response[ExtractResponse], error)
}

type IndexerServiceHandler interface {
	Index(context.Context, *connect.Request[IndexRequest]) (*connect.Response[IndexResponse], error)
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{Codec()}, opts...)
}

// NewExtractorServiceHandler returns the mount path and handler for svc.
func NewExtractorServiceHandler(svc ExtractorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	extract := connect.NewUnaryHandler(
		ExtractorServiceExtractProcedure,
		svc.Extract,
		withCodec(opts)...,
	)
	return "/" + ExtractorServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExtractorServiceExtractProcedure:
			extract.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewIndexerServiceHandler returns the mount path and handler for svc.
func NewIndexerServiceHandler(svc IndexerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	index := connect.NewUnaryHandler(
		IndexerServiceIndexProcedure,
		svc.Index,
		withCodec(opts)...,
	)
	return "/" + IndexerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case IndexerServiceIndexProcedure:
			index.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

type ExtractorServiceClient struct {
	extract *connect.Client[ExtractRequest, ExtractResponse]
}

func NewExtractorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExtractorServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{Codec()}, opts...)
	return &ExtractorServiceClient{
		extract: connect.NewClient[ExtractRequest, ExtractResponse](httpClient, baseURL+ExtractorServiceExtractProcedure, opts...),
	}
}

func (c *ExtractorServiceClient) Extract(ctx context.Context, req *connect.Request[ExtractRequest]) (*connect.Response[ExtractResponse], error) {
	return c.extract.CallUnary(ctx, req)
}

type IndexerServiceClient struct {
	index *connect.Client[IndexRequest, IndexResponse]
}

func NewIndexerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *IndexerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{Codec()}, opts...)
	return &IndexerServiceClient{
		index: connect.NewClient[IndexRequest, IndexResponse](httpClient, baseURL+IndexerServiceIndexProcedure, opts...),
	}
}

func (c *IndexerServiceClient) Index(ctx context.Context, req *connect.Request[IndexRequest]) (*connect.Response[IndexResponse], error) {
	return c.index.CallUnary(ctx, req)
}
