package indexer

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/aiocean/docsync/implement/rpc"
	"github.com/aiocean/docsync/logger"
	"go.uber.org/zap"
)

type IndexerServer struct {
	Indexer *Indexer
	Logger  *zap.Logger
}

func (s *IndexerServer) Index(
	ctx context.Context,
	req *connect.Request[rpc.IndexRequest],
) (*connect.Response[rpc.IndexResponse], error) {
	if req.Msg.SourceURL == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("source_url is required"))
	}

	doc, err := ParseDocument(req.Msg.Markdown, req.Msg.SourceURL)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if req.Msg.Title != "" {
		doc.Title = req.Msg.Title
	}

	sections, err := s.Indexer.Index(ctx, doc)
	if err != nil {
		logger.OrNop(s.Logger).Error("failed to index document", zap.String("source_url", doc.SourceURL), zap.Error(err))
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&rpc.IndexResponse{
		Success:  true,
		Sections: sections,
	}), nil
}
