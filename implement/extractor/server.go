package extractor

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"connectrpc.com/connect"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/implement/render"
	"github.com/aiocean/docsync/implement/rpc"
	"github.com/aiocean/docsync/logger"
	"github.com/aiocean/docsync/models"
	"go.uber.org/zap"
)

// ExtractorServer extracts single pages on request.
type ExtractorServer struct {
	Fetcher   fetcher.Fetcher
	Converter markdown.Converter
	Logger    *zap.Logger
}

// resolveTarget finds the named target of site, or builds one for a URL.
func resolveTarget(site Site, name, url string) (models.Target, error) {
	if name != "" {
		for _, target := range site.Targets() {
			if target.Name == name || markdown.Anchor(target.Name) == markdown.Anchor(name) {
				return target, nil
			}
		}
		return models.Target{}, fmt.Errorf("site %s has no target %q", site.Name(), name)
	}
	if url != "" {
		return models.Target{Name: path.Base(strings.TrimSuffix(url, "/")), Path: url}, nil
	}
	return models.Target{}, errors.New("either target or url is required")
}

func errorCode(err error) connect.Code {
	var status *fetcher.StatusError
	switch {
	case errors.As(err, &status):
		return connect.CodeUnavailable
	case errors.Is(err, ErrMissingContent), errors.Is(err, ErrNoContent):
		return connect.CodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	default:
		return connect.CodeInternal
	}
}

func (s *ExtractorServer) Extract(
	ctx context.Context,
	req *connect.Request[rpc.ExtractRequest],
) (*connect.Response[rpc.ExtractResponse], error) {
	log := logger.OrNop(s.Logger)

	site, err := Lookup(req.Msg.Site)
	if err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	target, err := resolveTarget(site, req.Msg.Target, req.Msg.URL)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	log.Info("extracting page",
		zap.String("site", site.Name()),
		zap.String("target", target.Name),
		zap.String("url", site.URL(target)),
	)

	res := &rpc.ExtractResponse{}
	switch site := site.(type) {
	case ComponentSite:
		doc, err := ExtractComponent(ctx, s.Fetcher, site, target)
		if err != nil {
			log.Warn("failed to extract component", zap.String("target", target.Name), zap.Error(err))
			return nil, connect.NewError(errorCode(err), err)
		}
		res.Component = doc
		res.Markdown = render.Component(site.Guide().Layout, doc)
	case PageSite:
		page, err := ExtractPage(ctx, s.Fetcher, s.Converter, site, target)
		if err != nil {
			log.Warn("failed to extract page", zap.String("target", target.Name), zap.Error(err))
			return nil, connect.NewError(errorCode(err), err)
		}
		res.Page = page
		if res.Markdown, err = render.Page(page); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	default:
		return nil, connect.NewError(connect.CodeUnimplemented, fmt.Errorf("%w: %s", ErrWrongKind, site.Name()))
	}

	return connect.NewResponse(res), nil
}
