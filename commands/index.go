package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"connectrpc.com/connect"
	"github.com/aiocean/docsync/implement/indexer"
	"github.com/aiocean/docsync/implement/rpc"
	"github.com/aiocean/docsync/logger"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var indexServer string

func init() {
	indexCmd.Flags().StringVar(&indexServer, "server", "", "Send documents to a running docsync server instead of indexing locally.")
	rootCmd.AddCommand(indexCmd)
}

// indexFunc stores one document and returns how many sections were stored.
type indexFunc func(cmd *cobra.Command, doc *indexer.Document) (int, error)

func localIndexer(cmd *cobra.Command) (indexFunc, func(), error) {
	model, err := indexer.NewEmbeddingModel(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := indexer.NewQdrantStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	ix := &indexer.Indexer{Model: model, Store: store, Logger: logger.Log}
	closeAll := func() {
		if c, ok := model.(io.Closer); ok {
			_ = c.Close()
		}
		_ = store.Close()
	}
	return func(cmd *cobra.Command, doc *indexer.Document) (int, error) {
		return ix.Index(cmd.Context(), doc)
	}, closeAll, nil
}

func remoteIndexer(baseURL string) indexFunc {
	client := rpc.NewIndexerServiceClient(http.DefaultClient, baseURL)
	return func(cmd *cobra.Command, doc *indexer.Document) (int, error) {
		res, err := client.Index(cmd.Context(), connect.NewRequest(&rpc.IndexRequest{
			Title:     doc.Title,
			SourceURL: doc.SourceURL,
			Markdown:  doc.Content,
		}))
		if err != nil {
			return 0, err
		}
		return res.Msg.Sections, nil
	}
}

var indexCmd = &cobra.Command{
	Use:   "index <dir>...",
	Short: "Embeds generated Markdown and stores it in qdrant.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var docs []*indexer.Document
		for _, dir := range args {
			loaded, err := indexer.LoadDir(dir)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", dir, err)
			}
			docs = append(docs, loaded...)
		}
		if len(docs) == 0 {
			return errors.New("no Markdown documents found")
		}

		var index indexFunc
		if indexServer != "" {
			index = remoteIndexer(indexServer)
		} else {
			local, closeAll, err := localIndexer(cmd)
			if err != nil {
				return err
			}
			defer closeAll()
			index = local
		}

		t := newTable(cmd)
		t.AppendHeader(table.Row{"Title", "Source", "Sections", "Status"})

		var errs []error
		for _, doc := range docs {
			if err := cmd.Context().Err(); err != nil {
				errs = append(errs, err)
				break
			}
			n, err := index(cmd, doc)
			status := "ok"
			if err != nil {
				logger.Log.Error("failed to index document", zap.String("source_url", doc.SourceURL), zap.Error(err))
				errs = append(errs, fmt.Errorf("%s: %w", doc.SourceURL, err))
				status = "failed"
			}
			t.AppendRow(table.Row{doc.Title, doc.SourceURL, n, status})
		}
		t.Render()

		return errors.Join(errs...)
	},
}
