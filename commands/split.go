package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aiocean/docsync/implement/splitter"
	"github.com/aiocean/docsync/logger"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var splitOut string

func init() {
	splitCmd.Flags().StringVar(&splitOut, "out", "", "Output directory. Defaults to the guide's path without .md.")
	rootCmd.AddCommand(splitCmd)
}

var splitCmd = &cobra.Command{
	Use:   "split <guide.md>",
	Short: "Splits a generated guide into an index and one file per component.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("failed to read guide: %w", err)
		}

		res, err := splitter.Split(string(data), splitter.Options{})
		if err != nil {
			return fmt.Errorf("failed to split %s: %w", input, err)
		}

		out := splitOut
		if out == "" {
			out = strings.TrimSuffix(input, filepath.Ext(input))
		}
		if err := splitter.WriteDir(res, out); err != nil {
			return err
		}

		logger.Log.Info("guide split",
			zap.String("input", input),
			zap.String("out", out),
			zap.Int("components", len(res.Components)),
		)

		original := len(data)
		index := len(res.Index())
		average := res.AverageSize()

		t := newTable(cmd)
		t.SetTitle(fmt.Sprintf("%d components written to %s", len(res.Components), out))
		t.AppendHeader(table.Row{"File", "Size"})
		t.AppendRows([]table.Row{
			{"index.md", kb(index)},
			{"average component", kb(average)},
			{filepath.Base(input), kb(original)},
		})
		if original > 0 {
			t.AppendFooter(table.Row{"context saved per component", fmt.Sprintf("~%d%%", (original-average)*100/original)})
		}
		t.Render()
		return nil
	},
}

func kb(n int) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
