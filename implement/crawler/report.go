package crawler

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aiocean/docsync/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// PrintReport writes a summary of one or more crawl runs to w.
func PrintReport(w io.Writer, reports ...*models.Report) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Site", "Pages", "OK", "Failed", "Examples", "Props", "Events", "Data attrs", "Size", "Time", "Output"})

	for _, r := range reports {
		t.AppendRow(table.Row{
			r.Site,
			r.Total,
			len(r.Succeeded),
			len(r.Failed),
			r.Examples,
			r.Props,
			r.Events,
			r.DataAttributes,
			fmt.Sprintf("%.1f KB", float64(r.Bytes)/1024),
			r.Duration.Round(100 * time.Millisecond).String(),
			r.Output,
		})
	}
	t.Render()

	for _, r := range reports {
		if len(r.Failed) > 0 {
			fmt.Fprintf(w, "%s: failed %s\n", r.Site, strings.Join(r.Failed, ", "))
		}
	}
}
