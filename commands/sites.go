package commands

import (
	"github.com/aiocean/docsync/implement/extractor"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sitesCmd)
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Lists the sites docsync knows how to fetch.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := newTable(cmd)
		t.AppendHeader(table.Row{"Site", "Kind", "Base URL", "Pages", "Mode", "Delay"})
		for _, name := range extractor.Names() {
			site, err := extractor.Lookup(name)
			if err != nil {
				return err
			}
			kind := "pages"
			if _, ok := site.(extractor.ComponentSite); ok {
				kind = "guide"
			}
			defaults := site.Defaults()
			t.AppendRow(table.Row{name, kind, site.BaseURL(), len(site.Targets()), defaults.Mode, defaults.Delay})
		}
		t.Render()
		return nil
	},
}
