package commands

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiocean/docsync/config"
	"github.com/aiocean/docsync/implement/extractor"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type discoverFlags struct {
	pattern string
	mode    string
	waitFor string
	inspect int
	write   string
	site    string
}

var discoverOpts discoverFlags

func init() {
	flags := discoverCmd.Flags()
	flags.StringVar(&discoverOpts.pattern, "pattern", "/components/", "Substring a link must contain to count as a component page.")
	flags.StringVar(&discoverOpts.mode, "mode", string(fetcher.ModeBrowser), "Fetch mode: http or browser.")
	flags.StringVar(&discoverOpts.waitFor, "wait-for", "body", "Selector the browser waits for before reading the page.")
	flags.IntVar(&discoverOpts.inspect, "inspect", 0, "Also fetch the first N discovered pages and print their structure.")
	flags.StringVar(&discoverOpts.write, "write", "", "Write the result as a targets file.")
	flags.StringVar(&discoverOpts.site, "site", "", "Site the written targets belong to. Required with --write.")
	rootCmd.AddCommand(discoverCmd)
}

// resolveTargets turns hrefs into paths on the index's host, or absolute
// URLs for links to other hosts.
func resolveTargets(index *url.URL, targets []models.Target) []models.Target {
	out := make([]models.Target, 0, len(targets))
	for _, t := range targets {
		link, err := index.Parse(t.Path)
		if err != nil {
			continue
		}
		if link.Host == index.Host {
			t.Path = link.Path
		} else {
			t.Path = link.String()
		}
		out = append(out, t)
	}
	return out
}

func loadDocument(cmd *cobra.Command, f fetcher.Fetcher, pageURL string) (*goquery.Document, error) {
	html, err := f.Fetch(cmd.Context(), fetcher.Request{URL: pageURL, WaitFor: discoverOpts.waitFor})
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

var discoverCmd = &cobra.Command{
	Use:   "discover <index-url>",
	Short: "Lists the component pages linked from a documentation index page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if discoverOpts.write != "" && discoverOpts.site == "" {
			return fmt.Errorf("--site is required with --write")
		}

		index, err := url.Parse(args[0])
		if err != nil {
			return fmt.Errorf("failed to parse index URL: %w", err)
		}

		mode, err := fetcher.ParseMode(discoverOpts.mode)
		if err != nil {
			return err
		}
		f, err := fetcher.New(cmd.Context(), mode, fetcher.Options{
			Timeout:   cfg.Timeout,
			Retries:   cfg.Retries,
			UserAgent: cfg.UserAgent,
			Settle:    cfg.Settle,
		})
		if err != nil {
			return fmt.Errorf("failed to start %s fetcher: %w", mode, err)
		}
		defer f.Close()

		doc, err := loadDocument(cmd, f, index.String())
		if err != nil {
			return err
		}

		baseURL := index.Scheme + "://" + index.Host
		targets := resolveTargets(index, extractor.Discover(doc, index.String(), discoverOpts.pattern))

		t := newTable(cmd)
		t.SetTitle(fmt.Sprintf("%d pages linked from %s", len(targets), index))
		t.AppendHeader(table.Row{"#", "Name", "Path"})
		for i, target := range targets {
			t.AppendRow(table.Row{i + 1, target.Name, target.Path})
		}
		t.Render()

		if discoverOpts.inspect > 0 {
			t := newTable(cmd)
			t.AppendHeader(table.Row{"Path", "Title", "h1", "Description", "Code blocks", "Tables", "Events"})
			for i, target := range targets {
				if i >= discoverOpts.inspect {
					break
				}
				pageURL := baseURL + target.Path
				if strings.HasPrefix(target.Path, "http") {
					pageURL = target.Path
				}
				page, err := loadDocument(cmd, f, pageURL)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", pageURL, err)
					continue
				}
				s := extractor.Inspect(page)
				t.AppendRow(table.Row{target.Path, s.Title, s.HasH1, s.HasDescription, s.CodeBlocks, s.Tables, s.HasEvents})
			}
			t.Render()
		}

		if discoverOpts.write != "" {
			out := config.Targets{discoverOpts.site: {BaseURL: baseURL, Targets: targets}}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode targets: %w", err)
			}
			if err := os.WriteFile(discoverOpts.write, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", discoverOpts.write, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "targets written to %s\n", discoverOpts.write)
		}
		return nil
	},
}
