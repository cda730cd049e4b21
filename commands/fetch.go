package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aiocean/docsync/config"
	"github.com/aiocean/docsync/implement/crawler"
	"github.com/aiocean/docsync/implement/extractor"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/logger"
	"github.com/aiocean/docsync/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type fetchFlags struct {
	mode      string
	delay     time.Duration
	settle    time.Duration
	timeout   time.Duration
	retries   int
	converter string
	out       string
	targets   string
	strict    bool
}

var fetchOpts fetchFlags

func init() {
	flags := fetchCmd.Flags()
	flags.StringVar(&fetchOpts.mode, "mode", cfg.FetchMode, "Fetch mode: http or browser. Defaults to what each site needs.")
	flags.DurationVar(&fetchOpts.delay, "delay", cfg.Delay, "Pause between requests. Defaults to the site's pause.")
	flags.DurationVar(&fetchOpts.settle, "settle", cfg.Settle, "Extra wait after a browser page is ready. Defaults to the site's value.")
	flags.DurationVar(&fetchOpts.timeout, "timeout", cfg.Timeout, "Per-page timeout.")
	flags.IntVar(&fetchOpts.retries, "retries", cfg.Retries, "Retries per HTTP request.")
	flags.StringVar(&fetchOpts.converter, "converter", cfg.Converter, "HTML to Markdown converter: library or regex.")
	flags.StringVar(&fetchOpts.out, "out", cfg.OutputDir, "Output directory.")
	flags.StringVar(&fetchOpts.targets, "targets", cfg.TargetsFile, "json5 file overriding the base URL or targets of a site.")
	flags.BoolVar(&fetchOpts.strict, "strict", false, "Exit with an error when any page failed.")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <site>... | all",
	Short: "Fetches the pages of one or more sites and writes Markdown.",
	Long: `Fetches the pages of one or more sites and writes Markdown.

Component sites are written as one guide to <out>/frameworks/<site>.md,
article sites as one file per page under <out>/claude-code/. A page that
cannot be fetched is reported and skipped; use --strict to turn that into a
failing exit status.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(args) == 1 && args[0] == "all" {
			names = extractor.Names()
		}

		conv, err := markdown.ByName(fetchOpts.converter)
		if err != nil {
			return err
		}

		var overrides config.Targets
		if fetchOpts.targets != "" {
			overrides, err = config.ReadTargets(fetchOpts.targets)
			if err != nil {
				return fmt.Errorf("failed to read targets file %s: %w", fetchOpts.targets, err)
			}
		}

		var reports []*models.Report
		var runErr error
		for _, name := range names {
			site, err := extractor.Lookup(name)
			if err != nil {
				runErr = err
				break
			}
			if o, ok := overrides[name]; ok {
				site.Retarget(o.BaseURL, o.Targets)
			}

			report, err := fetchSite(cmd, site, conv)
			if report != nil {
				reports = append(reports, report)
			}
			if err != nil {
				runErr = err
				break
			}
		}

		if len(reports) > 0 {
			crawler.PrintReport(cmd.OutOrStdout(), reports...)
		}
		if runErr != nil {
			return runErr
		}

		if fetchOpts.strict {
			failed := 0
			for _, r := range reports {
				failed += len(r.Failed)
			}
			if failed > 0 {
				return fmt.Errorf("%d pages failed", failed)
			}
		}
		return nil
	},
}

// siteOptions merges the flags over the defaults the site was tuned with.
func siteOptions(cmd *cobra.Command, site extractor.Site) (fetcher.Mode, time.Duration, fetcher.Options, error) {
	defaults := site.Defaults()

	mode := defaults.Mode
	if fetchOpts.mode != "" {
		m, err := fetcher.ParseMode(fetchOpts.mode)
		if err != nil {
			return "", 0, fetcher.Options{}, err
		}
		mode = m
	}

	delay := defaults.Delay
	if fetchOpts.delay > 0 || cmd.Flags().Changed("delay") {
		delay = fetchOpts.delay
	}

	settle := defaults.Settle
	if fetchOpts.settle > 0 || cmd.Flags().Changed("settle") {
		settle = fetchOpts.settle
	}

	return mode, delay, fetcher.Options{
		Timeout:   fetchOpts.timeout,
		Retries:   fetchOpts.retries,
		UserAgent: cfg.UserAgent,
		Settle:    settle,
	}, nil
}

func fetchSite(cmd *cobra.Command, site extractor.Site, conv markdown.Converter) (*models.Report, error) {
	ctx := cmd.Context()
	log := logger.Log.With(zap.String("site", site.Name()))

	mode, delay, opts, err := siteOptions(cmd, site)
	if err != nil {
		return nil, err
	}

	log.Info("starting crawl",
		zap.String("mode", string(mode)),
		zap.Duration("delay", delay),
		zap.Int("targets", len(site.Targets())),
	)

	f, err := fetcher.New(ctx, mode, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s fetcher: %w", mode, err)
	}
	defer f.Close()

	c := &crawler.Crawler{
		Fetcher:   fetcher.NewPaced(f, delay),
		Converter: conv,
		Logger:    logger.Log,
		OutputDir: fetchOpts.out,
	}

	report, err := c.Run(ctx, site, nil)
	if errors.Is(err, context.Canceled) && report != nil {
		log.Warn("crawl interrupted", zap.Int("done", len(report.Succeeded)+len(report.Failed)))
	}
	return report, err
}
