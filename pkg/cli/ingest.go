package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/cli/config"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
	"github.com/secmon-lab/charybdis/pkg/service/site"
	"github.com/secmon-lab/charybdis/pkg/usecase"
	"github.com/secmon-lab/charybdis/pkg/utils/errutil"
	"github.com/secmon-lab/charybdis/pkg/utils/logging"
	"github.com/secmon-lab/charybdis/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdIngest() *cli.Command {
	var (
		githubCfg config.GitHub
		geminiCfg config.Gemini
		repoCfg   config.Repository

		sources     []string
		sourcesFile string
		sinceRaw    string
		cacheDir    string
		cacheTTL    time.Duration
		timeout     time.Duration
	)

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "source",
			Aliases:     []string{"s"},
			Usage:       "Source descriptor <type>:<locator> (repeatable)",
			Sources:     cli.EnvVars("CHARYBDIS_SOURCES"),
			Destination: &sources,
		},
		&cli.StringFlag{
			Name:        "sources-file",
			Usage:       "TOML file listing source descriptors",
			Sources:     cli.EnvVars("CHARYBDIS_SOURCES_FILE"),
			Destination: &sourcesFile,
		},
		&cli.StringFlag{
			Name:        "since",
			Usage:       "Watermark timestamp (RFC3339); only entities updated at or after it are fetched",
			Sources:     cli.EnvVars("CHARYBDIS_SINCE"),
			Destination: &sinceRaw,
		},
		&cli.StringFlag{
			Name:        "cache-dir",
			Usage:       "Root directory for site artifact cache",
			Value:       ".sources/sites",
			Sources:     cli.EnvVars("CHARYBDIS_CACHE_DIR"),
			Destination: &cacheDir,
		},
		&cli.DurationFlag{
			Name:        "cache-ttl",
			Usage:       "Serve cached site content younger than this instead of re-fetching (0 disables)",
			Sources:     cli.EnvVars("CHARYBDIS_CACHE_TTL"),
			Destination: &cacheTTL,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Deadline for the whole ingest run (0 means no deadline)",
			Sources:     cli.EnvVars("CHARYBDIS_TIMEOUT"),
			Destination: &timeout,
		},
	}
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "ingest",
		Usage: "Fetch all configured sources and store the normalized documents",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if sourcesFile != "" {
				cfg, err := config.LoadSourcesFile(sourcesFile)
				if err != nil {
					return err
				}
				sources = append(sources, cfg.Sources...)
			}
			if len(sources) == 0 {
				return goerr.New("no sources given: use --source or --sources-file")
			}

			var since time.Time
			if sinceRaw != "" {
				parsed, err := time.Parse(time.RFC3339, sinceRaw)
				if err != nil {
					return goerr.Wrap(err, "invalid since timestamp", goerr.V("since", sinceRaw))
				}
				since = parsed.UTC()
			}

			repo, err := repoCfg.Configure()
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			ucOpts := []usecase.Option{
				usecase.WithGitHub(githubCfg.Configure()),
				usecase.WithSiteOptions(
					site.WithCacheRoot(cacheDir),
					site.WithCacheTTL(cacheTTL),
				),
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if llmClient != nil {
				extractor, err := site.NewExtractor(llmClient)
				if err != nil {
					return err
				}
				ucOpts = append(ucOpts, usecase.WithExtractor(extractor))
			} else {
				logging.From(ctx).Warn("no Gemini project configured, site sources will fail")
			}

			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			uc := usecase.New(&usecase.RepositorySink{Repo: repo}, ucOpts...)

			report, loadErr := uc.Loader.Load(ctx, sources, since)
			if report != nil {
				renderReport(report)
			}
			if loadErr != nil {
				return errutil.Handle(ctx, loadErr, "ingest run aborted")
			}
			return nil
		},
	}
}

var (
	loadedColor  = color.New(color.FgGreen)
	skippedColor = color.New(color.FgYellow)
	failedColor  = color.New(color.FgRed)
)

func statusLabel(status model.OutcomeStatus) string {
	switch status {
	case model.OutcomeLoaded:
		return loadedColor.Sprint("loaded")
	case model.OutcomeSkipped:
		return skippedColor.Sprint("skipped")
	default:
		return failedColor.Sprint("failed")
	}
}

func renderReport(report *model.LoadReport) {
	w := os.Stdout

	fmt.Fprintf(w, "\nRun %s (%s)\n", report.RunID,
		report.CompletedAt.Sub(report.StartedAt).Round(time.Millisecond))

	for _, outcome := range report.Outcomes {
		fmt.Fprintf(w, "  %-8s %s", statusLabel(outcome.Status), outcome.Source)
		switch outcome.Status {
		case model.OutcomeLoaded:
			fmt.Fprintf(w, " (%d documents)", outcome.Documents)
		case model.OutcomeSkipped:
			fmt.Fprintf(w, " (%s)", outcome.Reason)
		case model.OutcomeFailed:
			if outcome.Err != nil {
				fmt.Fprintf(w, " (%v)", outcome.Err)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total: %d documents from %d sources, %d failed\n",
		report.TotalDocuments(), len(report.Outcomes), len(report.Failed()))
}
