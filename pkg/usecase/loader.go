package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/interfaces"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
	"github.com/secmon-lab/charybdis/pkg/domain/types"
	"github.com/secmon-lab/charybdis/pkg/service/file"
	"github.com/secmon-lab/charybdis/pkg/service/github"
	"github.com/secmon-lab/charybdis/pkg/service/site"
	"github.com/secmon-lab/charybdis/pkg/utils/logging"
)

// LoaderUseCase dispatches configured sources to their loaders and
// delivers every produced document to the sink. Each source succeeds or
// fails on its own: a bad source never sinks its siblings, and every
// configured source string gets an outcome in the run report.
type LoaderUseCase struct {
	sink      interfaces.DocumentSink
	github    github.Service
	extractor interfaces.ContentExtractor
	siteOpts  []site.Option
}

// Load ingests every source and returns the per-source report. The
// report is returned even on error: when the context deadline expires,
// already-completed sources are delivered and the remaining ones are
// reported as skipped.
func (uc *LoaderUseCase) Load(ctx context.Context, sources []string, since time.Time) (*model.LoadReport, error) {
	report := model.NewLoadReport()
	logger := logging.From(ctx)

	for i, raw := range sources {
		if err := ctx.Err(); err != nil {
			for _, rest := range sources[i:] {
				report.Add(model.SourceOutcome{
					Source: rest,
					Status: model.OutcomeSkipped,
					Reason: "run canceled before this source started",
				})
			}
			report.CompletedAt = time.Now().UTC()
			return report, goerr.Wrap(err, "multi-source load canceled")
		}

		report.Add(uc.loadOne(ctx, raw, since))
	}

	report.CompletedAt = time.Now().UTC()
	logger.Info("multi-source load finished",
		"run_id", report.RunID,
		"sources", len(report.Outcomes),
		"documents", report.TotalDocuments(),
		"failed", len(report.Failed()),
	)
	return report, nil
}

func (uc *LoaderUseCase) loadOne(ctx context.Context, raw string, since time.Time) model.SourceOutcome {
	desc, err := model.ParseSourceDescriptor(raw)
	if err != nil {
		logging.From(ctx).Warn("skipping unrecognized source", "source", raw, "error", err)
		return model.SourceOutcome{
			Source: raw,
			Status: model.OutcomeSkipped,
			Reason: "unrecognized source descriptor",
			Err:    err,
		}
	}

	docs, err := uc.fetch(ctx, desc, since)
	if err != nil {
		var skip *skipError
		if errors.As(err, &skip) {
			return model.SourceOutcome{
				Source: raw,
				Status: model.OutcomeSkipped,
				Reason: skip.reason,
			}
		}
		return model.SourceOutcome{
			Source: raw,
			Status: model.OutcomeFailed,
			Reason: "fetch failed",
			Err:    err,
		}
	}

	if err := uc.sink.AddDocuments(ctx, docs); err != nil {
		return model.SourceOutcome{
			Source: raw,
			Status: model.OutcomeFailed,
			Reason: "storage rejected documents",
			Err:    goerr.Wrap(err, "failed to store documents", goerr.V("source", raw)),
		}
	}

	return model.SourceOutcome{
		Source:    raw,
		Status:    model.OutcomeLoaded,
		Documents: len(docs),
	}
}

type skipError struct {
	reason string
}

func (e *skipError) Error() string {
	return e.reason
}

func (uc *LoaderUseCase) fetch(ctx context.Context, desc *model.SourceDescriptor, since time.Time) ([]*model.Document, error) {
	switch desc.Type {
	case types.SourceTypeGitHub:
		return uc.fetchGitHub(ctx, desc.Locator, since)

	case types.SourceTypeSite:
		if uc.extractor == nil {
			return nil, goerr.New("site source requires a content extractor", goerr.V("url", desc.Locator))
		}
		loader, err := site.New(desc.Locator, uc.extractor, uc.siteOpts...)
		if err != nil {
			return nil, err
		}
		return loader.Load(ctx)

	case types.SourceTypeFile:
		return file.New(desc.Locator).Load(ctx)

	case types.SourceTypePDF:
		return nil, &skipError{reason: "pdf loader not enabled"}

	default:
		return nil, goerr.New("no loader for source type", goerr.V("type", desc.Type))
	}
}

// fetchGitHub routes a github locator: an organization name triggers an
// org-wide sync, an owner/repo pair syncs that single repository.
func (uc *LoaderUseCase) fetchGitHub(ctx context.Context, locator string, since time.Time) ([]*model.Document, error) {
	if uc.github == nil {
		return nil, goerr.New("github source requires a configured client", goerr.V("locator", locator))
	}

	owner, repo, found := strings.Cut(locator, "/")
	if !found {
		return uc.github.SyncOrganization(ctx, locator, since)
	}
	if owner == "" || repo == "" {
		return nil, goerr.New("invalid github locator", goerr.V("locator", locator))
	}
	return uc.github.SyncRepository(ctx, owner, owner, repo, since)
}
