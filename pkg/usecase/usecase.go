package usecase

import (
	"context"

	"github.com/secmon-lab/charybdis/pkg/domain/interfaces"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
	"github.com/secmon-lab/charybdis/pkg/service/github"
	"github.com/secmon-lab/charybdis/pkg/service/site"
)

type UseCases struct {
	sink      interfaces.DocumentSink
	github    github.Service
	extractor interfaces.ContentExtractor
	siteOpts  []site.Option

	Loader *LoaderUseCase
}

type Option func(*UseCases)

// WithGitHub sets the GitHub sync service
func WithGitHub(svc github.Service) Option {
	return func(uc *UseCases) {
		uc.github = svc
	}
}

// WithExtractor sets the content extractor used by site loads
func WithExtractor(extractor interfaces.ContentExtractor) Option {
	return func(uc *UseCases) {
		uc.extractor = extractor
	}
}

// WithSiteOptions forwards options to every constructed site loader
func WithSiteOptions(opts ...site.Option) Option {
	return func(uc *UseCases) {
		uc.siteOpts = append(uc.siteOpts, opts...)
	}
}

// RepositorySink adapts a repository to the loader's document sink
type RepositorySink struct {
	Repo interfaces.Repository
}

func (s *RepositorySink) AddDocuments(ctx context.Context, docs []*model.Document) error {
	return s.Repo.Document().Put(ctx, docs)
}

func New(sink interfaces.DocumentSink, opts ...Option) *UseCases {
	uc := &UseCases{
		sink: sink,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Loader = &LoaderUseCase{
		sink:      uc.sink,
		github:    uc.github,
		extractor: uc.extractor,
		siteOpts:  uc.siteOpts,
	}

	return uc
}
