package github

import (
	"context"
	"time"

	"github.com/secmon-lab/charybdis/pkg/domain/model"
)

// Service provides interface to GitHub API for incremental activity sync
type Service interface {
	// ListOrgRepositories returns one document per repository in the organization
	ListOrgRepositories(ctx context.Context, org string) ([]*model.Document, error)

	// ListPullRequests returns pull requests updated at or after since
	ListPullRequests(ctx context.Context, owner, repo string, since time.Time) ([]*model.Document, error)

	// ListIssues returns issues updated at or after since, excluding pull requests
	ListIssues(ctx context.Context, owner, repo string, since time.Time) ([]*model.Document, error)

	// ListCommits returns commits authored at or after since
	ListCommits(ctx context.Context, owner, repo string, since time.Time) ([]*model.Document, error)

	// SyncRepository fetches the full activity of one repository: pulls, issues, commits
	SyncRepository(ctx context.Context, org, owner, repo string, since time.Time) ([]*model.Document, error)

	// SyncOrganization fetches repositories then fans out per-repo syncs.
	// Output order follows the organization listing order regardless of
	// fetch completion order.
	SyncOrganization(ctx context.Context, org string, since time.Time) ([]*model.Document, error)
}
