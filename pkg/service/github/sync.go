package github

import (
	"context"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

func (c *client) listOrgRepos(ctx context.Context, org string) ([]*gh.Repository, error) {
	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	var all []*gh.Repository
	for {
		var resp *gh.Response
		repos, err := call(ctx, c, "list org repositories", func() ([]*gh.Repository, *gh.Response, error) {
			var err error
			var page []*gh.Repository
			page, resp, err = c.gh.Repositories.ListByOrg(ctx, org, opts)
			return page, resp, err
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list repositories", goerr.V("org", org))
		}
		all = append(all, repos...)

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// ListOrgRepositories returns one document per repository in the organization
func (c *client) ListOrgRepositories(ctx context.Context, org string) ([]*model.Document, error) {
	repos, err := c.listOrgRepos(ctx, org)
	if err != nil {
		return nil, err
	}

	docs := make([]*model.Document, 0, len(repos))
	for _, repo := range repos {
		docs = append(docs, repoDocument(org, repo))
	}
	return docs, nil
}

// pullDocs fetches pulls updated at or after since. The provider sorts by
// update time descending; the watermark is re-applied client-side because
// provider-side time filtering for pulls is not reliable.
func (c *client) pullDocs(ctx context.Context, org, owner, repo string, since time.Time) ([]*model.Document, error) {
	fullName := owner + "/" + repo
	opts := &gh.PullRequestListOptions{
		State:       "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	var docs []*model.Document
	for {
		var resp *gh.Response
		pulls, err := call(ctx, c, "list pull requests", func() ([]*gh.PullRequest, *gh.Response, error) {
			var err error
			var page []*gh.PullRequest
			page, resp, err = c.gh.PullRequests.List(ctx, owner, repo, opts)
			return page, resp, err
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list pull requests",
				goerr.V("owner", owner), goerr.V("repo", repo))
		}

		// Update-descending sort means the first stale entry ends the walk
		done := false
		for _, pr := range pulls {
			if pr.UpdatedAt == nil || pr.UpdatedAt.Time.Before(since) {
				done = true
				continue
			}
			docs = append(docs, pullDocument(org, fullName, pr))
		}

		if done || resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return docs, nil
}

// ListPullRequests returns pull requests updated at or after since
func (c *client) ListPullRequests(ctx context.Context, owner, repo string, since time.Time) ([]*model.Document, error) {
	return c.pullDocs(ctx, owner, owner, repo, since)
}

// issueDocs fetches issues updated at or after since. The issues endpoint
// also returns pull requests; entities carrying a pull request linkage are
// dropped so they are not counted twice.
func (c *client) issueDocs(ctx context.Context, org, owner, repo string, since time.Time) ([]*model.Document, error) {
	fullName := owner + "/" + repo
	opts := &gh.IssueListByRepoOptions{
		State:       "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	var docs []*model.Document
	for {
		var resp *gh.Response
		issues, err := call(ctx, c, "list issues", func() ([]*gh.Issue, *gh.Response, error) {
			var err error
			var page []*gh.Issue
			page, resp, err = c.gh.Issues.ListByRepo(ctx, owner, repo, opts)
			return page, resp, err
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list issues",
				goerr.V("owner", owner), goerr.V("repo", repo))
		}

		done := false
		for _, issue := range issues {
			if issue.UpdatedAt == nil || issue.UpdatedAt.Time.Before(since) {
				done = true
				continue
			}
			if issue.IsPullRequest() {
				continue
			}
			docs = append(docs, issueDocument(org, fullName, issue))
		}

		if done || resp == nil || resp.NextPage == 0 {
			break
		}
		// IssueListByRepoOptions promotes Page from two embedded option
		// structs, so the offset-based one must be named explicitly
		opts.ListOptions.Page = resp.NextPage
	}

	return docs, nil
}

// ListIssues returns issues updated at or after since, excluding pull requests
func (c *client) ListIssues(ctx context.Context, owner, repo string, since time.Time) ([]*model.Document, error) {
	return c.issueDocs(ctx, owner, owner, repo, since)
}

// commitDocs fetches commits authored at or after since. Commits support
// provider-side time filtering natively, so no client-side re-filter.
func (c *client) commitDocs(ctx context.Context, org, owner, repo string, since time.Time) ([]*model.Document, error) {
	fullName := owner + "/" + repo
	opts := &gh.CommitsListOptions{
		Since:       since,
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	var docs []*model.Document
	for {
		var resp *gh.Response
		commits, err := call(ctx, c, "list commits", func() ([]*gh.RepositoryCommit, *gh.Response, error) {
			var err error
			var page []*gh.RepositoryCommit
			page, resp, err = c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
			return page, resp, err
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list commits",
				goerr.V("owner", owner), goerr.V("repo", repo))
		}

		for _, commit := range commits {
			docs = append(docs, commitDocument(org, fullName, commit))
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return docs, nil
}

// ListCommits returns commits authored at or after since
func (c *client) ListCommits(ctx context.Context, owner, repo string, since time.Time) ([]*model.Document, error) {
	return c.commitDocs(ctx, owner, owner, repo, since)
}

// SyncRepository fetches pulls, issues and commits of one repository in
// that order
func (c *client) SyncRepository(ctx context.Context, org, owner, repo string, since time.Time) ([]*model.Document, error) {
	pulls, err := c.pullDocs(ctx, org, owner, repo, since)
	if err != nil {
		return nil, err
	}
	issues, err := c.issueDocs(ctx, org, owner, repo, since)
	if err != nil {
		return nil, err
	}
	commits, err := c.commitDocs(ctx, org, owner, repo, since)
	if err != nil {
		return nil, err
	}

	docs := make([]*model.Document, 0, len(pulls)+len(issues)+len(commits))
	docs = append(docs, pulls...)
	docs = append(docs, issues...)
	docs = append(docs, commits...)
	return docs, nil
}

// SyncOrganization lists repositories once, then syncs each repository
// through a bounded worker pool. Results are joined in listing order so
// the output is deterministic regardless of completion order. A repository
// whose qualified name cannot be split into owner/repo aborts the whole
// run: it signals an upstream data anomaly worth surfacing loudly.
func (c *client) SyncOrganization(ctx context.Context, org string, since time.Time) ([]*model.Document, error) {
	repos, err := c.listOrgRepos(ctx, org)
	if err != nil {
		return nil, err
	}

	type repoTarget struct {
		fullName string
		owner    string
		name     string
		summary  *model.Document
	}

	targets := make([]repoTarget, 0, len(repos))
	for _, repo := range repos {
		fullName := repo.GetFullName()
		if fullName == "" {
			fullName = repo.GetName()
		}
		owner, name, found := strings.Cut(fullName, "/")
		if !found {
			return nil, goerr.New("repository name is not owner/repo qualified",
				goerr.V("org", org), goerr.V("repository", fullName))
		}
		targets = append(targets, repoTarget{
			fullName: fullName,
			owner:    owner,
			name:     name,
			summary:  repoDocument(org, repo),
		})
	}

	results := make([][]*model.Document, len(targets))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)

	for i, target := range targets {
		eg.Go(func() error {
			docs, err := c.SyncRepository(egCtx, org, target.owner, target.name, since)
			if err != nil {
				return goerr.Wrap(err, "failed to sync repository",
					goerr.V("repository", target.fullName))
			}
			results[i] = docs
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []*model.Document
	for i, target := range targets {
		all = append(all, target.summary)
		all = append(all, results[i]...)
	}
	return all, nil
}
