package github

import (
	"encoding/json"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
)

// metadataOf preserves the raw provider payload as a generic map so the
// document keeps every field without a schema for each entity kind.
func metadataOf(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func formatTime(ts *gh.Timestamp) string {
	if ts == nil {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

func timePtr(ts *gh.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.UTC()
	return &t
}

func repoDocument(org string, repo *gh.Repository) *model.Document {
	fullName := repo.GetFullName()
	if fullName == "" {
		fullName = repo.GetName()
	}

	description := repo.GetDescription()
	if description == "" {
		description = "No description"
	}

	content := fmt.Sprintf(
		"Repository: %s\nDescription: %s\nURL: %s\nCreated: %s\nLast Updated: %s",
		fullName,
		description,
		repo.GetHTMLURL(),
		formatTime(repo.CreatedAt),
		formatTime(repo.UpdatedAt),
	)

	return &model.Document{
		ID:        model.RepoDocumentID(fullName),
		SourceID:  model.GitHubOrgSourceID(org),
		Content:   content,
		CreatedAt: timePtr(repo.CreatedAt),
		Metadata:  metadataOf(repo),
	}
}

func pullDocument(org, fullName string, pr *gh.PullRequest) *model.Document {
	content := fmt.Sprintf(
		"Pull Request: #%d - %s\nAuthor: @%s\nState: %s\nURL: %s\nCreated: %s\nLast Updated: %s\n\n%s",
		pr.GetNumber(),
		pr.GetTitle(),
		pr.GetUser().GetLogin(),
		pr.GetState(),
		pr.GetHTMLURL(),
		formatTime(pr.CreatedAt),
		formatTime(pr.UpdatedAt),
		pr.GetBody(),
	)

	return &model.Document{
		ID:        model.PullRequestDocumentID(org, fullName, pr.GetNumber()),
		SourceID:  model.GitHubOrgSourceID(org),
		Content:   content,
		CreatedAt: timePtr(pr.CreatedAt),
		Metadata:  metadataOf(pr),
	}
}

func issueDocument(org, fullName string, issue *gh.Issue) *model.Document {
	content := fmt.Sprintf(
		"Issue: #%d - %s\nAuthor: @%s\nState: %s\nURL: %s\nCreated: %s\nLast Updated: %s\n\n%s",
		issue.GetNumber(),
		issue.GetTitle(),
		issue.GetUser().GetLogin(),
		issue.GetState(),
		issue.GetHTMLURL(),
		formatTime(issue.CreatedAt),
		formatTime(issue.UpdatedAt),
		issue.GetBody(),
	)

	return &model.Document{
		ID:        model.IssueDocumentID(org, fullName, issue.GetNumber()),
		SourceID:  model.GitHubOrgSourceID(org),
		Content:   content,
		CreatedAt: timePtr(issue.CreatedAt),
		Metadata:  metadataOf(issue),
	}
}

func commitDocument(org, fullName string, commit *gh.RepositoryCommit) *model.Document {
	// The commit author account may be gone; fall back to the recorded name
	author := ""
	if login := commit.GetAuthor().GetLogin(); login != "" {
		author = "@" + login
	} else if commit.GetCommit().GetAuthor() != nil {
		author = commit.GetCommit().GetAuthor().GetName()
	}

	var authorDate *gh.Timestamp
	if commitAuthor := commit.GetCommit().GetAuthor(); commitAuthor != nil {
		authorDate = commitAuthor.Date
	}

	content := fmt.Sprintf(
		"Commit: %s\nAuthor: %s\nDate: %s\nURL: %s\n\n%s",
		commit.GetSHA(),
		author,
		formatTime(authorDate),
		commit.GetHTMLURL(),
		commit.GetCommit().GetMessage(),
	)

	return &model.Document{
		ID:        model.CommitDocumentID(org, fullName, commit.GetSHA()),
		SourceID:  model.GitHubOrgSourceID(org),
		Content:   content,
		CreatedAt: timePtr(authorDate),
		Metadata:  metadataOf(commit),
	}
}
