package model

import (
	"fmt"
	"time"
)

// DocumentID is a deterministic identifier for a Document. It is computed
// purely from the source type, locator and provider entity identity, so
// re-ingesting the same entity always yields the same ID.
type DocumentID string

// Document is the unit of ingestion. Every external entity (a repository,
// a pull request, a scraped page, a local file) is normalized into one
// Document before it reaches storage.
//
// Content is the only field fed to embedding. Metadata preserves the
// original provider payload verbatim for diagnostics and future fields
// without schema migration.
type Document struct {
	ID        DocumentID
	SourceID  string
	Content   string
	CreatedAt *time.Time
	Metadata  map[string]any
}

// GitHubOrgSourceID groups all documents fetched for one organization
func GitHubOrgSourceID(org string) string {
	return "github:" + org
}

// SiteSourceID groups documents extracted from one page URL
func SiteSourceID(url string) string {
	return "site:" + url
}

// FileSourceID groups documents loaded from one glob pattern
func FileSourceID(glob string) string {
	return "file:" + glob
}

// RepoDocumentID identifies a repository summary document
func RepoDocumentID(fullName string) DocumentID {
	return DocumentID("github:repo:" + fullName)
}

// PullRequestDocumentID identifies a pull request document
func PullRequestDocumentID(org, fullName string, number int) DocumentID {
	return DocumentID(fmt.Sprintf("github:pr:%s:%s/%d", org, fullName, number))
}

// IssueDocumentID identifies an issue document
func IssueDocumentID(org, fullName string, number int) DocumentID {
	return DocumentID(fmt.Sprintf("github:issue:%s:%s/%d", org, fullName, number))
}

// CommitDocumentID identifies a commit document
func CommitDocumentID(org, fullName, sha string) DocumentID {
	return DocumentID(fmt.Sprintf("github:commit:%s:%s/%s", org, fullName, sha))
}

// SiteDocumentID identifies the extracted content of one page
func SiteDocumentID(url string) DocumentID {
	return DocumentID(url)
}

// FileDocumentID identifies one loaded file by its path
func FileDocumentID(path string) DocumentID {
	return DocumentID(path)
}
