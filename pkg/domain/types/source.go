package types

import "github.com/m-mizutani/goerr/v2"

// SourceType represents the kind of external content source
type SourceType string

const (
	SourceTypeGitHub SourceType = "github"
	SourceTypeSite   SourceType = "site"
	SourceTypeFile   SourceType = "file"
	SourceTypePDF    SourceType = "pdf"
)

// AllSourceTypes returns all valid source types
func AllSourceTypes() []SourceType {
	return []SourceType{
		SourceTypeGitHub,
		SourceTypeSite,
		SourceTypeFile,
		SourceTypePDF,
	}
}

// IsValid checks if the source type is valid
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeGitHub, SourceTypeSite, SourceTypeFile, SourceTypePDF:
		return true
	default:
		return false
	}
}

// String returns the string representation of the source type
func (t SourceType) String() string {
	return string(t)
}

// ParseSourceType parses a string into a SourceType
func ParseSourceType(s string) (SourceType, error) {
	t := SourceType(s)
	if !t.IsValid() {
		return "", goerr.New("unknown source type", goerr.V("value", s))
	}
	return t, nil
}
