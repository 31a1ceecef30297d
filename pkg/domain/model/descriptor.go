package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/types"
)

// ErrNoSeparator is returned when a source string carries no colon separator
var ErrNoSeparator = goerr.New("source descriptor has no type separator")

// SourceDescriptor is a parsed "<type>:<locator>" source string. The split
// happens on the first colon only: locators such as URLs contain colons of
// their own.
type SourceDescriptor struct {
	Type    types.SourceType
	Locator string
}

// String returns the canonical descriptor form
func (d SourceDescriptor) String() string {
	return d.Type.String() + ":" + d.Locator
}

// ParseSourceDescriptor parses a "<type>:<locator>" string into a typed
// descriptor. Strings without a colon and unrecognized types return an
// error; the dispatcher decides whether that skips or aborts the source.
func ParseSourceDescriptor(s string) (*SourceDescriptor, error) {
	rawType, locator, found := strings.Cut(s, ":")
	if !found {
		return nil, goerr.Wrap(ErrNoSeparator, "invalid source descriptor", goerr.V("source", s))
	}

	srcType, err := types.ParseSourceType(rawType)
	if err != nil {
		return nil, goerr.Wrap(err, "unrecognized source descriptor type", goerr.V("source", s))
	}

	if locator == "" {
		return nil, goerr.New("source descriptor has empty locator", goerr.V("source", s))
	}

	return &SourceDescriptor{
		Type:    srcType,
		Locator: locator,
	}, nil
}
