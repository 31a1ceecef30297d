package types

import "github.com/m-mizutani/goerr/v2"

// ChannelType represents the kind of conversation channel
type ChannelType string

const (
	ChannelTypeText   ChannelType = "text"
	ChannelTypeDM     ChannelType = "dm"
	ChannelTypeVoice  ChannelType = "voice"
	ChannelTypeThread ChannelType = "thread"
)

// AllChannelTypes returns all valid channel types
func AllChannelTypes() []ChannelType {
	return []ChannelType{
		ChannelTypeText,
		ChannelTypeDM,
		ChannelTypeVoice,
		ChannelTypeThread,
	}
}

// IsValid checks if the channel type is valid
func (c ChannelType) IsValid() bool {
	switch c {
	case ChannelTypeText, ChannelTypeDM, ChannelTypeVoice, ChannelTypeThread:
		return true
	default:
		return false
	}
}

// String returns the string representation of the channel type
func (c ChannelType) String() string {
	return string(c)
}

// ParseChannelType parses a string into a ChannelType
func ParseChannelType(s string) (ChannelType, error) {
	c := ChannelType(s)
	if !c.IsValid() {
		return "", goerr.New("unknown channel type", goerr.V("value", s))
	}
	return c, nil
}
