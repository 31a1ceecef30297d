package types

import "github.com/m-mizutani/goerr/v2"

// MessageSource represents the platform a chat message or account originates from.
// Persisted as its canonical string form; decoding an unrecognized string is a
// conversion error, never a silent default.
type MessageSource string

const (
	MessageSourceDiscord  MessageSource = "discord"
	MessageSourceTelegram MessageSource = "telegram"
	MessageSourceTwitter  MessageSource = "twitter"
	MessageSourceAPI      MessageSource = "api"
)

// AllMessageSources returns all valid message sources
func AllMessageSources() []MessageSource {
	return []MessageSource{
		MessageSourceDiscord,
		MessageSourceTelegram,
		MessageSourceTwitter,
		MessageSourceAPI,
	}
}

// IsValid checks if the message source is valid
func (s MessageSource) IsValid() bool {
	switch s {
	case MessageSourceDiscord, MessageSourceTelegram, MessageSourceTwitter, MessageSourceAPI:
		return true
	default:
		return false
	}
}

// String returns the string representation of the message source
func (s MessageSource) String() string {
	return string(s)
}

// ParseMessageSource parses a string into a MessageSource
func ParseMessageSource(s string) (MessageSource, error) {
	src := MessageSource(s)
	if !src.IsValid() {
		return "", goerr.New("unknown message source", goerr.V("value", s))
	}
	return src, nil
}
