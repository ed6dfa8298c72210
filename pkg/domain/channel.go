package domain

import dErrors "contactgate/pkg/domain-errors"

// Channel identifies an outbound contact medium.
// Invariant: the value must be one of the supported channels.
//
// Usage: construct via ParseChannel at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Channel string

const (
	ChannelVoice Channel = "voice"
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// AllChannels lists every supported channel, in stable order. Rule catalog
// entries use it when a regulation applies to any contact medium.
var AllChannels = []Channel{ChannelVoice, ChannelSMS, ChannelEmail}

var validChannels = map[Channel]bool{
	ChannelVoice: true,
	ChannelSMS:   true,
	ChannelEmail: true,
}

// ParseChannel constructs a Channel from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported; no
// other errors are expected.
func ParseChannel(s string) (Channel, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "channel cannot be empty")
	}
	c := Channel(s)
	if !validChannels[c] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid channel")
	}
	return c, nil
}

// IsValid checks if the channel is one of the supported enum values.
func (c Channel) IsValid() bool { return validChannels[c] }

// String returns the string representation of the channel.
func (c Channel) String() string { return string(c) }
