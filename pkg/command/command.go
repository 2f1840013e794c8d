// Package command defines the external command set that starts and stops
// the following behavior, and the parsing of utterances and keypresses
// into it.
package command

import "strings"

// Type is an external command. Unknown exists only transiently inside
// parsers; it is never delivered to the control loop.
type Type int

const (
	Unknown Type = iota
	FollowMe
	Stop
)

// String returns the command name.
func (t Type) String() string {
	switch t {
	case FollowMe:
		return "follow_me"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// utterancePatterns maps spoken phrases to commands. Matching is
// substring-based on the lowercased transcript, so "please stop following"
// still registers. Stop patterns are checked first: an utterance containing
// both reads as a stop.
var utterancePatterns = []struct {
	cmd      Type
	patterns []string
}{
	{Stop, []string{
		"stop", "halt", "freeze", "don't follow", "wait",
	}},
	{FollowMe, []string{
		"follow me", "follow", "come here", "come follow", "start following",
	}},
}

// ParseUtterance maps a recognized utterance to a command.
// Unrecognized speech yields Unknown and is dropped by callers.
func ParseUtterance(text string) Type {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return Unknown
	}

	for _, group := range utterancePatterns {
		for _, pattern := range group.patterns {
			if strings.Contains(text, pattern) {
				return group.cmd
			}
		}
	}
	return Unknown
}

// ParseKey maps a keyboard key to a command ('f' follow, 's' stop).
func ParseKey(key int) Type {
	switch key {
	case 'f', 'F':
		return FollowMe
	case 's', 'S':
		return Stop
	default:
		return Unknown
	}
}
