package command

import "testing"

func TestParseUtterance(t *testing.T) {
	cases := []struct {
		text string
		want Type
	}{
		{"follow me", FollowMe},
		{"Follow Me!", FollowMe},
		{"hey, come here", FollowMe},
		{"please start following", FollowMe},
		{"stop", Stop},
		{"STOP", Stop},
		{"halt right there", Stop},
		{"freeze", Stop},
		{"don't follow me", Stop},
		{"wait a second", Stop},
		{"stop following me", Stop}, // stop wins when both match
		{"what time is it", Unknown},
		{"", Unknown},
		{"   ", Unknown},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			if got := ParseUtterance(tc.text); got != tc.want {
				t.Errorf("ParseUtterance(%q): got %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		key  int
		want Type
	}{
		{'f', FollowMe},
		{'F', FollowMe},
		{'s', Stop},
		{'S', Stop},
		{'x', Unknown},
		{-1, Unknown},
	}

	for _, tc := range cases {
		if got := ParseKey(tc.key); got != tc.want {
			t.Errorf("ParseKey(%q): got %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	if FollowMe.String() != "follow_me" || Stop.String() != "stop" || Unknown.String() != "unknown" {
		t.Error("Command names changed; the status API depends on them")
	}
}
