package timeofday

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"19:00", "19:00:00", true},
		{"19:00:01", "19:00:01", true},
		{"00:00", "00:00:00", true},
		{"23:59:59", "23:59:59", true},
		{"24:00", "", false},
		{"19:60", "", false},
		{"19:00:60", "", false},
		{"9:00", "", false},
		{"19h00", "", false},
		{"+1:30", "", false},
		{"-0:30", "", false},
		{"19:+1", "", false},
		{"", "", false},
		{"19:00:01:00", "", false},
	}

	for _, tc := range cases {
		got, err := Parse(tc.input)
		if tc.ok {
			if err != nil {
				t.Errorf("Parse(%q): unexpected error %v", tc.input, err)
				continue
			}
			if got.String() != tc.want {
				t.Errorf("Parse(%q) = %s, want %s", tc.input, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Parse(%q): err = %v, want ErrInvalidFormat", tc.input, err)
		}
	}
}

func TestSameMinuteIgnoresSeconds(t *testing.T) {
	a, _ := Parse("19:00:00")
	b, _ := Parse("19:00:45")
	c, _ := Parse("19:01:00")

	if !a.SameMinute(b) {
		t.Error("19:00:00 and 19:00:45 should share a minute")
	}
	if a.SameMinute(c) {
		t.Error("19:00:00 and 19:01:00 should not share a minute")
	}
	if got := b.TruncateToMinute().String(); got != "19:00:00" {
		t.Errorf("TruncateToMinute = %s, want 19:00:00", got)
	}
}

func TestIsSecondSlot(t *testing.T) {
	packed, _ := Parse("19:00:01")
	regular, _ := Parse("19:00:00")
	late, _ := Parse("19:00:02")

	if !packed.IsSecondSlot() {
		t.Error("seconds = 1 should mark a second slot")
	}
	if regular.IsSecondSlot() || late.IsSecondSlot() {
		t.Error("only seconds = 1 marks a second slot")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	parsed, _ := Parse("19:00:01")

	data, err := json.Marshal(parsed)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"19:00:01"` {
		t.Errorf("marshaled = %s", data)
	}

	var back TimeOfDay
	if err := json.Unmarshal([]byte(`"07:30"`), &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.String() != "07:30:00" {
		t.Errorf("unmarshaled = %s, want 07:30:00", back)
	}

	if err := json.Unmarshal([]byte(`"later"`), &back); err == nil {
		t.Error("expected error for malformed time")
	}
}

func TestSecondsOfDay(t *testing.T) {
	parsed, _ := Parse("01:02:03")
	if got := parsed.SecondsOfDay(); got != 3723 {
		t.Errorf("SecondsOfDay = %d, want 3723", got)
	}
}
