package timeofday

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a time string is not HH:MM or HH:MM:SS.
var ErrInvalidFormat = errors.New("invalid time of day format")

// SecondSlotSecond is the reserved seconds value used to pack a second class
// into an already-occupied minute. Slots carrying it are matched by the
// dedicated partial unique index instead of the primary minute index.
const SecondSlotSecond = 1

// TimeOfDay is a wall-clock time with second resolution. Conflict checks
// compare it at minute resolution; the database stores it as TIME.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// Parse accepts "HH:MM" or "HH:MM:SS". A missing seconds component is
// normalized to ":00".
func Parse(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	fields := make([]int, 3)
	for i, p := range parts {
		// Exactly two digits per component; Atoi alone would admit
		// signed values like "+1".
		if len(p) != 2 || p[0] < '0' || p[0] > '9' || p[1] < '0' || p[1] > '9' {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		fields[i] = n
	}

	t := TimeOfDay{Hour: fields[0], Minute: fields[1], Second: fields[2]}
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return t, nil
}

// String renders the canonical "HH:MM:SS" form used in SQL parameters.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// TruncateToMinute drops the seconds component.
func (t TimeOfDay) TruncateToMinute() TimeOfDay {
	return TimeOfDay{Hour: t.Hour, Minute: t.Minute}
}

// SameMinute reports whether two times fall in the same minute, ignoring
// seconds on both sides.
func (t TimeOfDay) SameMinute(other TimeOfDay) bool {
	return t.Hour == other.Hour && t.Minute == other.Minute
}

// IsSecondSlot reports whether the seconds field carries the reserved
// second-slot packing value.
func (t TimeOfDay) IsSecondSlot() bool {
	return t.Second == SecondSlotSecond
}

// SecondsOfDay returns the offset from midnight in seconds. Used for
// ordering slots chronologically without going through the database.
func (t TimeOfDay) SecondsOfDay() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// MarshalJSON renders the canonical "HH:MM:SS" form.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON accepts the same forms as Parse.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, data)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
