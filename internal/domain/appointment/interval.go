package appointment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
)

const (
	BusinessOpen  = 8 * 60
	BusinessClose = 17 * 60

	// SlotGranularity is the appointment length unit in minutes.
	SlotGranularity = 30
)

// BusinessHours is the window every appointment must fit in.
var BusinessHours = Interval{Start: BusinessOpen, End: BusinessClose}

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, invalidTime(s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || len(h) == 0 || len(h) > 2 {
		return 0, invalidTime(s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 {
		return 0, invalidTime(s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, invalidTime(s)
	}
	return hour*60 + minute, nil
}

func invalidTime(s string) error {
	return httperr.New(httperr.KindInvalidTimeFormat, fmt.Sprintf("Invalid time %q, expected HH:MM", s))
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NewInterval parses and validates an appointment window: both ends inside
// business hours, positive length, whole multiples of SlotGranularity.
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}

	iv := Interval{Start: s, End: e}
	if err := iv.checkBusinessHours(); err != nil {
		return Interval{}, err
	}
	if err := iv.checkDuration(SlotGranularity); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// ParseInterval parses a stored window without policy checks. Used for
// existing appointments read back from the store.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

func (iv Interval) checkBusinessHours() error {
	if !BusinessHours.ContainsPoint(iv.Start) {
		return httperr.New(httperr.KindOutOfBusinessHours, "Start time must be between 08:00 and 17:00")
	}
	if !BusinessHours.ContainsPoint(iv.End) {
		return httperr.New(httperr.KindOutOfBusinessHours, "End time must be between 08:00 and 17:00")
	}
	return nil
}

func (iv Interval) checkDuration(granularity int) error {
	d := iv.Duration()
	if d <= 0 {
		return httperr.New(httperr.KindNonPositiveDuration, "End time must be after start time")
	}
	if d%granularity != 0 {
		return httperr.New(httperr.KindInvalidGranularity,
			fmt.Sprintf("Duration must be a multiple of %d minutes", granularity))
	}
	return nil
}

func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// Overlaps reports whether the two ranges share any minute. Touching
// endpoints do not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && o.Start < iv.End
}

// Contains reports whether o lies completely inside iv.
func (iv Interval) Contains(o Interval) bool {
	return iv.Start <= o.Start && o.End <= iv.End
}

// ContainsPoint treats both boundaries as inclusive, so 17:00 is a valid end.
func (iv Interval) ContainsPoint(minute int) bool {
	return iv.Start <= minute && minute <= iv.End
}

func (iv Interval) String() string {
	return FormatClock(iv.Start) + "-" + FormatClock(iv.End)
}
