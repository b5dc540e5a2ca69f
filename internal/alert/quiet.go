package alert

import (
	"fmt"
	"strings"
	"time"
)

// QuietHours is a daily local-time window, possibly wrapping midnight
type QuietHours struct {
	start int // minutes after midnight
	end   int
	loc   *time.Location
}

// ParseQuietHours parses "HH:MM-HH:MM" in the named timezone.
// An empty spec, or one whose start equals its end, disables quiet hours.
func ParseQuietHours(spec, timezone string) (*QuietHours, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	loc := time.UTC
	if timezone != "" {
		var err error
		if loc, err = time.LoadLocation(timezone); err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
	}

	from, to, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, fmt.Errorf("invalid quiet hours %q: expected HH:MM-HH:MM", spec)
	}
	start, err := parseClock(from)
	if err != nil {
		return nil, fmt.Errorf("invalid quiet hours %q: %w", spec, err)
	}
	end, err := parseClock(to)
	if err != nil {
		return nil, fmt.Errorf("invalid quiet hours %q: %w", spec, err)
	}
	if start == end {
		return nil, nil
	}

	return &QuietHours{start: start, end: end, loc: loc}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Contains reports whether t falls inside the window. A nil window contains nothing.
func (q *QuietHours) Contains(t time.Time) bool {
	if q == nil {
		return false
	}

	local := t.In(q.loc)
	m := local.Hour()*60 + local.Minute()
	if q.start < q.end {
		return m >= q.start && m < q.end
	}
	return m >= q.start || m < q.end
}
