// Package timetable defines the fixed weekly grid of (day, period) slots and
// owns every conversion between clock times and period indexes. No other
// package duplicates this arithmetic.
package timetable

import (
	"fmt"
	"strconv"
	"strings"

	appErrors "github.com/yossefc/emploi-du-temp-sub000/pkg/errors"
)

// Slot is one (day, period) cell of the weekly grid.
type Slot struct {
	Day    int `json:"day"`
	Period int `json:"period"`
}

// Config describes the shape of the weekly grid. The short day carries fewer
// periods than the regular days (typically the last day of the week).
type Config struct {
	DaysPerWeek       int
	PeriodsPerDay     int
	PeriodsOnShortDay int
	ShortDayIndex     int
	StartTime         string // "HH:MM", defaults to 08:00
	PeriodMinutes     int    // defaults to 45
}

// Calendar is the immutable slot grid for one solve run.
type Calendar struct {
	cfg        Config
	slots      []Slot
	startMins  int
	periodMins int
}

// New validates the configuration and builds the ordered slot set.
// A grid with zero days or zero periods is a fatal configuration error.
func New(cfg Config) (*Calendar, error) {
	if cfg.DaysPerWeek <= 0 || cfg.PeriodsPerDay <= 0 {
		return nil, appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("timetable grid must have days and periods, got %dx%d", cfg.DaysPerWeek, cfg.PeriodsPerDay))
	}
	if cfg.ShortDayIndex >= cfg.DaysPerWeek {
		return nil, appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("short day index %d outside week of %d days", cfg.ShortDayIndex, cfg.DaysPerWeek))
	}
	if cfg.PeriodsOnShortDay > cfg.PeriodsPerDay {
		return nil, appErrors.Clone(appErrors.ErrConfig, "short day cannot carry more periods than a regular day")
	}
	if cfg.PeriodsOnShortDay <= 0 {
		cfg.PeriodsOnShortDay = cfg.PeriodsPerDay
	}
	if cfg.StartTime == "" {
		cfg.StartTime = "08:00"
	}
	if cfg.PeriodMinutes <= 0 {
		cfg.PeriodMinutes = 45
	}

	start, err := parseClock(cfg.StartTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Status, "invalid school start time")
	}

	cal := &Calendar{cfg: cfg, startMins: start, periodMins: cfg.PeriodMinutes}
	for day := 0; day < cfg.DaysPerWeek; day++ {
		for period := 0; period < cal.PeriodsOn(day); period++ {
			cal.slots = append(cal.slots, Slot{Day: day, Period: period})
		}
	}
	return cal, nil
}

// Slots returns the ordered set of valid slots.
func (c *Calendar) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Days returns the number of days in the week.
func (c *Calendar) Days() int {
	return c.cfg.DaysPerWeek
}

// PeriodsOn returns the number of periods taught on the given day.
func (c *Calendar) PeriodsOn(day int) int {
	if day == c.cfg.ShortDayIndex {
		return c.cfg.PeriodsOnShortDay
	}
	return c.cfg.PeriodsPerDay
}

// Contains reports whether (day, period) is a valid slot of the grid.
func (c *Calendar) Contains(day, period int) bool {
	return day >= 0 && day < c.cfg.DaysPerWeek && period >= 0 && period < c.PeriodsOn(day)
}

// PeriodAt maps a clock time to a period index on the given day. The mapping
// is total: times before school start map to period 0 and times past the last
// period cap at the last valid index.
func (c *Calendar) PeriodAt(day int, clock string) int {
	mins, err := parseClock(clock)
	if err != nil || mins <= c.startMins {
		return 0
	}
	period := (mins - c.startMins) / c.periodMins
	if last := c.PeriodsOn(day) - 1; period > last {
		return last
	}
	return period
}

// CoveredPeriods expands a [start, end) clock window into the period indexes
// it touches on the given day. Used by availability-exception ingestion.
func (c *Calendar) CoveredPeriods(day int, start, end string) []int {
	startMins, err := parseClock(start)
	if err != nil {
		startMins = c.startMins
	}
	endMins, err := parseClock(end)
	if err != nil {
		endMins = c.startMins + c.PeriodsOn(day)*c.periodMins
	}
	if endMins <= startMins {
		return nil
	}

	var periods []int
	for period := 0; period < c.PeriodsOn(day); period++ {
		pStart := c.startMins + period*c.periodMins
		pEnd := pStart + c.periodMins
		if startMins < pEnd && pStart < endMins {
			periods = append(periods, period)
		}
	}
	return periods
}

// PeriodWindow returns the clock boundaries of a period as "HH:MM" strings.
// Used by output formatting.
func (c *Calendar) PeriodWindow(period int) (start, end string) {
	from := c.startMins + period*c.periodMins
	return formatClock(from), formatClock(from + c.periodMins)
}

func parseClock(raw string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock time %q", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock time %q", raw)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock time %q", raw)
	}
	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("clock time %q out of range", raw)
	}
	return hours*60 + mins, nil
}

func formatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
