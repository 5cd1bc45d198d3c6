package predictor

import (
	"math"
	"strings"
	"time"

	"github.com/jeandeaual/go-locale"

	"betterrest/internal/models"
)

// Time-only layouts used for the bedtime display
const (
	Layout12h = "3:04 PM"
	Layout24h = "15:04"
)

// twelveHourRegions lists regions whose everyday clock is 12-hour
var twelveHourRegions = map[string]bool{
	"US": true, "CA": true, "AU": true, "NZ": true, "PH": true, "IN": true,
	"PK": true, "BD": true, "EG": true, "SA": true, "MY": true, "CO": true,
}

// SecondsOfDay returns hour*3600 + minute*60 read in t's own location, so a
// wall clock value from models.WakeTimeAt yields the picked hour and minute.
// Seconds, date and sub-second parts are discarded.
func SecondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60
}

// SleepDuration converts model seconds into a time.Duration
func SleepDuration(seconds float64) (time.Duration, bool) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, false
	}
	ns := seconds * float64(time.Second)
	if math.Abs(ns) >= math.MaxInt64 {
		return 0, false
	}
	return time.Duration(math.Round(ns)), true
}

// Clock formats bedtimes as time-only strings
type Clock struct {
	format string
	region func() (string, error)
}

// NewClock creates a clock for one of the ui.clock_format values
func NewClock(format string) *Clock {
	return &Clock{format: format, region: locale.GetRegion}
}

// Uses12Hour reports whether times render as "3:04 PM"
func (c *Clock) Uses12Hour() bool {
	switch c.format {
	case models.ClockFormat12h:
		return true
	case models.ClockFormat24h:
		return false
	}

	region, err := c.region()
	if err != nil {
		return false
	}
	return twelveHourRegions[strings.ToUpper(region)]
}

// Layout returns the time layout for the configured format
func (c *Clock) Layout() string {
	if c.Uses12Hour() {
		return Layout12h
	}
	return Layout24h
}

// Format renders t without any date component
func (c *Clock) Format(t time.Time) string {
	return t.Format(c.Layout())
}
