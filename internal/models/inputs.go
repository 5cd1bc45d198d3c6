package models

import (
	"fmt"
	"time"
)

// Input ranges. The stepper controls never leave these bounds.
const (
	MinSleepAmount  = 4.0
	MaxSleepAmount  = 12.0
	SleepAmountStep = 0.25

	MinCoffeeIntake  = 1
	MaxCoffeeIntake  = 20
	CoffeeIntakeStep = 1

	DefaultWakeHour     = 7
	DefaultWakeMinute   = 0
	DefaultSleepAmount  = 8.0
	DefaultCoffeeIntake = 1
)

// Inputs is a snapshot of the three user inputs taken for one prediction
type Inputs struct {
	WakeTime     time.Time // Wall clock value from WakeTimeAt; only hour and minute matter
	SleepAmount  float64   // Hours
	CoffeeIntake int       // Cups per day
}

// WakeTimeAt returns hour:minute on now's calendar date as a wall clock
// reading in UTC. Its Hour and Minute are always exactly hour and minute.
func WakeTimeAt(now time.Time, hour, minute int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
}

// ParseWakeTime parses an "HH:MM" value onto now's calendar date
func ParseWakeTime(now time.Time, value string) (time.Time, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid wake time %q, expected HH:MM: %w", value, err)
	}
	return WakeTimeAt(now, t.Hour(), t.Minute()), nil
}

// SleepAmountInRange reports whether hours is inside [MinSleepAmount, MaxSleepAmount]
func SleepAmountInRange(hours float64) bool {
	return hours >= MinSleepAmount && hours <= MaxSleepAmount
}

// CoffeeIntakeInRange reports whether cups is inside [MinCoffeeIntake, MaxCoffeeIntake]
func CoffeeIntakeInRange(cups int) bool {
	return cups >= MinCoffeeIntake && cups <= MaxCoffeeIntake
}
