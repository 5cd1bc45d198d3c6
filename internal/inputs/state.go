// Package inputs holds the values bound to the bedtime form.
package inputs

import (
	"math"
	"time"

	"betterrest/internal/models"
)

// Defaults are the values a fresh State starts with
type Defaults struct {
	WakeHour     int
	WakeMinute   int
	SleepAmount  float64
	CoffeeIntake int
}

// StandardDefaults returns 07:00, 8 hours and 1 cup
func StandardDefaults() Defaults {
	return Defaults{
		WakeHour:     models.DefaultWakeHour,
		WakeMinute:   models.DefaultWakeMinute,
		SleepAmount:  models.DefaultSleepAmount,
		CoffeeIntake: models.DefaultCoffeeIntake,
	}
}

// DefaultsFromConfig reads the starting values from the general config section
func DefaultsFromConfig(cfg *models.Config, now time.Time) (Defaults, error) {
	wake, err := models.ParseWakeTime(now, cfg.General.WakeTime)
	if err != nil {
		return Defaults{}, err
	}
	return Defaults{
		WakeHour:     wake.Hour(),
		WakeMinute:   wake.Minute(),
		SleepAmount:  cfg.General.SleepHours,
		CoffeeIntake: cfg.General.CoffeeCups,
	}, nil
}

// State is the single-screen input state. It is written by user interaction
// and by the prediction result only, both on the UI goroutine.
type State struct {
	day        time.Time
	wakeHour   int
	wakeMinute int

	sleepAmount  float64
	coffeeIntake int

	alertTitle   string
	alertMessage string
	showingAlert bool
	lastAlert    models.Alert
}

// NewState creates a state initialised from defaults. The wake time is placed
// on now's calendar day.
func NewState(d Defaults, now time.Time) *State {
	s := &State{}
	s.SetWakeTime(now, d.WakeHour, d.WakeMinute)
	s.SetSleepAmount(d.SleepAmount)
	s.SetCoffeeIntake(d.CoffeeIntake)
	return s
}

// WakeTime returns the current wake time, built from the stored hour and
// minute on the state's calendar day
func (s *State) WakeTime() time.Time {
	return models.WakeTimeAt(s.day, s.wakeHour, s.wakeMinute)
}

// WakeHour returns the picked hour
func (s *State) WakeHour() int {
	return s.wakeHour
}

// WakeMinute returns the picked minute
func (s *State) WakeMinute() int {
	return s.wakeMinute
}

// SetWakeTime sets the wake time to hour:minute on day's calendar date
func (s *State) SetWakeTime(day time.Time, hour, minute int) {
	s.day = day
	s.wakeHour = clampInt(hour, 0, 23)
	s.wakeMinute = clampInt(minute, 0, 59)
}

// SetWakeHour keeps the minute and date and replaces the hour
func (s *State) SetWakeHour(hour int) {
	s.wakeHour = clampInt(hour, 0, 23)
}

// SetWakeMinute keeps the hour and date and replaces the minute
func (s *State) SetWakeMinute(minute int) {
	s.wakeMinute = clampInt(minute, 0, 59)
}

// SleepAmount returns the desired sleep in hours
func (s *State) SleepAmount() float64 {
	return s.sleepAmount
}

// SetSleepAmount snaps hours to the nearest step and clamps it to range
func (s *State) SetSleepAmount(hours float64) {
	if math.IsNaN(hours) {
		hours = models.DefaultSleepAmount
	}
	snapped := math.Round(hours/models.SleepAmountStep) * models.SleepAmountStep
	s.sleepAmount = math.Min(math.Max(snapped, models.MinSleepAmount), models.MaxSleepAmount)
}

// IncrementSleep adds one step, stopping at the maximum
func (s *State) IncrementSleep() {
	s.SetSleepAmount(s.sleepAmount + models.SleepAmountStep)
}

// DecrementSleep removes one step, stopping at the minimum
func (s *State) DecrementSleep() {
	s.SetSleepAmount(s.sleepAmount - models.SleepAmountStep)
}

// CanIncrementSleep reports whether IncrementSleep would change the value
func (s *State) CanIncrementSleep() bool {
	return s.sleepAmount < models.MaxSleepAmount
}

// CanDecrementSleep reports whether DecrementSleep would change the value
func (s *State) CanDecrementSleep() bool {
	return s.sleepAmount > models.MinSleepAmount
}

// CoffeeIntake returns the cups per day
func (s *State) CoffeeIntake() int {
	return s.coffeeIntake
}

// SetCoffeeIntake clamps cups to range
func (s *State) SetCoffeeIntake(cups int) {
	s.coffeeIntake = clampInt(cups, models.MinCoffeeIntake, models.MaxCoffeeIntake)
}

// IncrementCoffee adds one cup, stopping at the maximum
func (s *State) IncrementCoffee() {
	s.SetCoffeeIntake(s.coffeeIntake + models.CoffeeIntakeStep)
}

// DecrementCoffee removes one cup, stopping at the minimum
func (s *State) DecrementCoffee() {
	s.SetCoffeeIntake(s.coffeeIntake - models.CoffeeIntakeStep)
}

// CanIncrementCoffee reports whether IncrementCoffee would change the value
func (s *State) CanIncrementCoffee() bool {
	return s.coffeeIntake < models.MaxCoffeeIntake
}

// CanDecrementCoffee reports whether DecrementCoffee would change the value
func (s *State) CanDecrementCoffee() bool {
	return s.coffeeIntake > models.MinCoffeeIntake
}

// Inputs snapshots the current values for one prediction
func (s *State) Inputs() models.Inputs {
	return models.Inputs{
		WakeTime:     s.WakeTime(),
		SleepAmount:  s.sleepAmount,
		CoffeeIntake: s.coffeeIntake,
	}
}

// ShowAlert replaces the alert with a new result, overwriting any previous one
func (s *State) ShowAlert(a models.Alert) {
	s.alertTitle = a.Title
	s.alertMessage = a.Message
	s.showingAlert = a.Show
	s.lastAlert = a
}

// DismissAlert hides the alert after user acknowledgement
func (s *State) DismissAlert() {
	s.showingAlert = false
}

// AlertTitle returns the current alert title
func (s *State) AlertTitle() string {
	return s.alertTitle
}

// AlertMessage returns the current alert message
func (s *State) AlertMessage() string {
	return s.alertMessage
}

// ShowingAlert reports whether the alert is visible
func (s *State) ShowingAlert() bool {
	return s.showingAlert
}

// LastAlert returns the most recent alert, visible or not
func (s *State) LastAlert() models.Alert {
	return s.lastAlert
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
