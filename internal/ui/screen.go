// Package ui renders the bedtime form with fyne.
package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"go.uber.org/zap"

	"betterrest/internal/inputs"
	"betterrest/internal/models"
	"betterrest/internal/predictor"
)

// Screen is the single bedtime form. All methods run on the fyne main goroutine.
type Screen struct {
	window fyne.Window
	state  *inputs.State
	calc   *predictor.Calculator
	logger *zap.Logger

	onResult func(models.Alert)

	hourSelect   *widget.Select
	minuteSelect *widget.Select
	sleepLabel   *widget.Label
	sleepDown    *widget.Button
	sleepUp      *widget.Button
	coffeeLabel  *widget.Label
	coffeeDown   *widget.Button
	coffeeUp     *widget.Button
	calcButton   *widget.Button
	alert        dialog.Dialog
}

// NewScreen builds the form widgets bound to state
func NewScreen(window fyne.Window, state *inputs.State, calc *predictor.Calculator, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Screen{
		window: window,
		state:  state,
		calc:   calc,
		logger: logger,
	}
	s.build()
	s.refresh()
	return s
}

// OnResult registers a callback fired after every calculation
func (s *Screen) OnResult(fn func(models.Alert)) {
	s.onResult = fn
}

func (s *Screen) build() {
	s.hourSelect = widget.NewSelect(twoDigitRange(24), func(v string) {
		if h, err := strconv.Atoi(v); err == nil {
			s.state.SetWakeHour(h)
		}
		s.refreshWake()
	})
	s.minuteSelect = widget.NewSelect(twoDigitRange(60), func(v string) {
		if m, err := strconv.Atoi(v); err == nil {
			s.state.SetWakeMinute(m)
		}
		s.refreshWake()
	})

	s.sleepLabel = widget.NewLabel("")
	s.sleepDown = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		s.state.DecrementSleep()
		s.refresh()
	})
	s.sleepUp = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		s.state.IncrementSleep()
		s.refresh()
	})

	s.coffeeLabel = widget.NewLabel("")
	s.coffeeDown = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		s.state.DecrementCoffee()
		s.refresh()
	})
	s.coffeeUp = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		s.state.IncrementCoffee()
		s.refresh()
	})

	s.calcButton = widget.NewButtonWithIcon("Calculate", theme.ConfirmIcon(), s.Calculate)
	s.calcButton.Importance = widget.HighImportance
}

// Content returns the root canvas object for the window
func (s *Screen) Content() fyne.CanvasObject {
	wake := container.NewHBox(s.hourSelect, widget.NewLabel(":"), s.minuteSelect)
	sleep := container.NewHBox(s.sleepLabel, layout.NewSpacer(), s.sleepDown, s.sleepUp)
	coffee := container.NewHBox(s.coffeeLabel, layout.NewSpacer(), s.coffeeDown, s.coffeeUp)

	form := container.NewVBox(
		widget.NewCard("", "When do you want to wake up?", wake),
		widget.NewCard("", "Desired amount of sleep", sleep),
		widget.NewCard("", "Daily coffee intake", coffee),
	)

	return container.NewBorder(nil, s.calcButton, nil, nil, container.NewVScroll(form))
}

// Calculate runs the predictor on the current inputs and shows the result
func (s *Screen) Calculate() {
	alert := s.calc.Calculate(s.state.Inputs())
	s.state.ShowAlert(alert)
	s.logger.Debug("showing alert", zap.String("title", alert.Title), zap.Bool("error", alert.IsError()))

	s.showAlert(alert)
	if s.onResult != nil {
		s.onResult(alert)
	}
}

func (s *Screen) showAlert(alert models.Alert) {
	if prev := s.alert; prev != nil {
		s.alert = nil
		prev.Hide()
	}

	d := dialog.NewInformation(alert.Title, alert.Message, s.window)
	d.SetOnClosed(func() {
		if s.alert == d {
			s.alert = nil
			s.state.DismissAlert()
		}
	})
	s.alert = d
	d.Show()
}

// DismissAlert closes the visible alert, if any
func (s *Screen) DismissAlert() {
	if s.alert != nil {
		s.alert.Hide()
	}
}

// refresh pushes state values into the widgets
func (s *Screen) refresh() {
	s.refreshWake()

	s.sleepLabel.SetText(SleepLabel(s.state.SleepAmount()))
	setEnabled(s.sleepDown, s.state.CanDecrementSleep())
	setEnabled(s.sleepUp, s.state.CanIncrementSleep())

	s.coffeeLabel.SetText(CoffeeLabel(s.state.CoffeeIntake()))
	setEnabled(s.coffeeDown, s.state.CanDecrementCoffee())
	setEnabled(s.coffeeUp, s.state.CanIncrementCoffee())
}

// refreshWake shows the stored wake hour and minute in the selects. A select
// is only touched when it disagrees, since SetSelected fires OnChanged.
func (s *Screen) refreshWake() {
	syncSelect(s.hourSelect, fmt.Sprintf("%02d", s.state.WakeHour()))
	syncSelect(s.minuteSelect, fmt.Sprintf("%02d", s.state.WakeMinute()))
}

func syncSelect(sel *widget.Select, want string) {
	if sel != nil && sel.Selected != want {
		sel.SetSelected(want)
	}
}

// SleepLabel renders an amount like "8 hours" or "7.25 hours"
func SleepLabel(hours float64) string {
	return humanize.Ftoa(hours) + " hours"
}

// CoffeeLabel renders an intake like "1 cup" or "3 cups"
func CoffeeLabel(cups int) string {
	return english.Plural(cups, "cup", "")
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

func twoDigitRange(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%02d", i)
	}
	return out
}
