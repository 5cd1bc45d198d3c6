package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"betterrest/internal/models"
)

// Tray manages the system tray menu
type Tray struct {
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
}

// NewTray builds the tray menu. calculate runs a prediction with the current
// inputs, show brings the window forward and quit exits the app.
func NewTray(calculate, show, quit func()) *Tray {
	status := fyne.NewMenuItem(StatusText(models.Alert{}), nil)
	status.Disabled = true

	quitItem := fyne.NewMenuItem("Quit BetterRest", quit)
	quitItem.IsQuit = true

	t := &Tray{statusItem: status}
	t.menu = fyne.NewMenu("BetterRest",
		status,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Calculate Bedtime", calculate),
		fyne.NewMenuItem("Show BetterRest", show),
		fyne.NewMenuItemSeparator(),
		quitItem,
	)
	return t
}

// Install attaches the menu to the desktop tray
func (t *Tray) Install(desk desktop.App) {
	desk.SetSystemTrayMenu(t.menu)
}

// Menu returns the tray menu
func (t *Tray) Menu() *fyne.Menu {
	return t.menu
}

// Update shows the latest result in the status item
func (t *Tray) Update(alert models.Alert) {
	t.statusItem.Label = StatusText(alert)
	t.menu.Refresh()
}

// StatusText creates the text for the status menu item
func StatusText(alert models.Alert) string {
	switch {
	case alert.Title == "":
		return "No bedtime calculated yet"
	case alert.IsError():
		return "Last calculation failed"
	default:
		return "Bedtime: " + alert.Message
	}
}
