package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"

	"betterrest/internal/inputs"
	"betterrest/internal/models"
	"betterrest/internal/predictor"
)

// AppID is the fyne application identifier
const AppID = "com.betterrest.app"

// Run opens the BetterRest window and blocks until the app quits
func Run(cfg *models.Config, state *inputs.State, calc *predictor.Calculator, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := app.NewWithID(AppID)
	w := Setup(a, cfg, state, calc, logger)

	logger.Info("✅ BetterRest window ready")
	w.ShowAndRun()
	logger.Info("BetterRest exiting...")
}

// Setup creates the main window on a and wires the tray when enabled
func Setup(a fyne.App, cfg *models.Config, state *inputs.State, calc *predictor.Calculator, logger *zap.Logger) fyne.Window {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := a.NewWindow("BetterRest")
	w.Resize(fyne.NewSize(float32(cfg.UI.WindowWidth), float32(cfg.UI.WindowHeight)))

	screen := NewScreen(w, state, calc, logger)
	w.SetContent(screen.Content())
	w.SetMaster()

	desk, ok := a.(desktop.App)
	if !ok || !cfg.UI.ShowTray {
		return w
	}

	tray := NewTray(
		func() {
			w.Show()
			screen.Calculate()
		},
		w.Show,
		a.Quit,
	)
	tray.Install(desk)
	screen.OnResult(tray.Update)

	// Closing the window keeps the tray alive
	w.SetCloseIntercept(w.Hide)
	logger.Debug("system tray installed")

	return w
}
