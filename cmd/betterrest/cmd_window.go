package main

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"betterrest/internal/config"
	"betterrest/internal/inputs"
	"betterrest/internal/instance"
	"betterrest/internal/ui"
)

// lockWait is how long a second launch waits for a closing window
const lockWait = 2 * time.Second

// runWindow opens the single BetterRest window
func (a *app) runWindow() error {
	dir, err := config.AppDir()
	if err != nil {
		return err
	}

	lock, err := instance.NewLock(dir, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create instance lock: %w", err)
	}
	if err := lock.TryLock(); err != nil {
		if !errors.Is(err, instance.ErrAlreadyRunning) {
			return err
		}
		// A window that is closing still holds the lock for a moment
		if err := lock.WaitForLockRelease(lockWait); err != nil {
			return err
		}
	}
	defer lock.Release()

	defaults, err := inputs.DefaultsFromConfig(a.config, time.Now())
	if err != nil {
		return err
	}
	state := inputs.NewState(defaults, time.Now())

	calc, err := a.newCalculator("")
	if err != nil {
		return err
	}

	a.logger.Info("starting BetterRest",
		zap.String("config", a.manager.GetConfigPath()),
		zap.String("model_provider", a.config.Model.Provider))

	ui.Run(a.config, state, calc, a.logger)
	return nil
}
