// Package predictor turns the three form inputs into a bedtime.
package predictor

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"betterrest/internal/model"
	"betterrest/internal/models"
)

// Calculator derives a bedtime by asking the model how much sleep the user
// will actually get and subtracting it from the wake time.
type Calculator struct {
	loader model.Loader
	clock  *Clock
	logger *zap.Logger
}

// NewCalculator creates a calculator. A nil logger disables logging.
func NewCalculator(loader model.Loader, clock *Clock, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		loader: loader,
		clock:  clock,
		logger: logger,
	}
}

// Calculate runs one prediction and returns the alert to show. Every failure
// becomes the same generic error alert; the cause is only logged.
func (c *Calculator) Calculate(in models.Inputs) models.Alert {
	bedtime, err := c.Bedtime(in)
	if err != nil {
		stage := "unknown"
		var me *model.ModelError
		if errors.As(err, &me) {
			stage = string(me.Stage)
		}
		c.logger.Warn("bedtime calculation failed",
			zap.String("stage", stage),
			zap.Time("wake_time", in.WakeTime),
			zap.Float64("sleep_amount", in.SleepAmount),
			zap.Int("coffee_intake", in.CoffeeIntake),
			zap.Error(err))
		return models.NewErrorAlert()
	}

	formatted := c.clock.Format(bedtime)
	c.logger.Debug("bedtime calculated", zap.String("bedtime", formatted))
	return models.NewBedtimeAlert(bedtime, formatted)
}

// Bedtime returns WakeTime minus the predicted actual sleep. The model is
// loaded fresh for this call and invoked synchronously.
func (c *Calculator) Bedtime(in models.Inputs) (time.Time, error) {
	wake := SecondsOfDay(in.WakeTime)

	m, err := c.loader.Load()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load model: %w", err)
	}
	if m == nil {
		return time.Time{}, &model.ModelError{Stage: model.StageLoad, Err: errors.New("loader returned no model")}
	}

	out, err := m.Predict(model.Input{
		Wake:           float64(wake),
		EstimatedSleep: in.SleepAmount,
		Coffee:         float64(in.CoffeeIntake),
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("prediction failed: %w", err)
	}

	sleep, ok := SleepDuration(out.ActualSleep)
	if !ok {
		return time.Time{}, &model.ModelError{
			Stage: model.StagePredict,
			Model: m.Name(),
			Err:   fmt.Errorf("actual sleep %v is not a usable duration", out.ActualSleep),
		}
	}

	return in.WakeTime.Add(-sleep), nil
}
