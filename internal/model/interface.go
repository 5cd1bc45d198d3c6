package model

import (
	"fmt"
)

// Model is a trained regression that estimates how much sleep the user will
// actually get. It maps (wake seconds of day, desired sleep hours, coffee
// cups) to seconds of sleep.
type Model interface {
	// Name returns the name of the model artifact
	Name() string

	// Predict runs one inference
	Predict(in Input) (Output, error)
}

// Loader produces a ready-to-use Model. Callers load a fresh model for every
// prediction; implementations must not hand back a cached instance.
type Loader interface {
	Load() (Model, error)
}

// LoaderFunc adapts a function to the Loader interface
type LoaderFunc func() (Model, error)

// Load calls f
func (f LoaderFunc) Load() (Model, error) {
	return f()
}

// Input holds the three model features
type Input struct {
	Wake           float64 `json:"wake"`           // Seconds since local midnight
	EstimatedSleep float64 `json:"estimatedSleep"` // Desired sleep, hours
	Coffee         float64 `json:"coffee"`         // Cups per day
}

// Output holds the model target
type Output struct {
	ActualSleep float64 `json:"actualSleep"` // Seconds
}

// Stage identifies where a model failure happened
type Stage string

const (
	StageLoad    Stage = "load"
	StagePredict Stage = "predict"
)

// ModelError represents a failure to load or run a model
type ModelError struct {
	Stage Stage  `json:"stage"`
	Model string `json:"model"`
	Err   error  `json:"-"`
}

// Error implements the error interface
func (me *ModelError) Error() string {
	if me.Model != "" {
		return fmt.Sprintf("model %s %s failed: %v", me.Model, me.Stage, me.Err)
	}
	return fmt.Sprintf("model %s failed: %v", me.Stage, me.Err)
}

// Unwrap returns the underlying cause
func (me *ModelError) Unwrap() error {
	return me.Err
}

// IsLoadError returns true if the model could not be configured
func (me *ModelError) IsLoadError() bool {
	return me.Stage == StageLoad
}

func loadError(name string, err error) error {
	return &ModelError{Stage: StageLoad, Model: name, Err: err}
}

func predictError(name string, err error) error {
	return &ModelError{Stage: StagePredict, Model: name, Err: err}
}
