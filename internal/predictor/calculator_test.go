package predictor

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"betterrest/internal/model"
	"betterrest/internal/models"
)

type stubModel struct {
	calls  []model.Input
	output float64
	err    error
}

func (s *stubModel) Name() string { return "stub" }

func (s *stubModel) Predict(in model.Input) (model.Output, error) {
	s.calls = append(s.calls, in)
	if s.err != nil {
		return model.Output{}, s.err
	}
	return model.Output{ActualSleep: s.output}, nil
}

// countingLoader hands out the same stub but counts Load calls
type countingLoader struct {
	stub  *stubModel
	loads int
	err   error
}

func (l *countingLoader) Load() (model.Model, error) {
	l.loads++
	if l.err != nil {
		return nil, l.err
	}
	return l.stub, nil
}

func wakeAt(hour, minute int) time.Time {
	return time.Date(2024, time.June, 3, hour, minute, 0, 0, time.UTC)
}

func TestSecondsOfDay_AllMinutes(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			got := SecondsOfDay(time.Date(2023, time.December, 31, h, m, 17, 999, time.UTC))
			require.Equal(t, h*3600+m*60, got, "%02d:%02d", h, m)
		}
	}
}

func TestCalculate_DefaultScenario(t *testing.T) {
	stub := &stubModel{output: 8 * 3600}
	calc := NewCalculator(&countingLoader{stub: stub}, NewClock(models.ClockFormat24h), nil)

	alert := calc.Calculate(models.Inputs{WakeTime: wakeAt(7, 0), SleepAmount: 8, CoffeeIntake: 1})

	require.Len(t, stub.calls, 1)
	assert.Equal(t, model.Input{Wake: 25200, EstimatedSleep: 8, Coffee: 1}, stub.calls[0])
	assert.Equal(t, models.SuccessTitle, alert.Title)
	assert.Equal(t, "23:00", alert.Message)
	assert.True(t, alert.Show)
	assert.Equal(t, time.Date(2024, time.June, 2, 23, 0, 0, 0, time.UTC), alert.Bedtime)
}

func TestCalculate_TwelveHourClock(t *testing.T) {
	stub := &stubModel{output: 8 * 3600}
	calc := NewCalculator(&countingLoader{stub: stub}, NewClock(models.ClockFormat12h), nil)

	alert := calc.Calculate(models.Inputs{WakeTime: wakeAt(7, 0), SleepAmount: 8, CoffeeIntake: 1})
	assert.Equal(t, "11:00 PM", alert.Message)
}

func TestBedtime_ExactSubtraction(t *testing.T) {
	for _, secs := range []float64{0, 1, 59.5, 3600, 27123, 43200, 86399} {
		stub := &stubModel{output: secs}
		calc := NewCalculator(&countingLoader{stub: stub}, NewClock(models.ClockFormat24h), nil)

		wake := wakeAt(6, 45)
		got, err := calc.Bedtime(models.Inputs{WakeTime: wake, SleepAmount: 7.5, CoffeeIntake: 3})
		require.NoError(t, err)
		assert.Equal(t, wake.Add(-time.Duration(secs*float64(time.Second))), got)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	in := models.Inputs{WakeTime: wakeAt(5, 15), SleepAmount: 9.25, CoffeeIntake: 4}
	calc := NewCalculator(model.BuiltinLoader{}, NewClock(models.ClockFormat24h), nil)

	first := calc.Calculate(in)
	second := calc.Calculate(in)
	assert.False(t, first.IsError())
	assert.Equal(t, first, second)
}

func TestCalculate_PredictFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	stub := &stubModel{err: &model.ModelError{Stage: model.StagePredict, Model: "stub", Err: errors.New("boom")}}
	calc := NewCalculator(&countingLoader{stub: stub}, NewClock(models.ClockFormat24h), zap.New(core))

	alert := calc.Calculate(models.Inputs{WakeTime: wakeAt(7, 0), SleepAmount: 8, CoffeeIntake: 1})

	assert.Equal(t, models.ErrorTitle, alert.Title)
	assert.Equal(t, "Sorry, there was a problem calculating your bedtime.", alert.Message)
	assert.True(t, alert.Show)
	assert.True(t, alert.Bedtime.IsZero())

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "predict", logs.All()[0].ContextMap()["stage"])
}

func TestCalculate_LoadFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	loader := &countingLoader{err: &model.ModelError{Stage: model.StageLoad, Err: errors.New("missing")}}
	calc := NewCalculator(loader, NewClock(models.ClockFormat24h), zap.New(core))

	alert := calc.Calculate(models.Inputs{WakeTime: wakeAt(7, 0), SleepAmount: 8, CoffeeIntake: 1})

	assert.Equal(t, models.NewErrorAlert(), alert)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "load", logs.All()[0].ContextMap()["stage"])
}

func TestCalculate_UnusableOutput(t *testing.T) {
	for _, out := range []float64{math.NaN(), math.Inf(1), 1e300} {
		stub := &stubModel{output: out}
		calc := NewCalculator(&countingLoader{stub: stub}, NewClock(models.ClockFormat24h), nil)

		alert := calc.Calculate(models.Inputs{WakeTime: wakeAt(7, 0), SleepAmount: 8, CoffeeIntake: 1})
		assert.True(t, alert.IsError(), "output %v", out)
	}
}

func TestCalculate_NilModel(t *testing.T) {
	loader := model.LoaderFunc(func() (model.Model, error) { return nil, nil })
	calc := NewCalculator(loader, NewClock(models.ClockFormat24h), nil)

	alert := calc.Calculate(models.Inputs{WakeTime: wakeAt(7, 0), SleepAmount: 8, CoffeeIntake: 1})
	assert.True(t, alert.IsError())
}

func TestCalculate_NoCachingBetweenCalls(t *testing.T) {
	stub := &stubModel{output: 7 * 3600}
	loader := &countingLoader{stub: stub}
	calc := NewCalculator(loader, NewClock(models.ClockFormat24h), nil)

	first := calc.Calculate(models.Inputs{WakeTime: wakeAt(7, 0), SleepAmount: 8, CoffeeIntake: 1})
	second := calc.Calculate(models.Inputs{WakeTime: wakeAt(6, 30), SleepAmount: 6.5, CoffeeIntake: 2})

	assert.Equal(t, 2, loader.loads)
	require.Len(t, stub.calls, 2)
	assert.Equal(t, model.Input{Wake: 25200, EstimatedSleep: 8, Coffee: 1}, stub.calls[0])
	assert.Equal(t, model.Input{Wake: 23400, EstimatedSleep: 6.5, Coffee: 2}, stub.calls[1])
	assert.Equal(t, "00:00", first.Message)
	assert.Equal(t, "23:30", second.Message)
}
