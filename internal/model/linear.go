package model

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"
)

// Feature names as they appear in the artifact
const (
	FeatureWake           = "wake"
	FeatureEstimatedSleep = "estimatedSleep"
	FeatureCoffee         = "coffee"
)

//go:embed sleep_calculator.json
var builtinArtifact []byte

type feature struct {
	coefficient float64
	min, max    float64
}

func (f feature) accepts(v float64) bool {
	return v >= f.min && v <= f.max
}

// LinearRegressor is a linear regression artifact:
// actualSleep = intercept + Σ coefficient_i * feature_i, clamped to the output range.
type LinearRegressor struct {
	name      string
	intercept float64
	wake      feature
	sleep     feature
	coffee    feature
	outMin    float64
	outMax    float64
}

// ParseLinear builds a LinearRegressor from a JSON artifact
func ParseLinear(data []byte) (*LinearRegressor, error) {
	if !gjson.ValidBytes(data) {
		return nil, loadError("", fmt.Errorf("artifact is not valid JSON"))
	}

	doc := gjson.ParseBytes(data)
	name := doc.Get("name").String()
	if name == "" {
		return nil, loadError("", fmt.Errorf("artifact has no name"))
	}
	if kind := doc.Get("type").String(); kind != "linear_regression" {
		return nil, loadError(name, fmt.Errorf("unsupported artifact type %q", kind))
	}

	intercept := doc.Get("intercept")
	if intercept.Type != gjson.Number {
		return nil, loadError(name, fmt.Errorf("intercept must be a number"))
	}

	m := &LinearRegressor{
		name:      name,
		intercept: intercept.Float(),
		outMin:    0,
		outMax:    math.Inf(1),
	}

	var err error
	if m.wake, err = parseFeature(doc, FeatureWake); err != nil {
		return nil, loadError(name, err)
	}
	if m.sleep, err = parseFeature(doc, FeatureEstimatedSleep); err != nil {
		return nil, loadError(name, err)
	}
	if m.coffee, err = parseFeature(doc, FeatureCoffee); err != nil {
		return nil, loadError(name, err)
	}

	if v := doc.Get("output.min"); v.Exists() {
		m.outMin = v.Float()
	}
	if v := doc.Get("output.max"); v.Exists() {
		m.outMax = v.Float()
	}
	if m.outMin > m.outMax {
		return nil, loadError(name, fmt.Errorf("output.min %g is greater than output.max %g", m.outMin, m.outMax))
	}

	return m, nil
}

func parseFeature(doc gjson.Result, key string) (feature, error) {
	f := doc.Get("features." + key)
	if !f.Exists() {
		return feature{}, fmt.Errorf("missing feature %q", key)
	}

	coef := f.Get("coefficient")
	if coef.Type != gjson.Number {
		return feature{}, fmt.Errorf("feature %q has no numeric coefficient", key)
	}

	out := feature{
		coefficient: coef.Float(),
		min:         math.Inf(-1),
		max:         math.Inf(1),
	}
	if v := f.Get("min"); v.Exists() {
		out.min = v.Float()
	}
	if v := f.Get("max"); v.Exists() {
		out.max = v.Float()
	}
	if out.min > out.max {
		return feature{}, fmt.Errorf("feature %q has min greater than max", key)
	}
	return out, nil
}

// Name returns the artifact name
func (m *LinearRegressor) Name() string {
	return m.name
}

// Predict evaluates the regression for one input row
func (m *LinearRegressor) Predict(in Input) (Output, error) {
	values := []struct {
		key string
		f   feature
		v   float64
	}{
		{FeatureWake, m.wake, in.Wake},
		{FeatureEstimatedSleep, m.sleep, in.EstimatedSleep},
		{FeatureCoffee, m.coffee, in.Coffee},
	}

	sum := m.intercept
	for _, x := range values {
		if math.IsNaN(x.v) || math.IsInf(x.v, 0) {
			return Output{}, predictError(m.name, fmt.Errorf("feature %q is not finite", x.key))
		}
		if !x.f.accepts(x.v) {
			return Output{}, predictError(m.name, fmt.Errorf("feature %q value %g outside [%g, %g]", x.key, x.v, x.f.min, x.f.max))
		}
		sum += x.f.coefficient * x.v
	}

	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return Output{}, predictError(m.name, fmt.Errorf("prediction is not finite"))
	}

	return Output{ActualSleep: math.Min(math.Max(sum, m.outMin), m.outMax)}, nil
}

// FileLoader loads a linear artifact from disk on every call
type FileLoader struct {
	Path string
}

// Load reads and parses the artifact
func (l *FileLoader) Load() (Model, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, loadError("", fmt.Errorf("failed to read artifact %s: %w", l.Path, err))
	}
	return loadLinear(data)
}

// BuiltinLoader parses the embedded artifact on every call
type BuiltinLoader struct{}

// Load parses the embedded artifact
func (BuiltinLoader) Load() (Model, error) {
	return loadLinear(builtinArtifact)
}

func loadLinear(data []byte) (Model, error) {
	m, err := ParseLinear(data)
	if err != nil {
		return nil, err
	}
	return m, nil
}
