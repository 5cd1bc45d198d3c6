package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betterrest/internal/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := (&app{}).rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalc_BuiltinModel(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	out, err := execute(t, "--config", cfgPath, "calc", "--wake", "07:00", "--sleep", "8", "--coffee", "1", "--clock", "24h")
	require.NoError(t, err)
	assert.Regexp(t, `^Your ideal bedtime is: \d{2}:\d{2}\n$`, out)

	_, err = os.Stat(cfgPath)
	assert.NoError(t, err, "first run writes the default config")
}

func TestCalc_ModelFromConfig(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	artifact := `{"name":"Flat","type":"linear_regression","intercept":28800,
		"features":{"wake":{"coefficient":0},"estimatedSleep":{"coefficient":0},"coffee":{"coefficient":0}}}`
	require.NoError(t, os.WriteFile(modelPath, []byte(artifact), 0644))

	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "[model]\nprovider = \"linear\"\npath = \"" + modelPath + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	out, err := execute(t, "--config", cfgPath, "calc", "--wake", "12:00", "--clock", "12h")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, models.SuccessTitle+" "), out)
}

func TestCalc_ModelFailureShowsGenericError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "[model]\nprovider = \"linear\"\npath = \"" + filepath.Join(dir, "missing.json") + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	out, err := execute(t, "--config", cfgPath, "calc")
	assert.ErrorIs(t, err, errCalculationFailed)
	assert.Contains(t, out, "Error Sorry, there was a problem calculating your bedtime.")
}

func TestCalc_RejectsOutOfRange(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, "--config", cfgPath, "calc", "--sleep", "13")
	assert.ErrorContains(t, err, "--sleep")

	_, err = execute(t, "--config", cfgPath, "calc", "--coffee", "0")
	assert.ErrorContains(t, err, "--coffee")

	_, err = execute(t, "--config", cfgPath, "calc", "--wake", "noon")
	assert.ErrorContains(t, err, "invalid wake time")

	_, err = execute(t, "--config", cfgPath, "calc", "--clock", "sundial")
	assert.ErrorContains(t, err, "--clock")
}

func TestRun_CalcFailurePrintedOnce(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "[model]\nprovider = \"linear\"\npath = \"" + filepath.Join(dir, "missing.json") + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath, "calc"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, strings.Count(stdout.String(), models.ErrorMessage), stdout.String())
	assert.NotContains(t, stderr.String(), "Error:")
	assert.NotContains(t, stderr.String(), errCalculationFailed.Error())
}

func TestRun_ReportsUsageErrors(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath, "calc", "--sleep", "13"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, strings.Count(stderr.String(), "Error:"), stderr.String())
	assert.Contains(t, stderr.String(), "--sleep")
	assert.Empty(t, stdout.String())
}

func TestRun_Success(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath, "calc", "--clock", "24h"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout.String(), models.SuccessTitle+" "), stdout.String())
	assert.Empty(t, stderr.String())
}

func TestBuildInputs(t *testing.T) {
	now := time.Date(2024, time.January, 5, 20, 0, 0, 0, time.UTC)

	in, err := buildInputs(now, "06:30", 7.75, 3)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 5, 6, 30, 0, 0, time.UTC), in.WakeTime)
	assert.Equal(t, 7.75, in.SleepAmount)
	assert.Equal(t, 3, in.CoffeeIntake)

	_, err = buildInputs(now, "06:30", 7.1, 3)
	assert.ErrorContains(t, err, "multiple")
}

func TestConfigPath(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	out, err := execute(t, "--config", cfgPath, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgPath+"\n", out)

	out, err = execute(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "wake_time")
	assert.Contains(t, out, "07:00")
}
