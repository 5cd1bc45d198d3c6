package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"betterrest/internal/config"
	"betterrest/internal/logging"
	"betterrest/internal/model"
	"betterrest/internal/models"
	"betterrest/internal/predictor"
)

// app carries what every command needs once flags are parsed
type app struct {
	configPath string
	verbose    bool

	manager *config.Manager
	config  *models.Config
	logger  *zap.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code. Errors
// are printed here so the logger is synced on every path.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	rootCmd := a.rootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err == nil {
		return 0
	}

	// calc already printed the generic error alert
	if !errors.Is(err, errCalculationFailed) {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "betterrest",
		Short: "BetterRest - find the bedtime that gets you the sleep you want",
		Long: `BetterRest asks when you want to wake up, how much sleep you would like
and how much coffee you drink, then predicts when you should go to bed.

Run without arguments to open the window.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWindow()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ~/.betterrest/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newCalcCmd(a), newConfigCmd(a))
	return rootCmd
}

func (a *app) init() error {
	a.manager = config.NewManager()
	cfg, err := a.manager.Load(a.configPath)
	if err != nil {
		return err
	}
	a.config = cfg

	logger, err := logging.New(cfg.Logging.Level, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	if a.manager.Created() {
		logger.Info("🎉 first run, wrote default configuration", zap.String("path", a.manager.GetConfigPath()))
	}
	return nil
}

// newCalculator wires the configured model loader and clock
func (a *app) newCalculator(clockFormat string) (*predictor.Calculator, error) {
	loader, err := model.NewFactory().CreateLoader(a.config)
	if err != nil {
		return nil, fmt.Errorf("failed to create model loader: %w", err)
	}
	if clockFormat == "" {
		clockFormat = a.config.UI.ClockFormat
	}
	return predictor.NewCalculator(loader, predictor.NewClock(clockFormat), a.logger), nil
}
