package main

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"betterrest/internal/models"
)

// errCalculationFailed is returned after the generic error alert was printed
var errCalculationFailed = errors.New("bedtime calculation failed")

func newCalcCmd(a *app) *cobra.Command {
	var (
		wake   string
		sleep  float64
		coffee int
		clock  string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Print the recommended bedtime without opening the window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("wake") {
				wake = a.config.General.WakeTime
			}
			if !cmd.Flags().Changed("sleep") {
				sleep = a.config.General.SleepHours
			}
			if !cmd.Flags().Changed("coffee") {
				coffee = a.config.General.CoffeeCups
			}

			in, err := buildInputs(time.Now(), wake, sleep, coffee)
			if err != nil {
				return err
			}
			if clock != "" && clock != models.ClockFormat12h && clock != models.ClockFormat24h && clock != models.ClockFormatAuto {
				return fmt.Errorf("--clock must be auto, 12h or 24h")
			}

			calc, err := a.newCalculator(clock)
			if err != nil {
				return err
			}

			alert := calc.Calculate(in)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", alert.Title, alert.Message)
			if alert.IsError() {
				return errCalculationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&wake, "wake", "w", "07:00", "wake time, HH:MM")
	cmd.Flags().Float64VarP(&sleep, "sleep", "s", models.DefaultSleepAmount, "desired sleep in hours (4-12, 0.25 steps)")
	cmd.Flags().IntVarP(&coffee, "coffee", "k", models.DefaultCoffeeIntake, "cups of coffee per day (1-20)")
	cmd.Flags().StringVar(&clock, "clock", "", "clock format: auto, 12h or 24h (default from config)")

	return cmd
}

// buildInputs validates command line values. Unlike the window steppers,
// out-of-range values are rejected rather than clamped.
func buildInputs(now time.Time, wake string, sleep float64, coffee int) (models.Inputs, error) {
	wakeTime, err := models.ParseWakeTime(now, wake)
	if err != nil {
		return models.Inputs{}, err
	}
	if !models.SleepAmountInRange(sleep) {
		return models.Inputs{}, fmt.Errorf("--sleep must be between %g and %g hours", models.MinSleepAmount, models.MaxSleepAmount)
	}
	if math.Mod(sleep, models.SleepAmountStep) != 0 {
		return models.Inputs{}, fmt.Errorf("--sleep must be a multiple of %g hours", models.SleepAmountStep)
	}
	if !models.CoffeeIntakeInRange(coffee) {
		return models.Inputs{}, fmt.Errorf("--coffee must be between %d and %d cups", models.MinCoffeeIntake, models.MaxCoffeeIntake)
	}

	return models.Inputs{
		WakeTime:     wakeTime,
		SleepAmount:  sleep,
		CoffeeIntake: coffee,
	}, nil
}
