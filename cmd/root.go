package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kajmaj87/sb3/sim"
	"github.com/kajmaj87/sb3/sim/trace"
)

var (
	seed        int64  // Seed for all simulation randomness
	days        int    // Number of ticks to simulate
	logLevel    string // Log verbosity level
	paramsPath  string // Optional YAML file overriding default tunables
	recipesPath string // Recipe catalog path
	firmsPath   string // Starting firm roster path
	traceTrades bool   // Record a trade trace and print its summary
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sb3",
	Short: "Discrete-tick simulator for a small decentralized economy",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the economy simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		params := sim.DefaultParams()
		if paramsPath != "" {
			params, err = sim.LoadParams(paramsPath)
			if err != nil {
				logrus.Fatalf("Failed to load params: %v", err)
			}
		}

		templates, warnings, err := sim.LoadTemplates(recipesPath, firmsPath)
		if err != nil {
			logrus.Fatalf("Failed to load templates: %v", err)
		}
		for _, w := range warnings {
			logrus.Warnf("template: %s", w)
		}

		s, err := sim.NewSimulation(templates, params, seed)
		if err != nil {
			logrus.Fatalf("Failed to build simulation: %v", err)
		}
		if traceTrades {
			s.Trace = trace.NewMarketTrace()
		}

		s.Run(days)
		s.Metrics.Print(s.World, s.Book)
		if traceTrades {
			summary := trace.Summarize(s.Trace)
			logrus.Infof("trade trace: %d trades, mean price %.2f, max price %d, %d founded, %d liquidated",
				summary.TotalTrades, summary.MeanPrice, summary.MaxPrice, summary.Founded, summary.Liquidated)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for all simulation randomness")
	runCmd.Flags().IntVar(&days, "days", 365, "Number of days (ticks) to simulate")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&paramsPath, "params", "", "Path to YAML file overriding default tunables")
	runCmd.Flags().StringVar(&recipesPath, "recipes", "data/recipes.yaml", "Path to the recipe catalog")
	runCmd.Flags().StringVar(&firmsPath, "firms", "data/firms.yaml", "Path to the starting firm roster")
	runCmd.Flags().BoolVar(&traceTrades, "trace", false, "Record a trade trace and print its summary")

	rootCmd.AddCommand(runCmd)
}
