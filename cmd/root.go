package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/buildsearch/buildsearch/search"
	"github.com/buildsearch/buildsearch/search/report"
)

var (
	// CLI flags for the search
	seed          int64         // Seed for the partitioned RNG
	logLevel      string        // Log verbosity level
	configPath    string        // Optional YAML file with search parameters
	popSize       int           // Individuals per generation
	generations   int           // Number of generations
	budget        float64       // Price ceiling of a build
	crossoverRate float64       // Per-gene probability of inheriting from the second parent
	mutationRate  float64       // Probability that a child gets one slot resampled
	workers       int           // Goroutines used for fitness evaluation
	timeout       time.Duration // Wall-clock cap for the whole search (0 = none)

	// CLI flags for output
	historyCSVPath string // Write the convergence history as CSV
	jsonPath       string // Write the result document as JSON ("-" = stdout)
	hideHistory    bool   // Skip the per-generation table on stdout

	sources catalogSource // Where the catalog is read from
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "buildsearch",
	Short: "Evolutionary recommender for budget-constrained PC builds",
}

// runCmd executes the search using parameters from the config file and flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search the catalog for the best build within budget",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd, configPath)
		if err != nil {
			logrus.Fatalf("Invalid search configuration: %v", err)
		}
		if err := cfg.Config.Validate(); err != nil {
			logrus.Fatalf("Invalid search configuration: %v", err)
		}

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		catalog, err := sources.load(ctx)
		if err != nil {
			logrus.Fatalf("Failed to load catalog: %v", err)
		}

		startTime := time.Now()
		res, err := search.Run(ctx, catalog, cfg.Config, search.NewPartitionedRNG(search.NewSearchKey(cfg.Seed)))
		if err != nil && res == nil {
			logrus.Fatalf("Search failed: %v", err)
		}
		if err != nil {
			logrus.Warnf("Search interrupted after %d generations: %v", len(res.History), err)
		}
		logrus.Infof("Search took %v", time.Since(startTime))

		if err := writeResults(res, cfg); err != nil {
			logrus.Fatalf("Failed to write results: %v", err)
		}
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func writeResults(res *search.Result, cfg resolvedConfig) error {
	if len(res.History) == 0 {
		logrus.Warn("No generation completed; nothing to report")
		return nil
	}
	if !hideHistory {
		report.PrintHistory(os.Stdout, res.History)
	}
	report.PrintBuild(os.Stdout, res)

	if historyCSVPath != "" {
		if err := report.ExportHistoryCSV(historyCSVPath, res.History); err != nil {
			return err
		}
		logrus.Infof("History written to %s", historyCSVPath)
	}
	if jsonPath != "" {
		summary := report.NewSummary(res, cfg.Config, cfg.Seed)
		if jsonPath == "-" {
			return report.WriteJSON(os.Stdout, summary)
		}
		f, err := os.Create(jsonPath)
		if err != nil {
			return err
		}
		if err := report.WriteJSON(f, summary); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logrus.Infof("Result written to %s", jsonPath)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerSearchFlags binds the search parameter flags to c.
func registerSearchFlags(c *cobra.Command) {
	defaults := search.DefaultConfig()
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for the search RNG")
	c.Flags().StringVar(&configPath, "config", "", "YAML file with search parameters; flags override it")
	c.Flags().IntVar(&popSize, "pop-size", defaults.PopSize, "Individuals per generation (>= 4)")
	c.Flags().IntVar(&generations, "generations", defaults.Generations, "Number of generations")
	c.Flags().Float64Var(&budget, "budget", defaults.Budget, "Maximum total price of a build")
	c.Flags().Float64Var(&crossoverRate, "crossover-rate", defaults.CrossoverRate, "Per-gene probability of inheriting from the second parent")
	c.Flags().Float64Var(&mutationRate, "mutation-rate", defaults.MutationRate, "Probability that a child gets one slot resampled")
	c.Flags().IntVar(&workers, "workers", defaults.Workers, "Goroutines for fitness evaluation (0 or 1 = sequential)")
	c.Flags().DurationVar(&timeout, "timeout", 0, "Wall-clock limit for the search (0 = none)")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerSearchFlags(runCmd)

	runCmd.Flags().StringVar(&historyCSVPath, "history-csv", "", "Write the per-generation history to this CSV file")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "Write the result as JSON to this file (- for stdout)")
	runCmd.Flags().BoolVar(&hideHistory, "no-history", false, "Do not print the per-generation table")

	sources.register(runCmd)

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
