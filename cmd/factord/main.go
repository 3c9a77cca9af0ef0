// Package main implements the factord CLI, the tool layer over the
// factorization engine. It formats results for humans or JSON pipelines
// and never feeds anything back into the search.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/factord/pkg/factor"
)

var (
	// version information
	version = "dev"

	// persistent flags
	configFile  string
	jsonOutput  bool
	verbose     bool
	timeout     time.Duration
	metricsAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "factord",
	Short: "Resonance-guided integer factorization and primality testing",
	Long: `factord factors arbitrary-precision integers and tests primality.

Values are mapped to a small periodic field pattern and a scalar resonance
score that guide an ordered sequence of bounded heuristic searches; a
Miller-Rabin oracle provides the primality ground truth.

Values may be given as plain integers or as decimal digit strings of any
length.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (FACTORD_* env vars override)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of human-readable output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "abort after this duration (0 = no limit)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	rootCmd.AddCommand(factorCmd)
	rootCmd.AddCommand(primeCmd)
	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(resonanceCmd)
	rootCmd.AddCommand(constantsCmd)
}

// newEngine builds an engine honoring the persistent flags.
func newEngine() (*factor.Engine, error) {
	opts := factor.Options{ConfigFile: configFile}
	if verbose {
		opts.LogLevel = "debug"
	} else if jsonOutput {
		// Keep stdout JSON clean of incidental log noise.
		opts.LogLevel = "error"
	}
	return factor.New(opts)
}
