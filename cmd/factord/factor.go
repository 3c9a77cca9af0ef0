package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/factord/pkg/factor"
)

var factorCmd = &cobra.Command{
	Use:   "factor <value>",
	Short: "Factor an integer",
	Long: `Factor an arbitrary-precision non-negative integer.

Examples:
  # Factor a small composite
  factord factor 77

  # Factor a large value given as a digit string
  factord factor 1000000000000000000000000000000

  # Machine-readable output
  factord factor --json 561`,
	Args: cobra.ExactArgs(1),
	RunE: runFactor,
}

// factorOutput is the JSON shape of a factorization result.
type factorOutput struct {
	Value      string   `json:"value"`
	Factors    []string `json:"factors"`
	Confidence float64  `json:"confidence"`
	Strategy   string   `json:"strategy"`
	Iterations uint64   `json:"iterations"`
	Duration   string   `json:"duration"`
}

func runFactor(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	stopMetrics := maybeServeMetrics(engine)
	defer stopMetrics()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	start := time.Now()
	result, err := engine.Factorize(ctx, args[0])
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if jsonOutput {
		out := factorOutput{
			Value:      args[0],
			Factors:    make([]string, len(result.Factors)),
			Confidence: result.Confidence,
			Strategy:   result.Strategy,
			Iterations: result.Iterations,
			Duration:   elapsed.String(),
		}
		for i, f := range result.Factors {
			out.Factors[i] = f.Text(10)
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	fmt.Printf("%s = %s\n", args[0], formatFactors(result.Factors))
	fmt.Printf("strategy: %s  confidence: %.4f  iterations: %d  elapsed: %s\n",
		result.Strategy, result.Confidence, result.Iterations, elapsed.Round(time.Microsecond))
	if result.Confidence < 1.0 {
		fmt.Println("note: some factors are irreducible-by-heuristics, not proven prime")
	}
	return nil
}

// formatFactors groups repeated factors into exponent notation:
// 2^30 * 5^30 instead of sixty terms.
func formatFactors(factors []*big.Int) string {
	if len(factors) == 0 {
		return "1 (empty product)"
	}
	var terms []string
	for i := 0; i < len(factors); {
		j := i
		for j < len(factors) && factors[j].Cmp(factors[i]) == 0 {
			j++
		}
		if count := j - i; count > 1 {
			terms = append(terms, fmt.Sprintf("%s^%d", factors[i].Text(10), count))
		} else {
			terms = append(terms, factors[i].Text(10))
		}
		i = j
	}
	return strings.Join(terms, " * ")
}

// commandContext derives the command's context, applying --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// maybeServeMetrics starts the Prometheus endpoint when --metrics-addr is
// set, returning a stop function.
func maybeServeMetrics(engine *factor.Engine) func() {
	if metricsAddr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", engine.MetricsHandler())
	srv := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintln(os.Stderr, "metrics server:", err)
		}
	}()
	return func() { _ = srv.Close() }
}
