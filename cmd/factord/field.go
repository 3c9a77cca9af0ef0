package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var patternCmd = &cobra.Command{
	Use:   "pattern <value>",
	Short: "Show a value's field pattern",
	Long: `Show the 8-position field pattern of a value.

The pattern depends only on the value's residue mod 256: bit i is active
iff bit i of (value mod 256) is set.

Examples:
  factord pattern 77
  factord pattern 257`,
	Args: cobra.ExactArgs(1),
	RunE: runPattern,
}

var resonanceCmd = &cobra.Command{
	Use:   "resonance <value>",
	Short: "Show a value's resonance score",
	Long: `Show the resonance score of a value: the product of the field
constants at the pattern's active positions. A heuristic ranking signal
only; it carries no primality meaning.`,
	Args: cobra.ExactArgs(1),
	RunE: runResonance,
}

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Show the field constant table",
	Args:  cobra.NoArgs,
	RunE:  runConstants,
}

type patternOutput struct {
	Value   string `json:"value"`
	Pattern string `json:"pattern"`
	Active  []int  `json:"active_bits"`
}

func runPattern(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	pattern, err := engine.FieldPattern(args[0])
	if err != nil {
		return err
	}

	var rendered []byte
	var active []int
	for i, bit := range pattern {
		if bit {
			rendered = append(rendered, '1')
			active = append(active, i)
		} else {
			rendered = append(rendered, '0')
		}
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(patternOutput{
			Value:   args[0],
			Pattern: string(rendered),
			Active:  active,
		})
	}
	fmt.Printf("pattern(%s) = %s (bit 0 first), active bits %v\n", args[0], rendered, active)
	return nil
}

type resonanceOutput struct {
	Value     string  `json:"value"`
	Resonance float64 `json:"resonance"`
}

func runResonance(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	score, err := engine.Resonance(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(resonanceOutput{Value: args[0], Resonance: score})
	}
	fmt.Printf("resonance(%s) = %.12g\n", args[0], score)
	return nil
}

func runConstants(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	constants := engine.FieldConstants()
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(constants)
	}
	for i, c := range constants {
		fmt.Printf("alpha[%d] = %.16g\n", i, c)
	}
	return nil
}
