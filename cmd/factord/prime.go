package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var primeCmd = &cobra.Command{
	Use:   "prime <value>",
	Short: "Test an integer for primality",
	Long: `Test an arbitrary-precision integer for primality.

This is the authoritative answer: exact below the deterministic bound,
Miller-Rabin with a bounded error probability above it.

Examples:
  factord prime 104729
  factord prime --json 561`,
	Args: cobra.ExactArgs(1),
	RunE: runPrime,
}

type primeOutput struct {
	Value string `json:"value"`
	Prime bool   `json:"prime"`
}

func runPrime(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	prime, err := engine.IsPrime(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(primeOutput{Value: args[0], Prime: prime})
	}
	if prime {
		fmt.Printf("%s is prime\n", args[0])
	} else {
		fmt.Printf("%s is not prime\n", args[0])
	}
	return nil
}
