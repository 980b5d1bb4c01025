// Package main contains the CLI implementation of dqcheck. It uses the
// cobra package for command-line parsing, with one flag-bound subcommand
// per operation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okonkwo-labs/dqcheck/src/loadsource"
	"github.com/okonkwo-labs/dqcheck/src/ruleconfig"
	"github.com/okonkwo-labs/dqcheck/src/schema"
	"github.com/okonkwo-labs/dqcheck/src/validate"
)

type validateFlags struct {
	data   string
	schema string
	rules  string
}

type inferSchemaFlags struct {
	data string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "dqcheck",
		Short: "Columnar data-quality validator",
	}

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(inferSchemaCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func validateCmd() *cobra.Command {
	flags := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a CSV dataset against a rule-set",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(flags)
		},
	}
	cmd.Flags().StringVar(&flags.data, "data", "", "Path or s3:// URI to the CSV data file (required)")
	cmd.Flags().StringVar(&flags.schema, "schema", "", "Path to a JSON schema file (required)")
	cmd.Flags().StringVar(&flags.rules, "rules", "", "Path to a TOML rule-set file (required)")
	return cmd
}

func runValidate(flags *validateFlags) error {
	if flags.data == "" || flags.schema == "" || flags.rules == "" {
		return fmt.Errorf("--data, --schema, and --rules are all required")
	}

	sch, err := readSchema(flags.schema)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	r, err := loadsource.Open(context.Background(), flags.data)
	if err != nil {
		return fmt.Errorf("failed to open data source: %w", err)
	}
	defer r.Close()

	ds, err := schema.LoadCSVFrom(r, sch)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	rules, err := ruleconfig.Load(flags.rules)
	if err != nil {
		return fmt.Errorf("failed to load rule configuration: %w", err)
	}

	results := validate.Validate(ds, rules)
	printReport(results)

	for _, res := range results {
		if !res.IsPassed {
			return fmt.Errorf("%d of %d rule(s) failed", countFailed(results), len(results))
		}
	}
	return nil
}

func countFailed(results []validate.Result) int {
	n := 0
	for _, r := range results {
		if !r.IsPassed {
			n++
		}
	}
	return n
}

func printReport(results []validate.Result) {
	for _, r := range results {
		status := "PASS"
		if !r.IsPassed {
			status = "FAIL"
		}
		fmt.Printf("%-4s %-20s %-16s failed=%d", status, r.Column, r.Constraint.Kind(), r.FailedCount)
		if r.Error != "" {
			fmt.Printf(" error=%q", r.Error)
		}
		fmt.Println()
	}
}

func readSchema(path string) (schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Schema{}, err
	}
	var s schema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return schema.Schema{}, err
	}
	return s, nil
}

func inferSchemaCmd() *cobra.Command {
	flags := &inferSchemaFlags{}
	cmd := &cobra.Command{
		Use:   "infer-schema",
		Short: "Guess a JSON schema from a CSV file's header and sample rows",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInferSchema(flags)
		},
	}
	cmd.Flags().StringVar(&flags.data, "data", "", "Path to the CSV data file (required)")
	return cmd
}

func runInferSchema(flags *inferSchemaFlags) error {
	if flags.data == "" {
		return fmt.Errorf("--data is required")
	}
	f, err := os.Open(flags.data)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	s, err := schema.Infer(f)
	if err != nil {
		return fmt.Errorf("failed to infer schema: %w", err)
	}
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
