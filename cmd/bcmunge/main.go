// bcmunge is a command-line frontend for the bitcode munge tooling:
// disassemble a stream, compress one, or run a TOML scenario suite.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chazu/bitmunge/pkg/compress"
	"github.com/chazu/bitmunge/pkg/objdump"
	"github.com/chazu/bitmunge/pkg/suite"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})

	root := &cobra.Command{
		Use:           "bcmunge",
		Short:         "Inspect and exercise bitcode munge streams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(disCmd(), compressCmd(), runCmd(logger))

	if err := root.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func disCmd() *cobra.Command {
	var noRecords, noAssembly bool

	cmd := &cobra.Command{
		Use:   "dis <stream>",
		Short: "Disassemble a bitcode stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts := objdump.Options{NoRecords: noRecords, NoAssembly: noAssembly}
			if err := objdump.Dump(os.Stdout, data, opts); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noRecords, "no-records", false, "suppress the record listing")
	cmd.Flags().BoolVar(&noAssembly, "no-assembly", false, "suppress the assembly rendering")
	return cmd
}

func compressCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compress <stream>",
		Short: "Validate and compress a bitcode stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, err := compress.Compress(data, os.Stderr)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if output == "" {
				output = args[0] + ".zst"
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return err
			}
			fmt.Printf("%s: %d -> %d bytes\n", output, len(data), len(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <stream>.zst)")
	return cmd
}

func runCmd(logger *log.Logger) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run <suite.toml>...",
		Short: "Run munge scenario suites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				s, err := suite.Load(path)
				if err != nil {
					return err
				}
				for _, res := range s.Run() {
					if res.Passed {
						logger.Info("pass", "suite", s.Name, "scenario", res.Scenario)
						if verbose && res.Output != "" {
							fmt.Print(res.Output)
						}
						continue
					}
					failed++
					logger.Error("fail", "suite", s.Name, "scenario", res.Scenario,
						"reasons", strings.Join(res.Failures, "; "))
					if res.Output != "" {
						fmt.Print(res.Output)
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d scenario(s) failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print captured output for passing scenarios")
	return cmd
}
