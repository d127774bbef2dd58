// multiclick is the command-line surface for the automation script engine
// and the fixed-rate auto-clicker.
package main

import (
	"fmt"
	"os"

	"github.com/openauto/multiclick/pkg/script"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var version = "dev"

func main() {
	// Script failures exit 1 from inside the run command; everything that
	// bubbles up here is a usage or input problem.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

var rootCmd = &cobra.Command{
	Use:   "multiclick",
	Short: "Desktop automation scripts and auto-clicking",
	Long:  "multiclick — run JSON/YAML automation scripts (launch, wait, keys, clicks, scrolls) and drive a fixed-rate auto-clicker.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the multiclick version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("multiclick", version)
	},
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate [script.(json|yaml)]",
	Short: "Validate a script document against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, findings := script.ValidateFile(args[0])

	var errCount int
	for _, f := range findings {
		if f.Severity == "warning" {
			fmt.Fprintf(os.Stderr, "  ⚠ [%s] %s\n", f.Phase, f.Message)
		} else {
			errCount++
			fmt.Fprintf(os.Stderr, "  ✗ [%s] %s\n", f.Phase, f.Message)
		}
		if f.Path != "" {
			fmt.Fprintf(os.Stderr, "    at: %s\n", f.Path)
		}
	}
	if errCount > 0 {
		return fmt.Errorf("validation failed with %d error(s)", errCount)
	}
	fmt.Printf("✓ %s is valid (%d actions)\n", s.Name, len(s.Actions))
	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(clickerCmd)
	rootCmd.AddCommand(captureCmd)
}
