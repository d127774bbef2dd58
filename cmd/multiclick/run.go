package main

import (
	"fmt"
	"os"

	"github.com/openauto/multiclick/pkg/engine"
	"github.com/openauto/multiclick/pkg/script"
	"github.com/spf13/cobra"
)

var runLogPath string

var runCmd = &cobra.Command{
	Use:   "run [script.(json|yaml)]",
	Short: "Execute an automation script",
	Long: `Execute an automation script to completion, printing log lines and a
final "DONE: <bool> - <message>" summary.

Exit codes: 0 when the script completed, 1 when it failed or was aborted,
2 when the file is missing or unreadable.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runLogPath, "log", "", "append run events to a JSONL file")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "File not found: %s\n", path)
		os.Exit(2)
	}

	s, err := script.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load script: %v\n", err)
		os.Exit(2)
	}

	var runLog *engine.RunLogWriter
	if runLogPath != "" {
		runLog, err = engine.NewRunLogWriter(runLogPath, s.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open run log: %v\n", err)
			os.Exit(2)
		}
		defer runLog.Close()
	}

	var ok bool
	var msg string

	eng := engine.New(s)
	eng.OnLog(func(m string) {
		fmt.Println(m)
		if runLog != nil {
			_ = runLog.Write("log", m)
		}
	})
	eng.OnDone(func(o bool, m string) {
		// Wait() below synchronizes these writes back to this goroutine.
		ok, msg = o, m
		if runLog != nil {
			_ = runLog.Write("done", m)
		}
	})

	eng.Start()
	eng.Wait()

	fmt.Printf("DONE: %v - %s\n", ok, msg)
	if !ok {
		os.Exit(1)
	}
	return nil
}
