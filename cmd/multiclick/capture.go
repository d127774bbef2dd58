package main

import (
	"fmt"
	"time"

	"github.com/openauto/multiclick/pkg/capture"
	"github.com/openauto/multiclick/pkg/clicker"
	"github.com/openauto/multiclick/pkg/settings"
	"github.com/spf13/cobra"
)

var (
	captureCount   int
	captureTimeout time.Duration
	captureSave    bool
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture click positions from the screen",
	Long: `Capture click positions from the screen. Waits for the next mouse click
and prints its coordinates; with --save the positions are appended to the
saved click position list used by the clicker.`,
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().IntVar(&captureCount, "count", 1, "number of clicks to capture")
	captureCmd.Flags().DurationVar(&captureTimeout, "timeout", 30*time.Second, "how long to wait for each click (0 = forever)")
	captureCmd.Flags().BoolVar(&captureSave, "save", false, "append captured positions to the saved settings")
}

func runCapture(cmd *cobra.Command, args []string) error {
	if captureCount < 1 {
		captureCount = 1
	}

	mgr := settings.NewManager("")
	st := mgr.Load()

	captured := make([]clicker.Position, 0, captureCount)
	for i := 0; i < captureCount; i++ {
		fmt.Printf("Click anywhere to capture position %d/%d...\n", i+1, captureCount)
		x, y, err := capture.WaitForClick(captureTimeout)
		if err != nil {
			return err
		}
		pos := clicker.Position{X: x, Y: y, Label: fmt.Sprintf("Position %d", len(st.ClickPositions)+len(captured)+1)}
		captured = append(captured, pos)
		fmt.Printf("Captured %s\n", pos)
	}

	if captureSave {
		st.ClickPositions = append(st.ClickPositions, captured...)
		if err := mgr.Save(st); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		fmt.Printf("Saved %d position(s), %d total.\n", len(captured), len(st.ClickPositions))
	}
	return nil
}
