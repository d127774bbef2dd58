package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/openauto/multiclick/pkg/clicker"
	"github.com/openauto/multiclick/pkg/hotkey"
	"github.com/openauto/multiclick/pkg/settings"
	"github.com/spf13/cobra"
)

var (
	clickerRate    float64
	clickerTotal   int
	clickerType    string
	clickerFollow  bool
	clickerPos     []string
	clickerHotkeys bool
)

var clickerCmd = &cobra.Command{
	Use:   "clicker",
	Short: "Run the fixed-rate auto-clicker",
	Long: `Run the fixed-rate auto-clicker. Positions, rate and click type default
to the saved settings; flags override them for this run. With --hotkeys the
clicker is armed on the configured start/stop keys (default F6/F7) instead
of starting immediately. Ctrl-C always stops.`,
	RunE: runClicker,
}

func init() {
	clickerCmd.Flags().Float64Var(&clickerRate, "rate", 0, "clicks per second")
	clickerCmd.Flags().IntVar(&clickerTotal, "total", -1, "total clicks (0 = until stopped)")
	clickerCmd.Flags().StringVar(&clickerType, "type", "", "click type: left, right or double")
	clickerCmd.Flags().BoolVar(&clickerFollow, "follow", false, "click at the live cursor position instead of a position list")
	clickerCmd.Flags().StringArrayVar(&clickerPos, "pos", nil, "click position as X,Y (repeatable)")
	clickerCmd.Flags().BoolVar(&clickerHotkeys, "hotkeys", false, "arm global start/stop hotkeys instead of starting immediately")
}

func runClicker(cmd *cobra.Command, args []string) error {
	st := settings.NewManager("").Load()

	cfg := clicker.Config{
		Positions:     st.ClickPositions,
		RatePerSecond: st.ClickRatePerSecond,
		TotalClicks:   st.TotalClicks,
		Type:          st.ClickType,
		Mode:          st.ClickMode,
	}
	if clickerRate > 0 {
		cfg.RatePerSecond = clickerRate
	}
	if clickerTotal >= 0 {
		cfg.TotalClicks = clickerTotal
	}
	if clickerType != "" {
		cfg.Type = clicker.ClickType(clickerType)
	}
	if clickerFollow {
		cfg.Mode = clicker.ModeFollowCursor
	}
	if len(clickerPos) > 0 {
		positions, err := parsePositions(clickerPos)
		if err != nil {
			return err
		}
		cfg.Positions = positions
		cfg.Mode = clicker.ModeStaticSequence
	}

	c, err := clicker.New(cfg)
	if err != nil {
		return err
	}
	c.OnStatus(func(msg string) { fmt.Println(msg) })

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	if clickerHotkeys {
		hk := hotkey.New(st.StartHotkey, st.StopHotkey)
		hk.OnStart(func() { c.Start() })
		hk.OnStop(c.Stop)
		hk.Enable()
		defer hk.Disable()

		fmt.Printf("Armed: %s starts, %s stops. Ctrl-C exits.\n", hk.StartKey(), hk.StopKey())
		<-interrupt
		c.Stop()
		return nil
	}

	c.Start()
	select {
	case <-c.Done():
	case <-interrupt:
		c.Stop()
	}
	return nil
}

func parsePositions(raw []string) ([]clicker.Position, error) {
	positions := make([]clicker.Position, 0, len(raw))
	for _, item := range raw {
		parts := strings.SplitN(item, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid position %q, expected X,Y", item)
		}
		x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
		y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("invalid position %q, expected X,Y", item)
		}
		positions = append(positions, clicker.Position{X: x, Y: y})
	}
	return positions, nil
}
