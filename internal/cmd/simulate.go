package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/taigrr/picklist/internal/config"
	"github.com/taigrr/picklist/internal/log"
	"github.com/taigrr/picklist/internal/ui/host"
	"github.com/taigrr/picklist/internal/ui/layout"
	"github.com/taigrr/picklist/internal/ui/list"
	"github.com/taigrr/picklist/internal/ui/termhost"
)

// ErrSkippedIndex is returned when a window move materializes indices out
// of order.
var ErrSkippedIndex = errors.New("window skipped an index")

func init() {
	simulateCmd.Flags().Float64P("step", "s", 1, "Scroll delta per frame, in cells")
	simulateCmd.Flags().Int("width", 80, "Viewport width")
	simulateCmd.Flags().Int("height", 24, "Viewport height")
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Scroll the list headlessly and log every window move",
	Long: `Simulate scrolls through the whole list and back on an off-screen
terminal host, logging each window transition and checking that the window
never skips an index.`,
	Example: `
# Scroll a thousand entries three rows per frame
picklist simulate -n 1000 --step 3

# Large jumps
picklist simulate --step 40 --height 10 --debug
  `,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		step, _ := cmd.Flags().GetFloat64("step")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")

		logger := log.Console(cmd.ErrOrStderr(), cfg.Debug)
		slog.SetDefault(logger)

		res, err := runSimulation(cmd.Context(), cfg, simulation{step: step, width: width, height: height})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d frames, %d window moves, at most %d live cells, %d cells created\n",
			res.frames, res.moves, res.maxLive, res.created)
		return nil
	},
}

type simulation struct {
	step          float64
	width, height int
}

type simulationResult struct {
	frames  int
	moves   int
	maxLive int
	created int
}

// runSimulation scrolls from the origin to the end of the content and back
// by sim.step per frame.
func runSimulation(ctx context.Context, cfg *config.Config, sim simulation) (simulationResult, error) {
	var res simulationResult
	if sim.step <= 0 {
		return res, fmt.Errorf("step must be positive, got %v", sim.step)
	}

	h := termhost.New()
	h.Register(cfg.Template.Path, cfg.Template.Width, cfg.Template.Height)
	h.SetViewport(sim.width, sim.height)

	var attached []int
	handles := make(map[host.Handle]struct{})
	l := list.New(h, h,
		list.WithAxis(cfg.LayoutAxis()),
		list.WithSpacing(cfg.Spacing.X, cfg.Spacing.Y),
		list.WithPadding(cfg.Padding.Left, cfg.Padding.Right, cfg.Padding.Top, cfg.Padding.Bottom),
		list.WithRefresh(func(handle host.Handle, index int) {
			attached = append(attached, index)
			handles[handle] = struct{}{}
			h.SetContent(handle, fmt.Sprintf("entry %d", index))
		}),
	)
	if err := l.SetTemplate(cfg.Template.Path); err != nil {
		return res, err
	}
	if err := l.ShowList(cfg.Dataset.Size, cfg.Constraint); err != nil {
		return res, err
	}

	cellExtent := float64(cfg.Template.Height)
	if cfg.LayoutAxis() == layout.Horizontal {
		cellExtent = float64(cfg.Template.Width)
	}
	delta := sim.step * cellExtent

	lo, hi := l.Range()
	res.maxLive = max(0, hi-lo+1)
	frame := func(d float64) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		attached = attached[:0]
		if !h.ScrollBy(cfg.LayoutAxis(), d) {
			return false, nil
		}
		l.HandleScroll()
		res.frames++

		nlo, nhi := l.Range()
		if err := checkMove(lo, hi, nlo, nhi, attached); err != nil {
			return false, err
		}
		if nlo != lo || nhi != hi {
			res.moves++
			slog.Info("Window moved", "frame", res.frames, "min", nlo, "max", nhi, "attached", len(attached))
		}
		lo, hi = nlo, nhi
		res.maxLive = max(res.maxLive, nhi-nlo+1)
		return true, nil
	}

	for _, d := range []float64{delta, -delta} {
		for {
			moved, err := frame(d)
			if err != nil {
				return res, err
			}
			if !moved {
				break
			}
		}
	}

	res.created = len(handles)
	slog.Info("Simulation done", "frames", res.frames, "moves", res.moves, "max_live", res.maxLive, "created", res.created)
	return res, nil
}

// checkMove verifies that the indices attached while moving from [lo, hi]
// to [nlo, nhi] run one at a time from the old edge to the new one. Long
// jumps attach and release indices that end up behind the window, so the
// run may start outside [nlo, nhi].
func checkMove(lo, hi, nlo, nhi int, attached []int) error {
	var want []int
	switch {
	case nhi > hi:
		for i := hi + 1; i <= nhi; i++ {
			want = append(want, i)
		}
	case nlo < lo:
		for i := lo - 1; i >= nlo; i-- {
			want = append(want, i)
		}
	}
	if len(want) != len(attached) {
		return fmt.Errorf("%w: attached %v, want %v", ErrSkippedIndex, attached, want)
	}
	for i := range want {
		if want[i] != attached[i] {
			return fmt.Errorf("%w: attached %v, want %v", ErrSkippedIndex, attached, want)
		}
	}
	return nil
}
