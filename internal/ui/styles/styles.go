package styles

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

const (
	CheckIcon   string = "✓"
	UncheckIcon string = "·"
	LockIcon    string = "⊘"
	CursorIcon  string = "▌"
	WarningIcon string = "⚠"

	SectionSeparator string = "─"
)

// Cell holds the states a list cell can be drawn in.
type Cell struct {
	Normal  lipgloss.Style
	Picked  lipgloss.Style
	Current lipgloss.Style
	Dirty   lipgloss.Style

	Name lipgloss.Style
	Size lipgloss.Style
}

type Styles struct {
	WindowTooSmall lipgloss.Style

	// Reusable text styles
	Base   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style

	Header lipgloss.Style

	Cell Cell

	// Status line
	Status struct {
		Bar   lipgloss.Style
		Key   lipgloss.Style
		Value lipgloss.Style
		Alert lipgloss.Style
	}

	// Help
	Help help.Styles

	// Background
	Background color.Color
}

func DefaultStyles() Styles {
	var (
		primary   = charmtone.Charple
		secondary = charmtone.Dolly
		tertiary  = charmtone.Bok

		// Backgrounds
		bgBase        = charmtone.Pepper
		bgBaseLighter = charmtone.BBQ
		bgSubtle      = charmtone.Charcoal

		// Foregrounds
		fgBase   = charmtone.Ash
		fgMuted  = charmtone.Squid
		fgSubtle = charmtone.Oyster

		border = charmtone.Charcoal

		warning = charmtone.Zest
		green   = charmtone.Julep
		red     = charmtone.Coral
	)

	base := lipgloss.NewStyle().Foreground(fgBase)

	s := Styles{}

	s.Background = bgBase

	s.WindowTooSmall = base.Foreground(warning)

	s.Base = base
	s.Muted = base.Foreground(fgMuted)
	s.Subtle = base.Foreground(fgSubtle)

	s.Header = base.Foreground(primary).Bold(true)

	s.Cell = Cell{
		Normal:  base,
		Picked:  base.Foreground(green).Background(bgBaseLighter),
		Current: base.Foreground(secondary).Background(bgSubtle).Bold(true),
		Dirty:   base.Foreground(fgMuted).Strikethrough(true),
		Name:    lipgloss.NewStyle(),
		Size:    lipgloss.NewStyle().Foreground(tertiary),
	}

	s.Status.Bar = base.Background(bgSubtle).Padding(0, 1)
	s.Status.Key = lipgloss.NewStyle().Foreground(fgSubtle).Background(bgSubtle)
	s.Status.Value = lipgloss.NewStyle().Foreground(fgBase).Background(bgSubtle)
	s.Status.Alert = lipgloss.NewStyle().Foreground(red).Background(bgSubtle)

	s.Help = help.Styles{
		ShortKey:       base.Foreground(fgMuted),
		ShortDesc:      base.Foreground(fgSubtle),
		ShortSeparator: base.Foreground(border),
		Ellipsis:       base.Foreground(border),
		FullKey:        base.Foreground(fgMuted),
		FullDesc:       base.Foreground(fgSubtle),
		FullSeparator:  base.Foreground(border),
	}

	return s
}
