package common

import (
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/picklist/internal/config"
	"github.com/taigrr/picklist/internal/ui/styles"
)

// Common carries the config and styles shared by every picklist view.
type Common struct {
	Config *config.Config
	Styles styles.Styles
}

// DefaultCommon wraps cfg with the default styles.
func DefaultCommon(cfg *config.Config) *Common {
	return &Common{
		Config: cfg,
		Styles: styles.DefaultStyles(),
	}
}

// Fits reports whether area holds chrome rows plus at least one cell of the
// configured template.
func (c *Common) Fits(area uv.Rectangle, chrome int) bool {
	t := c.Config.Template
	return area.Dx() >= t.Width && area.Dy() >= chrome+t.Height
}

// CenterRect centers a width by height rectangle in area. The result never
// extends past area.
func CenterRect(area uv.Rectangle, width, height int) uv.Rectangle {
	width, height = min(width, area.Dx()), min(height, area.Dy())
	x := area.Min.X + (area.Dx()-width)/2
	y := area.Min.Y + (area.Dy()-height)/2
	return uv.Rect(x, y, width, height)
}
