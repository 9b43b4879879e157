package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Colour modes accepted by ColorEnabled
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Style holds the colour functions used by the text renderer
type Style struct {
	OK     func(a ...interface{}) string
	Error  func(a ...interface{}) string
	Dim    func(a ...interface{}) string
	Insert func(a ...interface{}) string
	Delete func(a ...interface{}) string
}

// NewStyle builds a style; with enabled false every function returns its
// input unchanged.
func NewStyle(enabled bool) *Style {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &Style{
		OK:     mk(color.FgGreen),
		Error:  mk(color.FgRed, color.Bold),
		Dim:    mk(color.FgHiBlack),
		Insert: mk(color.FgGreen, color.Underline),
		Delete: mk(color.FgRed, color.CrossedOut),
	}
}

// ColorEnabled decides whether output to w is coloured. In auto mode only
// terminals get colour.
func ColorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("report: unknown color mode %q", mode)
}
