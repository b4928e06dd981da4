package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Console prints one "name: label" line per file.
type Console struct {
	w io.Writer

	name    *color.Color
	label   *color.Color
	unknown *color.Color
	err     *color.Color
}

// NewConsole returns a console printer. With colors disabled the
// output is plain text.
func NewConsole(w io.Writer, colors bool) *Console {
	c := &Console{
		w:       w,
		name:    color.New(color.Bold),
		label:   color.New(color.FgHiGreen),
		unknown: color.New(color.FgYellow),
		err:     color.New(color.FgRed),
	}

	for _, col := range []*color.Color{c.name, c.label, c.unknown, c.err} {
		if colors {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// PrintFile prints obj. Unmatched files are highlighted, as are the
// causes of read errors.
func (c *Console) PrintFile(obj FileObject) error {
	label := c.label
	if obj.Priority == nil {
		label = c.unknown
	}

	line := fmt.Sprintf("%s: %s", c.name.Sprint(obj.Filename), label.Sprint(obj.Label))
	if obj.Error != "" {
		line += " " + c.err.Sprintf("(%s)", obj.Error)
	}

	_, err := fmt.Fprintln(c.w, line)
	return err
}
