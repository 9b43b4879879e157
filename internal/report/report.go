// Package report renders the outstanding changes found by a patch run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-yaml"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/patch"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted values of Options.Format
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Row is one hit flattened for output and filtering
type Row struct {
	Kind     string `json:"kind" yaml:"kind" expr:"kind"`
	Page     string `json:"page,omitempty" yaml:"page,omitempty" expr:"page"`
	Line     int    `json:"line" yaml:"line" expr:"line"`
	Location string `json:"location" yaml:"location" expr:"location"`
	Action   string `json:"action" yaml:"action" expr:"action"`
	Stale    bool   `json:"stale,omitempty" yaml:"stale,omitempty" expr:"stale"`
	Diff     string `json:"diff,omitempty" yaml:"diff,omitempty" expr:"diff"`

	have, want string
}

// Report is what gets written for one patch file
type Report struct {
	Patch string `json:"patch" yaml:"patch"`
	Hits  []Row  `json:"hits" yaml:"hits"`
}

// Options control rendering
type Options struct {
	Format  string
	Color   bool
	Explain bool // Show a character diff for attribute changes
}

// Rows flattens a hit list in order
func Rows(list *patch.HitList) []Row {
	rows := make([]Row, 0, list.Len())
	for i, h := range list.Hits {
		r := Row{
			Kind:     h.Kind.String(),
			Page:     h.Page,
			Line:     h.Line,
			Location: h.Location,
			Action:   h.Action,
			Stale:    list.Stale(i),
		}
		if h.Record.Kind == patch.ChangeAttribute && h.Kind == patch.HitMismatch {
			r.have, r.want = h.Have, h.Record.Value
		}
		rows = append(rows, r)
	}
	return rows
}

// NotFound counts the rows that name objects missing from the schematic
func NotFound(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.Kind == patch.HitNotFound.String() {
			n++
		}
	}
	return n
}

// Write renders rep to w
func Write(w io.Writer, rep *Report, opts Options) error {
	style := NewStyle(opts.Color)
	if opts.Explain {
		for i := range rep.Hits {
			r := &rep.Hits[i]
			if r.have != "" || r.want != "" {
				r.Diff = Explain(r.have, r.want, nil)
			}
		}
	}

	switch opts.Format {
	case FormatText, "":
		return writeText(w, rep, style)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		out, err := yaml.Marshal(rep)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("report: unknown format %q", opts.Format)
}

func writeText(w io.Writer, rep *Report, style *Style) error {
	if len(rep.Hits) == 0 {
		_, err := fmt.Fprintf(w, "%s: %s\n", rep.Patch, style.OK("no outstanding changes"))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tPAGE\tLOCATION\tACTION")
	for _, r := range rep.Hits {
		action := r.Action
		switch {
		case r.Stale:
			action = style.Dim(action + " (deleted)")
		case r.Kind == patch.HitNotFound.String():
			action = style.Error(action)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Line, r.Page, r.Location, action)
		if r.Diff != "" {
			fmt.Fprintf(tw, "\t\t\t  %s\n", Explain(r.have, r.want, style))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s: %d outstanding, %d not found\n", rep.Patch, len(rep.Hits), NotFound(rep.Hits))
	return err
}
