package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func locations(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Location
	}
	return out
}

func TestFilter(t *testing.T) {
	rows := []Row{
		{Kind: "mismatch", Page: "a.kicad_sch", Line: 1, Location: "R1-1", Action: "connect to net VCC"},
		{Kind: "mismatch", Page: "b.kicad_sch", Line: 2, Location: "U1", Action: `change attribute value from "x" to "y"`},
		{Kind: "not_found", Line: 5, Location: "U9-3", Action: "disconnect from net GND (NOT FOUND)"},
		{Kind: "mismatch", Page: "a.kicad_sch", Line: 7, Location: "C3-2", Action: "disconnect from net GND", Stale: true},
	}

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"empty keeps all", "", []string{"R1-1", "U1", "U9-3", "C3-2"}},
		{"by kind", `kind == "not_found"`, []string{"U9-3"}},
		{"by prefix", `location startsWith "U"`, []string{"U1", "U9-3"}},
		{"by page and line", `page == "a.kicad_sch" && line > 1`, []string{"C3-2"}},
		{"by action", `action contains "GND"`, []string{"U9-3", "C3-2"}},
		{"live only", `!stale`, []string{"R1-1", "U1", "U9-3"}},
		{"none", `line > 100`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileFilter(tt.expr)
			if err != nil {
				t.Fatalf("CompileFilter failed: %v", err)
			}
			got, err := f.Apply(rows)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, locations(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileFilterErrors(t *testing.T) {
	for _, src := range []string{
		`kind ==`,            // syntax
		`location + 1`,       // type mismatch
		`unknown_field == 1`, // not a row field
	} {
		if _, err := CompileFilter(src); err == nil {
			t.Errorf("%q: expected error", src)
		}
	}
}
