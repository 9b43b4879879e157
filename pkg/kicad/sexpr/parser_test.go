package sexpr

import (
	"strings"
	"testing"
)

func TestParseNested(t *testing.T) {
	input := `(kicad_sch (version 20231120)
  (wire (pts (xy 100 50) (xy 150.5 50)))
  (label "DATA BUS" (at 120 50 0))
)`
	nodes, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(nodes))
	}

	root := nodes[0]
	if root.Name() != "kicad_sch" {
		t.Errorf("expected root name kicad_sch, got %q", root.Name())
	}

	ver, ok := root.Find("version")
	if !ok {
		t.Fatal("version node not found")
	}
	if v, err := ver.Float(1); err != nil || v != 20231120 {
		t.Errorf("unexpected version %v (err %v)", v, err)
	}

	wire, _ := root.Find("wire")
	pts, _ := wire.Find("pts")
	xys := pts.FindAll("xy")
	if len(xys) != 2 {
		t.Fatalf("expected 2 xy nodes, got %d", len(xys))
	}
	if x, _ := xys[1].Float(1); x != 150.5 {
		t.Errorf("expected x=150.5, got %v", x)
	}

	label, _ := root.Find("label")
	text, err := label.Str(1)
	if err != nil || text != "DATA BUS" {
		t.Errorf("quoted string with space should stay one atom, got %q (err %v)", text, err)
	}
	if !label.List[1].Quoted {
		t.Error("label text should be marked quoted")
	}
	if label.Line != 3 {
		t.Errorf("expected label on line 3, got %d", label.Line)
	}
}

func TestParseEscapes(t *testing.T) {
	nodes, err := Parse(strings.NewReader(`(property "Note" "a \"quoted\"\nline")`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, _ := nodes[0].Str(2)
	if got != "a \"quoted\"\nline" {
		t.Errorf("unexpected unescaped value %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed list", "(kicad_sch (version 1)"},
		{"stray paren", ")"},
		{"unterminated string", `(title "oops)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHasAtom(t *testing.T) {
	nodes, _ := Parse(strings.NewReader(`(pin passive line (at 0 0 0) hide)`))
	pin := nodes[0]
	if !pin.HasAtom("hide") {
		t.Error("expected bare atom hide")
	}
	if pin.HasAtom("at") {
		t.Error("list heads are not bare atoms")
	}
}
