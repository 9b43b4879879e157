package patch

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestOpenMissingFile(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "nope.bap"), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if st != nil {
		t.Error("no state should be returned on failure")
	}
	if !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("underlying error should be kept, got %v", err)
	}
}

func TestOpenSyntaxErrorIsLogged(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.bap", "add_conn R1-1 VCC\nfrobnicate X Y\n")

	var logs bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	st, err := Open(path, cfg)
	if st != nil {
		t.Error("no state should be returned on failure")
	}
	var serr *SyntaxError
	if !errors.As(err, &serr) || serr.Line != 2 {
		t.Fatalf("expected syntax error on line 2, got %v", err)
	}
	if errors.Is(err, ErrOpen) {
		t.Error("syntax errors are not open errors")
	}
	if !strings.Contains(logs.String(), "patch syntax error") || !strings.Contains(logs.String(), "line=2") {
		t.Errorf("diagnostic not logged: %q", logs.String())
	}
}

func TestOpenFoldsNetInfo(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.bap", `net_info GND U1-4 C1-2
net_info VCC U1-8
net_info GND C2-2 U1-4
add_conn R1-1 VCC
`)
	st, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if st.Name != path {
		t.Errorf("expected name %q, got %q", path, st.Name)
	}
	if len(st.Records()) != 4 {
		t.Errorf("expected 4 records, got %d", len(st.Records()))
	}
	if diff := cmp.Diff([]string{"C1-2", "C2-2", "U1-4"}, st.Members("GND")); diff != "" {
		t.Errorf("GND members (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"U1-8"}, st.Members("VCC")); diff != "" {
		t.Errorf("VCC members (-want +got):\n%s", diff)
	}
}

func TestRewindRestoresNetInfo(t *testing.T) {
	f := newFixture()
	st, err := New(strings.NewReader("net_info N1 A-1\nadd_conn B-1 N1\ndel_conn A-1 N1\n"), "t.bap", nil)
	if err != nil {
		t.Fatal(err)
	}
	st.BuildAll(f.m)

	first := st.Execute(f.m)
	if diff := cmp.Diff([]string{"B-1"}, st.Members("N1")); diff != "" {
		t.Errorf("after execute (-want +got):\n%s", diff)
	}

	st.Rewind()
	if diff := cmp.Diff([]string{"A-1"}, st.Members("N1")); diff != "" {
		t.Errorf("after rewind (-want +got):\n%s", diff)
	}

	second := st.Execute(f.m)
	if diff := cmp.Diff(actions(first), actions(second)); diff != "" {
		t.Errorf("re-execution after Rewind should be identical (-first +second):\n%s", diff)
	}
}

func TestDestroy(t *testing.T) {
	f := newFixture()
	f.part("R1", "1")
	st, err := New(strings.NewReader("net_info N1 R1-1\n"), "t.bap", nil)
	if err != nil {
		t.Fatal(err)
	}
	st.BuildAll(f.m)
	st.Destroy()

	if st.Records() != nil || st.pins != nil || st.comps != nil || st.nets != nil {
		t.Error("Destroy should drop records and indices")
	}
	if len(f.comp["R1"].Children) != 1 || f.comp["R1"].Deleted() {
		t.Error("Destroy must not touch schematic objects")
	}
}

func TestGuessFilename(t *testing.T) {
	dir := t.TempDir()
	sch := writeFile(t, dir, "board.kicad_sch", "")

	if got, ok := GuessFilename(sch); ok || got != filepath.Join(dir, "board.bap") {
		t.Errorf("no candidate: got %q ok=%v", got, ok)
	}

	sibling := writeFile(t, dir, "board.kicad_sch.bap", "")
	if got, ok := GuessFilename(sch); !ok || got != sibling {
		t.Errorf("sibling: got %q ok=%v", got, ok)
	}

	replaced := writeFile(t, dir, "board.bap", "")
	if got, ok := GuessFilename(sch); !ok || got != replaced {
		t.Errorf("replaced extension should win: got %q ok=%v", got, ok)
	}
}
