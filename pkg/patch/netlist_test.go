package patch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNetlist(t *testing.T) {
	f := newFixture()
	f.part("R1", "1", "2")
	f.part("C1", "1", "2")
	u1 := f.part("U1", "1")
	u1.AddAttrib("net", "GND:7")
	u1.AddAttrib("net", "VCC:14,8")
	u1.AddAttrib("net", "broken")

	sig := f.net("SIG", f.pin["R1-1"])
	wire := f.net("", f.pin["C1-1"])
	f.m.Connect(sig, wire)
	f.net("GND", f.pin["R1-2"], f.pin["C1-2"])
	f.net("", f.pin["U1-1"])

	var got []string
	for _, rec := range Netlist(f.m) {
		got = append(got, rec.String())
	}
	want := []string{
		"net_info GND C1-2 R1-2 U1-7",
		"net_info SIG C1-1 R1-1",
		"net_info VCC U1-14 U1-8",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNetlistFeedsPatch(t *testing.T) {
	f := newFixture()
	f.part("R1", "1")
	f.part("R2", "1")
	f.net("N1", f.pin["R1-1"], f.pin["R2-1"])

	var text strings.Builder
	for _, rec := range Netlist(f.m) {
		text.WriteString(rec.String() + "\n")
	}
	text.WriteString("add_conn R1-1 N1\nadd_conn R2-1 N1\n")

	if hits := f.run(t, text.String()); len(hits) != 0 {
		t.Errorf("a schematic checked against its own netlist has no hits, got %v", actions(hits))
	}
}
