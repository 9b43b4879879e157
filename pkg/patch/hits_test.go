package patch

import (
	"testing"
)

func TestHitListTracksDeletion(t *testing.T) {
	f := newFixture()
	f.part("R1", "1")
	f.part("R2", "1").SetAttrib("value", "1k")

	hits := f.run(t, "add_conn R1-1 N1\nchange_attrib R2 value 2k\nadd_conn R9-1 N1\n")
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %v", actions(hits))
	}

	list := TrackHits(f.m, hits)
	if list.Len() != 3 {
		t.Fatalf("expected 3 tracked hits, got %d", list.Len())
	}
	if list.Object(0) != f.pin["R1-1"] || list.Object(1) != f.comp["R2"] {
		t.Error("live hits should resolve to their objects")
	}
	if list.Object(2) != nil {
		t.Error("NOT FOUND hit should resolve to nil")
	}

	f.m.Delete(f.comp["R1"])

	if !list.Stale(0) || list.Object(0) != nil {
		t.Error("hit on a deleted pin should be stale and resolve to nil")
	}
	if list.Stale(1) || list.Object(1) == nil {
		t.Error("other hits must be unaffected")
	}
	if list.Hits[0].Location != "R1-1" {
		t.Error("stale hits keep their copied text")
	}

	list.Release()
	if list.Len() != 0 {
		t.Error("Release should drop the hits")
	}
	// No observer left behind: deleting more objects must not panic
	f.m.Delete(f.comp["R2"])
}

func TestHitKindString(t *testing.T) {
	if HitNotFound.String() != "not_found" || HitMismatch.String() != "mismatch" {
		t.Errorf("unexpected kind names %q %q", HitNotFound, HitMismatch)
	}
}
