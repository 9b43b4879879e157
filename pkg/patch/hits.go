package patch

import (
	"github.com/OpenTraceLab/OpenTraceBAP/pkg/schematic"
)

// HitKind separates real mismatches from records that name objects the
// schematic does not have.
type HitKind int

const (
	HitMismatch HitKind = iota
	HitNotFound
)

func (k HitKind) String() string {
	if k == HitNotFound {
		return "not_found"
	}
	return "mismatch"
}

// Hit is one outstanding change found by Execute. Object is a weak
// reference: it is zero for NOT FOUND hits and may outlive the object.
type Hit struct {
	Kind     HitKind
	Object   schematic.Handle
	Page     string
	Location string
	Action   string
	Line     int

	Record Record // The patch record that produced the hit
	Have   string // Current attribute value, for change_attrib hits
}

// HitList holds the hits of one Execute and watches the model so that a
// hit whose object gets deleted is marked stale instead of dangling.
type HitList struct {
	Hits []Hit

	model    *schematic.Model
	byHandle map[schematic.Handle][]int
	stale    map[int]bool
	cancel   func()
}

// TrackHits takes ownership of hits and subscribes to object deletion on m.
// Call Release when the list is no longer displayed.
func TrackHits(m *schematic.Model, hits []Hit) *HitList {
	l := &HitList{
		Hits:     hits,
		model:    m,
		byHandle: make(map[schematic.Handle][]int),
		stale:    make(map[int]bool),
	}
	for i, h := range hits {
		if !h.Object.IsZero() {
			l.byHandle[h.Object] = append(l.byHandle[h.Object], i)
		}
	}
	l.cancel = m.OnDestroy(func(h schematic.Handle) {
		for _, i := range l.byHandle[h] {
			l.stale[i] = true
		}
	})
	return l
}

// Object returns the live object of hit i, or nil when the hit has none
// or its object was deleted.
func (l *HitList) Object(i int) *schematic.Object {
	h := l.Hits[i].Object
	if h.IsZero() || l.stale[i] {
		return nil
	}
	return l.model.Resolve(h)
}

// Stale reports whether the object of hit i was deleted after Execute
func (l *HitList) Stale(i int) bool {
	return l.stale[i]
}

// Len returns the number of hits
func (l *HitList) Len() int {
	return len(l.Hits)
}

// Release unsubscribes from the model and drops the hits. The referenced
// objects are never freed here.
func (l *HitList) Release() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.Hits = nil
	l.byHandle = nil
	l.stale = nil
}
