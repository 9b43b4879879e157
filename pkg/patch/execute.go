package patch

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/schematic"
)

// Execute replays every record against the indexed schematic and returns
// the outstanding changes in record order. Connection records update the
// state's net membership as they go; see Rewind.
func (s *State) Execute(g Connectivity) []Hit {
	var hits []Hit
	for _, rec := range s.records {
		switch rec.Kind {
		case AddConnection, DeleteConnection:
			hits = s.execConn(hits, rec, g)
		case ChangeAttribute:
			hits = s.execAttrib(hits, rec)
		case NetInfo:
			// folded into the membership table when the state was created
		}
	}
	return hits
}

func (s *State) execConn(hits []Hit, rec Record, g Connectivity) []Hit {
	del := rec.Kind == DeleteConnection
	members := s.Members(rec.Net)
	bindings := s.pins[rec.ID]

	if len(bindings) == 0 {
		s.cfg.Logger.Debug("pin not found", "line", rec.Line, "pin", rec.ID)
		hits = append(hits, Hit{
			Kind:     HitNotFound,
			Location: rec.ID,
			Action:   netAction(del, rec.Net) + " (NOT FOUND)",
			Line:     rec.Line,
			Record:   rec,
		})
	}

	for _, b := range bindings {
		var msgs []string
		if b.explicit {
			if (b.net == rec.Net) == del && !s.cfg.unnamed(rec.Net) {
				msgs = append(msgs, netAction(del, rec.Net))
			}
		} else {
			msgs = s.checkPin(b.obj, rec, members, g)
		}

		if len(msgs) == 0 {
			continue
		}
		hits = append(hits, Hit{
			Kind:     HitMismatch,
			Object:   schematic.HandleOf(b.obj),
			Page:     pageName(b.obj),
			Location: rec.ID,
			Action:   strings.Join(msgs, "; "),
			Line:     rec.Line,
			Record:   rec,
		})
	}

	// Pretend the record has been applied so later records see it
	if del {
		delete(s.memberSet(rec.Net), rec.ID)
	} else {
		s.memberSet(rec.Net)[rec.ID] = struct{}{}
	}
	return hits
}

// checkPin compares the connectivity of a drawn pin with what the record
// asks for. A pin counts as connected to the net when its connection
// closure reaches a segment of that name or any current member of it.
func (s *State) checkPin(pin *schematic.Object, rec Record, members []string, g Connectivity) []string {
	del := rec.Kind == DeleteConnection
	table := FindConnected(g, pin)

	connected := table.HasNet(rec.Net)
	for _, m := range members {
		if connected {
			break
		}
		connected = table.HasPin(m)
	}
	s.cfg.Logger.Debug("connection check", "line", rec.Line, "pin", rec.ID, "net", rec.Net,
		"connected", connected, "reached", len(table))

	if connected != del {
		return nil
	}

	var msgs []string
	if !s.cfg.unnamed(rec.Net) {
		msgs = append(msgs, netAction(del, rec.Net))
	}
	for _, m := range members {
		if m == rec.ID {
			continue
		}
		switch present := table.HasPin(m); {
		case !del && !present:
			msgs = append(msgs, "connect to pin "+m)
		case del && present:
			msgs = append(msgs, "disconnect from pin "+m)
		}
	}
	return msgs
}

func (s *State) execAttrib(hits []Hit, rec Record) []Hit {
	comps := s.comps[rec.ID]
	if len(comps) == 0 {
		return append(hits, Hit{
			Kind:     HitNotFound,
			Location: rec.ID,
			Action:   fmt.Sprintf("change attribute %s to %q (NOT FOUND)", rec.Attrib, rec.Value),
			Line:     rec.Line,
			Record:   rec,
		})
	}

	for _, comp := range comps {
		have, ok := comp.Attrib(rec.Attrib)
		if !ok {
			s.cfg.Logger.Debug("attribute missing, skipped", "line", rec.Line, "refdes", rec.ID, "attrib", rec.Attrib)
			continue
		}
		if have == rec.Value {
			continue
		}
		hits = append(hits, Hit{
			Kind:     HitMismatch,
			Object:   schematic.HandleOf(comp),
			Page:     pageName(comp),
			Location: rec.ID,
			Action:   fmt.Sprintf("change attribute %s from %q to %q", rec.Attrib, have, rec.Value),
			Line:     rec.Line,
			Record:   rec,
			Have:     have,
		})
	}
	return hits
}

func netAction(del bool, net string) string {
	if del {
		return "disconnect from net " + net
	}
	return "connect to net " + net
}

func pageName(o *schematic.Object) string {
	if o.Page == nil {
		return ""
	}
	return o.Page.Name
}
