package patch

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/schematic"
)

// Build indexes one schematic object. It may be called with any object;
// only components are indexed. Components without a refdes cannot be
// addressed by a patch and are skipped.
func (s *State) Build(obj *schematic.Object) {
	if obj == nil || obj.Kind != schematic.Complex {
		return
	}
	refdes, ok := obj.Attrib("refdes")
	if !ok {
		return
	}

	s.comps[refdes] = append(s.comps[refdes], obj)

	for _, child := range obj.Children {
		if child.Kind != schematic.Pin {
			continue
		}
		num, ok := child.Attrib("pinnumber")
		if !ok {
			continue
		}
		key := PinKey(refdes, num)
		s.pins[key] = append(s.pins[key], binding{obj: child})
	}

	// net=<netname>:<pinlist> connects pins that are not drawn
	for _, value := range obj.Attribs("net") {
		netname, pinlist, ok := strings.Cut(value, ":")
		if !ok {
			s.cfg.Logger.Debug("ignoring malformed net attribute", "refdes", refdes, "value", value)
			continue
		}
		for _, num := range strings.FieldsFunc(pinlist, isPinListSep) {
			key := PinKey(refdes, num)
			s.pins[key] = append(s.pins[key], binding{obj: obj, net: netname, explicit: true})
		}
	}
}

// BuildAll indexes every object on every page of a model
func (s *State) BuildAll(m *schematic.Model) {
	m.Walk(s.Build)
}

// PinKey returns the "refdes-pinnumber" key used to address a pin
func PinKey(refdes, pinnumber string) string {
	return refdes + "-" + pinnumber
}

func isPinListSep(r rune) bool {
	return r == ',' || r == ';' || r == ' '
}
