package patch

import (
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/schematic"
)

// Netlist describes the named nets of a model as net_info records, one
// per net name, sorted by name. Members are the pins reached from any
// segment of that name plus the pins named by net= attributes.
func Netlist(m *schematic.Model) []Record {
	nets := make(map[string]map[string]struct{})
	set := func(name string) map[string]struct{} {
		s, ok := nets[name]
		if !ok {
			s = make(map[string]struct{})
			nets[name] = s
		}
		return s
	}

	m.Walk(func(o *schematic.Object) {
		switch o.Kind {
		case schematic.Net:
			name, ok := o.Attrib("netname")
			if !ok {
				return
			}
			members := set(name)
			for _, key := range FindConnected(m, o).Pins() {
				members[key] = struct{}{}
			}
		case schematic.Complex:
			refdes, ok := o.Attrib("refdes")
			if !ok {
				return
			}
			for _, value := range o.Attribs("net") {
				name, pinlist, ok := strings.Cut(value, ":")
				if !ok {
					continue
				}
				members := set(name)
				for _, num := range strings.FieldsFunc(pinlist, isPinListSep) {
					members[PinKey(refdes, num)] = struct{}{}
				}
			}
		}
	})

	names := make([]string, 0, len(nets))
	for name := range nets {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]Record, 0, len(names))
	for _, name := range names {
		rec := Record{Kind: NetInfo, ID: name}
		for key := range nets[name] {
			rec.Members = append(rec.Members, key)
		}
		sort.Strings(rec.Members)
		records = append(records, rec)
	}
	return records
}
