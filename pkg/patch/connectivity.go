package patch

import (
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/schematic"
)

// Connectivity supplies the objects electrically connected to an object.
// *schematic.Model implements it.
type Connectivity interface {
	Connected(o *schematic.Object) []*schematic.Object
}

// unnamedKey collects net segments without a netname. It starts with
// neither 'N' nor 'P', so no lookup can hit it.
const unnamedKey = "-"

// Table maps a classification key to an object found by FindConnected:
// "N"+netname for named nets and "P"+refdes-pinnumber for pins.
type Table map[string]*schematic.Object

// HasNet reports whether a net segment with this name was reached
func (t Table) HasNet(name string) bool {
	_, ok := t["N"+name]
	return ok
}

// HasPin reports whether the pin with this pin-key was reached
func (t Table) HasPin(key string) bool {
	_, ok := t["P"+key]
	return ok
}

// Pins returns the pin-keys in the table, sorted
func (t Table) Pins() []string {
	var keys []string
	for k := range t {
		if key, ok := strings.CutPrefix(k, "P"); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// FindConnected returns everything transitively connected to start,
// start included. Each object is visited once, so cycles terminate.
func FindConnected(g Connectivity, start *schematic.Object) Table {
	table := make(Table)
	found := make(map[int64]struct{})
	open := []*schematic.Object{start}

	for len(open) > 0 {
		obj := open[len(open)-1]
		open = open[:len(open)-1]

		if _, seen := found[obj.ID()]; seen {
			continue
		}
		found[obj.ID()] = struct{}{}

		if key, ok := classify(obj); ok {
			if _, dup := table[key]; !dup {
				table[key] = obj
			}
		}
		open = append(open, g.Connected(obj)...)
	}
	return table
}

func classify(obj *schematic.Object) (string, bool) {
	switch obj.Kind {
	case schematic.Net:
		if name, ok := obj.Attrib("netname"); ok {
			return "N" + name, true
		}
		return unnamedKey, true
	case schematic.Pin:
		if obj.Parent == nil {
			return "", false
		}
		refdes, ok := obj.Parent.Attrib("refdes")
		if !ok {
			return "", false
		}
		num, ok := obj.Attrib("pinnumber")
		if !ok {
			return "", false
		}
		return "P" + PinKey(refdes, num), true
	}
	return "", false
}
