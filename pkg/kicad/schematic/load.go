package schematic

import (
	"fmt"
	"io"
	"os"
	"strings"

	sch "github.com/OpenTraceLab/OpenTraceBAP/pkg/schematic"
)

// attribNames maps KiCad field names to the attribute names the rest of
// the toolchain looks up. Other fields keep their KiCad name.
var attribNames = map[string]string{
	"Reference": "refdes",
	"Value":     "value",
	"Footprint": "footprint",
}

func attribName(key string) string {
	if name, ok := attribNames[key]; ok {
		return name
	}
	return key
}

// LoadFile parses a KiCad schematic file and adds it to m as a new page
// named after the file.
func LoadFile(path string, m *sch.Model) (*sch.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Load(f, path, m)
}

// Load parses a KiCad schematic from r and adds it to m as a new page.
// Nothing is added to m when parsing fails.
func Load(r io.Reader, name string, m *sch.Model) (*sch.Page, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return LoadDocument(doc, name, m), nil
}

// terminal is an object with a connection point: a placed pin, a power
// symbol or a label that sits on no wire.
type terminal struct {
	obj *sch.Object
	at  Position
}

// LoadDocument adds the electrical content of doc to m as a new page.
//
// Symbol instances become components with one pin per library pin of the
// common unit and the placed unit. Power symbols and labels become named
// net segments. Each group of joined wires becomes one net segment, named
// by the first label on it.
func LoadDocument(doc *Document, name string, m *sch.Model) *sch.Page {
	page := m.AddPage(name)
	var terms []terminal

	for i := range doc.Symbols {
		terms = append(terms, loadSymbol(m, page, doc, &doc.Symbols[i])...)
	}

	// One net segment per wire group
	groups := groupWires(doc.Wires, doc.Junctions)
	nets := make(map[int]*sch.Object)
	for i := range doc.Wires {
		root := groups.find(i)
		if _, ok := nets[root]; !ok {
			nets[root] = m.NewNet(page, "")
		}
	}
	wireNet := func(p Position) *sch.Object {
		for i := range doc.Wires {
			if doc.Wires[i].touches(p) {
				return nets[groups.find(i)]
			}
		}
		return nil
	}

	for _, l := range doc.Labels {
		n := wireNet(l.Position)
		switch {
		case n == nil:
			terms = append(terms, terminal{obj: m.NewNet(page, l.Text), at: l.Position})
		case !hasAttrib(n, "netname"):
			n.SetAttrib("netname", l.Text)
		default:
			// Extra labels alias the net through their own named segment
			alias := m.NewNet(page, l.Text)
			m.Connect(alias, n)
		}
	}

	// Terminals join every wire group they touch, and each other when
	// placed on the same point.
	byPoint := make(map[gridKey][]*sch.Object)
	for _, t := range terms {
		for i := range doc.Wires {
			if doc.Wires[i].touches(t.at) {
				m.Connect(t.obj, nets[groups.find(i)])
			}
		}
		k := keyOf(t.at)
		for _, other := range byPoint[k] {
			m.Connect(t.obj, other)
		}
		byPoint[k] = append(byPoint[k], t.obj)
	}

	return page
}

// loadSymbol adds one symbol instance and returns its connection points
func loadSymbol(m *sch.Model, page *sch.Page, doc *Document, sym *Symbol) []terminal {
	lib := doc.LibSymbol(sym.LibID)
	ref, _ := sym.Property("Reference")

	if strings.HasPrefix(ref, "#") {
		// Power ports name a net at their power input; flags and other
		// virtual symbols carry nothing electrical.
		if lib == nil || !lib.Power {
			return nil
		}
		value, _ := sym.Property("Value")
		var terms []terminal
		for _, pin := range unitPins(lib, sym) {
			if pin.Type != "power_in" {
				continue
			}
			terms = append(terms, terminal{obj: m.NewNet(page, value), at: sym.Place(pin.Position)})
		}
		return terms
	}

	comp := m.NewComponent(page, ref)
	for _, p := range sym.Properties {
		if p.Key == "Reference" || p.Value == "" {
			continue
		}
		comp.SetAttrib(attribName(p.Key), p.Value)
	}
	if lib == nil {
		return nil
	}
	for _, p := range lib.Properties {
		if p.Key == "Reference" || p.Value == "" || strings.HasPrefix(p.Key, "ki_") {
			continue
		}
		comp.Inherit(attribName(p.Key), p.Value)
	}

	var terms []terminal
	for _, lp := range unitPins(lib, sym) {
		// Hidden power inputs connect by name, not by wire
		if lp.Hide && lp.Type == "power_in" && lp.Name != "" && lp.Number != "" {
			comp.AddAttrib("net", lp.Name+":"+lp.Number)
			continue
		}
		pin := m.AddPin(comp, lp.Number)
		if lp.Name != "" && lp.Name != "~" {
			pin.SetAttrib("pinlabel", lp.Name)
		}
		pin.SetAttrib("pintype", lp.Type)
		terms = append(terms, terminal{obj: pin, at: sym.Place(lp.Position)})
	}
	return terms
}

// unitPins returns the library pins drawn for this instance: those of the
// common unit and of the placed unit, in the placed body style.
func unitPins(lib *LibSymbol, sym *Symbol) []Pin {
	var pins []Pin
	for _, u := range lib.Units {
		if u.Unit != 0 && u.Unit != sym.Unit {
			continue
		}
		if u.Style != 0 && u.Style != sym.Style {
			continue
		}
		pins = append(pins, u.Pins...)
	}
	return pins
}

func hasAttrib(o *sch.Object, name string) bool {
	_, ok := o.Attrib(name)
	return ok
}
