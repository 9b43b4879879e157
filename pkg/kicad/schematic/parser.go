package schematic

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/kicad/sexpr"
)

// Minimum supported KiCad version for schematics (6.0 = 20211014)
const MinSupportedVersion = 20211014

// ParseFile reads and parses a KiCad schematic file
func ParseFile(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads and parses a KiCad schematic from an io.Reader
func Parse(r io.Reader) (*Document, error) {
	nodes, err := sexpr.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	// The root should be a (kicad_sch ...) expression
	root := nodes[0]
	if name := root.Name(); name != "kicad_sch" {
		return nil, fmt.Errorf("not a KiCad schematic file: expected 'kicad_sch', got '%s'", name)
	}

	doc := &Document{}
	if err := parseHeader(root, doc); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	if libSymbols, found := root.Find("lib_symbols"); found {
		for _, sn := range libSymbols.FindAll("symbol") {
			doc.LibSymbols = append(doc.LibSymbols, parseLibSymbol(sn))
		}
	}
	for _, sn := range root.FindAll("symbol") {
		doc.Symbols = append(doc.Symbols, parseSymbol(sn))
	}
	doc.Wires = parseWires(root)
	doc.Labels = parseLabels(root)
	for _, jn := range root.FindAll("junction") {
		if pos, _, ok := findPosition(jn); ok {
			doc.Junctions = append(doc.Junctions, pos)
		}
	}

	return doc, nil
}

// parseHeader extracts version and generator information
func parseHeader(root *sexpr.Node, doc *Document) error {
	ver, ok := childInt(root, "version")
	if !ok {
		return fmt.Errorf("missing required 'version' field")
	}
	if ver < MinSupportedVersion {
		return fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}
	doc.Version = ver
	doc.Generator, _ = childString(root, "generator")
	return nil
}

// parseLibSymbol parses a single library symbol definition
func parseLibSymbol(node *sexpr.Node) LibSymbol {
	sym := LibSymbol{}
	sym.Name, _ = node.Str(1)
	_, sym.Power = node.Find("power")
	sym.Properties = getProperties(node)

	// Nested symbol units hold the pins
	for _, un := range node.FindAll("symbol") {
		sym.Units = append(sym.Units, parseSymbolUnit(un))
	}
	return sym
}

// parseSymbolUnit parses a nested unit named "<symbol>_<unit>_<style>"
func parseSymbolUnit(node *sexpr.Node) SymbolUnit {
	unit := SymbolUnit{}
	unit.Name, _ = node.Str(1)
	unit.Unit, unit.Style = splitUnitName(unit.Name)

	for _, pn := range node.FindAll("pin") {
		unit.Pins = append(unit.Pins, parsePin(pn))
	}
	return unit
}

func splitUnitName(name string) (unit, style int) {
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		return 0, 0
	}
	style, _ = strconv.Atoi(name[i+1:])
	rest := name[:i]
	j := strings.LastIndexByte(rest, '_')
	if j < 0 {
		return 0, style
	}
	unit, _ = strconv.Atoi(rest[j+1:])
	return unit, style
}

// parsePin parses a pin definition
func parsePin(node *sexpr.Node) Pin {
	pin := Pin{}
	pin.Type, _ = node.Str(1)
	pin.Position, _, _ = findPosition(node)
	pin.Name, _ = childString(node, "name")
	pin.Number, _ = childString(node, "number")

	// KiCad 6/7 write a bare "hide", KiCad 8 writes (hide yes)
	pin.Hide = node.HasAtom("hide")
	if v, ok := childString(node, "hide"); ok {
		pin.Hide = v == "yes"
	}
	return pin
}

// parseSymbol parses a single symbol instance
func parseSymbol(node *sexpr.Node) Symbol {
	sym := Symbol{Unit: 1, Style: 1}
	sym.LibID, _ = childString(node, "lib_id")
	sym.Position, sym.Angle, _ = findPosition(node)
	sym.Mirror, _ = childString(node, "mirror")
	if unit, ok := childInt(node, "unit"); ok {
		sym.Unit = unit
	}
	if style, ok := childInt(node, "convert"); ok {
		sym.Style = style
	}
	if style, ok := childInt(node, "body_style"); ok {
		sym.Style = style
	}
	sym.Properties = getProperties(node)
	return sym
}

// parseWires parses wire connections
func parseWires(root *sexpr.Node) []Wire {
	wireNodes := root.FindAll("wire")
	wires := make([]Wire, 0, len(wireNodes))

	for _, wn := range wireNodes {
		wire := Wire{}
		if pts, found := wn.Find("pts"); found {
			for _, xy := range pts.FindAll("xy") {
				if pos, err := getPositionXY(xy); err == nil {
					wire.Points = append(wire.Points, pos)
				}
			}
		}
		if len(wire.Points) >= 2 {
			wires = append(wires, wire)
		}
	}
	return wires
}

var labelKinds = []struct {
	key  string
	kind LabelKind
}{
	{"label", LocalLabel},
	{"global_label", GlobalLabel},
	{"hierarchical_label", HierLabel},
}

// parseLabels parses local, global and hierarchical labels
func parseLabels(root *sexpr.Node) []Label {
	var labels []Label
	for _, lk := range labelKinds {
		for _, ln := range root.FindAll(lk.key) {
			text, err := ln.Str(1)
			if err != nil || text == "" {
				continue
			}
			pos, _, ok := findPosition(ln)
			if !ok {
				continue
			}
			labels = append(labels, Label{Kind: lk.kind, Text: text, Position: pos})
		}
	}
	return labels
}
