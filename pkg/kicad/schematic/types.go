// Package schematic reads KiCad schematic files (.kicad_sch) and loads
// their electrical content into a schematic object model.
package schematic

// Position is a point in schematic millimetres, Y increasing downward
type Position struct {
	X, Y float64
}

// Property is a name/value pair on a symbol
type Property struct {
	Key   string
	Value string
}

// Document is the electrical subset of a KiCad schematic file.
// Graphics, title block and sheet metadata are not kept.
type Document struct {
	Version    int         // File format version
	Generator  string      // Generator info (e.g., "eeschema")
	LibSymbols []LibSymbol // Embedded library symbols
	Symbols    []Symbol    // Symbol instances on the schematic
	Wires      []Wire      // Wire connections
	Labels     []Label     // Local, global and hierarchical labels
	Junctions  []Position  // Wire junctions
}

// LibSymbol represents an embedded library symbol definition
type LibSymbol struct {
	Name       string     // Symbol name (e.g., "Device:R")
	Power      bool       // Marked (power): instances name a net
	Properties []Property // Symbol properties
	Units      []SymbolUnit
}

// SymbolUnit is one nested (symbol "Name_U_S" ...) block.
// Unit 0 holds pins common to every unit.
type SymbolUnit struct {
	Name  string
	Unit  int
	Style int
	Pins  []Pin
}

// Pin represents a library symbol pin. Position is the connection point,
// in symbol coordinates with Y increasing upward.
type Pin struct {
	Type     string // Electrical type (input, power_in, passive, ...)
	Position Position
	Name     string
	Number   string
	Hide     bool
}

// Symbol represents a symbol instance placed on the schematic
type Symbol struct {
	LibID      string     // Library identifier (e.g., "Device:R")
	Position   Position   // Position on schematic
	Angle      float64    // Rotation angle in degrees
	Mirror     string     // Mirror mode (x, y, or empty)
	Unit       int        // Unit number (for multi-unit symbols)
	Style      int        // Body style (De Morgan), 1 unless converted
	Properties []Property // Instance properties (Reference, Value, etc.)
}

// Property returns the value of the named instance property
func (s *Symbol) Property(key string) (string, bool) {
	for _, p := range s.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Wire represents a wire connection
type Wire struct {
	Points []Position // Wire points (at least 2)
}

// LabelKind distinguishes local, global and hierarchical labels
type LabelKind int

const (
	LocalLabel LabelKind = iota
	GlobalLabel
	HierLabel
)

// Label names the wire at its connection point
type Label struct {
	Kind     LabelKind
	Text     string
	Position Position
}

// LibSymbol returns the embedded library symbol with the given name
func (d *Document) LibSymbol(name string) *LibSymbol {
	for i := range d.LibSymbols {
		if d.LibSymbols[i].Name == name {
			return &d.LibSymbols[i]
		}
	}
	return nil
}

// GetAllReferences returns the reference designators of every symbol
// instance, power and flag symbols included.
func (d *Document) GetAllReferences() []string {
	refs := make([]string, 0, len(d.Symbols))
	for i := range d.Symbols {
		if ref, ok := d.Symbols[i].Property("Reference"); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}
