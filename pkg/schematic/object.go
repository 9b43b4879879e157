// Package schematic provides a toolkit-independent schematic object model:
// pages of components, pins, nets and text, their attributes, and the
// electrical adjacency between them.
package schematic

import "fmt"

// Kind identifies what an Object represents on the schematic
type Kind int

const (
	Complex Kind = iota // Component instance (symbol)
	Pin                 // Pin of a component
	Net                 // Net segment (wire)
	Text                // Free text or floating attribute
	Graphic             // Line, box, arc and other drawing primitives
)

func (k Kind) String() string {
	switch k {
	case Complex:
		return "complex"
	case Pin:
		return "pin"
	case Net:
		return "net"
	case Text:
		return "text"
	case Graphic:
		return "graphic"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Attrib is a name=value attribute attached to or inherited by an object
type Attrib struct {
	Name  string
	Value string
}

// Object is a single schematic object. Objects are created through a Model
// and are identified by their ID, never by their contents.
type Object struct {
	id  int64
	gen uint64

	Kind     Kind
	Page     *Page
	Parent   *Object   // Owning component for pins, nil for top-level objects
	Children []*Object // Pins and other sub-objects of a component

	attached  []Attrib // Attributes attached to this instance
	inherited []Attrib // Attributes inherited from the symbol definition

	deleted bool
}

// ID returns the object's identity. It also makes Object a gonum graph.Node.
func (o *Object) ID() int64 {
	return o.id
}

// Deleted reports whether the object has been removed from its model
func (o *Object) Deleted() bool {
	return o.deleted
}

// Attrib returns the first value of the named attribute.
// Attached attributes take precedence over inherited ones.
func (o *Object) Attrib(name string) (string, bool) {
	for _, a := range o.attached {
		if a.Name == name {
			return a.Value, true
		}
	}
	for _, a := range o.inherited {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attribs returns every value of the named attribute, attached first
func (o *Object) Attribs(name string) []string {
	var values []string
	for _, a := range o.attached {
		if a.Name == name {
			values = append(values, a.Value)
		}
	}
	for _, a := range o.inherited {
		if a.Name == name {
			values = append(values, a.Value)
		}
	}
	return values
}

// SetAttrib replaces the first attached attribute with the given name,
// or attaches a new one.
func (o *Object) SetAttrib(name, value string) {
	for i := range o.attached {
		if o.attached[i].Name == name {
			o.attached[i].Value = value
			return
		}
	}
	o.attached = append(o.attached, Attrib{Name: name, Value: value})
}

// AddAttrib attaches another attribute, keeping existing ones with the same name
func (o *Object) AddAttrib(name, value string) {
	o.attached = append(o.attached, Attrib{Name: name, Value: value})
}

// Inherit records an attribute that comes from the symbol definition
func (o *Object) Inherit(name, value string) {
	o.inherited = append(o.inherited, Attrib{Name: name, Value: value})
}

// AttachedAttribs returns a copy of the attributes attached to this object
func (o *Object) AttachedAttribs() []Attrib {
	out := make([]Attrib, len(o.attached))
	copy(out, o.attached)
	return out
}

func (o *Object) String() string {
	switch o.Kind {
	case Complex:
		if ref, ok := o.Attrib("refdes"); ok {
			return ref
		}
	case Pin:
		num, _ := o.Attrib("pinnumber")
		if o.Parent != nil {
			if ref, ok := o.Parent.Attrib("refdes"); ok {
				return ref + "-" + num
			}
		}
		return "pin " + num
	case Net:
		if name, ok := o.Attrib("netname"); ok {
			return "net " + name
		}
	}
	return fmt.Sprintf("%s#%d", o.Kind, o.id)
}
