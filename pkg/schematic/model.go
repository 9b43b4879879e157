package schematic

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
)

// Page is one schematic sheet. Objects holds top-level objects only;
// pins are reachable through their component's Children.
type Page struct {
	Name    string
	Objects []*Object
}

// Handle is a weak reference to an Object. It stays valid after the object
// is deleted, but then resolves to nil.
type Handle struct {
	ID  int64
	Gen uint64
}

// IsZero reports whether the handle refers to no object at all
func (h Handle) IsZero() bool {
	return h.ID == 0 && h.Gen == 0
}

// Model owns the pages, objects and electrical adjacency of a schematic.
// It is not safe for concurrent use.
type Model struct {
	Pages []*Page

	objects map[int64]*Object
	graph   *simple.UndirectedGraph
	nextID  int64
	gen     uint64

	observers map[int]func(Handle)
	nextObs   int
}

// NewModel creates an empty model
func NewModel() *Model {
	return &Model{
		objects:   make(map[int64]*Object),
		graph:     simple.NewUndirectedGraph(),
		observers: make(map[int]func(Handle)),
	}
}

// AddPage appends a new, empty page
func (m *Model) AddPage(name string) *Page {
	p := &Page{Name: name}
	m.Pages = append(m.Pages, p)
	return p
}

func (m *Model) newObject(kind Kind, page *Page) *Object {
	m.nextID++
	m.gen++
	o := &Object{id: m.nextID, gen: m.gen, Kind: kind, Page: page}
	m.objects[o.id] = o
	m.graph.AddNode(o)
	return o
}

// NewObject creates a top-level object of the given kind on a page
func (m *Model) NewObject(page *Page, kind Kind) *Object {
	o := m.newObject(kind, page)
	page.Objects = append(page.Objects, o)
	return o
}

// NewComponent creates a component on a page with an optional refdes
func (m *Model) NewComponent(page *Page, refdes string) *Object {
	o := m.NewObject(page, Complex)
	if refdes != "" {
		o.SetAttrib("refdes", refdes)
	}
	return o
}

// AddPin creates a pin owned by a component
func (m *Model) AddPin(comp *Object, pinnumber string) *Object {
	pin := m.newObject(Pin, comp.Page)
	pin.Parent = comp
	if pinnumber != "" {
		pin.SetAttrib("pinnumber", pinnumber)
	}
	comp.Children = append(comp.Children, pin)
	return pin
}

// NewNet creates a net segment with an optional netname
func (m *Model) NewNet(page *Page, netname string) *Object {
	o := m.NewObject(page, Net)
	if netname != "" {
		o.SetAttrib("netname", netname)
	}
	return o
}

// Object looks up a live object by ID
func (m *Model) Object(id int64) *Object {
	return m.objects[id]
}

// Len returns the number of live objects, pins included
func (m *Model) Len() int {
	return len(m.objects)
}

// Connect records that a and b are electrically connected
func (m *Model) Connect(a, b *Object) error {
	if a == b {
		return nil
	}
	if m.objects[a.id] != a || m.objects[b.id] != b {
		return fmt.Errorf("schematic: connect %v and %v: object not in model", a, b)
	}
	if m.graph.HasEdgeBetween(a.id, b.id) {
		return nil
	}
	m.graph.SetEdge(m.graph.NewEdge(a, b))
	return nil
}

// Connected returns the objects directly connected to o
func (m *Model) Connected(o *Object) []*Object {
	if m.objects[o.id] != o {
		return nil
	}
	nodes := m.graph.From(o.id)
	out := make([]*Object, 0, nodes.Len())
	for nodes.Next() {
		if other, ok := nodes.Node().(*Object); ok {
			out = append(out, other)
		}
	}
	return out
}

// Handle returns a weak reference to o
func (m *Model) Handle(o *Object) Handle {
	return HandleOf(o)
}

// HandleOf returns a weak reference to o without needing its model.
// A nil object gives the zero Handle.
func HandleOf(o *Object) Handle {
	if o == nil {
		return Handle{}
	}
	return Handle{ID: o.id, Gen: o.gen}
}

// Resolve returns the object a handle refers to, or nil if it was deleted
func (m *Model) Resolve(h Handle) *Object {
	o := m.objects[h.ID]
	if o == nil || o.gen != h.Gen {
		return nil
	}
	return o
}

// OnDestroy registers fn to be called with the handle of every object
// deleted from the model. The returned function unregisters it.
func (m *Model) OnDestroy(fn func(Handle)) (cancel func()) {
	id := m.nextObs
	m.nextObs++
	m.observers[id] = fn
	return func() { delete(m.observers, id) }
}

// Delete removes o, and its children, from the model
func (m *Model) Delete(o *Object) {
	if m.objects[o.id] != o {
		return
	}
	children := append([]*Object(nil), o.Children...)
	for _, child := range children {
		m.Delete(child)
	}

	if o.Parent != nil {
		o.Parent.Children = removeObject(o.Parent.Children, o)
	} else if o.Page != nil {
		o.Page.Objects = removeObject(o.Page.Objects, o)
	}

	h := m.Handle(o)
	delete(m.objects, o.id)
	m.graph.RemoveNode(o.id)
	o.deleted = true

	for _, fn := range m.observers {
		fn(h)
	}
}

// Walk calls fn for every top-level object of every page, in page order
func (m *Model) Walk(fn func(*Object)) {
	for _, p := range m.Pages {
		for _, o := range p.Objects {
			fn(o)
		}
	}
}

func removeObject(list []*Object, o *Object) []*Object {
	for i, item := range list {
		if item == o {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
