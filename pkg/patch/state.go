// Package patch checks a schematic against a back-annotation patch file.
//
// A patch file, typically written by a PCB layout tool, lists the
// connection and attribute changes made downstream:
//
//	# comment
//	net_info GND U1-4 C1-2
//	add_conn R1-1 VCC
//	del_conn R2-2 GND
//	change_attrib R1 value 10k
//
// The engine parses the file, indexes the components and pins of a loaded
// schematic, and replays the records against the schematic's connectivity,
// reporting every change that has not been made yet as a Hit.
//
// # Usage
//
//	st, err := patch.Open("board.bap", patch.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer st.Destroy()
//
//	st.BuildAll(model)
//	hits := st.Execute(model)
//
// Connection records are "pretend-applied" while executing: after each
// add_conn/del_conn the engine updates its own net membership so later
// records observe the effect of earlier ones. Records are therefore not
// commutative, and Execute consumes that state; call Rewind before
// executing again.
package patch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/schematic"
)

// ErrOpen is wrapped by errors returned when the patch file cannot be read
var ErrOpen = errors.New("patch: cannot open patch file")

// binding ties a pin-key to a schematic object. Pins drawn on the
// schematic have no explicit net; pins named by a net= attribute are bound
// to their component and carry the net name.
type binding struct {
	obj      *schematic.Object
	net      string
	explicit bool
}

// State holds a parsed patch file and the indices built from a schematic.
// It is owned by one caller for the whole Open/Build/Execute/Destroy
// sequence and does no locking.
type State struct {
	Name string

	cfg     *Config
	records []Record
	pins    map[string][]binding
	comps   map[string][]*schematic.Object
	nets    map[string]map[string]struct{}
}

// Open reads and parses a patch file
func Open(filename string, cfg *Config) (*State, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	return New(f, filename, cfg)
}

// New parses a patch file from r. name is only used in messages.
func New(r io.Reader, name string, cfg *Config) (*State, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	records, err := Parse(r, name)
	if err != nil {
		var serr *SyntaxError
		if errors.As(err, &serr) {
			cfg.Logger.Error("patch syntax error", "file", name, "line", serr.Line, "detail", serr.Msg)
		} else {
			err = fmt.Errorf("%w: %w", ErrOpen, err)
			cfg.Logger.Error("patch read failed", "file", name, "err", err)
		}
		return nil, err
	}

	st := &State{
		Name:    name,
		cfg:     cfg,
		records: records,
		pins:    make(map[string][]binding),
		comps:   make(map[string][]*schematic.Object),
	}
	st.Rewind()

	cfg.Logger.Debug("patch loaded", "file", name, "records", len(records), "nets", len(st.nets))
	return st, nil
}

// Records returns the parsed records in file order
func (s *State) Records() []Record {
	return s.records
}

// Rewind resets net membership to what the net_info records declare,
// undoing the pretend updates of a previous Execute.
func (s *State) Rewind() {
	s.nets = make(map[string]map[string]struct{})
	for _, rec := range s.records {
		if rec.Kind != NetInfo {
			continue
		}
		set := s.memberSet(rec.ID)
		for _, m := range rec.Members {
			set[m] = struct{}{}
		}
	}
}

// Members returns the current members of a net, sorted
func (s *State) Members(net string) []string {
	set := s.nets[net]
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Destroy drops the records and every index. Objects referenced by the
// indices are not owned by the state and are left alone.
func (s *State) Destroy() {
	s.records = nil
	s.pins = nil
	s.comps = nil
	s.nets = nil
}

func (s *State) memberSet(net string) map[string]struct{} {
	set, ok := s.nets[net]
	if !ok {
		set = make(map[string]struct{})
		s.nets[net] = set
	}
	return set
}
