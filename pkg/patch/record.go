package patch

import (
	"fmt"
	"strings"
)

// Kind identifies the operation of a patch record
type Kind int

const (
	AddConnection Kind = iota
	DeleteConnection
	ChangeAttribute
	NetInfo
)

// Opcodes as written in a patch file
const (
	OpAddConn      = "add_conn"
	OpDelConn      = "del_conn"
	OpChangeAttrib = "change_attrib"
	OpNetInfo      = "net_info"
)

func (k Kind) String() string {
	switch k {
	case AddConnection:
		return OpAddConn
	case DeleteConnection:
		return OpDelConn
	case ChangeAttribute:
		return OpChangeAttrib
	case NetInfo:
		return OpNetInfo
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Record is one line of a patch file.
//
//	add_conn      ID=pin-key  Net
//	del_conn      ID=pin-key  Net
//	change_attrib ID=refdes   Attrib Value
//	net_info      ID=net name Members...
type Record struct {
	Kind    Kind
	Line    int
	ID      string
	Net     string
	Attrib  string
	Value   string
	Members []string
}

// String renders the record in patch file syntax
func (r Record) String() string {
	switch r.Kind {
	case AddConnection, DeleteConnection:
		return fmt.Sprintf("%s %s %s", r.Kind, r.ID, r.Net)
	case ChangeAttribute:
		return fmt.Sprintf("%s %s %s %s", r.Kind, r.ID, r.Attrib, r.Value)
	case NetInfo:
		if len(r.Members) == 0 {
			return fmt.Sprintf("%s %s", r.Kind, r.ID)
		}
		return fmt.Sprintf("%s %s %s", r.Kind, r.ID, strings.Join(r.Members, " "))
	default:
		return r.Kind.String()
	}
}
