package patch

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// patchLexer splits a patch file into words and line ends.
// '#' starts a comment anywhere, including straight after a word.
var patchLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[^\S\n]+`},
	{Name: "Word", Pattern: `[^\s#]+`},
})

type patchFile struct {
	Lines []*patchLine `( @@ | EOL )*`
}

type patchLine struct {
	Pos  lexer.Position
	Op   string   `@Word`
	Args []string `@Word* EOL`
}

var patchParser = participle.MustBuild[patchFile](
	participle.Lexer(patchLexer),
	participle.Elide("Comment", "Whitespace"),
)

// SyntaxError reports a patch file that could not be parsed. The whole
// file is rejected; there is no per-line recovery.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("patch: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("patch: %s:%d: %s", e.File, e.Line, e.Msg)
}

// Parse reads a patch file. It returns every record in file order, or no
// records and a *SyntaxError.
func Parse(r io.Reader, name string) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("patch: read %s: %w", name, err)
	}
	return ParseString(string(data), name)
}

// ParseString parses patch text held in memory
func ParseString(text, name string) ([]Record, error) {
	if len(text) > 0 && text[len(text)-1] != '\n' {
		text += "\n"
	}

	ast, err := patchParser.ParseString(name, text)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &SyntaxError{File: name, Line: perr.Position().Line, Msg: perr.Message()}
		}
		return nil, &SyntaxError{File: name, Msg: err.Error()}
	}

	records := make([]Record, 0, len(ast.Lines))
	for _, l := range ast.Lines {
		rec, err := l.record()
		if err != nil {
			return nil, &SyntaxError{File: name, Line: l.Pos.Line, Msg: err.Error()}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (l *patchLine) record() (Record, error) {
	rec := Record{Line: l.Pos.Line}
	switch l.Op {
	case OpAddConn, OpDelConn:
		if err := l.arity(2); err != nil {
			return rec, err
		}
		rec.Kind = AddConnection
		if l.Op == OpDelConn {
			rec.Kind = DeleteConnection
		}
		rec.ID, rec.Net = l.Args[0], l.Args[1]
	case OpChangeAttrib:
		if err := l.arity(3); err != nil {
			return rec, err
		}
		rec.Kind = ChangeAttribute
		rec.ID, rec.Attrib, rec.Value = l.Args[0], l.Args[1], l.Args[2]
	case OpNetInfo:
		if len(l.Args) < 1 {
			return rec, fmt.Errorf("%s needs a net name", l.Op)
		}
		rec.Kind = NetInfo
		rec.ID = l.Args[0]
		rec.Members = append([]string(nil), l.Args[1:]...)
	default:
		return rec, fmt.Errorf("unknown opcode %q", l.Op)
	}
	return rec, nil
}

func (l *patchLine) arity(n int) error {
	if len(l.Args) < n {
		return fmt.Errorf("%s needs %d arguments, got %d", l.Op, n, len(l.Args))
	}
	if len(l.Args) > n {
		return fmt.Errorf("%s takes %d arguments, got %d", l.Op, n, len(l.Args))
	}
	return nil
}
