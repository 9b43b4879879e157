package report

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter selects rows with a boolean expression over the row fields kind,
// page, line, location, action and stale, e.g.
//
//	kind == "mismatch" && location startsWith "U"
type Filter struct {
	src string
	prg *vm.Program
}

// CompileFilter compiles a filter expression. An empty expression keeps
// every row.
func CompileFilter(src string) (*Filter, error) {
	f := &Filter{src: src}
	if src == "" {
		return f, nil
	}
	prg, err := expr.Compile(src, expr.Env(Row{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("report: filter %q: %w", src, err)
	}
	f.prg = prg
	return f, nil
}

// Match evaluates the filter for one row
func (f *Filter) Match(r Row) (bool, error) {
	if f.prg == nil {
		return true, nil
	}
	out, err := expr.Run(f.prg, r)
	if err != nil {
		return false, fmt.Errorf("report: filter %q: %w", f.src, err)
	}
	return out.(bool), nil
}

// Apply returns the rows the filter keeps, in order
func (f *Filter) Apply(rows []Row) ([]Row, error) {
	if f.prg == nil {
		return rows, nil
	}
	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		ok, err := f.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
