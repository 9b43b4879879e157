package report

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Explain shows how an attribute value has to change, character by
// character: deleted text as [-x-] and inserted text as {+x+}. With a
// style the markers are coloured as well.
func Explain(have, want string, style *Style) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(have, want, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffpatch.DiffDelete:
			text := "[-" + d.Text + "-]"
			if style != nil {
				text = style.Delete(text)
			}
			b.WriteString(text)
		case diffpatch.DiffInsert:
			text := "{+" + d.Text + "+}"
			if style != nil {
				text = style.Insert(text)
			}
			b.WriteString(text)
		}
	}
	return b.String()
}
