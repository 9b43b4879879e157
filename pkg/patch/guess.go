package patch

import (
	"os"
	"path/filepath"
	"strings"
)

// PatchExt is the extension of back-annotation patch files
const PatchExt = ".bap"

// GuessFilename proposes a patch file for a schematic: the schematic name
// with its extension replaced by .bap, then the full name with .bap
// appended. The first existing candidate wins; when none exists the first
// candidate is returned with ok == false.
func GuessFilename(schematicPath string) (name string, ok bool) {
	candidates := []string{
		strings.TrimSuffix(schematicPath, filepath.Ext(schematicPath)) + PatchExt,
		schematicPath + PatchExt,
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return candidates[0], false
}
