package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/kicad/schematic"
	sch "github.com/OpenTraceLab/OpenTraceBAP/pkg/schematic"
)

// loadSchematics loads every file as one page of a single model
func loadSchematics(files []string) (*sch.Model, error) {
	m := sch.NewModel()
	for _, f := range files {
		page, err := schematic.LoadFile(f, m)
		if err != nil {
			return nil, fmt.Errorf("error loading schematic: %w", err)
		}
		logger.Debug("schematic loaded", "file", f, "objects", len(page.Objects))
	}
	return m, nil
}
