package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/OpenTraceLab/OpenTraceBAP/internal/report"
	"github.com/OpenTraceLab/OpenTraceBAP/pkg/patch"
)

const defaultConfigFile = ".bap.yaml"

// fileConfig is the optional YAML configuration. Command line flags
// override it.
//
//	unnamed_net_prefix: unnamed_net
//	format: text
//	color: auto
type fileConfig struct {
	UnnamedNetPrefix *string `yaml:"unnamed_net_prefix"`
	Format           string  `yaml:"format"`
	Color            string  `yaml:"color"`

	path string
}

// loadConfig reads path. A missing file is only an error when the path
// was given explicitly.
func loadConfig(path string, explicit bool) (*fileConfig, error) {
	c := &fileConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return c, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if c.Format != "" && !slices.Contains(report.Formats, c.Format) {
		return nil, fmt.Errorf("config: %s: unknown format %q", path, c.Format)
	}
	c.path = path
	return c, nil
}

func (c *fileConfig) unnamedPrefix() string {
	if c.UnnamedNetPrefix == nil {
		return patch.DefaultUnnamedNetPrefix
	}
	return *c.UnnamedNetPrefix
}

// patchConfig builds the engine configuration
func (c *fileConfig) patchConfig() *patch.Config {
	pc := patch.DefaultConfig()
	pc.UnnamedNetPrefix = c.unnamedPrefix()
	pc.Logger = logger
	return pc
}
