package patch

import (
	"io"
	"log/slog"
	"strings"
)

// DefaultUnnamedNetPrefix marks auto-generated net names. Connection
// mismatches against such nets are not reported as net messages.
const DefaultUnnamedNetPrefix = "unnamed_net"

// Config controls parsing diagnostics and report filtering.
type Config struct {
	// Nets whose name starts with this prefix get no "connect to net"
	// message. Empty disables the suppression.
	UnnamedNetPrefix string

	// Logger receives parse failures and per-record decisions (Debug).
	// Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the stock unnamed-net prefix
func DefaultConfig() *Config {
	return &Config{
		UnnamedNetPrefix: DefaultUnnamedNetPrefix,
	}
}

// Validate fills in unset fields
func (c *Config) Validate() error {
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return nil
}

func (c *Config) unnamed(net string) bool {
	return c.UnnamedNetPrefix != "" && strings.HasPrefix(net, c.UnnamedNetPrefix)
}
