package schematic

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/kicad/sexpr"
)

// Schematic coordinates are already in millimetres (not nanometres like
// PCB files), so no unit conversion happens here.

// getPosition extracts position and angle from an (at X Y [angle]) node
func getPosition(n *sexpr.Node) (Position, float64, error) {
	if n.Name() != "at" {
		return Position{}, 0, fmt.Errorf("line %d: expected (at X Y [angle]), got (%s)", n.Line, n.Name())
	}
	pos, err := getPositionXY(n)
	if err != nil {
		return Position{}, 0, err
	}

	// Angle is optional
	var angle float64
	if len(n.List) > 3 {
		if a, err := n.Float(3); err == nil {
			angle = a
		}
	}
	return pos, angle, nil
}

// getPositionXY extracts just X,Y from a (keyword X Y ...) node
func getPositionXY(n *sexpr.Node) (Position, error) {
	x, err := n.Float(1)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse X: %w", err)
	}
	y, err := n.Float(2)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse Y: %w", err)
	}
	return Position{X: x, Y: y}, nil
}

// findPosition reads the (at ...) child of n, if any
func findPosition(n *sexpr.Node) (Position, float64, bool) {
	at, ok := n.Find("at")
	if !ok {
		return Position{}, 0, false
	}
	pos, angle, err := getPosition(at)
	if err != nil {
		return Position{}, 0, false
	}
	return pos, angle, true
}

// getProperty reads a (property "Key" "Value" ...) node
func getProperty(n *sexpr.Node) (Property, error) {
	key, err := n.Str(1)
	if err != nil {
		return Property{}, err
	}
	value, err := n.Str(2)
	if err != nil {
		return Property{}, err
	}
	return Property{Key: key, Value: value}, nil
}

// getProperties reads every property child of n, skipping malformed ones
func getProperties(n *sexpr.Node) []Property {
	var props []Property
	for _, pn := range n.FindAll("property") {
		if prop, err := getProperty(pn); err == nil {
			props = append(props, prop)
		}
	}
	return props
}

// childString returns item 1 of the child list named key, e.g. "Device:R"
// for (lib_id "Device:R")
func childString(n *sexpr.Node, key string) (string, bool) {
	child, ok := n.Find(key)
	if !ok {
		return "", false
	}
	s, err := child.Str(1)
	return s, err == nil
}

// childInt returns item 1 of the child list named key as an integer
func childInt(n *sexpr.Node, key string) (int, bool) {
	child, ok := n.Find(key)
	if !ok {
		return 0, false
	}
	f, err := child.Float(1)
	return int(f), err == nil
}
