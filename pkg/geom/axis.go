package geom

import (
	"github.com/neunenak/typst/pkg/errors"
)

// Axis is a layout axis in absolute screen terms.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "invalid"
}

// ParseAxis parses "horizontal" or "vertical".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "unknown axis: %q", s)
}

func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Axis) UnmarshalText(b []byte) error {
	v, err := ParseAxis(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// GenAxis is a layout axis relative to the writing system.
type GenAxis uint8

const (
	// Primary is the axis text flows along.
	Primary GenAxis = iota
	// Secondary is the axis successive lines stack along.
	Secondary
)

// Other returns the other generic axis.
func (g GenAxis) Other() GenAxis {
	if g == Primary {
		return Secondary
	}
	return Primary
}

func (g GenAxis) String() string {
	switch g {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	}
	return "invalid"
}

func (g GenAxis) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *GenAxis) UnmarshalText(b []byte) error {
	switch string(b) {
	case "primary":
		*g = Primary
	case "secondary":
		*g = Secondary
	default:
		return errors.New(errors.ErrCodeInvalidArgument, "unknown generic axis: %q", b)
	}
	return nil
}
