package geom

import (
	"fmt"

	"github.com/neunenak/typst/pkg/errors"
)

// Dir is the direction content flows in along an axis.
type Dir uint8

const (
	LTR Dir = iota // left to right
	RTL            // right to left
	TTB            // top to bottom
	BTT            // bottom to top
)

// Axis returns the axis the direction runs along.
func (d Dir) Axis() Axis {
	switch d {
	case LTR, RTL:
		return Horizontal
	}
	return Vertical
}

// IsPositive reports whether the direction runs along the positive screen
// coordinates (left to right, top to bottom).
func (d Dir) IsPositive() bool {
	return d == LTR || d == TTB
}

// Inv returns the opposite direction on the same axis.
func (d Dir) Inv() Dir {
	switch d {
	case LTR:
		return RTL
	case RTL:
		return LTR
	case TTB:
		return BTT
	}
	return TTB
}

func (d Dir) String() string {
	switch d {
	case LTR:
		return "ltr"
	case RTL:
		return "rtl"
	case TTB:
		return "ttb"
	case BTT:
		return "btt"
	}
	return "invalid"
}

// ParseDir parses ltr, rtl, ttb or btt.
func ParseDir(s string) (Dir, error) {
	switch s {
	case "ltr":
		return LTR, nil
	case "rtl":
		return RTL, nil
	case "ttb":
		return TTB, nil
	case "btt":
		return BTT, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "unknown direction: %q", s)
}

func (d Dir) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Dir) UnmarshalText(b []byte) error {
	v, err := ParseDir(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Mapping translates the specific axis vocabulary into the generic one.
// Implementations must be total over all defined variants.
type Mapping interface {
	GenAxis(axis Axis) GenAxis
	GenAlign(align SpecAlign) GenAlign
}

// LayoutSystem is the writing system: the directions of the primary and
// secondary axes.
type LayoutSystem struct {
	Primary   Dir `json:"primary"`
	Secondary Dir `json:"secondary"`
}

// DefaultSystem is left-to-right text with lines stacking top to bottom.
var DefaultSystem = LayoutSystem{Primary: LTR, Secondary: TTB}

// NewLayoutSystem returns a validated system.
func NewLayoutSystem(primary, secondary Dir) (LayoutSystem, error) {
	sys := LayoutSystem{Primary: primary, Secondary: secondary}
	return sys, sys.Validate()
}

// Validate checks that the two directions lie on different axes.
func (s LayoutSystem) Validate() error {
	if s.Primary.Axis() == s.Secondary.Axis() {
		return errors.New(errors.ErrCodeInvalidSystem,
			"primary (%s) and secondary (%s) directions must be on different axes", s.Primary, s.Secondary)
	}
	return nil
}

// Get returns the direction of a generic axis.
func (s LayoutSystem) Get(axis GenAxis) Dir {
	if axis == Primary {
		return s.Primary
	}
	return s.Secondary
}

// GenAxis returns the generic axis that runs along axis.
func (s LayoutSystem) GenAxis(axis Axis) GenAxis {
	if s.Primary.Axis() == axis {
		return Primary
	}
	return Secondary
}

// GenAlign maps a requested alignment onto its generic axis. Left and Top are
// the start of a positively directed axis and the end of a negative one.
func (s LayoutSystem) GenAlign(align SpecAlign) GenAlign {
	var axis Axis
	var positive GenAlign
	switch align {
	case Left:
		axis, positive = Horizontal, GenStart
	case Right:
		axis, positive = Horizontal, GenEnd
	case Top:
		axis, positive = Vertical, GenStart
	case Bottom:
		axis, positive = Vertical, GenEnd
	default:
		return GenCenter
	}
	if s.Get(s.GenAxis(axis)).IsPositive() {
		return positive
	}
	return positive.Inv()
}

func (s LayoutSystem) String() string {
	return fmt.Sprintf("%s,%s", s.Primary, s.Secondary)
}

var _ Mapping = LayoutSystem{}
