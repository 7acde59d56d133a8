package geom

import (
	"fmt"
	"strings"

	"github.com/neunenak/typst/pkg/errors"
)

// SpecAlign is an alignment as requested in document source.
type SpecAlign uint8

const (
	Left SpecAlign = iota
	Right
	Top
	Bottom
	Center
)

var specAlignNames = [...]string{
	Left:   "left",
	Right:  "right",
	Top:    "top",
	Bottom: "bottom",
	Center: "center",
}

// Axis returns the axis the alignment belongs to. Center fits both axes and
// reports ok=false.
func (a SpecAlign) Axis() (axis Axis, ok bool) {
	switch a {
	case Left, Right:
		return Horizontal, true
	case Top, Bottom:
		return Vertical, true
	}
	return 0, false
}

// Fits reports whether a may be used on axis.
func (a SpecAlign) Fits(axis Axis) bool {
	own, ok := a.Axis()
	return !ok || own == axis
}

func (a SpecAlign) String() string {
	if int(a) < len(specAlignNames) {
		return specAlignNames[a]
	}
	return "invalid"
}

// ParseSpecAlign parses one of left, right, top, bottom or center.
func ParseSpecAlign(s string) (SpecAlign, error) {
	for i, name := range specAlignNames {
		if name == s {
			return SpecAlign(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "unknown alignment: %q", s)
}

func (a SpecAlign) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *SpecAlign) UnmarshalText(b []byte) error {
	v, err := ParseSpecAlign(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// GenAlign is an alignment relative to a generic axis.
type GenAlign uint8

const (
	GenStart GenAlign = iota
	GenCenter
	GenEnd
)

// Inv returns the alignment mirrored around the center.
func (g GenAlign) Inv() GenAlign {
	switch g {
	case GenStart:
		return GenEnd
	case GenEnd:
		return GenStart
	}
	return g
}

func (g GenAlign) String() string {
	switch g {
	case GenStart:
		return "start"
	case GenCenter:
		return "center"
	case GenEnd:
		return "end"
	}
	return "invalid"
}

// ParseGenAlign parses start, center or end.
func ParseGenAlign(s string) (GenAlign, error) {
	switch s {
	case "start":
		return GenStart, nil
	case "center":
		return GenCenter, nil
	case "end":
		return GenEnd, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "unknown generic alignment: %q", s)
}

func (g GenAlign) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *GenAlign) UnmarshalText(b []byte) error {
	v, err := ParseGenAlign(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// LayoutAlign is a fully resolved alignment for both generic axes.
type LayoutAlign struct {
	Primary   GenAlign `json:"primary"`
	Secondary GenAlign `json:"secondary"`
}

// NewLayoutAlign returns the alignment {primary, secondary}.
func NewLayoutAlign(primary, secondary GenAlign) LayoutAlign {
	return LayoutAlign{Primary: primary, Secondary: secondary}
}

// Get returns the alignment along axis.
func (l LayoutAlign) Get(axis GenAxis) GenAlign {
	if axis == Primary {
		return l.Primary
	}
	return l.Secondary
}

// Set replaces the alignment along axis.
func (l *LayoutAlign) Set(axis GenAxis, align GenAlign) {
	if axis == Primary {
		l.Primary = align
	} else {
		l.Secondary = align
	}
}

func (l LayoutAlign) String() string {
	return fmt.Sprintf("%s,%s", l.Primary, l.Secondary)
}

// ParseLayoutAlign parses the "primary,secondary" form produced by String.
func ParseLayoutAlign(s string) (LayoutAlign, error) {
	p, q, ok := strings.Cut(s, ",")
	if !ok {
		return LayoutAlign{}, errors.New(errors.ErrCodeInvalidArgument, "alignment must be \"primary,secondary\": %q", s)
	}
	primary, err := ParseGenAlign(strings.TrimSpace(p))
	if err != nil {
		return LayoutAlign{}, err
	}
	secondary, err := ParseGenAlign(strings.TrimSpace(q))
	if err != nil {
		return LayoutAlign{}, err
	}
	return NewLayoutAlign(primary, secondary), nil
}
