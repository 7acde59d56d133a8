package layout

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/neunenak/typst/pkg/geom"
	"github.com/neunenak/typst/pkg/syntax"
)

// Command is a single instruction for the Layouter.
type Command interface {
	// Name identifies the command kind: "set-alignment", "layout-tree" or
	// "restore-alignment".
	Name() string
	command()
}

// SetAlignment installs Align as the current alignment.
type SetAlignment struct {
	Align geom.LayoutAlign
}

// LayoutTree lays out Tree under the current state.
type LayoutTree struct {
	Tree syntax.Tree
	At   syntax.Span
}

// RestoreAlignment reinstalls an alignment that was active earlier.
type RestoreAlignment struct {
	Align geom.LayoutAlign
}

func (SetAlignment) Name() string     { return "set-alignment" }
func (LayoutTree) Name() string       { return "layout-tree" }
func (RestoreAlignment) Name() string { return "restore-alignment" }

func (SetAlignment) command()     {}
func (LayoutTree) command()       {}
func (RestoreAlignment) command() {}

func (c SetAlignment) String() string     { return fmt.Sprintf("set-alignment(%s)", c.Align) }
func (c LayoutTree) String() string       { return fmt.Sprintf("layout-tree(%d nodes)", len(c.Tree)) }
func (c RestoreAlignment) String() string { return fmt.Sprintf("restore-alignment(%s)", c.Align) }

// Commands is an ordered command list.
type Commands []Command

func (cs Commands) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, " → ")
}

// MarshalJSON encodes the commands as {"name": ..., "align"|"nodes": ...}
// objects.
func (cs Commands) MarshalJSON() ([]byte, error) {
	type wire struct {
		Name  string            `json:"name"`
		Align *geom.LayoutAlign `json:"align,omitempty"`
		Nodes *int              `json:"nodes,omitempty"`
	}
	out := make([]wire, 0, len(cs))
	for _, c := range cs {
		w := wire{Name: c.Name()}
		switch c := c.(type) {
		case SetAlignment:
			w.Align = &c.Align
		case RestoreAlignment:
			w.Align = &c.Align
		case LayoutTree:
			n := len(c.Tree)
			w.Nodes = &n
		}
		out = append(out, w)
	}
	return json.Marshal(out)
}
