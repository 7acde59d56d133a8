package document

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/syntax"
)

type file struct {
	Nodes []rawNode `toml:"nodes"`
}

type rawNode struct {
	Text     *string        `toml:"text"`
	Parbreak bool           `toml:"parbreak"`
	Call     string         `toml:"call"`
	Args     []any          `toml:"args"`
	Named    map[string]any `toml:"named"`
	Body     []rawNode      `toml:"body"`
}

// Load reads and converts a TOML document.
func Load(r io.Reader) (syntax.Tree, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown keys: %s", strings.Join(keys, ", "))
	}

	c := &converter{}
	return c.tree(f.Nodes)
}

// LoadBytes converts a TOML document held in memory.
func LoadBytes(data []byte) (syntax.Tree, error) {
	return Load(strings.NewReader(string(data)))
}

// LoadFile reads the document at path.
func LoadFile(path string) (syntax.Tree, error) {
	if err := errors.ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// converter numbers nodes in document order while building the tree.
type converter struct {
	line int
}

func (c *converter) tree(nodes []rawNode) (syntax.Tree, error) {
	tree := make(syntax.Tree, 0, len(nodes))
	for _, raw := range nodes {
		node, err := c.node(raw)
		if err != nil {
			return nil, err
		}
		tree = append(tree, node)
	}
	return tree, nil
}

func (c *converter) node(raw rawNode) (syntax.Node, error) {
	c.line++
	line := c.line
	span := syntax.SpanAt(line, 0)

	kinds := 0
	if raw.Text != nil {
		kinds++
	}
	if raw.Parbreak {
		kinds++
	}
	if raw.Call != "" {
		kinds++
	}
	if kinds != 1 {
		return nil, errors.New(errors.ErrCodeInvalidDocument,
			"node %d: exactly one of text, parbreak or call must be set", line)
	}
	if raw.Call == "" && (len(raw.Args) > 0 || len(raw.Named) > 0 || len(raw.Body) > 0) {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "node %d: args, named and body need a call", line)
	}

	switch {
	case raw.Text != nil:
		return syntax.Text{Value: *raw.Text, At: span}, nil
	case raw.Parbreak:
		return syntax.Parbreak{At: span}, nil
	}

	if err := errors.ValidateName(raw.Call); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "node %d", line)
	}

	col := 0
	next := func() syntax.Span {
		col++
		return syntax.SpanAt(line, col)
	}

	list := make([]syntax.Arg, 0, len(raw.Args)+len(raw.Named)+1)
	for _, v := range raw.Args {
		at := next()
		expr, err := value(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "node %d argument %d", line, col)
		}
		list = append(list, syntax.Arg{Value: syntax.NewSpanned(expr, at)})
	}

	keys := make([]string, 0, len(raw.Named))
	for k := range raw.Named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		at := next()
		if err := errors.ValidateName(k); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "node %d", line)
		}
		expr, err := value(raw.Named[k])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "node %d argument %q", line, k)
		}
		key := syntax.NewSpanned(k, at)
		list = append(list, syntax.Arg{Key: &key, Value: syntax.NewSpanned(expr, at)})
	}

	if raw.Body != nil {
		at := next()
		body, err := c.tree(raw.Body)
		if err != nil {
			return nil, err
		}
		list = append(list, syntax.Arg{Value: syntax.NewSpanned[syntax.Expr](syntax.TreeExpr(body), at)})
	}

	return syntax.Call{
		Name: syntax.NewSpanned(raw.Call, span),
		Args: list,
		At:   span,
	}, nil
}

func value(v any) (syntax.Expr, error) {
	switch v := v.(type) {
	case string:
		if errors.IsIdent(v) {
			return syntax.Ident(v), nil
		}
		return syntax.Str(v), nil
	case int64:
		return syntax.Number(v), nil
	case float64:
		return syntax.Number(v), nil
	case bool:
		return syntax.Bool(v), nil
	}
	return nil, fmt.Errorf("unsupported value %v (%T)", v, v)
}
