package transform

import (
	"strings"

	"github.com/erraggy/ramldoc/parser"
)

// Renderer converts Markdown text to HTML.
type Renderer interface {
	Render(text string) (string, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(text string) (string, error)

// Render implements Renderer.
func (f RendererFunc) Render(text string) (string, error) { return f(text) }

// PreprocessFunc rewrites description text before it is rendered.
type PreprocessFunc func(text string) string

// Descriptions returns a Func that renders every value stored under a
// "description" key of a mapping. It also sets "descriptionShort" on that
// mapping to the rendered text before the first "." (the whole text when
// there is none). pre, when non-nil, is applied to the full description
// only. Null descriptions and all other values are returned unchanged.
func Descriptions(md Renderer, pre PreprocessFunc) Func {
	return func(key string, value, parent *parser.Node, _ string) (*parser.Node, error) {
		if key != parser.KeyDescription || !parent.IsMapping() || value.IsNull() {
			return value, nil
		}
		text := value.Str()

		first, _, _ := strings.Cut(text, ".")
		short, err := md.Render(first)
		if err != nil {
			return nil, err
		}
		parent.Set(parser.KeyDescriptionShort, parser.NewScalar(short))

		if pre != nil {
			text = pre(text)
		}
		full, err := md.Render(text)
		if err != nil {
			return nil, err
		}
		return parser.NewScalar(full), nil
	}
}

// RenderDescriptions applies Descriptions to the whole tree below root.
func RenderDescriptions(root *parser.Node, md Renderer, pre PreprocessFunc) error {
	_, err := Transform(root, Descriptions(md, pre))
	return err
}
