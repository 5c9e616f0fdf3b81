package artifact

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractCode returns the bodies of the Markdown fenced code blocks in text,
// joined by a blank line. A block fenced as md or markdown is searched for
// nested blocks. Text without any fenced block is returned unchanged.
func ExtractCode(text string) string {
	blocks := fencedBlocks(text)
	if len(blocks) == 0 {
		return text
	}
	return strings.Join(blocks, "\n")
}

func fencedBlocks(src string) []string {
	source := []byte(src)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fence, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}

		var body strings.Builder
		lines := fence.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body.Write(seg.Value(source))
		}
		content := body.String()
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}

		switch strings.ToLower(string(fence.Language(source))) {
		case "md", "markdown":
			if inner := fencedBlocks(content); len(inner) > 0 {
				blocks = append(blocks, inner...)
				return ast.WalkSkipChildren, nil
			}
		}
		blocks = append(blocks, content)
		return ast.WalkSkipChildren, nil
	})
	return blocks
}
