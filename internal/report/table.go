package report

import (
	"bytes"
	"fmt"
	"html/template"

	"creative-evaluator-backend/internal/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in the source is dropped and dangerous link targets are
// rewritten; goldmark only emits them under html.WithUnsafe.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderComparisonTable converts the model's markdown comparison table into
// HTML. Model text is never emitted as raw markup.
func RenderComparisonTable(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("%w: failed to render comparison table: %v", models.ErrParse, err)
	}
	return template.HTML(buf.String()), nil
}

// BadgeClass maps a 1-5 parameter score to its badge colour.
func BadgeClass(score int) string {
	switch {
	case score >= 4:
		return "score-green"
	case score == 3:
		return "score-yellow"
	default:
		return "score-red"
	}
}
