package report

import (
	"context"
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"solarqc/ports"
)

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #d1d9e0; padding: 4px 10px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
code { background: #f6f8fa; padding: 1px 4px; border-radius: 3px; }
img { max-width: 100%%; }
</style>
</head>
<body>
%s</body>
</html>
`

// RenderHTML renders the markdown report to a standalone HTML page
func (r *Renderer) RenderHTML(ctx context.Context, bundle ports.ReportBundle, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	md := buildMarkdown(bundle)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.Render(doc, renderer)

	title := "Data cleaning report"
	if bundle.Report != nil && bundle.Report.Source != "" {
		title = bundle.Report.Source
	}
	page := fmt.Sprintf(htmlShell, title, body)

	if err := writeFile(path, []byte(page)); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}
	r.log.Info("HTML report written to %s", path)
	return nil
}
