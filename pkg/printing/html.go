package printing

import (
	"encoding/base64"
	"html/template"
	"io"
	"strconv"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; padding: 0; width: {{.Width}}px; height: {{.Height}}px; position: relative; background-color: white; }
.sheet { position: absolute; top: 0; left: 0; width: {{.Width}}px; height: {{.Height}}px; overflow: hidden; }
.sheet img { position: absolute; top: 0; left: 0; width: 100%; height: 100%; }
@media print {
  @page { size: {{.Orientation}}; margin: 0; }
  html, body { width: 100%; height: 100%; margin: 0; padding: 0; }
  .sheet { width: 100%; height: 100%; }
  .sheet img { object-fit: fill; }
}
</style>
</head>
<body>
<div class="sheet"><img src="{{.Src}}" alt="{{.Title}}"></div>
{{- if .AutoPrint}}
<script>
window.onload = function () { setTimeout(function () { window.print(); }, 500); };
</script>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Title       string
	Width       string
	Height      string
	Orientation string
	Src         template.URL
	AutoPrint   bool
}

// PageOption configures [WritePage].
type PageOption func(*pageData)

// WithAutoPrint makes the page open the print dialog once it has loaded.
func WithAutoPrint() PageOption {
	return func(d *pageData) { d.AutoPrint = true }
}

// WritePage writes an HTML document sized exactly to page with png embedded
// as a data URI stretched over the whole page.
func WritePage(w io.Writer, page Page, png []byte, title string, opts ...PageOption) error {
	d := pageData{
		Title:       title,
		Width:       formatPx(page.WidthPx()),
		Height:      formatPx(page.HeightPx()),
		Orientation: page.Orientation(),
		Src:         template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return pageTemplate.Execute(w, d)
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
