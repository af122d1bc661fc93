package html

import (
	"embed"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// NewTemplate parses the embedded storefront templates.
func NewTemplate() *Template {
	return &Template{
		Templates: template.Must(template.New("storefront").Funcs(TemplateFuncs()).ParseFS(templateFS, "templates/*.html")),
	}
}

// TemplateFuncs returns the helpers used by the storefront templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"price": formatPrice,
		"media": mediaURL,
	}
}

// formatPrice renders whole VND with dot grouping: 1.250.000 ₫.
func formatPrice(p int64) string {
	s := strconv.FormatInt(p, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + " ₫"
	if neg {
		out = "-" + out
	}
	return out
}

// mediaURL prefixes relative image paths with the media base URL.
func mediaURL(base, path string) string {
	if base == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
