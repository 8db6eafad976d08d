package render

import (
	"embed"
	"html/template"
)

// IndexTemplate is the name of the search page template.
const IndexTemplate = "index.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded page templates. It panics if they do not
// parse, which can only happen on a broken build.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}
