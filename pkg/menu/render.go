package menu

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

const navTemplate = `{{define "items"}}<ul>{{range .}}<li{{if .ID}} data-id="{{.ID}}"{{end}}>{{if .Href}}<a href="{{.Href}}">{{.Title}}</a>{{else}}<span class="category">{{.Title}}</span>{{end}}{{if .Items}}{{template "items" .Items}}{{end}}</li>{{end}}</ul>{{end}}
<nav class="sidenav" data-level="{{.Level}}">
{{- range .Lists}}
<div class="menu-list menu-{{.Kind}}{{if .Active}} active{{end}}" id="{{.ID}}" data-lib="{{.Lib}}" aria-hidden="{{if .Active}}false{{else}}true{{end}}">
{{- if .Title}}<h2>{{.Title}}</h2>{{end}}
{{- template "items" .Items}}
</div>
{{- end}}
</nav>
`

var navTmpl = template.Must(template.New("nav").Parse(navTemplate))

// RenderHTML writes the menu as an HTML nav element. Every list is emitted;
// only the active one is marked visible.
func (m *Menu) RenderHTML(w io.Writer) error {
	if err := navTmpl.Execute(w, m); err != nil {
		return fmt.Errorf("failed to render menu: %w", err)
	}
	return nil
}

// HTML renders the menu to a fragment for embedding in a page template.
func (m *Menu) HTML() (template.HTML, error) {
	var b strings.Builder
	if err := m.RenderHTML(&b); err != nil {
		return "", err
	}
	// already escaped by html/template
	return template.HTML(b.String()), nil //nolint:gosec
}
