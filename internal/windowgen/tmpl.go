package windowgen

import "text/template"

// headerTmpl writes the generated-code header, package clause and imports.
var headerTmpl = template.Must(template.New("header").Parse(`// Code generated by "{{.Command}}"; DO NOT EDIT.

package {{.Package}}

import (
	"fmt"

	"github.com/1broseidon/multiwin/internal/union"
	"github.com/1broseidon/multiwin/internal/window"
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
`))

// unionTmpl writes the kind enum, the union type and its dispatcher. All
// templates take a *Union as their data.
var unionTmpl = template.Must(template.New("union").Parse(`
// {{.Type}}Kind identifies the window kind wrapped by a {{.Type}}.
type {{.Type}}Kind uint8

const (
{{- range $i, $k := .Kinds}}
	{{$.Type}}{{$k}}{{if eq $i 0}} {{$.Type}}Kind = iota + 1{{end}}
{{- end}}
)

var _{{.Type}}KindNames = [...]string{
{{- range .Kinds}}
	"{{.}}",
{{- end}}
}

// String returns the name of the wrapped window kind.
func (k {{.Type}}Kind) String() string {
	if k == 0 || int(k) > len(_{{.Type}}KindNames) {
		return fmt.Sprintf("{{.Type}}Kind(%d)", uint8(k))
	}
	return _{{.Type}}KindNames[k-1]
}

// {{.Type}}Kinds returns every declared kind in declaration order.
func {{.Type}}Kinds() []{{.Type}}Kind {
	return []{{.Type}}Kind{
{{- range .Kinds}}
		{{$.Type}}{{.}},
{{- end}}
	}
}

// Parse{{.Type}}Kind returns the kind with the given name.
func Parse{{.Type}}Kind(name string) ({{.Type}}Kind, error) {
	for i, n := range _{{.Type}}KindNames {
		if n == name {
			return {{.Type}}Kind(i + 1), nil
		}
	}
	return 0, fmt.Errorf("%q is not a {{.Type}} kind", name)
}

// {{.Type}} holds exactly one of the declared window kinds by value.
// Build values with Wrap{{.Type}} or New{{.Type}}; the zero value is invalid.
type {{.Type}} struct {
	kind {{.Type}}Kind
{{- range .Kinds}}
	v{{.}} {{.}}
{{- end}}
}

var (
	_ window.Window[{{.App}}, {{.Content}}, {{.Theme}}]           = {{.Type}}{}
	_ union.Variant[{{.App}}, {{.Content}}, {{.Theme}}, {{.Type}}] = {{.Type}}{}
)

// Wrap{{.Type}} wraps a window kind in the union.
func Wrap{{.Type}}[K {{.Constraint}}](k K) {{.Type}} {
	switch v := any(k).(type) {
{{- range .Kinds}}
	case {{.}}:
		return {{$.Type}}{kind: {{$.Type}}{{.}}, v{{.}}: v}
{{- end}}
	}
	panic("unreachable")
}

// New{{.Type}} returns the union wrapping the zero value of kind k.
func New{{.Type}}(k {{.Type}}Kind) ({{.Type}}, bool) {
	switch k {
{{- range .Kinds}}
	case {{$.Type}}{{.}}:
		return {{$.Type}}{kind: k}, true
{{- end}}
	}
	return {{.Type}}{}, false
}

// Kind returns the wrapped window kind.
func (u {{.Type}}) Kind() {{.Type}}Kind {
	return u.kind
}

// SameKind reports whether other wraps the same kind, ignoring content.
func (u {{.Type}}) SameKind(other {{.Type}}) bool {
	return u.kind == other.kind
}

// Equal reports whether other wraps the same kind with equal content.
func (u {{.Type}}) Equal(other {{.Type}}) bool {
	return u == other
}

func (u {{.Type}}) String() string {
	return u.kind.String()
}
{{range .Kinds}}
// As{{.}} returns the wrapped {{.}}, if that is the kind held.
func (u {{$.Type}}) As{{.}}() ({{.}}, bool) {
	return u.v{{.}}, u.kind == {{$.Type}}{{.}}
}
{{end}}
// Content dispatches to the wrapped kind.
func (u {{.Type}}) Content(app {{.App}}, h window.Handle) {{.Content}} {
	switch u.kind {
{{- range .Kinds}}
	case {{$.Type}}{{.}}:
		return u.v{{.}}.Content(app, h)
{{- end}}
	}
	panic(u.invalid())
}

// Title dispatches to the wrapped kind.
func (u {{.Type}}) Title(app {{.App}}, h window.Handle) string {
	switch u.kind {
{{- range .Kinds}}
	case {{$.Type}}{{.}}:
		return u.v{{.}}.Title(app, h)
{{- end}}
	}
	panic(u.invalid())
}

// Theme dispatches to the wrapped kind.
func (u {{.Type}}) Theme(app {{.App}}, h window.Handle) {{.Theme}} {
	switch u.kind {
{{- range .Kinds}}
	case {{$.Type}}{{.}}:
		return u.v{{.}}.Theme(app, h)
{{- end}}
	}
	panic(u.invalid())
}

// Settings dispatches to the wrapped kind.
func (u {{.Type}}) Settings() window.Settings {
	switch u.kind {
{{- range .Kinds}}
	case {{$.Type}}{{.}}:
		return u.v{{.}}.Settings()
{{- end}}
	}
	panic(u.invalid())
}

func (u {{.Type}}) invalid() string {
	return fmt.Sprintf("programmer error: invalid {{.Type}} kind %d", uint8(u.kind))
}
`))
