package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"facette.io/natsort"
	"github.com/samber/lo"
)

const toolName = "ifempty-gen"

var fileTemplate = template.Must(template.New("ifempty").Parse(`// Code generated by ` + toolName + `. DO NOT EDIT.

package {{ .Package }}
{{ range .Targets }}
// IfEmpty returns fallback if v.IsEmpty() reports true, otherwise v.
func (v {{ .Receiver }}) IfEmpty(fallback {{ .Receiver }}) {{ .Receiver }} {
	if v.IsEmpty() {
		return fallback
	}

	return v
}
{{ end -}}
`))

// Target is a type the IfEmpty method is generated for.
type Target struct {
	// Name is the declared type name.
	Name string
	// TypeParams holds the names of the type's type parameters, if any.
	TypeParams []string
}

// Receiver returns the receiver type as written in a method declaration,
// e.g. "Reader[A]" for a generic type. Type parameters keep their declared
// names unless a name is blank or would collide with the receiver, the
// fallback parameter or the type itself; those become T0, T1, and so on.
func (t Target) Receiver() string {
	if len(t.TypeParams) == 0 {
		return t.Name
	}

	return t.Name + "[" + strings.Join(t.receiverParams(), ", ") + "]"
}

func (t Target) receiverParams() []string {
	reserved := func(name string) bool {
		return name == "_" || name == "v" || name == "fallback" || name == t.Name
	}

	used := lo.SliceToMap(t.TypeParams, func(name string) (string, bool) {
		return name, true
	})

	out := make([]string, len(t.TypeParams))
	next := 0

	for i, name := range t.TypeParams {
		if !reserved(name) {
			out[i] = name

			continue
		}

		for {
			fresh := fmt.Sprintf("T%d", next)
			next++

			if !used[fresh] && !reserved(fresh) {
				used[fresh] = true
				out[i] = fresh

				break
			}
		}
	}

	return out
}

// Source renders a gofmt-formatted Go file for package pkg declaring
// IfEmpty on every target. Targets are emitted in natural sort order of
// their names, and duplicate names are dropped.
//
// Source doesn't check that the targets declare IsEmpty: a missing
// predicate shows up as a compile error in the generated file.
func Source(pkg string, targets ...Target) ([]byte, error) {
	targets = sortTargets(targets)

	var buf bytes.Buffer

	err := fileTemplate.Execute(&buf, struct {
		Package string
		Targets []Target
	}{
		Package: pkg,
		Targets: targets,
	})
	if err != nil {
		return nil, err
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}

	return out, nil
}

func sortTargets(targets []Target) []Target {
	targets = lo.UniqBy(targets, func(t Target) string {
		return t.Name
	})

	byName := lo.KeyBy(targets, func(t Target) string {
		return t.Name
	})

	names := lo.Keys(byName)
	natsort.Sort(names)

	return lo.Map(names, func(name string, _ int) Target {
		return byName[name]
	})
}
