package generator

import (
	"fmt"
	"slices"

	amperrors "github.com/amp-labs/ifempty/errors"
)

const (
	predicateName = "IsEmpty"
	methodName    = "IfEmpty"
)

// check verifies that every target can receive the generated method: it has
// to be a valid receiver type, have IsEmpty() bool (declared or promoted from
// an embedded field), and not declare IfEmpty itself. All problems are
// reported, not just the first. When the predicate could come from a type
// whose methods aren't in the parsed source, the compiler has the last word.
func check(pkg *parsedPackage, targets []Target) error {
	var errs amperrors.Collection

	for _, target := range targets {
		decl := pkg.types[target.Name]

		if !decl.receiver {
			errs.Add(fmt.Errorf("%w: %s (%s)", ErrInvalidReceiver, target.Name, decl.pos))

			continue
		}

		predicate, found, known := findPredicate(pkg, target.Name)

		switch {
		case found && (predicate.params != 0 || !slices.Equal(predicate.results, []string{"bool"})):
			errs.Add(fmt.Errorf("%w: %s (%s)", ErrBadPredicate, target.Name, predicate.pos))
		case !found && known:
			errs.Add(fmt.Errorf("%w: %s (%s)", ErrMissingPredicate, target.Name, decl.pos))
		}

		if existing, ok := pkg.methods[target.Name][methodName]; ok {
			errs.Add(fmt.Errorf("%w: %s (%s)", ErrMethodExists, target.Name, existing.pos))
		}
	}

	return errs.GetError()
}

// findPredicate looks for IsEmpty on name, then breadth first through its
// embedded fields, the way Go promotes methods. known is false when some
// embedded type couldn't be inspected, so a miss proves nothing.
func findPredicate(pkg *parsedPackage, name string) (predicate methodDecl, found, known bool) {
	known = true
	seen := make(map[string]bool)
	level := []string{name}

	for len(level) > 0 {
		var next []string

		for _, typ := range level {
			if seen[typ] {
				continue
			}

			seen[typ] = true

			if m, ok := pkg.methods[typ][predicateName]; ok {
				return m, true, true
			}

			embeds, ok := pkg.embedded(typ)
			if !ok {
				known = false

				continue
			}

			for _, embed := range embeds {
				if embed == "" {
					known = false

					continue
				}

				next = append(next, embed)
			}
		}

		level = next
	}

	return methodDecl{}, false, known
}
