// Package generator writes IfEmpty methods for types that declare an
// IsEmpty() bool predicate.
//
// Types are selected either by annotating the declaration:
//
//	//ifempty:generate
//	type Settings struct {
//	    Name string
//	}
//
// or by naming them in Config.Types. For every selected type the generator
// emits
//
//	func (v Settings) IfEmpty(fallback Settings) Settings {
//	    if v.IsEmpty() {
//	        return fallback
//	    }
//
//	    return v
//	}
//
// into a single file per package (ifempty_gen.go by default).
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alitto/pond/v2"
	amperrors "github.com/amp-labs/ifempty/errors"
	"github.com/amp-labs/ifempty/envutil"
	"github.com/amp-labs/ifempty/logger"
	"github.com/samber/lo"
)

const (
	// Directive marks a type declaration for generation. It takes no
	// parameters.
	Directive = "//ifempty:generate"

	// DefaultOutput is the file written in each package directory.
	DefaultOutput = "ifempty_gen.go"
)

// Config controls a Generator.
type Config struct {
	// Types are generated in addition to the annotated ones.
	Types []string
	// Output is the name of the generated file, written into each package
	// directory. It can't contain a directory and can't be a _test.go file.
	// Defaults to DefaultOutput.
	Output string
	// Check validates the IsEmpty predicate of every target before
	// generating. Without it a missing or mistyped predicate surfaces as a
	// compile error in the generated file.
	Check bool
	// Workers bounds how many directories Run processes at once. Zero means
	// IFEMPTY_WORKERS, or the number of CPUs if that isn't set.
	Workers int
}

// Result describes the generated output for one package directory.
type Result struct {
	Dir     string
	Package string
	// Output is the path of the generated file.
	Output  string
	Targets []Target
	// Source is nil when the package has nothing to generate.
	Source []byte
	// Written is false when nothing was written, either because there were
	// no targets or because the file on disk was already up to date.
	Written bool
}

// Generator produces IfEmpty methods for packages on disk.
type Generator struct {
	cfg Config
}

// New returns a Generator for cfg.
func New(cfg Config) *Generator {
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}

	cfg.Types = lo.Uniq(lo.Compact(cfg.Types))

	return &Generator{cfg: cfg}
}

func validOutput(name string) error {
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name ||
		!strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidOutput, name)
	}

	return nil
}

// Package parses the package in dir and renders its generated file without
// writing it.
func (g *Generator) Package(ctx context.Context, dir string) (*Result, error) {
	log := logger.Get(ctx).With("dir", dir)

	if err := validOutput(g.cfg.Output); err != nil {
		return nil, err
	}

	fset := token.NewFileSet()

	pkg, err := parseDir(fset, dir, g.cfg.Output)
	if err != nil {
		return nil, err
	}

	targets, err := g.targets(pkg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Dir:     dir,
		Package: pkg.name,
		Output:  filepath.Join(dir, g.cfg.Output),
		Targets: sortTargets(targets),
	}

	if len(targets) == 0 {
		log.Info("no types to generate", "package", pkg.name)

		return result, nil
	}

	if g.cfg.Check {
		if err := check(pkg, result.Targets); err != nil {
			return nil, err
		}
	}

	result.Source, err = Source(pkg.name, result.Targets...)
	if err != nil {
		return nil, err
	}

	log.Debug("rendered", "package", pkg.name, "types", lo.Map(result.Targets, func(t Target, _ int) string {
		return t.Name
	}))

	return result, nil
}

func (g *Generator) targets(pkg *parsedPackage) ([]Target, error) {
	var errs amperrors.Collection

	names := make([]string, 0, len(g.cfg.Types))

	for _, name := range g.cfg.Types {
		if _, ok := pkg.types[name]; !ok {
			errs.Add(fmt.Errorf("%w: %s in package %s", ErrTypeNotFound, name, pkg.name))

			continue
		}

		names = append(names, name)
	}

	for name, decl := range pkg.types {
		if decl.annotated {
			names = append(names, name)
		}
	}

	targets := make([]Target, 0, len(names))

	for _, name := range lo.Uniq(names) {
		decl := pkg.types[name]
		if decl.alias {
			errs.Add(fmt.Errorf("%w: %s (%s)", ErrAliasType, name, decl.pos))

			continue
		}

		targets = append(targets, Target{Name: name, TypeParams: decl.typeParams})
	}

	if err := errs.GetError(); err != nil {
		return nil, err
	}

	return targets, nil
}

// Write renders the package in dir and writes the result. The file is only
// rewritten when its contents change, so an up to date package keeps its
// modification time.
func (g *Generator) Write(ctx context.Context, dir string) (*Result, error) {
	result, err := g.Package(ctx, dir)
	if err != nil {
		return nil, err
	}

	if result.Source == nil {
		return result, nil
	}

	log := logger.Get(ctx).With("dir", dir, "output", result.Output)

	existing, err := os.ReadFile(result.Output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if bytes.Equal(existing, result.Source) {
		log.Debug("already up to date")

		return result, nil
	}

	if err := os.WriteFile(result.Output, result.Source, 0o644); err != nil { //nolint:gosec
		return nil, err
	}

	result.Written = true

	log.Info("generated", "package", result.Package, "types", len(result.Targets))

	return result, nil
}

// Run calls Write for each directory on a bounded worker pool. Results are
// returned in the order of dirs; a directory that failed has a nil result.
// All failures are combined into the returned error.
func (g *Generator) Run(ctx context.Context, dirs ...string) ([]*Result, error) {
	if err := validOutput(g.cfg.Output); err != nil {
		return nil, err
	}

	workers := g.cfg.Workers
	if workers <= 0 {
		workers = envutil.Int[int](ctx, "IFEMPTY_WORKERS",
			envutil.Default(runtime.NumCPU()),
			envutil.Validate(positive)).ValueOrElse(runtime.NumCPU())
	}

	results := make([]*Result, len(dirs))

	var errs amperrors.Collection

	pool := pond.NewPool(workers, pond.WithContext(ctx))

	for i, dir := range dirs {
		pool.Submit(func() {
			res, err := g.Write(ctx, dir)
			if err != nil {
				errs.Add(fmt.Errorf("%s: %w", dir, err))

				return
			}

			results[i] = res
		})
	}

	pool.StopAndWait()

	if err := ctx.Err(); err != nil {
		errs.Add(err)
	}

	return results, errs.GetError()
}

var errNotPositive = errors.New("must be positive")

func positive(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", errNotPositive, n)
	}

	return nil
}
