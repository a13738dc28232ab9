// Package windowgen generates closed window unions: a tagged sum type over a
// fixed set of window kinds that satisfies both the window contract and
// union.Variant, with exhaustive dispatch for every contract operation.
//
// The kinds are declared by hand in the target package; windowgen loads the
// package, checks that every kind exists and implements the contract, and
// writes the union next to them.
package windowgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"
)

// contractMethods are the value-receiver methods every kind must have.
var contractMethods = []string{"Content", "Title", "Theme", "Settings"}

// Union is the template data for one generated union.
type Union struct {
	Command    string
	Package    string
	Imports    []string
	Type       string
	App        string
	Content    string
	Theme      string
	Kinds      []string
	Constraint string
}

// Generator holds the state of one generation run. It is primarily used to
// buffer the output.
type Generator struct {
	Config *Config
	Buf    bytes.Buffer
	Pkg    *packages.Package
}

// NewGenerator returns a generator for cfg.
func NewGenerator(cfg *Config) *Generator {
	return &Generator{Config: cfg}
}

// Generate validates cfg, loads the target package, checks the kinds and
// writes the union file.
func Generate(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("windowgen: invalid config: %w", err)
	}
	g := NewGenerator(cfg)
	if err := g.Load(); err != nil {
		return fmt.Errorf("windowgen: %w", err)
	}
	if err := Check(g.Pkg.Types, cfg.Kinds); err != nil {
		return fmt.Errorf("windowgen: package %s: %w", g.Pkg.PkgPath, err)
	}
	if err := g.Render(g.Pkg.Name); err != nil {
		return fmt.Errorf("windowgen: %w", err)
	}
	if err := g.Write(); err != nil {
		return fmt.Errorf("windowgen: %w", err)
	}
	return nil
}

// Load loads the package in Config.Dir. A previously generated output file is
// masked with a bare package clause so stale dispatch code never blocks
// regeneration. Type errors are tolerated; list and parse errors are not.
func (g *Generator) Load() error {
	dir := g.Config.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	pcfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  abs,
	}
	out := filepath.Join(abs, g.Config.output())
	if name, ok := packageClause(out); ok {
		pcfg.Overlay = map[string][]byte{out: []byte("package " + name + "\n")}
	}
	pkgs, err := packages.Load(pcfg, ".")
	if err != nil {
		return fmt.Errorf("failed to load package in %s: %w", abs, err)
	}
	if len(pkgs) != 1 {
		return fmt.Errorf("expected one package in %s, found %d", abs, len(pkgs))
	}
	pkg := pkgs[0]
	// Other files of the package usually refer to the union being
	// regenerated, so type errors are expected while it is masked. Check
	// decides whether the kinds themselves resolved.
	var msgs []string
	for _, e := range pkg.Errors {
		if e.Kind == packages.TypeError && pkg.Types != nil {
			continue
		}
		msgs = append(msgs, e.Error())
	}
	if len(msgs) > 0 {
		return fmt.Errorf("package %s has errors:\n\t%s", pkg.PkgPath, strings.Join(msgs, "\n\t"))
	}
	if pkg.Types == nil {
		return fmt.Errorf("package %s has no type information", pkg.PkgPath)
	}
	g.Pkg = pkg
	return nil
}

func packageClause(path string) (string, bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly)
	if err != nil {
		return "", false
	}
	return f.Name.Name, true
}

// Check reports an error unless every kind names a non-generic, comparable
// type declared in pkg whose value method set carries the window contract.
// Signatures are left to the compile-time assertions in the generated file.
func Check(pkg *types.Package, kinds []string) error {
	var errs []error
	for _, kind := range kinds {
		obj := pkg.Scope().Lookup(kind)
		tn, ok := obj.(*types.TypeName)
		if !ok {
			errs = append(errs, fmt.Errorf("window kind %s is not a type declared in the package", kind))
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			errs = append(errs, fmt.Errorf("window kind %s must be a defined type", kind))
			continue
		}
		if named.TypeParams().Len() > 0 {
			errs = append(errs, fmt.Errorf("window kind %s must not be generic", kind))
			continue
		}
		if types.IsInterface(named) {
			errs = append(errs, fmt.Errorf("window kind %s must be a concrete type, not an interface", kind))
			continue
		}
		if !types.Comparable(named) {
			errs = append(errs, fmt.Errorf("window kind %s must be comparable", kind))
		}
		mset := types.NewMethodSet(named)
		for _, m := range contractMethods {
			if mset.Lookup(pkg, m) == nil {
				errs = append(errs, fmt.Errorf("window kind %s is missing method %s (value receiver)", kind, m))
			}
		}
	}
	return errors.Join(errs...)
}

// Data returns the template data for the union in package pkgName.
func (g *Generator) Data(pkgName string) *Union {
	cmd := g.Config.Command
	if cmd == "" {
		cmd = "windowgen"
	}
	return &Union{
		Command:    cmd,
		Package:    pkgName,
		Imports:    g.Config.Imports,
		Type:       g.Config.Type,
		App:        g.Config.App,
		Content:    g.Config.Content,
		Theme:      g.Config.Theme,
		Kinds:      g.Config.Kinds,
		Constraint: strings.Join(g.Config.Kinds, " | "),
	}
}

// Render executes the templates for package pkgName into Buf and formats the
// result.
func (g *Generator) Render(pkgName string) error {
	data := g.Data(pkgName)
	g.Buf.Reset()
	if err := headerTmpl.Execute(&g.Buf, data); err != nil {
		return fmt.Errorf("failed to execute header template: %w", err)
	}
	if err := unionTmpl.Execute(&g.Buf, data); err != nil {
		return fmt.Errorf("failed to execute union template: %w", err)
	}
	src, err := imports.Process(g.Config.output(), g.Buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("failed to format generated code: %w\n%s", err, g.Buf.String())
	}
	g.Buf.Reset()
	g.Buf.Write(src)
	return nil
}

// Write writes Buf to the output file.
func (g *Generator) Write() error {
	path := filepath.Join(g.Config.Dir, g.Config.output())
	if err := os.WriteFile(path, g.Buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
