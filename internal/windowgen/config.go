package windowgen

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// DefaultOutput is the file name used when Config.Output is empty.
const DefaultOutput = "zz_windowunion.go"

// Config describes one union to generate.
type Config struct {
	// Dir is the directory of the package that declares the window kinds.
	Dir string
	// Output is the generated file name, relative to Dir.
	Output string
	// Type is the name of the generated union type.
	Type string
	// App, Content and Theme are the type expressions of the window
	// contract's type arguments, as written in the target package
	// (for example "*State", "string", "theme.Theme").
	App     string
	Content string
	Theme   string
	// Kinds lists the window kind type names, in declaration order.
	Kinds []string
	// Imports lists extra import paths the type expressions need.
	Imports []string
	// Command is recorded in the generated header.
	Command string
}

// Validate checks the configuration before any package is loaded.
func (c *Config) Validate() error {
	if c.Type == "" {
		return errors.New("union type name is required")
	}
	if !token.IsIdentifier(c.Type) || !token.IsExported(c.Type) {
		return fmt.Errorf("union type name %q must be an exported identifier", c.Type)
	}
	for name, expr := range map[string]string{"app": c.App, "content": c.Content, "theme": c.Theme} {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("%s type is required", name)
		}
	}
	if len(c.Kinds) == 0 {
		return errors.New("at least one window kind is required")
	}
	if len(c.Kinds) > 255 {
		return fmt.Errorf("too many window kinds (%d, max 255)", len(c.Kinds))
	}
	seen := make(map[string]struct{}, len(c.Kinds))
	for _, kind := range c.Kinds {
		if !token.IsIdentifier(kind) {
			return fmt.Errorf("window kind %q is not a valid identifier", kind)
		}
		if kind == c.Type {
			return fmt.Errorf("window kind %q collides with the union type name", kind)
		}
		if _, dup := seen[kind]; dup {
			return fmt.Errorf("window kind %q declared twice", kind)
		}
		seen[kind] = struct{}{}
	}
	return nil
}

func (c *Config) output() string {
	if c.Output == "" {
		return DefaultOutput
	}
	return c.Output
}
