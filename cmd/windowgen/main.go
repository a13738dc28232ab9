// Command windowgen writes a closed window union for the window kinds of a
// package. It is meant to be run through go:generate:
//
//	//go:generate go run ../../cmd/windowgen -type AppWindow -app *State -content string -theme theme.Theme -kinds SettingsWindow,LogWindow
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/multiwin/internal/windowgen"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("windowgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", ".", "Directory of the package declaring the window kinds")
	output := fs.String("output", windowgen.DefaultOutput, "Generated file name, relative to -dir")
	typeName := fs.String("type", "", "Name of the generated union type")
	app := fs.String("app", "", "Application state type expression")
	content := fs.String("content", "", "Content type expression")
	theme := fs.String("theme", "", "Theme type expression")
	kinds := fs.String("kinds", "", "Comma-separated window kind type names")
	imports := fs.String("imports", "", "Comma-separated extra import paths used by the type expressions")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: windowgen -type <Union> -app <T> -content <T> -theme <T> -kinds <A,B,...> [flags]")
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return 2
	}

	cfg := &windowgen.Config{
		Dir:     *dir,
		Output:  *output,
		Type:    *typeName,
		App:     *app,
		Content: *content,
		Theme:   *theme,
		Kinds:   splitList(*kinds),
		Imports: splitList(*imports),
		Command: "windowgen " + strings.Join(args, " "),
	}
	if err := windowgen.Generate(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
