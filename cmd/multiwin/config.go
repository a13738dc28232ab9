package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/multiwin/internal/app"
	"github.com/1broseidon/multiwin/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  multiwin config init [--path PATH]")
	fmt.Fprintln(w, "  multiwin config validate [--path PATH]")
	fmt.Fprintln(w, "  multiwin config print [--path PATH] [--defaults]")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	switch args[0] {
	case "init":
		return runConfigInit(args[1:])
	case "validate":
		return runConfigValidate(args[1:])
	case "print":
		return runConfigPrint(args[1:])
	case "help", "-h", "--help":
		printConfigUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}

func loadConfigAt(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runConfigValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/multiwin/config.yaml)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	res, err := loadConfigAt(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := res.Config.ValidateKinds(app.Kinds()); err != nil {
		fmt.Fprintln(os.Stderr, res.AttachSource(err))
		return 1
	}
	fmt.Println("config: ok")
	return 0
}

func runConfigPrint(args []string) int {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/multiwin/config.yaml)")
	defaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg := config.DefaultConfig()
	if !*defaults {
		res, err := loadConfigAt(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, f := range res.Files {
			fmt.Printf("# source: %s\n", f)
		}
		cfg = res.Config
	}
	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Print(string(data))
	return 0
}

func runConfigInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/multiwin/config.yaml)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	target := *path
	if target == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		target = p
	}

	// Start from what is already there so init doubles as an editor.
	res, err := config.LoadFromPath(target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	answers := config.AnswersFrom(res.Config)
	if err := config.NewInitForm(answers, app.Kinds()).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg := answers.Apply(res.Config)
	if err := cfg.Save(target); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("wrote %s\n", target)
	return 0
}
