package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source is where a config value was last written.
type Source struct {
	Kind   SourceKind
	Name   string
	File   string
	Line   int
	Column int
}

func (s Source) String() string {
	if s.Kind != SourceFile {
		return string(s.Kind)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// LoadResult is a loaded config plus where its values came from.
type LoadResult struct {
	Config *Config
	// Sources maps dotted YAML paths ("windows.log.size") to the file
	// position that set them last.
	Sources map[string]Source
	// Files lists every file read, includes first.
	Files []string
}

func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "multiwin", "config.yaml"), nil
}

// Load reads the merged configuration from the standard location.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources is Load, keeping the per-value sources.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and its includes. A missing file yields the
// defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &fileLoader{
		visited: map[string]bool{},
		sources: map[string]Source{},
	}

	var raw RawConfig
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if raw, err = l.load(path); err != nil {
			return nil, err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	res := &LoadResult{
		Config:  BuildEffectiveConfig(raw),
		Sources: l.sources,
		Files:   l.files,
	}
	if err := res.Config.Validate(); err != nil {
		return nil, res.AttachSource(err)
	}
	return res, nil
}

// AttachSource adds file:line:col context from res to a validation error
// produced after loading, such as by ValidateKinds.
func (res *LoadResult) AttachSource(err error) error {
	var verr *ValidationError
	if res == nil || !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := res.Sources[verr.Path]; ok {
		verr.Source = src
	}
	return err
}

// fileLoader merges a config file with everything it includes. Included
// files apply first so the including file wins.
type fileLoader struct {
	visited map[string]bool
	chain   []string
	sources map[string]Source
	files   []string
}

func (l *fileLoader) load(path string) (RawConfig, error) {
	file := resolve(path)
	if i := slices.Index(l.chain, file); i >= 0 {
		cycle := append(slices.Clone(l.chain[i:]), file)
		return RawConfig{}, fmt.Errorf("include cycle detected: %s", strings.Join(cycle, " -> "))
	}
	// A file reached twice through different includes merges once.
	if l.visited[file] {
		return RawConfig{}, nil
	}
	l.visited[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return RawConfig{}, fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawConfig{}, fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	var own RawConfig
	if err := decodeStrict(data, &own); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", file, err)
	}
	positions := map[string]Source{}
	if len(doc.Content) > 0 {
		walkPositions(doc.Content[0], file, "", positions)
	}

	l.chain = append(l.chain, file)
	defer func() { l.chain = l.chain[:len(l.chain)-1] }()

	var merged RawConfig
	for i, inc := range own.Include {
		pos := positions["include"]
		if p, ok := positions["include["+strconv.Itoa(i)+"]"]; ok {
			pos = p
		}
		targets, err := includeTargets(file, inc)
		if err != nil {
			return RawConfig{}, fmt.Errorf("%s: include %q: %w", pos, inc, err)
		}
		for _, target := range targets {
			sub, err := l.load(target)
			if err != nil {
				return RawConfig{}, err
			}
			merged = merged.merge(sub)
		}
	}

	for p, src := range positions {
		l.sources[p] = src
	}
	l.files = append(l.files, file)
	return merged.merge(own), nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// resolve returns the absolute, symlink-free form of path when it can.
func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// includeTargets expands one include entry relative to the including file.
// A directory expands to its *.yaml and *.yml files in name order.
func includeTargets(from, include string) ([]string, error) {
	if include == "" {
		return nil, errors.New("path is empty")
	}
	if include == "~" || strings.HasPrefix(include, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		include = filepath.Join(home, strings.TrimPrefix(include, "~"))
	}
	if !filepath.IsAbs(include) {
		include = filepath.Join(filepath.Dir(from), include)
	}

	info, err := os.Stat(include)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{include}, nil
	}
	entries, err := os.ReadDir(include)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, ent := range entries {
		switch strings.ToLower(filepath.Ext(ent.Name())) {
		case ".yaml", ".yml":
			if !ent.IsDir() {
				out = append(out, filepath.Join(include, ent.Name()))
			}
		}
	}
	slices.Sort(out)
	return out, nil
}

// walkPositions records the position of every mapping value under its
// dotted path, and of sequence items as path[i].
func walkPositions(node *yaml.Node, file, prefix string, out map[string]Source) {
	at := func(n *yaml.Node) Source {
		return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
	}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			path := node.Content[i].Value
			if prefix != "" {
				path = prefix + "." + path
			}
			val := node.Content[i+1]
			out[path] = at(val)
			walkPositions(val, file, path, out)
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			out[prefix+"["+strconv.Itoa(i)+"]"] = at(item)
		}
	}
}
