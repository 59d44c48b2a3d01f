package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrProjectSectionMissing indicates that [project] is missing in Veryl.toml.
	ErrProjectSectionMissing = errors.New("missing [project]")
	// ErrProjectNameMissing indicates that [project].name is missing in Veryl.toml.
	ErrProjectNameMissing = errors.New("missing [project].name")
)

// ClockType is the active edge assumed for plain `clock` signals.
type ClockType string

const (
	ClockPosedge ClockType = "posedge"
	ClockNegedge ClockType = "negedge"
)

// ResetType is the polarity and synchronicity assumed for plain `reset` signals.
type ResetType string

const (
	ResetAsyncHigh ResetType = "async_high"
	ResetAsyncLow  ResetType = "async_low"
	ResetSyncHigh  ResetType = "sync_high"
	ResetSyncLow   ResetType = "sync_low"
)

// Metadata is the part of Veryl.toml the analyzer uses.
type Metadata struct {
	Path       string // Veryl.toml
	Root       string // directory of Veryl.toml
	Name       string // project namespace
	Version    string
	ClockType  ClockType
	ResetType  ResetType
	SourceDirs []string // absolute source directories
	Exclude    []string // glob patterns relative to Root
	Unknown    []string // keys nobody reads, for logging
}

type manifestFile struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Build struct {
		ClockType string   `toml:"clock_type"`
		ResetType string   `toml:"reset_type"`
		Sources   []string `toml:"sources"`
		Exclude   []string `toml:"exclude"`
	} `toml:"build"`
}

// Load parses and validates the Veryl.toml at path.
func Load(path string) (*Metadata, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(path, raw); err != nil {
		return nil, err
	}

	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	name := strings.TrimSpace(cfg.Project.Name)
	if !meta.IsDefined("project", "name") || name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectNameMissing)
	}

	root := filepath.Dir(path)
	md := &Metadata{
		Path:      path,
		Root:      root,
		Name:      name,
		Version:   cfg.Project.Version,
		ClockType: ClockPosedge,
		ResetType: ResetAsyncLow,
		Exclude:   cfg.Build.Exclude,
	}
	if meta.IsDefined("build", "clock_type") {
		md.ClockType = ClockType(cfg.Build.ClockType)
	}
	if meta.IsDefined("build", "reset_type") {
		md.ResetType = ResetType(cfg.Build.ResetType)
	}

	sources := cfg.Build.Sources
	if !meta.IsDefined("build", "sources") {
		sources = []string{"."}
	}
	for _, s := range sources {
		dir, err := resolveSourceDir(root, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		md.SourceDirs = append(md.SourceDirs, dir)
	}

	for _, key := range meta.Undecoded() {
		md.Unknown = append(md.Unknown, key.String())
	}
	return md, nil
}

// Discover finds Veryl.toml above startDir and loads it. ok is false when
// there is no manifest.
func Discover(startDir string) (md *Metadata, ok bool, err error) {
	path, ok, err := FindVerylToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	md, err = Load(path)
	return md, true, err
}

// resolveSourceDir resolves a [build].sources entry relative to the project root.
func resolveSourceDir(root, dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if filepath.IsAbs(dir) {
		return "", fmt.Errorf("invalid source directory %q: must be relative", dir)
	}
	clean := filepath.Join(root, filepath.Clean(filepath.FromSlash(dir)))
	if !pathWithin(root, clean) {
		return "", fmt.Errorf("invalid source directory %q: escapes project root", dir)
	}
	return clean, nil
}
