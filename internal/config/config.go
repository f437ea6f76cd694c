// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/joe/multidup/internal/dupengine"
	"github.com/joe/multidup/pkg/filesystem"
)

// Exported variables.
var (
	ErrNoDestinations  = dupengine.ErrNoDestinations
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrNoMatches       = errors.New("pattern matched no directories")
)

// Config holds the application configuration
type Config struct {
	Source       string   `arg:"positional,required" placeholder:"SOURCE" help:"File to copy: a local path or sftp://user@host[:port]/path"`
	Destinations []string `arg:"positional" placeholder:"DEST" help:"Destination files; an existing directory receives a copy named after SOURCE"`
	Into         []string `arg:"--into,separate" placeholder:"PATTERN" help:"Copy into every directory matching this glob (** allowed); repeatable"`
	Plain        bool     `arg:"--plain" help:"Print progress lines instead of the interactive display"`
	LogPath      string   `arg:"--log" placeholder:"FILE" help:"Write a debug log to FILE"`
	LogLevel     string   `arg:"--log-level" default:"info" help:"Log level: debug|info|warn|error"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Copy one file to many destinations at once, with live progress for each"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "multidup 1.0.0"
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{
		LogLevel: "info",
	}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig validates a parsed config and expands its destinations:
// directories become DIR/basename(SOURCE) and --into patterns are matched and
// appended, sorted, after the positional destinations.
func PostProcessConfig(cfg *Config) (*Config, error) {
	err := validateLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	err = ValidatePath(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("invalid source: %w", err)
	}

	local := filesystem.NewRealFileSystem()
	name := SourceName(cfg.Source)
	destinations := make([]string, 0, len(cfg.Destinations))

	for _, dest := range cfg.Destinations {
		err := ValidatePath(dest)
		if err != nil {
			return nil, fmt.Errorf("invalid destination %s: %w", dest, err)
		}

		destinations = append(destinations, intoDirectory(local, dest, name))
	}

	for _, pattern := range cfg.Into {
		matches, err := expandPattern(local, pattern)
		if err != nil {
			return nil, err
		}

		for _, dir := range matches {
			destinations = append(destinations, filepath.Join(dir, name))
		}
	}

	if len(destinations) == 0 {
		return nil, ErrNoDestinations
	}

	resolved := *cfg
	resolved.Destinations = destinations

	return &resolved, nil
}

// SourceName returns the file name copies are given inside destination directories.
func SourceName(source string) string {
	if filesystem.IsSFTPURL(source) {
		parsed, err := filesystem.ParsePath(source)
		if err == nil {
			return path.Base(parsed.Path)
		}
	}

	return filepath.Base(source)
}

// ValidatePath checks that p is a usable local path or a well-formed SFTP URL.
func ValidatePath(p string) error {
	if strings.TrimSpace(p) == "" {
		return errors.New("path is empty") //nolint:err113 // Simple validation error
	}

	_, err := filesystem.ParsePath(p)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", p, err)
	}

	return nil
}

// expandPattern returns the sorted directories matching a doublestar pattern.
func expandPattern(local filesystem.FileSystem, pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid --into pattern %q: %w", pattern, err)
	}

	dirs := make([]string, 0, len(matches))

	for _, match := range matches {
		info, err := local.Stat(match)
		if err == nil && info.IsDir() {
			dirs = append(dirs, match)
		}
	}

	if len(dirs) == 0 {
		return nil, fmt.Errorf("--into %q: %w", pattern, ErrNoMatches)
	}

	sort.Strings(dirs)

	return dirs, nil
}

// intoDirectory maps an existing local directory to DIR/name and leaves anything else alone.
func intoDirectory(local filesystem.FileSystem, dest, name string) string {
	if filesystem.IsSFTPURL(dest) {
		return dest
	}

	info, err := local.Stat(dest)
	if err != nil || !info.IsDir() {
		return dest
	}

	return filepath.Join(dest, name)
}

func validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("%w: %s (valid: debug, info, warn, error)", ErrInvalidLogLevel, level)
	}
}
