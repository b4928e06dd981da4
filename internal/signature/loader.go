package signature

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ostafen/sigscan/internal/search"
	"gopkg.in/yaml.v3"
)

const (
	fieldSeparator = ";"
	commentPrefix  = "#"
)

// EntryError reports a row of a signature source that could not be parsed.
type EntryError struct {
	Line int
	Text string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// ParseEntry parses a `priority;pattern;name` row. Every double quote in
// the row is removed before splitting, so quoted fields are accepted.
func ParseEntry(line string) (Entry, error) {
	fields := strings.Split(strings.ReplaceAll(line, `"`, ""), fieldSeparator)
	if len(fields) != 3 {
		return Entry{}, fmt.Errorf("%w: expected 3 fields, found %d", ErrMalformedEntry, len(fields))
	}

	priority, err := strconv.Atoi(fields[0])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: invalid priority %q", ErrMalformedEntry, fields[0])
	}
	if fields[2] == "" {
		return Entry{}, fmt.Errorf("%w: missing name", ErrMalformedEntry)
	}

	return Entry{
		Priority: priority,
		Pattern:  []byte(fields[1]),
		Name:     fields[2],
	}, nil
}

// ParseEntries reads one entry per line. Blank lines and lines starting
// with '#' are skipped. The whole read fails on the first bad row.
func ParseEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	for sc.Scan() {
		lineNum++

		line := strings.TrimRight(sc.Text(), "\r")
		if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}

		e, err := ParseEntry(line)
		if err != nil {
			return nil, &EntryError{Line: lineNum, Text: line, Err: err}
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read signatures: %w", err)
	}
	return entries, nil
}

type yamlSignature struct {
	Priority *int   `yaml:"priority"`
	Pattern  string `yaml:"pattern"`
	Hex      string `yaml:"hex"`
	Name     string `yaml:"name"`
}

type yamlSignaturesFile struct {
	Signatures []yamlSignature `yaml:"signatures"`
}

// ParseYAML reads a signature list of the form:
//
//	signatures:
//	  - priority: 10
//	    hex: 504b0304
//	    name: ZIP
//	  - priority: 5
//	    pattern: GIF8
//	    name: GIF
//
// Exactly one of pattern and hex must be set.
func ParseYAML(data []byte) ([]Entry, error) {
	var file yamlSignaturesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrMalformedEntry, err)
	}

	entries := make([]Entry, 0, len(file.Signatures))
	for i, s := range file.Signatures {
		e, err := convertYAMLSignature(s)
		if err != nil {
			return nil, &EntryError{Line: i + 1, Text: s.Name, Err: err}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func convertYAMLSignature(s yamlSignature) (Entry, error) {
	if s.Priority == nil {
		return Entry{}, fmt.Errorf("%w: missing priority", ErrMalformedEntry)
	}
	if s.Name == "" {
		return Entry{}, fmt.Errorf("%w: missing name", ErrMalformedEntry)
	}
	if s.Pattern != "" && s.Hex != "" {
		return Entry{}, fmt.Errorf("%w: pattern and hex are mutually exclusive", ErrMalformedEntry)
	}

	pattern := []byte(s.Pattern)
	if s.Hex != "" {
		b, err := hex.DecodeString(strings.ReplaceAll(s.Hex, " ", ""))
		if err != nil {
			return Entry{}, fmt.Errorf("%w: invalid hex pattern: %v", ErrMalformedEntry, err)
		}
		pattern = b
	}

	return Entry{
		Priority: *s.Priority,
		Pattern:  pattern,
		Name:     s.Name,
	}, nil
}

// Load reads a signature file and builds the database. Files with a
// .yaml or .yml extension are parsed as YAML, anything else as
// delimited text.
func Load(path string, cfg search.Config) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signature file %q: %w", path, err)
	}

	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		entries, err = ParseYAML(data)
	default:
		entries, err = ParseEntries(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	db, err := Build(entries, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}
