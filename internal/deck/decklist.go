// Package deck reads decklists and builds them into commander decks.
package deck

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// CommanderMarker flags a decklist line as a commander.
const CommanderMarker = "*CMDR*"

var (
	// ErrMalformedDecklistLine is wrapped by LineError.
	ErrMalformedDecklistLine = errors.New("malformed decklist line")

	// ErrEmptyDecklist is returned when a decklist has no card entries.
	ErrEmptyDecklist = errors.New("decklist is empty")
)

// LineError reports a decklist line that could not be split into a
// quantity and a card name.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Entry is one decklist line.
type Entry struct {
	Quantity  int    `json:"quantity" yaml:"count"`
	Name      string `json:"name" yaml:"name"`
	Commander bool   `json:"commander,omitempty" yaml:"commander,omitempty"`
	Line      int    `json:"line,omitempty" yaml:"-"`
}

// Decklist is a parsed decklist. Invalid lines are kept so callers can
// report them.
type Decklist struct {
	Name    string       `json:"name" yaml:"name"`
	Entries []Entry      `json:"cards" yaml:"cards"`
	Invalid []*LineError `json:"-" yaml:"-"`
}

// Requested returns the total number of copies the decklist asks for.
func (d *Decklist) Requested() int {
	var n int
	for _, e := range d.Entries {
		n += e.Quantity
	}
	return n
}

// Fingerprint identifies the decklist's contents independent of line order
// and formatting.
func (d *Decklist) Fingerprint() string {
	counts := make(map[string]int, len(d.Entries))
	for _, e := range d.Entries {
		key := e.Name
		if e.Commander {
			key = CommanderMarker + key
		}
		counts[key] += e.Quantity
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h, _ := blake2b.New256(nil)
	for _, k := range keys {
		fmt.Fprintf(h, "%d %s\n", counts[k], k)
	}
	return hex.EncodeToString(h.Sum(nil))
}

var (
	// "4 Card Name", "4x Card Name"
	leadingQuantity = regexp.MustCompile(`^(\d+)x?\s+(.+)$`)
	// "Card Name x4"
	trailingQuantity = regexp.MustCompile(`^(.+?)\s+x(\d+)$`)
	// " (C21) 263" set code and collector number from Arena-style exports
	setSuffix = regexp.MustCompile(`\s+\([A-Za-z0-9]{2,6}\)(?:\s+\S+)?$`)
)

// ParseLine splits one decklist line. ok is false for lines that carry no
// entry: blanks and comments.
func ParseLine(line string) (entry Entry, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
		return Entry{}, false, nil
	}

	if strings.Contains(line, CommanderMarker) {
		entry.Commander = true
		line = strings.TrimSpace(strings.ReplaceAll(line, CommanderMarker, ""))
	}

	var qty, name string
	if m := leadingQuantity.FindStringSubmatch(line); m != nil {
		qty, name = m[1], m[2]
	} else if m := trailingQuantity.FindStringSubmatch(line); m != nil {
		name, qty = m[1], m[2]
	} else {
		return Entry{}, false, ErrMalformedDecklistLine
	}

	n, err := strconv.Atoi(qty)
	if err != nil || n < 1 {
		return Entry{}, false, ErrMalformedDecklistLine
	}

	name = strings.TrimSpace(setSuffix.ReplaceAllString(name, ""))
	if name == "" {
		return Entry{}, false, ErrMalformedDecklistLine
	}

	entry.Quantity = n
	entry.Name = name
	return entry, true, nil
}

// section headers written by common deck exporters
var sectionHeaders = map[string]bool{
	"commander": true,
	"deck":      true,
	"main":      true,
	"mainboard": true,
	"library":   true,
}

// ParseText reads a plain-text decklist. Every entry under a "Commander"
// header, up to the next header or blank line, is a commander.
func ParseText(name string, r io.Reader) (*Decklist, error) {
	list := &Decklist{Name: name}
	inCommander := false

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		text := scanner.Text()
		trimmed := strings.TrimSpace(text)

		header := strings.ToLower(strings.TrimSuffix(trimmed, ":"))
		if sectionHeaders[header] {
			inCommander = header == "commander"
			continue
		}
		if trimmed == "" {
			inCommander = false
			continue
		}

		entry, ok, err := ParseLine(text)
		if err != nil {
			list.Invalid = append(list.Invalid, &LineError{Line: lineNo, Text: trimmed, Err: err})
			continue
		}
		if !ok {
			continue
		}
		entry.Line = lineNo
		entry.Commander = entry.Commander || inCommander
		list.Entries = append(list.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read decklist: %w", err)
	}

	if len(list.Entries) == 0 {
		return list, ErrEmptyDecklist
	}
	return list, nil
}

// ParseLines reads a decklist given as separate lines.
func ParseLines(name string, lines []string) (*Decklist, error) {
	return ParseText(name, strings.NewReader(strings.Join(lines, "\n")))
}

// ParseYAML reads a YAML decklist:
//
//	name: Atraxa Counters
//	cards:
//	  - name: Atraxa, Praetors' Voice
//	    commander: true
//	  - name: Forest
//	    count: 10
//
// A missing count means one copy.
func ParseYAML(r io.Reader) (*Decklist, error) {
	var list Decklist
	if err := yaml.NewDecoder(r).Decode(&list); err != nil {
		if errors.Is(err, io.EOF) {
			return &list, ErrEmptyDecklist
		}
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	entries := list.Entries[:0]
	for i, e := range list.Entries {
		e.Name = strings.TrimSpace(e.Name)
		if e.Quantity == 0 {
			e.Quantity = 1
		}
		if e.Name == "" || e.Quantity < 0 {
			list.Invalid = append(list.Invalid, &LineError{
				Line: i + 1,
				Text: fmt.Sprintf("%d %s", e.Quantity, e.Name),
				Err:  ErrMalformedDecklistLine,
			})
			continue
		}
		e.Line = i + 1
		entries = append(entries, e)
	}
	list.Entries = entries

	if len(list.Entries) == 0 {
		return &list, ErrEmptyDecklist
	}
	return &list, nil
}

// LoadFile reads a decklist file. .yaml and .yml files are read as YAML,
// everything else as plain text. The file name without extension is the
// default deck name.
func LoadFile(path string) (*Decklist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open decklist: %w", err)
	}
	defer func() { _ = f.Close() }()

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	if IsYAML(path) {
		list, err := ParseYAML(f)
		if list != nil && list.Name == "" {
			list.Name = name
		}
		return list, err
	}
	return ParseText(name, f)
}

// IsYAML reports whether path names a YAML decklist.
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// IsDecklist reports whether path has a decklist extension.
func IsDecklist(path string) bool {
	return IsYAML(path) || strings.EqualFold(filepath.Ext(path), ".txt")
}

// FindFiles returns the decklist files directly inside dir, sorted by name.
func FindFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsDecklist(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
