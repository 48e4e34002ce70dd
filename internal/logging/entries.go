package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"
)

// Entry is one decoded line of debug.log.
type Entry struct {
	Time      time.Time      `json:"time"`
	Level     string         `json:"level"`
	Message   string         `json:"msg"`
	Component string         `json:"component,omitempty"`
	Slug      string         `json:"slug,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// String renders the entry as a single human-readable line.
func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s", e.Time.Format("15:04:05.000"), e.Level)
	if e.Component != "" {
		fmt.Fprintf(&b, " [%s]", e.Component)
	}
	if e.Slug != "" {
		fmt.Fprintf(&b, " (%s)", e.Slug)
	}
	b.WriteString(" ")
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Attrs[k])
	}
	return b.String()
}

// Filter selects entries. Zero fields match everything.
type Filter struct {
	// Level keeps entries at or above this severity.
	Level     string
	Component string
	Slug      string
	Contains  string
}

var levelOrder = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Match reports whether e passes every set criterion.
func (f Filter) Match(e Entry) bool {
	if f.Level != "" && levelOrder[strings.ToUpper(e.Level)] < levelOrder[ParseLevel(f.Level)] {
		return false
	}
	if f.Component != "" && e.Component != f.Component {
		return false
	}
	if f.Slug != "" && e.Slug != f.Slug {
		return false
	}
	if f.Contains != "" && !strings.Contains(strings.ToLower(e.Message), strings.ToLower(f.Contains)) {
		return false
	}
	return true
}

// Apply returns the entries f matches, preserving order.
func (f Filter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// ReadEntries loads debug.log and its rotated backups from dir, sorted by
// time. Lines that are not JSON objects are skipped.
func ReadEntries(dir string) ([]Entry, error) {
	base := filepath.Join(dir, LogFileName)
	paths := []string{base}
	for i := 1; ; i++ {
		p := backupName(base, i)
		if _, err := os.Stat(p); err != nil {
			break
		}
		paths = append(paths, p)
	}

	var entries []Entry
	found := false
	for _, p := range paths {
		got, err := readEntryFile(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = true
		entries = append(entries, got...)
	}
	if !found {
		return nil, fmt.Errorf("no %s in %s: %w", LogFileName, dir, os.ErrNotExist)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})
	return entries, nil
}

func readEntryFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if e, ok := parseEntry(line); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return entries, nil
}

func parseEntry(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}

	var e Entry
	for k, v := range raw {
		s, _ := v.(string)
		switch k {
		case "time":
			e.Time, _ = time.Parse(time.RFC3339Nano, s)
		case "level":
			e.Level = s
		case "msg":
			e.Message = s
		case "component":
			e.Component = s
		case "slug":
			e.Slug = s
		default:
			if e.Attrs == nil {
				e.Attrs = make(map[string]any)
			}
			e.Attrs[k] = v
		}
	}
	return e, true
}
