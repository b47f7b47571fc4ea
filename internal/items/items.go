// Package items loads practice sentence sets from files.
package items

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Item is one practice sentence.
type Item struct {
	ID   int
	Text string
}

// LoadSet reads one sentence per line from path. Blank lines and lines
// starting with '#' are skipped; IDs number the kept lines from 1.
func LoadSet(path string) ([]Item, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only set.
			_ = cerr
		}
	}()

	var out []Item
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, Item{ID: len(out) + 1, Text: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("practice set is empty")
	}
	return out, nil
}

// ListSets returns the names of the *.txt sets in dir, sorted.
func ListSets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

// WriteSet writes sentences to path, one per line, replacing it atomically.
func WriteSet(path string, sentences []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create set dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "set-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp set: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, sentence := range sentences {
		if _, err := fmt.Fprintln(writer, sentence); err != nil {
			return fmt.Errorf("failed to write set: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush set: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close set: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write set: %w", err)
	}
	return nil
}
