// Package history persists the URLs of previously viewed streams between sessions.
//
// The file is a hand-off buffer rather than a log: it is read once at startup and
// truncated, and the shutdown sequence writes the URLs worth carrying forward.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Set is a deduplicated collection of stream URLs.
type Set map[string]struct{}

// Sorted returns the URLs in lexical order.
func (s Set) Sorted() []string {
	urls := lo.Keys(s)
	sort.Strings(urls)
	return urls
}

// Store reads and appends the line-delimited history file at Path.
type Store struct {
	Path string
}

// New returns a store backed by the file at path.
func New(path string) *Store {
	return &Store{Path: path}
}

// Record appends url as a single line.
func (s *Store) Record(url string) error {
	url = strings.TrimSpace(url)
	if url == "" || strings.ContainsAny(url, "\n\r") {
		return fmt.Errorf("history: refusing to record %q", url)
	}

	f, err := filesystem.API().OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("history: open: %w", err)
	}

	if _, err := f.Write([]byte(url + "\n")); err != nil {
		_ = f.Close()
		return fmt.Errorf("history: append: %w", err)
	}
	return f.Close()
}

// Load reads every line of the file into a set and then truncates the file.
// A missing file is an empty history. Blank lines are skipped.
func (s *Store) Load() (Set, error) {
	set, exists, err := s.read()
	if err != nil || !exists {
		return set, err
	}

	if err := filesystem.API().WriteFile(s.Path, nil, 0o644); err != nil {
		return nil, fmt.Errorf("history: truncate: %w", err)
	}

	log.Infof("history: loaded %d urls from %s", len(set), s.Path)
	return set, nil
}

// Peek reads the file like Load but leaves it untouched.
func (s *Store) Peek() (Set, error) {
	set, _, err := s.read()
	return set, err
}

func (s *Store) read() (Set, bool, error) {
	set := make(Set)

	f, err := filesystem.API().Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("history: %s does not exist yet", s.Path)
			return set, false, nil
		}
		return nil, false, fmt.Errorf("history: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			set[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, true, fmt.Errorf("history: read: %w", err)
	}

	return set, true, nil
}

// Clear truncates the file without reading it.
func (s *Store) Clear() error {
	exists, err := filesystem.API().Exists(s.Path)
	if err != nil || !exists {
		return err
	}
	return filesystem.API().WriteFile(s.Path, nil, 0o644)
}

// Suggest returns the history URL that best completes a partial input.
// Prefix matches win over fuzzy matches, shorter URLs over longer ones.
func Suggest(set Set, partial string) mo.Option[string] {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return mo.None[string]()
	}

	matches := fuzzy.FindFold(partial, lo.Keys(set))
	if len(matches) == 0 {
		return mo.None[string]()
	}

	sort.Slice(matches, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(matches[i]), strings.ToLower(partial))
		pj := strings.HasPrefix(strings.ToLower(matches[j]), strings.ToLower(partial))
		if pi != pj {
			return pi
		}
		if len(matches[i]) != len(matches[j]) {
			return len(matches[i]) < len(matches[j])
		}
		return matches[i] < matches[j]
	})

	return mo.Some(matches[0])
}
