// Package walker enumerates candidate source files under a project root.
package walker

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// ErrRoot is matched by errors.Is for any failure to open the walk root.
var ErrRoot = errors.New("invalid root directory")

// FileSystemError reports a missing or unreadable root directory.
type FileSystemError struct {
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("root %s: %v", e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() []error {
	return []error{ErrRoot, e.Err}
}

// Walker yields files matching an extension allow-list, never descending into
// excluded directories.
type Walker struct {
	exclude    []string
	extensions map[string]struct{}
	gitignore  bool
	log        func(format string, args ...any)
}

// Option configures a Walker.
type Option func(*Walker)

// WithLogger sets a logger that reports skipped directories.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(w *Walker) { w.log = logf }
}

// WithGitIgnore makes the walk honor .gitignore files found in the root and
// in every directory below it.
func WithGitIgnore() Option {
	return func(w *Walker) { w.gitignore = true }
}

// New creates a Walker. exclude holds directory base names (glob patterns such
// as "*.egg-info" are also accepted); extensions are matched case-insensitively
// and may be given with or without the leading dot.
func New(exclude []string, extensions []string, opts ...Option) *Walker {
	w := &Walker{
		exclude:    append([]string(nil), exclude...),
		extensions: make(map[string]struct{}, len(extensions)),
	}
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.extensions[ext] = struct{}{}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Excluded reports whether a directory with the given base name is skipped.
func (w *Walker) Excluded(name string) bool {
	for _, pattern := range w.exclude {
		if pattern == name {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// Matches reports whether path has an allowed extension.
func (w *Walker) Matches(path string) bool {
	_, ok := w.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Files validates root and returns a lazy sequence of matching file paths in
// lexical traversal order. The root itself is never excluded. Entries that
// become unreadable during the walk are skipped.
func (w *Walker) Files(root string) (iter.Seq[string], error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &FileSystemError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &FileSystemError{Path: root, Err: errors.New("not a directory")}
	}
	f, err := os.Open(root)
	if err != nil {
		return nil, &FileSystemError{Path: root, Err: err}
	}
	_, err = f.ReadDir(1)
	f.Close()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &FileSystemError{Path: root, Err: err}
	}

	return func(yield func(string) bool) {
		var ign *gitIgnore
		if w.gitignore {
			ign = &gitIgnore{}
		}
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip inaccessible entries
			}
			if d.IsDir() {
				if path != root && w.Excluded(d.Name()) {
					w.skipped(path, "excluded")
					return filepath.SkipDir
				}
				if ign != nil {
					if path != root && ign.ignored(path, true) {
						w.skipped(path, "gitignored")
						return filepath.SkipDir
					}
					ign.load(path)
				}
				return nil
			}
			if !d.Type().IsRegular() || !w.Matches(path) {
				return nil
			}
			if ign != nil && ign.ignored(path, false) {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}, nil
}

func (w *Walker) skipped(path, reason string) {
	if w.log != nil {
		w.log("  Skipping directory: %s (%s)", path, reason)
	}
}
