package pipeline

import (
	"io/fs"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// DefaultFileMode is the mode of files that do not carry one.
const DefaultFileMode fs.FileMode = 0o644

// File is one entry of a FileSet.
type File struct {
	Contents []byte
	Mode     fs.FileMode
}

// FileSet is the in-memory set of files plugins read and produce, keyed by
// slash-separated paths relative to the source directory. It is safe for
// concurrent use.
type FileSet struct {
	mu    sync.Mutex
	files map[string]*File
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{files: make(map[string]*File)}
}

// NormalizePath returns the key a path is stored under: slash-separated,
// cleaned, and without a leading "./" or "/".
func NormalizePath(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// Get returns a copy of the file stored at p.
func (s *FileSet) Get(p string) (File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[NormalizePath(p)]
	if !ok {
		return File{}, false
	}
	return File{Contents: slices.Clone(f.Contents), Mode: f.Mode}, true
}

// Has reports whether a file is stored at p.
func (s *FileSet) Has(p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[NormalizePath(p)]
	return ok
}

// Set stores contents at p, replacing any existing file.
func (s *FileSet) Set(p string, contents []byte) {
	s.SetFile(p, File{Contents: contents, Mode: DefaultFileMode})
}

// SetFile stores f at p, replacing any existing file.
func (s *FileSet) SetFile(p string, f File) {
	if f.Mode == 0 {
		f.Mode = DefaultFileMode
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[NormalizePath(p)] = &f
}

// Delete removes the file at p.
func (s *FileSet) Delete(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, NormalizePath(p))
}

// Len returns the number of files.
func (s *FileSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Paths returns the stored paths in sorted order.
func (s *FileSet) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.files))
}

// RewriteFunc returns the new contents of a file and whether they changed.
type RewriteFunc func(path string, contents []byte) ([]byte, bool)

// Rewrite applies fn to every file whose path matches, in path order, and
// stores the result when fn reports a change. match may be nil to select
// every file. The set is locked for each file separately, so files added
// concurrently may or may not be visited. Rewrite returns the number of
// files changed.
func (s *FileSet) Rewrite(match func(path string) bool, fn RewriteFunc) int {
	changed := 0
	for _, p := range s.Paths() {
		if match != nil && !match(p) {
			continue
		}
		if s.rewriteOne(p, fn) {
			changed++
		}
	}
	return changed
}

func (s *FileSet) rewriteOne(p string, fn RewriteFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[p]
	if !ok {
		return false
	}
	out, changed := fn(p, f.Contents)
	if changed {
		s.files[p] = &File{Contents: out, Mode: f.Mode}
	}
	return changed
}

// HasExt returns a Rewrite matcher selecting paths with extension ext.
func HasExt(ext string) func(string) bool {
	return func(p string) bool { return path.Ext(p) == ext }
}
