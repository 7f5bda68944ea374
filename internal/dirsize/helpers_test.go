package dirsize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const terminationTimeout = 30 * time.Second

// writeFile creates a file of size bytes at path.
func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", size)), 0o644))
}

// flatTree creates one file plus a subdirectory with ten files, all of fileSize bytes.
func flatTree(t *testing.T, root string, fileSize int) int64 {
	t.Helper()

	writeFile(t, filepath.Join(root, "createdFile"), fileSize)

	sub := filepath.Join(root, "subFolder")
	require.NoError(t, os.Mkdir(sub, 0o755))

	const numFiles = 10
	for i := range numFiles {
		writeFile(t, filepath.Join(sub, fmt.Sprint(i)), fileSize)
	}

	return int64(fileSize) * (numFiles + 1)
}

// deepTree creates a chain of depth nested directories with one file of fileSize bytes in each.
func deepTree(t *testing.T, root string, depth, fileSize int) int64 {
	t.Helper()

	current := root
	for i := range depth {
		current = filepath.Join(current, fmt.Sprintf("subFolder%d", i))
		require.NoError(t, os.Mkdir(current, 0o755))
		writeFile(t, filepath.Join(current, fmt.Sprint(i)), fileSize)
	}

	return int64(depth) * int64(fileSize)
}

// computeWithin runs ComputeTotalSize and fails the test if it does not return in time.
func computeWithin(t *testing.T, calc *Calculator, root string) (int64, error) {
	t.Helper()

	type result struct {
		total int64
		err   error
	}

	done := make(chan result, 1)

	go func() {
		total, err := calc.ComputeTotalSize(root)
		done <- result{total: total, err: err}
	}()

	select {
	case r := <-done:
		return r.total, r.err
	case <-time.After(terminationTimeout):
		t.Fatalf("traversal of %q did not terminate within %v", root, terminationTimeout)

		return 0, nil
	}
}

// memFS is an in-memory FileSystem. Directories are keyed by path.
type memFS struct {
	dirs    map[string][]Entry
	failing map[string]error
	listed  atomic.Int64
}

func newMemFS() *memFS {
	return &memFS{
		dirs:    make(map[string][]Entry),
		failing: make(map[string]error),
	}
}

// addDir registers a readable directory below parent ("" for the root).
func (m *memFS) addDir(parent, path string) {
	m.dirs[path] = m.dirs[path]

	if parent != "" {
		m.dirs[parent] = append(m.dirs[parent], Entry{
			Name:          filepath.Base(path),
			IsDir:         true,
			CanonicalPath: path,
			Readable:      true,
		})
	}
}

// addUnreadableDir registers a directory entry below parent that cannot be opened.
func (m *memFS) addUnreadableDir(parent, path string) {
	m.dirs[parent] = append(m.dirs[parent], Entry{
		Name:          filepath.Base(path),
		IsDir:         true,
		CanonicalPath: path,
	})
}

// addFile registers a file of size bytes in dir.
func (m *memFS) addFile(dir, name string, size int64) {
	m.dirs[dir] = append(m.dirs[dir], Entry{
		Name:          name,
		IsFile:        true,
		Size:          size,
		CanonicalPath: dir + "/" + name,
		Readable:      true,
	})
}

func (m *memFS) Stat(path string) (Entry, error) {
	if _, ok := m.dirs[path]; ok {
		return Entry{Name: filepath.Base(path), IsDir: true, CanonicalPath: path, Readable: true}, nil
	}

	for _, children := range m.dirs {
		for _, e := range children {
			if e.CanonicalPath == path {
				return e, nil
			}
		}
	}

	return Entry{}, fmt.Errorf("%w: %q: %w", ErrIO, path, os.ErrNotExist)
}

func (m *memFS) ListEntries(path string) ([]Entry, error) {
	m.listed.Add(1)

	if err, ok := m.failing[path]; ok {
		return nil, fmt.Errorf("%w: reading directory %q: %w", ErrIO, path, err)
	}

	children, ok := m.dirs[path]
	if !ok {
		return nil, fmt.Errorf("%w: reading directory %q: %w", ErrIO, path, os.ErrNotExist)
	}

	return children, nil
}

var errPermission = errors.New("permission denied")
