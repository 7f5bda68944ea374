package dirsize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// ErrInvalidArgument reports a misconfiguration or an unusable root path.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIO reports a failure to read a directory that was discovered during the walk.
	ErrIO = errors.New("i/o error")
)

// Entry describes a single filesystem object.
type Entry struct {
	// Name is the base name of the entry.
	Name string
	// IsFile is true for regular files.
	IsFile bool
	// IsDir is true for directories.
	IsDir bool
	// Size is the byte length of a regular file, 0 otherwise.
	Size int64
	// CanonicalPath is the absolute, cleaned path of the entry.
	CanonicalPath string
	// Readable is true if a directory can be listed and its children described.
	Readable bool
	// Err is set when the entry could not be described. Such an entry is
	// neither a file nor a directory.
	Err error
}

// FileSystem is the filesystem capability used by the Calculator.
type FileSystem interface {
	// Stat describes the object at path itself.
	Stat(path string) (Entry, error)
	// ListEntries describes the direct children of the directory at path.
	ListEntries(path string) ([]Entry, error)
}

// OSFileSystem implements FileSystem on top of the os package.
type OSFileSystem struct {
	// FollowSymlinks resolves symbolic links to their targets.
	// When false, symlinks are reported as neither file nor directory.
	FollowSymlinks bool
}

// Stat describes the object at path.
func (o OSFileSystem) Stat(path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: resolving absolute path %q: %w", ErrIO, path, err)
	}

	if o.FollowSymlinks {
		if abs, err = filepath.EvalSymlinks(abs); err != nil {
			return Entry{}, fmt.Errorf("%w: resolving symlinks of %q: %w", ErrIO, path, err)
		}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: accessing path %q: %w", ErrIO, path, err)
	}

	return o.describe(abs, info), nil
}

// ListEntries reads the directory at path and describes each child.
// Children that vanish between listing and stat are left out; children that
// cannot be described are returned with Err set.
func (o OSFileSystem) ListEntries(path string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading directory %q: %w", ErrIO, path, err)
	}

	entries := make([]Entry, 0, len(dirEntries))

	for _, d := range dirEntries { //nolint:varnamelen // d is standard for DirEntry
		childPath := filepath.Join(path, d.Name())

		var (
			info    fs.FileInfo
			infoErr error
		)

		if o.FollowSymlinks && d.Type()&fs.ModeSymlink != 0 {
			var resolved string

			resolved, infoErr = filepath.EvalSymlinks(childPath)
			if infoErr == nil {
				childPath = resolved
				info, infoErr = os.Stat(childPath)
			}
		} else {
			info, infoErr = d.Info()
		}

		// Entries removed since the listing are not part of the tree
		if errors.Is(infoErr, fs.ErrNotExist) {
			continue
		}

		if infoErr != nil {
			entries = append(entries, Entry{
				Name:          d.Name(),
				CanonicalPath: childPath,
				Err:           fmt.Errorf("%w: describing %q: %w", ErrIO, childPath, infoErr),
			})

			continue
		}

		entry := o.describe(childPath, info)
		entry.Name = d.Name()
		entries = append(entries, entry)
	}

	return entries, nil
}

// describe builds an Entry for path from info.
func (o OSFileSystem) describe(path string, info fs.FileInfo) Entry {
	entry := Entry{
		Name:          info.Name(),
		CanonicalPath: filepath.Clean(path),
	}

	switch mode := info.Mode(); {
	case mode.IsRegular():
		entry.IsFile = true
		entry.Size = info.Size()
		entry.Readable = true
	case mode.IsDir():
		entry.IsDir = true
		entry.Readable = canList(path)
	}

	return entry
}
