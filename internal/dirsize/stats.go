package dirsize

import (
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
)

// DirStat represents a directory and the size of the files directly inside it.
type DirStat struct {
	// Path is the directory path.
	Path string `json:"path"`
	// Size is the immediate size in bytes.
	Size int64 `json:"size"`
}

// Stats holds the results of one traversal.
type Stats struct {
	// Root is the canonical path of the traversed directory.
	Root string `json:"root"`
	// TotalBytes is the cumulative size of all files in the tree.
	TotalBytes int64 `json:"total_bytes"`
	// FileCount is the number of files counted.
	FileCount int64 `json:"file_count"`
	// DirCount is the number of directories processed.
	DirCount int64 `json:"dir_count"`
	// ErrorCount is the number of directories or entries that could not be read.
	ErrorCount int64 `json:"error_count"`
	// Workers is the size of the worker pool.
	Workers int `json:"workers"`
	// Elapsed is the duration of the traversal in milliseconds.
	Elapsed int64 `json:"elapsed_ms"`
	// TopN is the number of top directories tracked.
	TopN int `json:"top_n"`
	// TopDirs contains the N directories with the largest immediate size.
	TopDirs []DirStat `json:"top_dirs"`
}

// collector aggregates per-directory results from concurrent workers.
// Counters are atomic; the top-N list is protected by a mutex.
type collector struct {
	totalBytes atomic.Int64
	fileCount  atomic.Int64
	dirCount   atomic.Int64
	errorCount atomic.Int64

	topN int
	mu   sync.Mutex
	top  []DirStat // ascending by size, at most topN entries
}

// newCollector creates a collector tracking the topN largest directories.
func newCollector(topN int) *collector {
	return &collector{
		topN: topN,
		top:  make([]DirStat, 0, max(topN, 0)),
	}
}

// addError increments the error counter.
func (c *collector) addError() {
	c.errorCount.Add(1)
}

// addDir records a processed directory with its immediate size and file count.
func (c *collector) addDir(path string, size, files int64) {
	c.totalBytes.Add(size)
	c.fileCount.Add(files)
	c.dirCount.Add(1)

	if c.topN <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.top) == c.topN && size <= c.top[0].Size {
		return
	}

	i := sort.Search(len(c.top), func(i int) bool {
		return c.top[i].Size >= size
	})

	c.top = append(c.top, DirStat{})
	copy(c.top[i+1:], c.top[i:])
	c.top[i] = DirStat{Path: path, Size: size}

	// Drop the smallest once over capacity
	if len(c.top) > c.topN {
		c.top = c.top[1:]
	}
}

// finalize produces Stats from the collected data.
// Top directories are ordered smallest first and use slash separators.
func (c *collector) finalize() *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	topDirs := make([]DirStat, len(c.top))
	for i, d := range c.top {
		topDirs[i] = DirStat{Path: filepath.ToSlash(d.Path), Size: d.Size}
	}

	return &Stats{
		TotalBytes: c.totalBytes.Load(),
		FileCount:  c.fileCount.Load(),
		DirCount:   c.dirCount.Load(),
		ErrorCount: c.errorCount.Load(),
		TopN:       c.topN,
		TopDirs:    topDirs,
	}
}
