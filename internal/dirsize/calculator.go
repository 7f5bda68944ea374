package dirsize

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/idelchi/dirsize/internal/clock"
)

// Config configures a Calculator.
type Config struct {
	// Workers is the number of workers used per traversal. Must be positive.
	Workers int
	// Clock supplies timestamps for elapsed time (nil = clock.System).
	Clock clock.Clock
	// FS is the filesystem to traverse (nil = OSFileSystem).
	FS FileSystem
	// Logger receives diagnostic output (nil = disabled).
	Logger *zerolog.Logger
	// TopN is the number of largest directories to track (0 = none).
	TopN int
}

// Calculator computes the total size of directory trees with a pool of workers.
// A Calculator can be reused; concurrent calls to ComputeTotalSize are serialized.
type Calculator struct {
	workers int
	clock   clock.Clock
	fs      FileSystem
	log     zerolog.Logger
	topN    int

	runMu sync.Mutex
	last  *Stats

	// pending counts directories enqueued but not yet fully processed.
	// The termination decision is taken under the same lock.
	pendingMu sync.Mutex
	pending   int

	stats *collector
}

// New creates a Calculator from cfg.
func New(cfg Config) (*Calculator, error) {
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("%w: number of workers must be positive, got %d", ErrInvalidArgument, cfg.Workers)
	}

	if cfg.TopN < 0 {
		return nil, fmt.Errorf("%w: top must not be negative, got %d", ErrInvalidArgument, cfg.TopN)
	}

	calc := &Calculator{
		workers: cfg.Workers,
		clock:   cfg.Clock,
		fs:      cfg.FS,
		log:     zerolog.Nop(),
		topN:    cfg.TopN,
	}

	if calc.clock == nil {
		calc.clock = clock.System{}
	}

	if calc.fs == nil {
		calc.fs = OSFileSystem{}
	}

	if cfg.Logger != nil {
		calc.log = cfg.Logger.With().Str("component", "dirsize").Logger()
	}

	return calc, nil
}

// ComputeTotalSize returns the total size in bytes of all files below root.
// It blocks until every directory of the tree has been processed.
//
// Root must be a readable directory; otherwise ErrInvalidArgument is returned
// before any worker starts. Directories that fail to list and entries that
// fail to stat during the walk are logged, counted in Stats.ErrorCount and
// contribute nothing to the total.
func (c *Calculator) ComputeTotalSize(root string) (int64, error) {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	entry, err := c.fs.Stat(root)
	if err != nil {
		return 0, fmt.Errorf("%w: root %q: %w", ErrInvalidArgument, root, err)
	}

	if !entry.IsDir {
		return 0, fmt.Errorf("%w: root %q is not a directory", ErrInvalidArgument, root)
	}

	if !entry.Readable {
		return 0, fmt.Errorf("%w: root %q is not readable", ErrInvalidArgument, root)
	}

	c.stats = newCollector(c.topN)
	c.pending = 1

	work := newQueue()

	c.log.Debug().
		Str("root", entry.CanonicalPath).
		Int("workers", c.workers).
		Msg("starting traversal")

	start := c.clock.NowMillis()

	work.push(directoryItem(entry.CanonicalPath))

	var wg sync.WaitGroup

	for id := range c.workers {
		wg.Add(1)

		go func() {
			defer wg.Done()
			c.work(id, work)
		}()
	}

	wg.Wait()

	elapsed := c.clock.NowMillis() - start

	stats := c.stats.finalize()
	stats.Root = entry.CanonicalPath
	stats.Workers = c.workers
	stats.Elapsed = elapsed
	c.last = stats

	c.log.Debug().
		Str("root", stats.Root).
		Int64("bytes", stats.TotalBytes).
		Int64("dirs", stats.DirCount).
		Int64("errors", stats.ErrorCount).
		Int64("elapsed_ms", elapsed).
		Msg("traversal finished")

	return stats.TotalBytes, nil
}

// TotalSize returns the total computed by the last call to ComputeTotalSize.
func (c *Calculator) TotalSize() int64 {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if c.last == nil {
		return 0
	}

	return c.last.TotalBytes
}

// ElapsedTime returns the duration in milliseconds of the last call to ComputeTotalSize.
func (c *Calculator) ElapsedTime() int64 {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if c.last == nil {
		return 0
	}

	return c.last.Elapsed
}

// Stats returns a copy of the statistics of the last traversal, or nil if none ran yet.
func (c *Calculator) Stats() *Stats {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if c.last == nil {
		return nil
	}

	stats := *c.last
	stats.TopDirs = append([]DirStat(nil), c.last.TopDirs...)

	return &stats
}
