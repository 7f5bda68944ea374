package dirsize

import "github.com/rs/zerolog"

// work runs the loop of one worker until it pops a stop item.
func (c *Calculator) work(id int, work *queue) {
	log := c.log.With().Int("worker", id).Logger()

	for {
		item := work.pop()
		if item.isStop() {
			log.Trace().Msg("worker stopped")

			return
		}

		c.process(log, work, item.path)
		c.finish(work)
	}
}

// process sums the files directly inside the directory at path and enqueues
// its readable subdirectories. A directory that cannot be listed is counted
// as an error and contributes nothing; a child that cannot be described is
// counted as an error and skipped.
func (c *Calculator) process(log zerolog.Logger, work *queue, path string) {
	entries, err := c.fs.ListEntries(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("skipping directory")
		c.stats.addError()

		return
	}

	var size, files int64

	for _, entry := range entries {
		switch {
		case entry.Err != nil:
			log.Warn().Err(entry.Err).Str("path", entry.CanonicalPath).Msg("skipping entry")
			c.stats.addError()
		case entry.IsFile:
			size += entry.Size
			files++
		case entry.IsDir && entry.Readable:
			c.enqueue(work, entry.CanonicalPath)
		case entry.IsDir:
			log.Debug().Str("path", entry.CanonicalPath).Msg("skipping unreadable subdirectory")
		}
	}

	c.stats.addDir(path, size, files)

	log.Trace().Str("path", path).Int64("bytes", size).Msg("processed directory")
}

// enqueue accounts for a new pending directory, then makes it available to workers.
// The increment must be visible before the push so the directory cannot complete first.
func (c *Calculator) enqueue(work *queue, path string) {
	c.pendingMu.Lock()
	c.pending++
	c.pendingMu.Unlock()

	work.push(directoryItem(path))
}

// finish marks one directory as fully processed. If it was the last
// outstanding directory, one stop item per worker is pushed instead and
// pending is left at 1.
func (c *Calculator) finish(work *queue) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()

	if c.pending == 1 {
		for range c.workers {
			work.push(stopItem())
		}

		return
	}

	c.pending--
}
