package dirsize

import "sync"

// itemKind distinguishes directory work from the stop signal.
type itemKind int

const (
	kindDirectory itemKind = iota
	kindStop
)

// workItem is either a directory to process or a stop signal.
type workItem struct {
	kind itemKind
	path string
}

// directoryItem creates a work item for the directory at path.
func directoryItem(path string) workItem {
	return workItem{kind: kindDirectory, path: path}
}

// stopItem creates a stop signal. All stop signals are equal.
func stopItem() workItem {
	return workItem{kind: kindStop}
}

// isStop reports whether the item tells the worker to exit.
func (w workItem) isStop() bool {
	return w.kind == kindStop
}

// queue is an unbounded multi-producer multi-consumer FIFO.
// push never blocks; pop blocks while the queue is empty.
type queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []workItem
}

// newQueue creates an empty queue.
func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)

	return q
}

// push appends item and wakes one waiting consumer.
func (q *queue) push(item workItem) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	q.cond.Signal()
}

// pop removes and returns the oldest item, waiting until one is available.
func (q *queue) pop() workItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		q.cond.Wait()
	}

	item := q.items[0]
	q.items[0] = workItem{}
	q.items = q.items[1:]

	return item
}

// len returns the number of queued items.
func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
