// Package dirsize computes the total size of a directory tree.
//
// A fixed pool of workers shares one unbounded work queue of directory
// paths. Each worker sums the files directly inside the directory it pops,
// pushes the readable subdirectories back onto the queue and reports the
// directory as done. The worker that finishes the last outstanding
// directory broadcasts one stop item per worker, which drains the pool.
package dirsize
