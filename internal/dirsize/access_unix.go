//go:build unix

package dirsize

import "golang.org/x/sys/unix"

// canList reports whether the directory at path may be listed and its
// children described, without opening it.
func canList(path string) bool {
	return unix.Access(path, unix.R_OK|unix.X_OK) == nil
}
