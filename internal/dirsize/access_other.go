//go:build !unix

package dirsize

import "os"

// canList reports whether the directory at path can be opened for listing.
func canList(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}

	return f.Close() == nil
}
