// Command dirsize computes the total size of a directory tree with a pool of workers.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/dirsize/internal/cli"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dirsize: %v\n", err)
		os.Exit(1)
	}
}
