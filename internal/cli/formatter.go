package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/dirsize/internal/dirsize"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON writes stats to writer as indented JSON. Paths are written verbatim.
func PrintJSON(stats *dirsize.Stats, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(stats); err != nil {
		return fmt.Errorf("writing JSON stats: %w", err)
	}

	return nil
}

// relativeTo returns path relative to root, both in slash form.
func relativeTo(root, path string) string {
	root = filepath.ToSlash(root)
	if path == root {
		return "."
	}

	return strings.TrimPrefix(path, strings.TrimSuffix(root, "/")+"/")
}

// PrintTable outputs statistics in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(stats *dirsize.Stats, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	if len(stats.TopDirs) > 0 {
		fmt.Fprintln(w, "\nTop directories (files directly inside):\t\t")

		for i, d := range stats.TopDirs {
			pct := 0.0
			if stats.TotalBytes > 0 {
				pct = 100.0 * float64(d.Size) / float64(stats.TotalBytes)
			}
			fmt.Fprintf(w, "  %d) '%s'\t%s (%.1f%%)\n",
				len(stats.TopDirs)-i, relativeTo(stats.Root, d.Path), humanize.IBytes(uint64(d.Size)), pct) //nolint:gosec // Sizes are never negative
		}
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Root:\t%s\n", stats.Root)
	fmt.Fprintf(w, "Total directories:\t%d\n", stats.DirCount)
	fmt.Fprintf(w, "Total files:\t%d\n", stats.FileCount)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(stats.TotalBytes)), stats.TotalBytes) //nolint:gosec // Sizes are never negative

	if stats.ErrorCount > 0 {
		fmt.Fprintf(w, "Read errors:\t%d\n", stats.ErrorCount)
	}

	fmt.Fprintf(w, "\nWorkers:\t%d\n", stats.Workers)
	fmt.Fprintf(w, "Elapsed:\t%v\n", time.Duration(stats.Elapsed)*time.Millisecond)

	return w.Flush()
}
