package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dirsize/internal/dirsize"
)

func sampleStats() *dirsize.Stats {
	return &dirsize.Stats{
		Root:       "/data",
		TotalBytes: 4096,
		FileCount:  3,
		DirCount:   2,
		ErrorCount: 1,
		Workers:    4,
		Elapsed:    1500,
		TopN:       2,
		TopDirs: []dirsize.DirStat{
			{Path: "/data", Size: 1024},
			{Path: "/data/logs", Size: 3072},
		},
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintTable(sampleStats(), &buf))

	out := buf.String()
	assert.Contains(t, out, "2) '.'")
	assert.Contains(t, out, "1) 'logs'")
	assert.Contains(t, out, "3.0 KiB (75.0%)")
	assert.Contains(t, out, "4.0 KiB (4096 bytes)")
	assert.Contains(t, out, "Read errors:")
	assert.Contains(t, out, "1.5s")
}

func TestPrintTable_NoTopDirs(t *testing.T) {
	stats := sampleStats()
	stats.TopDirs = nil
	stats.ErrorCount = 0

	var buf bytes.Buffer

	require.NoError(t, PrintTable(stats, &buf))
	assert.NotContains(t, buf.String(), "Top directories")
	assert.NotContains(t, buf.String(), "Read errors")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintJSON(sampleStats(), &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.InDelta(t, 4096, decoded["total_bytes"], 0)
	assert.InDelta(t, 1500, decoded["elapsed_ms"], 0)
	assert.Equal(t, "/data", decoded["root"])
}

func TestRelativeTo(t *testing.T) {
	assert.Equal(t, ".", relativeTo("/data", "/data"))
	assert.Equal(t, "a/b", relativeTo("/data", "/data/a/b"))
	assert.Equal(t, "x", relativeTo("/", "/x"))
}

func TestPrintJSON_PathsVerbatim(t *testing.T) {
	stats := sampleStats()
	stats.Root = "/data/a&b<c>"

	var buf bytes.Buffer

	require.NoError(t, PrintJSON(stats, &buf))
	assert.Contains(t, buf.String(), `"root": "/data/a&b<c>"`)
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("}\n")))
}
