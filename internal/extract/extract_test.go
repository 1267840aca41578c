package extract

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gc/tagforge/internal/ctxlog"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tags.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromCSV_KeepsQualifyingRowsInOrder(t *testing.T) {
	// --- Arrange ---
	csv := "night,0,5000,\"nighttime,night_time\"\n" +
		"some_artist,1,90000,\n" +
		"forest,0,12000,\n" +
		"rare_tag,0,99,\n"
	path := writeExport(t, csv)

	// --- Act ---
	records, err := FromCSV(testContext(), path, 100)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{Name: "night", Count: 5000, Aliases: []string{"nighttime", "night_time"}}, records[0])
	assert.Equal(t, Record{Name: "forest", Count: 12000}, records[1])
}

func TestFromCSV_SkipsMalformedRows(t *testing.T) {
	testCases := []struct {
		name string
		row  string
	}{
		{name: "too few fields", row: "stub,0"},
		{name: "non-numeric category", row: "bad,general,5000,"},
		{name: "non-numeric count", row: "bad,0,many,"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeExport(t, tc.row+"\nforest,0,12000,\n")

			records, err := FromCSV(testContext(), path, 100)

			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "forest", records[0].Name)
		})
	}
}

func TestFromCSV_ThresholdIsInclusive(t *testing.T) {
	// --- Arrange ---
	path := writeExport(t, "at_threshold,0,100,\nbelow,0,99,\n")

	// --- Act ---
	records, err := FromCSV(testContext(), path, 100)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "at_threshold", records[0].Name)
}

func TestFromCSV_RaisingThresholdNeverAddsTags(t *testing.T) {
	// --- Arrange ---
	csv := "a,0,100,\nb,0,500,\nc,0,1000,\nd,0,5000,\n"
	path := writeExport(t, csv)

	// --- Act ---
	loose, err := FromCSV(testContext(), path, 100)
	require.NoError(t, err)
	strict, err := FromCSV(testContext(), path, 1000)
	require.NoError(t, err)

	// --- Assert ---
	require.Len(t, loose, 4)
	require.Len(t, strict, 2)
	names := map[string]struct{}{}
	for _, rec := range loose {
		names[rec.Name] = struct{}{}
	}
	for _, rec := range strict {
		assert.Contains(t, names, rec.Name)
	}
}

func TestFromCSV_RepeatedTagKeepsPositionTakesLatestRow(t *testing.T) {
	// --- Arrange ---
	csv := "night,0,5000,nighttime\n" +
		"forest,0,12000,\n" +
		"night,0,7000,night_sky\n"
	path := writeExport(t, csv)

	// --- Act ---
	records, err := FromCSV(testContext(), path, 100)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{Name: "night", Count: 7000, Aliases: []string{"night_sky"}}, records[0])
	assert.Equal(t, "forest", records[1].Name)
}

func TestFromCSV_TrimsAliasWhitespaceAndDropsBlanks(t *testing.T) {
	// --- Arrange ---
	path := writeExport(t, "night,0,5000,\" nighttime , ,night_time,\"\n")

	// --- Act ---
	records, err := FromCSV(testContext(), path, 100)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"nighttime", "night_time"}, records[0].Aliases)
}

func TestFromCSV_MissingFileFails(t *testing.T) {
	_, err := FromCSV(testContext(), filepath.Join(t.TempDir(), "absent.csv"), 100)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening tag export")
}
