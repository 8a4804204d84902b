package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raw.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Run("maps columns by header name", func(t *testing.T) {
		path := writeTempCSV(t,
			"Email,Name,Designation\n"+
				"a@x.com,A. Shah,Faculty\n"+
				"N/A,B. Patel,Adjunct Faculty\n")

		records, err := LoadCSV(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "A. Shah", records[0].Name)
		assert.Equal(t, "a@x.com", records[0].Email)
		assert.Equal(t, "Adjunct Faculty", records[1].Designation)
		// Columns the export doesn't carry come back empty
		assert.Empty(t, records[0].Phone)
	})

	t.Run("rejects exports without a Name column", func(t *testing.T) {
		path := writeTempCSV(t, "Email,Phone\na@x.com,079-1\n")

		_, err := LoadCSV(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}
