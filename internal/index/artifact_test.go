package index

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetp/facultyfinder/internal/app/models"
)

func strPtr(s string) *string { return &s }

func sampleRecords() []*models.FacultyMember {
	return []*models.FacultyMember{
		{ID: 1, Name: "A. Shah", Designation: "Faculty", LastUpdated: "2025-06-01 10:30:00",
			BioInterest: strPtr("Graph Theory and Algorithms"), Education: strPtr("PhD, IIT Bombay")},
		{ID: 2, Name: "B. Patel", Designation: "Adjunct Faculty", LastUpdated: "2025-06-01 10:30:00"},
	}
}

func TestArtifactSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "faculty_index.json")
	artifact := &Artifact{
		Model:       "all-minilm",
		Dimension:   2,
		Count:       2,
		Fingerprint: Fingerprint(sampleRecords()),
		BuiltAt:     time.Now().UTC().Truncate(time.Second),
		Vectors:     [][]float32{{1, 0}, {0, 1}},
	}

	require.NoError(t, Save(path, artifact))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, artifact.Model, loaded.Model)
	assert.Equal(t, artifact.Dimension, loaded.Dimension)
	assert.Equal(t, artifact.Count, loaded.Count)
	assert.Equal(t, artifact.Fingerprint, loaded.Fingerprint)
	assert.Equal(t, artifact.Vectors, loaded.Vectors)
}

func TestArtifactLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrArtifactMissing)
}

func TestArtifactLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faculty_index.json")
	artifact := &Artifact{Count: 3, Vectors: [][]float32{{1, 0}}}
	require.NoError(t, Save(path, artifact))

	_, err := Load(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrArtifactMissing)
}

func TestFingerprint(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Fingerprint(sampleRecords()), Fingerprint(sampleRecords()))
	})

	t.Run("sensitive to a re-stamped row", func(t *testing.T) {
		changed := sampleRecords()
		changed[1].LastUpdated = "2025-06-02 09:00:00"
		assert.NotEqual(t, Fingerprint(sampleRecords()), Fingerprint(changed))
	})

	t.Run("sensitive to row order", func(t *testing.T) {
		reordered := sampleRecords()
		reordered[0], reordered[1] = reordered[1], reordered[0]
		assert.NotEqual(t, Fingerprint(sampleRecords()), Fingerprint(reordered))
	})

	t.Run("sensitive to a removed row", func(t *testing.T) {
		assert.NotEqual(t, Fingerprint(sampleRecords()), Fingerprint(sampleRecords()[:1]))
	})
}

func TestSearchText(t *testing.T) {
	records := sampleRecords()

	t.Run("joins every present field", func(t *testing.T) {
		assert.Equal(t,
			"A. Shah Faculty Graph Theory and Algorithms PhD, IIT Bombay",
			SearchText(records[0]))
	})

	t.Run("skips absent fields", func(t *testing.T) {
		assert.Equal(t, "B. Patel Adjunct Faculty", SearchText(records[1]))
	})
}
