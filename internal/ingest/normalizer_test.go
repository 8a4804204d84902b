package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func TestNormalize_Phone(t *testing.T) {
	n := NewNormalizer("079-")

	t.Run("strips junk around a local number", func(t *testing.T) {
		rec, err := n.Normalize(RawRecord{Name: "A. Shah", Phone: "abc 079-12345"}, testNow)
		require.NoError(t, err)
		require.NotNil(t, rec.Phone)
		assert.Equal(t, "079-12345", *rec.Phone)
	})

	t.Run("rejects numbers without the area code", func(t *testing.T) {
		rec, err := n.Normalize(RawRecord{Name: "A. Shah", Phone: "+91 98765 43210"}, testNow)
		require.NoError(t, err)
		assert.Nil(t, rec.Phone)
	})

	t.Run("sentinel maps to absent", func(t *testing.T) {
		rec, err := n.Normalize(RawRecord{Name: "A. Shah", Phone: "N/A"}, testNow)
		require.NoError(t, err)
		assert.Nil(t, rec.Phone)
	})
}

func TestNormalize_Email(t *testing.T) {
	n := NewNormalizer("079-")

	t.Run("de-obfuscates at and dot notation", func(t *testing.T) {
		rec, err := n.Normalize(RawRecord{Name: "A. Shah", Email: "a[at]x[dot]com"}, testNow)
		require.NoError(t, err)
		require.NotNil(t, rec.Email)
		assert.Equal(t, "a@x.com", *rec.Email)
	})

	t.Run("passes plain addresses through unvalidated", func(t *testing.T) {
		rec, err := n.Normalize(RawRecord{Name: "A. Shah", Email: "not really an email"}, testNow)
		require.NoError(t, err)
		require.NotNil(t, rec.Email)
		assert.Equal(t, "not really an email", *rec.Email)
	})

	t.Run("sentinel maps to absent", func(t *testing.T) {
		rec, err := n.Normalize(RawRecord{Name: "A. Shah", Email: "N/A"}, testNow)
		require.NoError(t, err)
		assert.Nil(t, rec.Email)
	})
}

func TestNormalize_TextFields(t *testing.T) {
	n := NewNormalizer("079-")

	t.Run("repairs mis-encoded characters", func(t *testing.T) {
		rec, err := n.Normalize(RawRecord{
			Name:           "A. Shah",
			Education:      "PhD â€“ IIT Bombay",
			AreaOfInterest: "Shorâ€™s algorithm",
		}, testNow)
		require.NoError(t, err)
		require.NotNil(t, rec.Education)
		require.NotNil(t, rec.BioInterest)
		assert.Equal(t, "PhD - IIT Bombay", *rec.Education)
		assert.Equal(t, "Shor's algorithm", *rec.BioInterest)
	})

	t.Run("whitespace-only maps to absent", func(t *testing.T) {
		rec, err := n.Normalize(RawRecord{Name: "A. Shah", Education: "   "}, testNow)
		require.NoError(t, err)
		assert.Nil(t, rec.Education)
	})

	t.Run("nan sentinel maps to absent", func(t *testing.T) {
		rec, err := n.Normalize(RawRecord{Name: "A. Shah", AreaOfInterest: "nan"}, testNow)
		require.NoError(t, err)
		assert.Nil(t, rec.BioInterest)
	})
}

func TestNormalize_Timestamp(t *testing.T) {
	n := NewNormalizer("079-")

	rec, err := n.Normalize(RawRecord{Name: "A. Shah"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01 10:30:00", rec.LastUpdated)
}

func TestNormalize_Name(t *testing.T) {
	n := NewNormalizer("079-")

	t.Run("collapses internal whitespace", func(t *testing.T) {
		rec, err := n.Normalize(RawRecord{Name: "  A.   Shah "}, testNow)
		require.NoError(t, err)
		assert.Equal(t, "A. Shah", rec.Name)
	})

	t.Run("missing name is the only fatal field", func(t *testing.T) {
		_, err := n.Normalize(RawRecord{Name: "  ", Email: "a@x.com"}, testNow)
		assert.Error(t, err)
	})
}
