package index

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/meetp/facultyfinder/internal/app/models"
)

// ErrArtifactMissing is returned when no index artifact exists at the
// configured path. The fix is operational: run ingest, then embed.
var ErrArtifactMissing = errors.New("embedding index artifact not found")

// Artifact is the persisted embedding index. Vectors are positionally
// aligned with the id-ordered table snapshot used at build time; Count and
// Fingerprint exist so the serving side can prove that alignment still holds
// before trusting any similarity score.
type Artifact struct {
	Model       string      `json:"model"`
	Dimension   int         `json:"dimension"`
	Count       int         `json:"count"`
	Fingerprint string      `json:"fingerprint"`
	BuiltAt     time.Time   `json:"built_at"`
	Vectors     [][]float32 `json:"vectors"`
}

// Save writes the artifact to path, creating parent directories as needed.
func Save(path string, artifact *Artifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	data, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to encode index artifact: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index artifact: %w", err)
	}
	return nil
}

// Load reads an artifact from path. A missing file maps to ErrArtifactMissing.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrArtifactMissing
		}
		return nil, fmt.Errorf("failed to read index artifact: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to decode index artifact: %w", err)
	}

	if len(artifact.Vectors) != artifact.Count {
		return nil, fmt.Errorf("index artifact is corrupt: %d vectors for declared count %d",
			len(artifact.Vectors), artifact.Count)
	}
	return &artifact, nil
}

// Fingerprint hashes the identity and freshness of every row in snapshot
// order. Any row added, removed, reordered or re-stamped since the index was
// built produces a different value.
func Fingerprint(records []*models.FacultyMember) string {
	h := sha256.New()
	for _, rec := range records {
		h.Write([]byte(strconv.FormatInt(rec.ID, 10)))
		h.Write([]byte{'|'})
		h.Write([]byte(rec.Name))
		h.Write([]byte{'|'})
		h.Write([]byte(rec.LastUpdated))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SearchText concatenates the fields the index embeds for one record:
// name, designation, interests, education. Absent fields are skipped.
func SearchText(rec *models.FacultyMember) string {
	parts := make([]string, 0, 4)
	parts = append(parts, rec.Name)
	if rec.Designation != "" {
		parts = append(parts, rec.Designation)
	}
	if rec.BioInterest != nil {
		parts = append(parts, *rec.BioInterest)
	}
	if rec.Education != nil {
		parts = append(parts, *rec.Education)
	}

	return strings.Join(parts, " ")
}
