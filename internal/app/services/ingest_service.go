package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meetp/facultyfinder/internal/app/models"
	"github.com/meetp/facultyfinder/internal/app/repositories"
	"github.com/meetp/facultyfinder/internal/ingest"
)

// IngestSummary reports what one ingestion run did.
type IngestSummary struct {
	RunID    string `json:"run_id"`
	Total    int    `json:"total"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
}

// IngestService normalizes raw scraped records and reconciles them into the
// faculty table. Records are processed strictly in order with no parallel
// writers; one bad record is logged and skipped, never fatal for the batch.
type IngestService interface {
	Run(ctx context.Context, raws []ingest.RawRecord) (*IngestSummary, error)
}

// ingestServiceImpl implements the IngestService interface
type ingestServiceImpl struct {
	store      repositories.FacultyStore
	normalizer *ingest.Normalizer
	logger     zerolog.Logger
}

// NewIngestService creates a new ingest service instance
func NewIngestService(store repositories.FacultyStore, normalizer *ingest.Normalizer, lgr zerolog.Logger) IngestService {
	return &ingestServiceImpl{
		store:      store,
		normalizer: normalizer,
		logger:     lgr,
	}
}

// Run processes one batch of raw records.
func (s *ingestServiceImpl) Run(ctx context.Context, raws []ingest.RawRecord) (*IngestSummary, error) {
	summary := &IngestSummary{
		RunID: uuid.NewString(),
		Total: len(raws),
	}
	lgr := s.logger.With().Str("runID", summary.RunID).Logger()
	lgr.Info().Int("records", len(raws)).Msg("Starting ingestion batch")

	now := time.Now()
	for _, raw := range raws {
		rec, err := s.normalizer.Normalize(raw, now)
		if err != nil {
			lgr.Warn().Err(err).Str("name", raw.Name).Msg("Skipping unusable record")
			summary.Skipped++
			continue
		}

		inserted, err := s.upsert(ctx, rec)
		if err != nil {
			lgr.Warn().Err(err).Str("name", rec.Name).Msg("Failed to store record, skipping")
			summary.Skipped++
			continue
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Updated++
		}
	}

	lgr.Info().
		Int("inserted", summary.Inserted).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Msg("Ingestion batch complete")
	return summary, nil
}

// upsert reconciles one canonical record against the store. The lookup and
// the write commit as one transaction so a failure between them cannot leave
// a half-applied record. It reports whether a new row was created.
func (s *ingestServiceImpl) upsert(ctx context.Context, rec *models.FacultyMember) (bool, error) {
	inserted := false
	err := s.store.InTransaction(ctx, func(store repositories.FacultyStore) error {
		id, matched, err := resolveIdentity(ctx, store, rec)
		if err != nil {
			return err
		}

		if matched {
			return store.Update(ctx, id, rec)
		}

		if _, err := store.Insert(ctx, rec); err != nil {
			return err
		}
		inserted = true
		return nil
	})
	return inserted, err
}

// resolveIdentity finds the stored row this record refers to, if any.
// Email is the primary key of record identity; name is the weaker fallback
// for people whose email the source never published. The resolved id is the
// only key later writes may use.
func resolveIdentity(ctx context.Context, store repositories.FacultyStore, rec *models.FacultyMember) (int64, bool, error) {
	if rec.Email != nil {
		id, found, err := store.FindIDByEmail(ctx, *rec.Email)
		if err != nil {
			return 0, false, err
		}
		if found {
			return id, true, nil
		}
	}

	id, found, err := store.FindIDByName(ctx, rec.Name)
	if err != nil {
		return 0, false, err
	}
	return id, found, nil
}
