package services

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetp/facultyfinder/internal/app/models"
	"github.com/meetp/facultyfinder/internal/app/repositories"
	"github.com/meetp/facultyfinder/internal/ingest"
	"github.com/meetp/facultyfinder/internal/pkg/apperrors"
)

// fakeStore is an in-memory FacultyStore with the same lookup semantics as
// the Postgres repository: unique email when present, name matches resolve
// to the lowest id.
type fakeStore struct {
	rows          map[int64]*models.FacultyMember
	nextID        int64
	failInsertFor string
	txCalls       int
}

var _ repositories.FacultyStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[int64]*models.FacultyMember)}
}

func (f *fakeStore) sortedIDs() []int64 {
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakeStore) FindIDByEmail(_ context.Context, email string) (int64, bool, error) {
	for _, id := range f.sortedIDs() {
		if r := f.rows[id]; r.Email != nil && *r.Email == email {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeStore) FindIDByName(_ context.Context, name string) (int64, bool, error) {
	for _, id := range f.sortedIDs() {
		if f.rows[id].Name == name {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeStore) Insert(_ context.Context, rec *models.FacultyMember) (int64, error) {
	if rec.Name == f.failInsertFor {
		return 0, fmt.Errorf("insert failed")
	}
	if rec.Email != nil {
		for _, r := range f.rows {
			if r.Email != nil && *r.Email == *rec.Email {
				return 0, apperrors.ErrDuplicateEmail
			}
		}
	}
	f.nextID++
	stored := *rec
	stored.ID = f.nextID
	f.rows[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeStore) InTransaction(_ context.Context, fn func(store repositories.FacultyStore) error) error {
	f.txCalls++
	return fn(f)
}

func (f *fakeStore) Update(_ context.Context, id int64, rec *models.FacultyMember) error {
	existing, ok := f.rows[id]
	if !ok {
		return apperrors.ErrRecordNotFound
	}
	updated := *rec
	updated.ID = id
	// The repository never rewrites profile_link on update
	updated.ProfileLink = existing.ProfileLink
	f.rows[id] = &updated
	return nil
}

func newTestIngestService(store *fakeStore) IngestService {
	return NewIngestService(store, ingest.NewNormalizer("079-"), zerolog.Nop())
}

func TestIngestRun_InsertsNewRecords(t *testing.T) {
	store := newFakeStore()
	service := newTestIngestService(store)

	summary, err := service.Run(context.Background(), []ingest.RawRecord{
		{Name: "A. Shah", Email: "a[at]x[dot]com", Phone: "abc 079-12345"},
		{Name: "B. Patel", Designation: "Adjunct Faculty"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Skipped)
	assert.NotEmpty(t, summary.RunID)

	require.Len(t, store.rows, 2)
	shah := store.rows[1]
	require.NotNil(t, shah.Email)
	assert.Equal(t, "a@x.com", *shah.Email)
	require.NotNil(t, shah.Phone)
	assert.Equal(t, "079-12345", *shah.Phone)
}

func TestIngestRun_Idempotent(t *testing.T) {
	store := newFakeStore()
	service := newTestIngestService(store)
	batch := []ingest.RawRecord{
		{Name: "A. Shah", Email: "a@x.com"},
		{Name: "B. Patel"},
	}

	_, err := service.Run(context.Background(), batch)
	require.NoError(t, err)

	summary, err := service.Run(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 2, summary.Updated)
	assert.Len(t, store.rows, 2)
}

func TestIngestRun_UpdatesChangedFields(t *testing.T) {
	store := newFakeStore()
	service := newTestIngestService(store)

	_, err := service.Run(context.Background(), []ingest.RawRecord{
		{Name: "A. Shah", Email: "a@x.com", Designation: "Faculty"},
	})
	require.NoError(t, err)

	summary, err := service.Run(context.Background(), []ingest.RawRecord{
		{Name: "A. Shah", Email: "a@x.com", Designation: "Adjunct Faculty"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	require.Len(t, store.rows, 1)
	assert.Equal(t, "Adjunct Faculty", store.rows[1].Designation)
}

func TestIngestRun_EmailWinsOverName(t *testing.T) {
	store := newFakeStore()
	service := newTestIngestService(store)

	_, err := service.Run(context.Background(), []ingest.RawRecord{
		{Name: "A. Shah", Email: "a@x.com", Designation: "Faculty"},
		{Name: "B. Patel", Email: "b@x.com", Designation: "Faculty"},
	})
	require.NoError(t, err)

	// Same name as row 1, same email as row 2: the email match decides.
	summary, err := service.Run(context.Background(), []ingest.RawRecord{
		{Name: "A. Shah", Email: "b@x.com", Designation: "Visiting Faculty"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	require.Len(t, store.rows, 2)
	assert.Equal(t, "Faculty", store.rows[1].Designation)
	assert.Equal(t, "Visiting Faculty", store.rows[2].Designation)
}

func TestIngestRun_NameFallbackWithoutEmail(t *testing.T) {
	store := newFakeStore()
	service := newTestIngestService(store)

	_, err := service.Run(context.Background(), []ingest.RawRecord{
		{Name: "C. Mehta", Designation: "Faculty"},
	})
	require.NoError(t, err)

	summary, err := service.Run(context.Background(), []ingest.RawRecord{
		{Name: "C. Mehta", Designation: "Professor"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 1, summary.Updated)
	require.Len(t, store.rows, 1)
	assert.Equal(t, "Professor", store.rows[1].Designation)
}

func TestIngestRun_SkipsUnusableRecords(t *testing.T) {
	store := newFakeStore()
	service := newTestIngestService(store)

	summary, err := service.Run(context.Background(), []ingest.RawRecord{
		{Name: "N/A", Email: "ghost@x.com"},
		{Name: "A. Shah"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Inserted)
	assert.Len(t, store.rows, 1)
}

func TestIngestRun_OneTransactionPerRecord(t *testing.T) {
	store := newFakeStore()
	service := newTestIngestService(store)

	_, err := service.Run(context.Background(), []ingest.RawRecord{
		{Name: "A. Shah", Email: "a@x.com"},
		{Name: "B. Patel"},
		{Name: "N/A"},
	})
	require.NoError(t, err)
	// The unusable record is skipped before any store access
	assert.Equal(t, 2, store.txCalls)
}

func TestIngestRun_StoreFailureDoesNotAbortBatch(t *testing.T) {
	store := newFakeStore()
	store.failInsertFor = "B. Patel"
	service := newTestIngestService(store)

	summary, err := service.Run(context.Background(), []ingest.RawRecord{
		{Name: "A. Shah"},
		{Name: "B. Patel"},
		{Name: "C. Mehta"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 1, summary.Skipped)
	assert.Len(t, store.rows, 2)
}
