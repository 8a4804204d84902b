package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetp/facultyfinder/internal/app/models"
	"github.com/meetp/facultyfinder/internal/db"
	"github.com/meetp/facultyfinder/internal/pkg/apperrors"
	"github.com/meetp/facultyfinder/internal/pkg/dberrors"
	"github.com/meetp/facultyfinder/internal/pkg/logger"
)

// facultyColumns is the scan order shared by every SELECT in this file.
var facultyColumns = []string{
	"id", "name", "designation", "email", "phone",
	"education", "bio_interest", "profile_link", "image_url", "last_updated",
}

// FacultyStore is the write-side contract the ingestion pipeline consumes.
// InTransaction hands fn a store whose statements all run in one transaction,
// so a resolve-then-write pair commits or rolls back as a unit.
type FacultyStore interface {
	FindIDByEmail(ctx context.Context, email string) (int64, bool, error)
	FindIDByName(ctx context.Context, name string) (int64, bool, error)
	Insert(ctx context.Context, rec *models.FacultyMember) (int64, error)
	Update(ctx context.Context, id int64, rec *models.FacultyMember) error
	InTransaction(ctx context.Context, fn func(store FacultyStore) error) error
}

// querier is the statement surface shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// FacultyRepository handles faculty table operations
type FacultyRepository struct {
	db   querier
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(pool *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db:   pool,
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// InTransaction runs fn against a transaction-bound copy of the repository.
func (r *FacultyRepository) InTransaction(ctx context.Context, fn func(store FacultyStore) error) error {
	return db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(&FacultyRepository{db: tx, pool: r.pool, sb: r.sb})
	})
}

func scanFaculty(row pgx.Row) (*models.FacultyMember, error) {
	rec := &models.FacultyMember{}
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Designation, &rec.Email, &rec.Phone,
		&rec.Education, &rec.BioInterest, &rec.ProfileLink, &rec.ImageURL, &rec.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindIDByEmail looks up a stored record by exact email.
func (r *FacultyRepository) FindIDByEmail(ctx context.Context, email string) (int64, bool, error) {
	sql, args, err := r.sb.Select("id").
		From("faculty").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("failed to build email lookup query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error looking up faculty by email")
		return 0, false, fmt.Errorf("error looking up faculty by email: %w", err)
	}
	return id, true, nil
}

// FindIDByName looks up a stored record by exact name. This is the fallback
// identity for records without an email; two distinct people with the same
// name will collapse onto one row, which is a documented limitation of the
// source data rather than a bug here.
func (r *FacultyRepository) FindIDByName(ctx context.Context, name string) (int64, bool, error) {
	sql, args, err := r.sb.Select("id").
		From("faculty").
		Where(squirrel.Eq{"name": name}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("failed to build name lookup query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error looking up faculty by name")
		return 0, false, fmt.Errorf("error looking up faculty by name: %w", err)
	}
	return id, true, nil
}

// Insert creates a new faculty row and returns its generated id.
func (r *FacultyRepository) Insert(ctx context.Context, rec *models.FacultyMember) (int64, error) {
	sql, args, err := r.sb.Insert("faculty").
		Columns("name", "designation", "email", "phone", "education",
			"bio_interest", "profile_link", "image_url", "last_updated").
		Values(rec.Name, rec.Designation, rec.Email, rec.Phone, rec.Education,
			rec.BioInterest, rec.ProfileLink, rec.ImageURL, rec.LastUpdated).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert faculty query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "faculty_email_key") {
			return 0, apperrors.ErrDuplicateEmail
		}
		logger.Error().Err(err).Str("name", rec.Name).Msg("Error executing insert faculty query")
		return 0, fmt.Errorf("error inserting faculty: %w", err)
	}
	return id, nil
}

// Update overwrites all mutable fields of the row with the given id. The id
// is the single resolved identity key; matching by name or email again here
// could touch a different row than the one the lookup chose.
func (r *FacultyRepository) Update(ctx context.Context, id int64, rec *models.FacultyMember) error {
	sql, args, err := r.sb.Update("faculty").
		SetMap(map[string]interface{}{
			"designation":  rec.Designation,
			"email":        rec.Email,
			"phone":        rec.Phone,
			"education":    rec.Education,
			"bio_interest": rec.BioInterest,
			"image_url":    rec.ImageURL,
			"last_updated": rec.LastUpdated,
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "faculty_email_key") {
			return apperrors.ErrDuplicateEmail
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error executing update faculty query")
		return fmt.Errorf("error updating faculty: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

// ListAll retrieves faculty rows in id order, bounded by limit.
func (r *FacultyRepository) ListAll(ctx context.Context, limit int) ([]*models.FacultyMember, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculty").
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list faculty query: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

// SearchByName retrieves rows whose name contains q, case-insensitively.
func (r *FacultyRepository) SearchByName(ctx context.Context, q string) ([]*models.FacultyMember, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculty").
		Where(squirrel.ILike{"name": "%" + q + "%"}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build name search query: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

// Snapshot retrieves the entire table in id order. The embedding index is
// keyed positionally against exactly this ordering.
func (r *FacultyRepository) Snapshot(ctx context.Context) ([]*models.FacultyMember, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculty").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot query: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

// Count returns the total number of stored faculty rows.
func (r *FacultyRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("faculty").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting faculty rows")
		return 0, fmt.Errorf("error counting faculty rows: %w", err)
	}
	return count, nil
}

func (r *FacultyRepository) queryMany(ctx context.Context, sql string, args []interface{}) ([]*models.FacultyMember, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing faculty query")
		return nil, fmt.Errorf("error querying faculty: %w", err)
	}
	defer rows.Close()

	records := []*models.FacultyMember{}
	for rows.Next() {
		rec, err := scanFaculty(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning faculty row")
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating faculty rows")
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}
	return records, nil
}
