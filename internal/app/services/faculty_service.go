package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/meetp/facultyfinder/internal/app/models"
	"github.com/meetp/facultyfinder/internal/app/repositories"
	"github.com/meetp/facultyfinder/internal/pkg/apperrors"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// FacultyService defines the read-only faculty catalogue operations
type FacultyService interface {
	ListAll(ctx context.Context, limit int) ([]*models.FacultyMember, error)
	SearchByName(ctx context.Context, q string) ([]*models.FacultyMember, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo *repositories.FacultyRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo *repositories.FacultyRepository) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
	}
}

// ListAll returns up to limit faculty records in table order.
func (s *facultyServiceImpl) ListAll(ctx context.Context, limit int) ([]*models.FacultyMember, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	records, err := s.facultyRepo.ListAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing faculty: %w", err)
	}
	return records, nil
}

// SearchByName returns records whose name contains q, case-insensitively.
func (s *facultyServiceImpl) SearchByName(ctx context.Context, q string) ([]*models.FacultyMember, error) {
	if strings.TrimSpace(q) == "" {
		return nil, fmt.Errorf("%w: search term cannot be empty", apperrors.ErrValidationFailed)
	}

	records, err := s.facultyRepo.SearchByName(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, fmt.Errorf("error searching faculty by name: %w", err)
	}
	return records, nil
}
