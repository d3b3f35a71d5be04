package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
	"github.com/mkaplan/schoolpanel/internal/pkg/filestorage"
)

// RosterStore is the subset of the student repository used by services
type RosterStore interface {
	Create(ctx context.Context, student *models.StudentRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.StudentRecord, error)
	Update(ctx context.Context, student *models.StudentRecord) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.StudentRecord, error)
	Count(ctx context.Context) (int64, error)
}

// StudentFields carries the mutable fields of a roster entry
type StudentFields struct {
	Name    string
	Address string
	Phone   string
	Grade   string
	Marks   int
}

// RosterService defines roster operations
type RosterService interface {
	Add(ctx context.Context, fields StudentFields) (*models.StudentRecord, error)
	Update(ctx context.Context, id int64, fields StudentFields, attachment *multipart.FileHeader) (*models.StudentRecord, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.StudentRecord, error)
	List(ctx context.Context) ([]*models.StudentRecord, error)
	Count(ctx context.Context) (int64, error)
}

// rosterServiceImpl implements the RosterService interface
type rosterServiceImpl struct {
	studentRepo RosterStore
	storage     filestorage.Storage
}

// NewRosterService creates a new roster service instance
func NewRosterService(studentRepo RosterStore, storage filestorage.Storage) RosterService {
	return &rosterServiceImpl{
		studentRepo: studentRepo,
		storage:     storage,
	}
}

// Add creates a roster entry with an empty attachment reference
func (s *rosterServiceImpl) Add(ctx context.Context, fields StudentFields) (*models.StudentRecord, error) {
	student := &models.StudentRecord{
		Name:      fields.Name,
		Address:   fields.Address,
		Phone:     fields.Phone,
		Grade:     fields.Grade,
		Marks:     fields.Marks,
		Marksheet: "",
	}

	if _, err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("error adding student: %w", err)
	}

	return student, nil
}

// Update replaces all fields of a roster entry. When an attachment is
// supplied its content is stored under the sanitized filename and the
// marksheet reference is replaced; otherwise the existing reference is kept.
func (s *rosterServiceImpl) Update(ctx context.Context, id int64, fields StudentFields, attachment *multipart.FileHeader) (*models.StudentRecord, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.Name = fields.Name
	student.Address = fields.Address
	student.Phone = fields.Phone
	student.Grade = fields.Grade
	student.Marks = fields.Marks

	if attachment != nil {
		filename, err := s.storage.Save(attachment)
		if err != nil {
			return nil, apperrors.NewStorageError(err, "failed to store attachment")
		}
		student.Marksheet = filename
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// Delete removes a roster entry. The attachment file, if any, is left in
// place; orphaned files are acceptable.
func (s *rosterServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.studentRepo.Delete(ctx, id)
}

// Get retrieves a roster entry by ID
func (s *rosterServiceImpl) Get(ctx context.Context, id int64) (*models.StudentRecord, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// List retrieves the roster in creation order
func (s *rosterServiceImpl) List(ctx context.Context) ([]*models.StudentRecord, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

// Count returns the roster size
func (s *rosterServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.studentRepo.Count(ctx)
}
