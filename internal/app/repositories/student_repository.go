package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
)

// StudentRepository handles roster database operations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.StudentRecord) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (name, address, phone, grade, marks, marksheet)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		student.Name, student.Address, student.Phone, student.Grade, student.Marks, student.Marksheet).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	student.ID = id
	return id, nil
}

// GetByID retrieves a student record by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.StudentRecord, error) {
	student := &models.StudentRecord{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, address, phone, grade, marks, marksheet
		FROM students
		WHERE id = $1`,
		id).Scan(
		&student.ID, &student.Name, &student.Address, &student.Phone,
		&student.Grade, &student.Marks, &student.Marksheet)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// Update replaces all mutable fields of a student record, including the
// marksheet reference. Callers that keep the old attachment pass it through.
func (r *StudentRepository) Update(ctx context.Context, student *models.StudentRecord) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students
		SET name = $1, address = $2, phone = $3, grade = $4, marks = $5, marksheet = $6
		WHERE id = $7`,
		student.Name, student.Address, student.Phone, student.Grade,
		student.Marks, student.Marksheet, student.ID)

	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student record by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM students
		WHERE id = $1`,
		id)

	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// List retrieves all student records in creation order
func (r *StudentRepository) List(ctx context.Context) ([]*models.StudentRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, address, phone, grade, marks, marksheet
		FROM students
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.StudentRecord
	for rows.Next() {
		student := &models.StudentRecord{}
		if err := rows.Scan(&student.ID, &student.Name, &student.Address, &student.Phone,
			&student.Grade, &student.Marks, &student.Marksheet); err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	return students, nil
}

// Count returns the number of student records
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}
