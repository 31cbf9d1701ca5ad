package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/tuition-api/internal/models"
)

// InstructorRepository manages persistence for both instructor variants,
// stored in a single table discriminated by kind.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs an InstructorRepository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

const instructorColumns = `id, first_name, last_name, address, phone_number, kind, fixed_salary, hourly_salary`

// List returns all instructors ordered by id.
func (r *InstructorRepository) List(ctx context.Context) ([]models.Instructor, error) {
	query := fmt.Sprintf(`SELECT %s FROM instructors ORDER BY id`, instructorColumns)
	instructors := []models.Instructor{}
	if err := r.db.SelectContext(ctx, &instructors, query); err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	return instructors, nil
}

// FindByID fetches an instructor by id. Returns sql.ErrNoRows when absent.
func (r *InstructorRepository) FindByID(ctx context.Context, id int64) (*models.Instructor, error) {
	query := fmt.Sprintf(`SELECT %s FROM instructors WHERE id = $1`, instructorColumns)
	var instructor models.Instructor
	if err := r.db.GetContext(ctx, &instructor, query, id); err != nil {
		return nil, err
	}
	return &instructor, nil
}

// FindByPhone fetches an instructor by phone number. Returns sql.ErrNoRows
// when absent.
func (r *InstructorRepository) FindByPhone(ctx context.Context, phone string) (*models.Instructor, error) {
	query := fmt.Sprintf(`SELECT %s FROM instructors WHERE phone_number = $1`, instructorColumns)
	var instructor models.Instructor
	if err := r.db.GetContext(ctx, &instructor, query, phone); err != nil {
		return nil, err
	}
	return &instructor, nil
}

// ExistsByPhone checks if an instructor with the given phone number exists,
// optionally excluding an id.
func (r *InstructorRepository) ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM instructors WHERE phone_number = $1"
	args := []interface{}{phone}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check phone: %w", err)
	}
	return true, nil
}

// Create inserts a new instructor and assigns its id.
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	const query = `INSERT INTO instructors (first_name, last_name, address, phone_number, kind, fixed_salary, hourly_salary)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.GetContext(ctx, &instructor.ID, query,
		instructor.FirstName, instructor.LastName, instructor.Address,
		instructor.PhoneNumber, instructor.Kind, instructor.FixedSalary, instructor.HourlySalary); err != nil {
		return fmt.Errorf("create instructor: %w", err)
	}
	return nil
}

// Update overwrites an existing instructor row.
func (r *InstructorRepository) Update(ctx context.Context, instructor *models.Instructor) error {
	const query = `UPDATE instructors SET first_name = $2, last_name = $3, address = $4,
        phone_number = $5, kind = $6, fixed_salary = $7, hourly_salary = $8 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		instructor.ID, instructor.FirstName, instructor.LastName, instructor.Address,
		instructor.PhoneNumber, instructor.Kind, instructor.FixedSalary, instructor.HourlySalary); err != nil {
		return fmt.Errorf("update instructor: %w", err)
	}
	return nil
}

// Delete removes an instructor. The foreign key on courses blocks the delete
// while any course still references the instructor.
func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM instructors WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete instructor: %w", err)
	}
	return nil
}
