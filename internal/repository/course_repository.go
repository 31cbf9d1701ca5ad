package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/tuition-api/internal/models"
)

// CourseRepository manages persistence for courses and their enrollment
// join table.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

type enrollmentRow struct {
	CourseID  int64 `db:"course_id"`
	StudentID int64 `db:"student_id"`
}

// List returns all courses with their enrolled student ids, ordered by id.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, course_name, course_code, credit_score, instructor_id FROM courses ORDER BY id`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if len(courses) == 0 {
		return courses, nil
	}

	const joinQuery = `SELECT course_id, student_id FROM course_students ORDER BY course_id, student_id`
	rows := []enrollmentRow{}
	if err := r.db.SelectContext(ctx, &rows, joinQuery); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	byCourse := make(map[int64][]int64, len(courses))
	for _, row := range rows {
		byCourse[row.CourseID] = append(byCourse[row.CourseID], row.StudentID)
	}
	for i := range courses {
		if ids, ok := byCourse[courses[i].ID]; ok {
			courses[i].StudentIDs = ids
		} else {
			courses[i].StudentIDs = []int64{}
		}
	}
	return courses, nil
}

// FindByID fetches a course with its student ids. Returns sql.ErrNoRows when
// absent.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	const query = `SELECT id, course_name, course_code, credit_score, instructor_id FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	if err := r.loadStudents(ctx, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByCode fetches a course by its course code. Returns sql.ErrNoRows when
// absent.
func (r *CourseRepository) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	const query = `SELECT id, course_name, course_code, credit_score, instructor_id FROM courses WHERE course_code = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, code); err != nil {
		return nil, err
	}
	if err := r.loadStudents(ctx, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// ExistsByCode checks if a course with the given code exists, optionally
// excluding an id.
func (r *CourseRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM courses WHERE course_code = $1"
	args := []interface{}{code}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course code: %w", err)
	}
	return true, nil
}

// CountByInstructor returns how many courses reference the instructor.
func (r *CourseRepository) CountByInstructor(ctx context.Context, instructorID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM courses WHERE instructor_id = $1`, instructorID); err != nil {
		return 0, fmt.Errorf("count instructor courses: %w", err)
	}
	return count, nil
}

// Create inserts the course and its enrollment rows in one transaction so a
// partial write never becomes visible.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create course: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO courses (course_name, course_code, credit_score, instructor_id)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.GetContext(ctx, &course.ID, query,
		course.CourseName, course.CourseCode, course.CreditScore, course.InstructorID); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	if err := insertEnrollments(ctx, tx, course.ID, course.StudentIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// Update overwrites the course row and replaces its enrollment rows
// wholesale within one transaction.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update course: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `UPDATE courses SET course_name = $2, course_code = $3, credit_score = $4, instructor_id = $5 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query,
		course.ID, course.CourseName, course.CourseCode, course.CreditScore, course.InstructorID); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM course_students WHERE course_id = $1`, course.ID); err != nil {
		return fmt.Errorf("clear enrollments: %w", err)
	}
	if err := insertEnrollments(ctx, tx, course.ID, course.StudentIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a course. Enrollment rows go with it via the cascading
// foreign key on course_students.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

func (r *CourseRepository) loadStudents(ctx context.Context, course *models.Course) error {
	ids := []int64{}
	const query = `SELECT student_id FROM course_students WHERE course_id = $1 ORDER BY student_id`
	if err := r.db.SelectContext(ctx, &ids, query, course.ID); err != nil {
		return fmt.Errorf("load course students: %w", err)
	}
	course.StudentIDs = ids
	return nil
}

func insertEnrollments(ctx context.Context, tx *sqlx.Tx, courseID int64, studentIDs []int64) error {
	for _, studentID := range studentIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO course_students (course_id, student_id) VALUES ($1, $2)`, courseID, studentID); err != nil {
			return fmt.Errorf("enroll student %d: %w", studentID, err)
		}
	}
	return nil
}
