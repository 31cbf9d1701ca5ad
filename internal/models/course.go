package models

// Course represents a tuition course owned by one instructor and attended by
// up to MaxCourseStudents students.
type Course struct {
	ID           int64   `db:"id" json:"id"`
	CourseName   string  `db:"course_name" json:"course_name"`
	CourseCode   string  `db:"course_code" json:"course_code"`
	CreditScore  float64 `db:"credit_score" json:"credit_score"`
	InstructorID int64   `db:"instructor_id" json:"instructor_id"`

	// StudentIDs holds the enrolled student ids in ascending order. Loaded
	// from the course_students join table, never from the courses row itself.
	StudentIDs []int64 `db:"-" json:"student_ids"`
}

// MaxCourseStudents caps enrollment per course.
const MaxCourseStudents = 20
