package dto

import (
	"context"

	"github.com/campusworks/tuition-api/internal/models"
)

// CourseDTO is the wire shape for courses. Relations travel as ids: the
// owning instructor as instructorId, the enrolled students as studentIds.
type CourseDTO struct {
	ID           int64   `json:"id"`
	CourseName   string  `json:"courseName" validate:"required"`
	CourseCode   string  `json:"courseCode" validate:"required"`
	CreditScore  float64 `json:"creditScore" validate:"gte=0"`
	InstructorID int64   `json:"instructorId" validate:"required,gt=0"`
	StudentIDs   []int64 `json:"studentIds"`
}

// InstructorResolver resolves a course's instructor reference.
type InstructorResolver interface {
	CourseInstructor(ctx context.Context, id int64) (*models.Instructor, error)
}

// StudentResolver resolves a course's student references.
type StudentResolver interface {
	ResolveStudents(ctx context.Context, ids []int64) ([]models.Student, error)
}

// CourseMapper converts between courses and their DTOs, resolving related
// entity ids through the owning services.
type CourseMapper struct {
	instructors InstructorResolver
	students    StudentResolver
}

// NewCourseMapper constructs a CourseMapper.
func NewCourseMapper(instructors InstructorResolver, students StudentResolver) *CourseMapper {
	return &CourseMapper{instructors: instructors, students: students}
}

// ToCourse maps a DTO to its entity form. Every referenced id must resolve;
// a missing instructor or student surfaces as NOT_FOUND from the resolver.
func (m *CourseMapper) ToCourse(ctx context.Context, d CourseDTO) (*models.Course, error) {
	instructor, err := m.instructors.CourseInstructor(ctx, d.InstructorID)
	if err != nil {
		return nil, err
	}
	students, err := m.students.ResolveStudents(ctx, d.StudentIDs)
	if err != nil {
		return nil, err
	}

	studentIDs := make([]int64, 0, len(students))
	for _, student := range students {
		studentIDs = append(studentIDs, student.ID)
	}

	return &models.Course{
		ID:           d.ID,
		CourseName:   d.CourseName,
		CourseCode:   d.CourseCode,
		CreditScore:  d.CreditScore,
		InstructorID: instructor.ID,
		StudentIDs:   studentIDs,
	}, nil
}

// FromCourse maps a stored course to its DTO. The relation fields are
// already id-shaped on the model, so no resolution is needed outbound.
func FromCourse(course models.Course) CourseDTO {
	studentIDs := course.StudentIDs
	if studentIDs == nil {
		studentIDs = []int64{}
	}
	return CourseDTO{
		ID:           course.ID,
		CourseName:   course.CourseName,
		CourseCode:   course.CourseCode,
		CreditScore:  course.CreditScore,
		InstructorID: course.InstructorID,
		StudentIDs:   studentIDs,
	}
}

// FromCourses maps a slice of courses.
func FromCourses(courses []models.Course) []CourseDTO {
	result := make([]CourseDTO, 0, len(courses))
	for _, course := range courses {
		result = append(result, FromCourse(course))
	}
	return result
}
