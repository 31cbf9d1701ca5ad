package dto

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/tuition-api/internal/models"
	appErrors "github.com/campusworks/tuition-api/pkg/errors"
)

type stubInstructorResolver struct {
	instructors map[int64]models.Instructor
}

func (s *stubInstructorResolver) CourseInstructor(ctx context.Context, id int64) (*models.Instructor, error) {
	if in, ok := s.instructors[id]; ok {
		return &in, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("instructor with id %d can not be found", id))
}

type stubStudentResolver struct {
	students map[int64]models.Student
}

func (s *stubStudentResolver) ResolveStudents(ctx context.Context, ids []int64) ([]models.Student, error) {
	result := make([]models.Student, 0, len(ids))
	for _, id := range ids {
		student, ok := s.students[id]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student with id %d can not be found", id))
		}
		result = append(result, student)
	}
	return result, nil
}

func testMapper() *CourseMapper {
	return NewCourseMapper(
		&stubInstructorResolver{instructors: map[int64]models.Instructor{
			1: {ID: 1, Kind: models.KindPermanentInstructor},
		}},
		&stubStudentResolver{students: map[int64]models.Student{
			1: {ID: 1}, 2: {ID: 2},
		}},
	)
}

func TestCourseMapperToCourse(t *testing.T) {
	course, err := testMapper().ToCourse(context.Background(), CourseDTO{
		CourseName: "Algorithms", CourseCode: "CS-201", CreditScore: 3,
		InstructorID: 1, StudentIDs: []int64{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), course.InstructorID)
	assert.Equal(t, []int64{1, 2}, course.StudentIDs)
}

func TestCourseMapperMissingInstructor(t *testing.T) {
	_, err := testMapper().ToCourse(context.Background(), CourseDTO{
		CourseName: "Algorithms", CourseCode: "CS-201", InstructorID: 7,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCourseMapperMissingStudent(t *testing.T) {
	_, err := testMapper().ToCourse(context.Background(), CourseDTO{
		CourseName: "Algorithms", CourseCode: "CS-201",
		InstructorID: 1, StudentIDs: []int64{1, 9},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "9")
}

func TestFromCourseNilStudents(t *testing.T) {
	d := FromCourse(models.Course{ID: 1, CourseName: "Algorithms", CourseCode: "CS-201", InstructorID: 1})
	require.NotNil(t, d.StudentIDs)
	assert.Empty(t, d.StudentIDs)
}
