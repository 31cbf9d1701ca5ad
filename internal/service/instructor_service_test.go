package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusworks/tuition-api/internal/dto"
	"github.com/campusworks/tuition-api/internal/models"
	appErrors "github.com/campusworks/tuition-api/pkg/errors"
)

type mockInstructorRepo struct {
	instructors map[int64]models.Instructor
	nextID      int64
}

func newMockInstructorRepo(instructors ...models.Instructor) *mockInstructorRepo {
	repo := &mockInstructorRepo{instructors: make(map[int64]models.Instructor), nextID: 1}
	for _, in := range instructors {
		repo.instructors[in.ID] = in
		if in.ID >= repo.nextID {
			repo.nextID = in.ID + 1
		}
	}
	return repo
}

func (m *mockInstructorRepo) List(ctx context.Context) ([]models.Instructor, error) {
	result := make([]models.Instructor, 0, len(m.instructors))
	for id := int64(1); id < m.nextID; id++ {
		if in, ok := m.instructors[id]; ok {
			result = append(result, in)
		}
	}
	return result, nil
}

func (m *mockInstructorRepo) FindByID(ctx context.Context, id int64) (*models.Instructor, error) {
	if in, ok := m.instructors[id]; ok {
		return &in, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockInstructorRepo) FindByPhone(ctx context.Context, phone string) (*models.Instructor, error) {
	for _, in := range m.instructors {
		if in.PhoneNumber == phone {
			found := in
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockInstructorRepo) ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error) {
	for _, in := range m.instructors {
		if in.PhoneNumber == phone && in.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockInstructorRepo) Create(ctx context.Context, instructor *models.Instructor) error {
	instructor.ID = m.nextID
	m.nextID++
	m.instructors[instructor.ID] = *instructor
	return nil
}

func (m *mockInstructorRepo) Update(ctx context.Context, instructor *models.Instructor) error {
	m.instructors[instructor.ID] = *instructor
	return nil
}

func (m *mockInstructorRepo) Delete(ctx context.Context, id int64) error {
	delete(m.instructors, id)
	return nil
}

type mockCourseCounter struct {
	counts map[int64]int
}

func (m *mockCourseCounter) CountByInstructor(ctx context.Context, instructorID int64) (int, error) {
	if m.counts == nil {
		return 0, nil
	}
	return m.counts[instructorID], nil
}

func newInstructorService(repo *mockInstructorRepo, counter *mockCourseCounter) *InstructorService {
	if counter == nil {
		counter = &mockCourseCounter{}
	}
	return NewInstructorService(repo, counter, nil, validator.New(), zap.NewNop())
}

func floatPtr(v float64) *float64 { return &v }

func permanentInstructor(id int64, phone string) models.Instructor {
	return models.Instructor{
		ID: id, FirstName: "Grace", LastName: "Hopper", Address: "Arlington",
		PhoneNumber: phone, Kind: models.KindPermanentInstructor, FixedSalary: floatPtr(4200),
	}
}

func visitingInstructor(id int64, phone string) models.Instructor {
	return models.Instructor{
		ID: id, FirstName: "Alan", LastName: "Kay", Address: "Los Angeles",
		PhoneNumber: phone, Kind: models.KindVisitingResearcher, HourlySalary: floatPtr(95),
	}
}

func TestInstructorServiceCreatePermanent(t *testing.T) {
	repo := newMockInstructorRepo()
	svc := newInstructorService(repo, nil)

	created, err := svc.CreatePermanent(context.Background(), dto.InstructorDTO{
		FirstName: "Grace", LastName: "Hopper", Address: "Arlington",
		PhoneNumber: "555-0101", FixedSalary: floatPtr(4200),
	})
	require.NoError(t, err)
	assert.Equal(t, models.KindPermanentInstructor, created.Type)
	require.NotNil(t, created.FixedSalary)
	assert.Equal(t, 4200.0, *created.FixedSalary)
	assert.Nil(t, created.HourlySalary)
}

func TestInstructorServiceCreateVisiting(t *testing.T) {
	svc := newInstructorService(newMockInstructorRepo(), nil)

	created, err := svc.CreateVisiting(context.Background(), dto.InstructorDTO{
		FirstName: "Alan", LastName: "Kay", Address: "Los Angeles",
		PhoneNumber: "555-0102", HourlySalary: floatPtr(95),
	})
	require.NoError(t, err)
	assert.Equal(t, models.KindVisitingResearcher, created.Type)
	require.NotNil(t, created.HourlySalary)
	assert.Nil(t, created.FixedSalary)
}

func TestInstructorServiceCreateDuplicatePhone(t *testing.T) {
	repo := newMockInstructorRepo(permanentInstructor(1, "555-0101"))
	svc := newInstructorService(repo, nil)

	_, err := svc.CreateVisiting(context.Background(), dto.InstructorDTO{
		FirstName: "Alan", LastName: "Kay", Address: "Los Angeles",
		PhoneNumber: "555-0101", HourlySalary: floatPtr(95),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestInstructorServiceUpdateKeepsOwnPhone(t *testing.T) {
	repo := newMockInstructorRepo(permanentInstructor(1, "555-0101"))
	svc := newInstructorService(repo, nil)

	updated, err := svc.UpdatePermanent(context.Background(), dto.InstructorDTO{
		FirstName: "Grace", LastName: "Hopper", Address: "New Address",
		PhoneNumber: "555-0101", FixedSalary: floatPtr(5000),
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "New Address", updated.Address)
	assert.Equal(t, 5000.0, *updated.FixedSalary)
}

func TestInstructorServiceUpdateWrongVariant(t *testing.T) {
	repo := newMockInstructorRepo(visitingInstructor(1, "555-0102"))
	svc := newInstructorService(repo, nil)

	_, err := svc.UpdatePermanent(context.Background(), dto.InstructorDTO{
		FirstName: "Alan", LastName: "Kay", Address: "Los Angeles",
		PhoneNumber: "555-0102", FixedSalary: floatPtr(4200),
	}, 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestInstructorServiceListVariantShapes(t *testing.T) {
	repo := newMockInstructorRepo(
		permanentInstructor(1, "555-0101"),
		visitingInstructor(2, "555-0102"),
	)
	svc := newInstructorService(repo, nil)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, models.KindPermanentInstructor, list[0].Type)
	assert.NotNil(t, list[0].FixedSalary)
	assert.Nil(t, list[0].HourlySalary)

	assert.Equal(t, models.KindVisitingResearcher, list[1].Type)
	assert.NotNil(t, list[1].HourlySalary)
	assert.Nil(t, list[1].FixedSalary)
}

func TestInstructorServiceDeleteByPhone(t *testing.T) {
	repo := newMockInstructorRepo(visitingInstructor(4, "555-0104"))
	svc := newInstructorService(repo, nil)

	removed, err := svc.DeleteVisiting(context.Background(), dto.InstructorDTO{PhoneNumber: "555-0104"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed.ID)
	assert.Empty(t, repo.instructors)
}

func TestInstructorServiceDeleteByPhoneWrongVariant(t *testing.T) {
	repo := newMockInstructorRepo(visitingInstructor(4, "555-0104"))
	svc := newInstructorService(repo, nil)

	_, err := svc.DeletePermanent(context.Background(), dto.InstructorDTO{PhoneNumber: "555-0104"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Len(t, repo.instructors, 1)
}

func TestInstructorServiceDeleteRefusedWhileOwningCourses(t *testing.T) {
	repo := newMockInstructorRepo(permanentInstructor(1, "555-0101"))
	svc := newInstructorService(repo, &mockCourseCounter{counts: map[int64]int{1: 2}})

	_, err := svc.DeleteByID(context.Background(), 1)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "2 course(s)")
	assert.Len(t, repo.instructors, 1)
}
