package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/tuition-api/internal/dto"
	"github.com/campusworks/tuition-api/internal/models"
	appErrors "github.com/campusworks/tuition-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Student, error)
	FindByKey(ctx context.Context, key models.StudentKey) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// List returns all students.
func (s *StudentService) List(ctx context.Context) ([]dto.StudentDTO, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return dto.FromStudents(students), nil
}

// Get returns one student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*dto.StudentDTO, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student with id %d can not be found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	result := dto.FromStudent(*student)
	return &result, nil
}

// Create registers a new student after the age check.
func (s *StudentService) Create(ctx context.Context, req dto.StudentDTO) (*dto.StudentDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !studentAgeWithinRange(req.BirthDate, s.now()) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student age must be between 18 and 40")
	}

	student := dto.ToStudent(req)
	student.ID = 0
	if err := s.repo.Create(ctx, &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	result := dto.FromStudent(student)
	return &result, nil
}

// Update overwrites an existing student under its id. Course memberships live
// in the join table and are left untouched, so the existing enrollment set
// survives the update.
func (s *StudentService) Update(ctx context.Context, req dto.StudentDTO, id int64) (*dto.StudentDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student with id %d can not be found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if !studentAgeWithinRange(req.BirthDate, s.now()) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student age must be between 18 and 40")
	}

	student := dto.ToStudent(req)
	student.ID = id
	if err := s.repo.Update(ctx, &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	result := dto.FromStudent(student)
	return &result, nil
}

// Delete removes a student addressed by its natural key and returns the
// removed record.
func (s *StudentService) Delete(ctx context.Context, req dto.StudentDTO) (*dto.StudentDTO, error) {
	student, err := s.repo.FindByKey(ctx, req.Key())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student can not be found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return s.remove(ctx, student)
}

// DeleteByID removes a student by id and returns the removed record.
func (s *StudentService) DeleteByID(ctx context.Context, id int64) (*dto.StudentDTO, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student with id %d can not be found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return s.remove(ctx, student)
}

func (s *StudentService) remove(ctx context.Context, student *models.Student) (*dto.StudentDTO, error) {
	result := dto.FromStudent(*student)
	if err := s.repo.Delete(ctx, student.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	// removing a student drops their enrollment rows, which surface in
	// cached course listings
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, courseCachePattern)
	}
	return &result, nil
}

// ResolveStudents resolves each id to a stored student for the course
// mapper. Any missing id fails the whole resolution.
func (s *StudentService) ResolveStudents(ctx context.Context, ids []int64) ([]models.Student, error) {
	students, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve students")
	}
	if len(students) != len(uniqueIDs(ids)) {
		found := make(map[int64]struct{}, len(students))
		for _, student := range students {
			found[student.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student with id %d can not be found", id))
			}
		}
	}
	return students, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
