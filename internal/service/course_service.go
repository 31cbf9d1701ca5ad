package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/tuition-api/internal/dto"
	"github.com/campusworks/tuition-api/internal/models"
	appErrors "github.com/campusworks/tuition-api/pkg/errors"
)

const (
	courseCachePattern = "courses:*"
	courseListCacheKey = "courses:list"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	FindByCode(ctx context.Context, code string) (*models.Course, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CourseService handles course use-cases: validation, relation resolution
// through the mapper, persistence, and the course listing cache.
type CourseService struct {
	repo      courseRepository
	mapper    *dto.CourseMapper
	students  dto.StudentResolver
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, mapper *dto.CourseMapper, students dto.StudentResolver, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, mapper: mapper, students: students, cache: cache, validator: validate, logger: logger}
}

// List returns all courses, served from cache when possible.
func (s *CourseService) List(ctx context.Context) ([]dto.CourseDTO, error) {
	if s.cache != nil {
		cached := []dto.CourseDTO{}
		if hit, err := s.cache.Get(ctx, courseListCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	result := dto.FromCourses(courses)

	if s.cache != nil {
		_ = s.cache.Set(ctx, courseListCacheKey, result, 0)
	}
	return result, nil
}

// Get returns one course by id.
func (s *CourseService) Get(ctx context.Context, id int64) (*dto.CourseDTO, error) {
	course, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := dto.FromCourse(*course)
	return &result, nil
}

// Create validates the payload, resolves its relations, and persists a new
// course.
func (s *CourseService) Create(ctx context.Context, req dto.CourseDTO) (*dto.CourseDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if err := s.checkCodeUnique(ctx, req.CourseCode, 0); err != nil {
		return nil, err
	}
	if !enrollmentWithinLimit(len(req.StudentIDs)) {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("course can have at most %d students", models.MaxCourseStudents))
	}

	course, err := s.mapper.ToCourse(ctx, req)
	if err != nil {
		return nil, err
	}
	course.ID = 0
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	s.invalidate(ctx)
	result := dto.FromCourse(*course)
	return &result, nil
}

// Update overwrites an existing course under its id, replacing the
// enrollment set with the incoming one.
func (s *CourseService) Update(ctx context.Context, req dto.CourseDTO, id int64) (*dto.CourseDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if _, err := s.findByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkCodeUnique(ctx, req.CourseCode, id); err != nil {
		return nil, err
	}
	if !enrollmentWithinLimit(len(req.StudentIDs)) {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("course can have at most %d students", models.MaxCourseStudents))
	}

	course, err := s.mapper.ToCourse(ctx, req)
	if err != nil {
		return nil, err
	}
	course.ID = id
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	s.invalidate(ctx)
	result := dto.FromCourse(*course)
	return &result, nil
}

// Delete removes a course addressed by its course code and returns the
// removed record.
func (s *CourseService) Delete(ctx context.Context, req dto.CourseDTO) (*dto.CourseDTO, error) {
	course, err := s.repo.FindByCode(ctx, req.CourseCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course can not be found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return s.remove(ctx, course)
}

// DeleteByID removes a course by id and returns the removed record.
func (s *CourseService) DeleteByID(ctx context.Context, id int64) (*dto.CourseDTO, error) {
	course, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.remove(ctx, course)
}

// Roster returns the course and its enrolled students for export.
func (s *CourseService) Roster(ctx context.Context, id int64) (*models.Course, []models.Student, error) {
	course, err := s.findByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	students, err := s.students.ResolveStudents(ctx, course.StudentIDs)
	if err != nil {
		return nil, nil, err
	}
	return course, students, nil
}

func (s *CourseService) remove(ctx context.Context, course *models.Course) (*dto.CourseDTO, error) {
	result := dto.FromCourse(*course)
	if err := s.repo.Delete(ctx, course.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	s.invalidate(ctx)
	return &result, nil
}

func (s *CourseService) findByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course with id %d can not be found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

func (s *CourseService) checkCodeUnique(ctx context.Context, code string, excludeID int64) error {
	exists, err := s.repo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate course code")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "a course with this course code already exists")
	}
	return nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, courseCachePattern)
	}
}
