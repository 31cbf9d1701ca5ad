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

type instructorRepository interface {
	List(ctx context.Context) ([]models.Instructor, error)
	FindByID(ctx context.Context, id int64) (*models.Instructor, error)
	FindByPhone(ctx context.Context, phone string) (*models.Instructor, error)
	ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error)
	Create(ctx context.Context, instructor *models.Instructor) error
	Update(ctx context.Context, instructor *models.Instructor) error
	Delete(ctx context.Context, id int64) error
}

type instructorCourseCounter interface {
	CountByInstructor(ctx context.Context, instructorID int64) (int, error)
}

// InstructorService handles both instructor variants.
type InstructorService struct {
	repo      instructorRepository
	courses   instructorCourseCounter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstructorService constructs the instructor service.
func NewInstructorService(repo instructorRepository, courses instructorCourseCounter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, courses: courses, cache: cache, validator: validate, logger: logger}
}

// List returns all instructors, each mapped to the DTO of its variant.
func (s *InstructorService) List(ctx context.Context) ([]dto.InstructorDTO, error) {
	instructors, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructors")
	}
	return dto.FromInstructors(instructors), nil
}

// Get returns one instructor by id.
func (s *InstructorService) Get(ctx context.Context, id int64) (*dto.InstructorDTO, error) {
	instructor, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := dto.FromInstructor(*instructor)
	return &result, nil
}

// CreatePermanent registers a new permanent instructor.
func (s *InstructorService) CreatePermanent(ctx context.Context, req dto.InstructorDTO) (*dto.InstructorDTO, error) {
	return s.create(ctx, req, models.KindPermanentInstructor)
}

// CreateVisiting registers a new visiting researcher.
func (s *InstructorService) CreateVisiting(ctx context.Context, req dto.InstructorDTO) (*dto.InstructorDTO, error) {
	return s.create(ctx, req, models.KindVisitingResearcher)
}

func (s *InstructorService) create(ctx context.Context, req dto.InstructorDTO, kind models.InstructorKind) (*dto.InstructorDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	if err := s.checkPhoneUnique(ctx, req.PhoneNumber, 0); err != nil {
		return nil, err
	}

	instructor := dto.ToInstructor(req, kind)
	instructor.ID = 0
	if err := s.repo.Create(ctx, &instructor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create instructor")
	}
	result := dto.FromInstructor(instructor)
	return &result, nil
}

// UpdatePermanent overwrites a permanent instructor under its id.
func (s *InstructorService) UpdatePermanent(ctx context.Context, req dto.InstructorDTO, id int64) (*dto.InstructorDTO, error) {
	return s.update(ctx, req, id, models.KindPermanentInstructor)
}

// UpdateVisiting overwrites a visiting researcher under its id.
func (s *InstructorService) UpdateVisiting(ctx context.Context, req dto.InstructorDTO, id int64) (*dto.InstructorDTO, error) {
	return s.update(ctx, req, id, models.KindVisitingResearcher)
}

func (s *InstructorService) update(ctx context.Context, req dto.InstructorDTO, id int64, kind models.InstructorKind) (*dto.InstructorDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	existing, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// the variant-specific endpoints only operate on their own variant
	if existing.Kind != kind {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s with id %d can not be found", kind, id))
	}
	if err := s.checkPhoneUnique(ctx, req.PhoneNumber, id); err != nil {
		return nil, err
	}

	instructor := dto.ToInstructor(req, kind)
	instructor.ID = id
	if err := s.repo.Update(ctx, &instructor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update instructor")
	}
	result := dto.FromInstructor(instructor)
	return &result, nil
}

// DeletePermanent removes a permanent instructor addressed by phone number.
func (s *InstructorService) DeletePermanent(ctx context.Context, req dto.InstructorDTO) (*dto.InstructorDTO, error) {
	return s.deleteByPhone(ctx, req.PhoneNumber, models.KindPermanentInstructor)
}

// DeleteVisiting removes a visiting researcher addressed by phone number.
func (s *InstructorService) DeleteVisiting(ctx context.Context, req dto.InstructorDTO) (*dto.InstructorDTO, error) {
	return s.deleteByPhone(ctx, req.PhoneNumber, models.KindVisitingResearcher)
}

func (s *InstructorService) deleteByPhone(ctx context.Context, phone string, kind models.InstructorKind) (*dto.InstructorDTO, error) {
	instructor, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor can not be found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	if instructor.Kind != kind {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor can not be found")
	}
	return s.remove(ctx, instructor)
}

// DeleteByID removes an instructor of either variant by id.
func (s *InstructorService) DeleteByID(ctx context.Context, id int64) (*dto.InstructorDTO, error) {
	instructor, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.remove(ctx, instructor)
}

func (s *InstructorService) remove(ctx context.Context, instructor *models.Instructor) (*dto.InstructorDTO, error) {
	// no cascade: courses keep their instructor until reassigned, so the
	// delete is refused while any course still references this instructor
	owned, err := s.courses.CountByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count instructor courses")
	}
	if owned > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("instructor still owns %d course(s)", owned))
	}

	result := dto.FromInstructor(*instructor)
	if err := s.repo.Delete(ctx, instructor.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete instructor")
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, courseCachePattern)
	}
	return &result, nil
}

// CourseInstructor resolves an instructor reference for the course mapper.
func (s *InstructorService) CourseInstructor(ctx context.Context, id int64) (*models.Instructor, error) {
	return s.findByID(ctx, id)
}

func (s *InstructorService) findByID(ctx context.Context, id int64) (*models.Instructor, error) {
	instructor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("instructor with id %d can not be found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	return instructor, nil
}

func (s *InstructorService) checkPhoneUnique(ctx context.Context, phone string, excludeID int64) error {
	exists, err := s.repo.ExistsByPhone(ctx, phone, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate phone number")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "an instructor with this phone number already exists")
	}
	return nil
}
