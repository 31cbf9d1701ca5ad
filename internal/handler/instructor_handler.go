package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/tuition-api/internal/dto"
	"github.com/campusworks/tuition-api/internal/service"
	appErrors "github.com/campusworks/tuition-api/pkg/errors"
	"github.com/campusworks/tuition-api/pkg/response"
)

// InstructorHandler exposes instructor endpoints. The permanent-instructor
// and visiting-researcher routes share one handler; the route picks the
// variant.
type InstructorHandler struct {
	instructors *service.InstructorService
}

// NewInstructorHandler constructs InstructorHandler.
func NewInstructorHandler(instructors *service.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructors: instructors}
}

// List godoc
// @Summary List instructors of both variants
// @Tags Instructors
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /instructors [get]
func (h *InstructorHandler) List(c *gin.Context) {
	instructors, err := h.instructors.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors)
}

// Get godoc
// @Summary Get instructor by id
// @Tags Instructors
// @Produce json
// @Param instructorId path int true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{instructorId} [get]
func (h *InstructorHandler) Get(c *gin.Context) {
	id, err := pathID(c, "instructorId")
	if err != nil {
		response.Error(c, err)
		return
	}
	instructor, err := h.instructors.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor)
}

// CreatePermanent godoc
// @Summary Create permanent instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Param payload body dto.InstructorDTO true "Instructor payload"
// @Success 201 {object} response.Envelope
// @Router /instructors/permanentInstructor [post]
func (h *InstructorHandler) CreatePermanent(c *gin.Context) {
	h.create(c, h.instructors.CreatePermanent)
}

// CreateVisiting godoc
// @Summary Create visiting researcher
// @Tags Instructors
// @Accept json
// @Produce json
// @Param payload body dto.InstructorDTO true "Instructor payload"
// @Success 201 {object} response.Envelope
// @Router /instructors/visitingResearcher [post]
func (h *InstructorHandler) CreateVisiting(c *gin.Context) {
	h.create(c, h.instructors.CreateVisiting)
}

// UpdatePermanent godoc
// @Summary Update permanent instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Param instructorId path int true "Instructor ID"
// @Param payload body dto.InstructorDTO true "Instructor payload"
// @Success 200 {object} response.Envelope
// @Router /instructors/permanentInstructor/{instructorId} [put]
func (h *InstructorHandler) UpdatePermanent(c *gin.Context) {
	h.update(c, h.instructors.UpdatePermanent)
}

// UpdateVisiting godoc
// @Summary Update visiting researcher
// @Tags Instructors
// @Accept json
// @Produce json
// @Param instructorId path int true "Instructor ID"
// @Param payload body dto.InstructorDTO true "Instructor payload"
// @Success 200 {object} response.Envelope
// @Router /instructors/visitingResearcher/{instructorId} [put]
func (h *InstructorHandler) UpdateVisiting(c *gin.Context) {
	h.update(c, h.instructors.UpdateVisiting)
}

// DeletePermanent godoc
// @Summary Delete permanent instructor by phone number
// @Tags Instructors
// @Accept json
// @Produce json
// @Param payload body dto.InstructorDTO true "Instructor to delete"
// @Success 200 {object} response.Envelope
// @Router /instructors/permanentInstructor [delete]
func (h *InstructorHandler) DeletePermanent(c *gin.Context) {
	h.deleteByBody(c, h.instructors.DeletePermanent)
}

// DeleteVisiting godoc
// @Summary Delete visiting researcher by phone number
// @Tags Instructors
// @Accept json
// @Produce json
// @Param payload body dto.InstructorDTO true "Instructor to delete"
// @Success 200 {object} response.Envelope
// @Router /instructors/visitingResearcher [delete]
func (h *InstructorHandler) DeleteVisiting(c *gin.Context) {
	h.deleteByBody(c, h.instructors.DeleteVisiting)
}

// DeleteByID godoc
// @Summary Delete instructor of either variant by id
// @Tags Instructors
// @Produce json
// @Param instructorId path int true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{instructorId} [delete]
func (h *InstructorHandler) DeleteByID(c *gin.Context) {
	id, err := pathID(c, "instructorId")
	if err != nil {
		response.Error(c, err)
		return
	}
	instructor, err := h.instructors.DeleteByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor)
}

func (h *InstructorHandler) create(c *gin.Context, fn func(context.Context, dto.InstructorDTO) (*dto.InstructorDTO, error)) {
	var req dto.InstructorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	instructor, err := fn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, instructor)
}

func (h *InstructorHandler) update(c *gin.Context, fn func(context.Context, dto.InstructorDTO, int64) (*dto.InstructorDTO, error)) {
	id, err := pathID(c, "instructorId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.InstructorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	instructor, err := fn(c.Request.Context(), req, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor)
}

func (h *InstructorHandler) deleteByBody(c *gin.Context, fn func(context.Context, dto.InstructorDTO) (*dto.InstructorDTO, error)) {
	var req dto.InstructorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	instructor, err := fn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor)
}
