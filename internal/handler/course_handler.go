package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/tuition-api/internal/dto"
	"github.com/campusworks/tuition-api/internal/service"
	appErrors "github.com/campusworks/tuition-api/pkg/errors"
	"github.com/campusworks/tuition-api/pkg/export"
	"github.com/campusworks/tuition-api/pkg/response"
)

// CourseHandler exposes course endpoints including the roster export.
type CourseHandler struct {
	courses       *service.CourseService
	csvExporter   *export.CSVExporter
	pdfExporter   *export.PDFExporter
	exportEnabled bool
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses *service.CourseService, exportEnabled bool) *CourseHandler {
	return &CourseHandler{
		courses:       courses,
		csvExporter:   export.NewCSVExporter(),
		pdfExporter:   export.NewPDFExporter(),
		exportEnabled: exportEnabled,
	}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Get godoc
// @Summary Get course by id
// @Tags Courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CourseDTO true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CourseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param payload body dto.CourseDTO true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CourseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Update(c.Request.Context(), req, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Delete godoc
// @Summary Delete course by course code
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CourseDTO true "Course to delete"
// @Success 200 {object} response.Envelope
// @Router /courses [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	var req dto.CourseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Delete(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// DeleteByID godoc
// @Summary Delete course by id
// @Tags Courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId} [delete]
func (h *CourseHandler) DeleteByID(c *gin.Context) {
	id, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.DeleteByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Export godoc
// @Summary Export the course roster as CSV or PDF
// @Tags Courses
// @Produce text/csv
// @Produce application/pdf
// @Param courseId path int true "Course ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /courses/{courseId}/export [get]
func (h *CourseHandler) Export(c *gin.Context) {
	if !h.exportEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	id, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	course, students, err := h.courses.Roster(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := export.Dataset{
		Headers: []string{"ID", "First Name", "Last Name", "Address", "Gender"},
	}
	for _, student := range students {
		data.Rows = append(data.Rows, map[string]string{
			"ID":         strconv.FormatInt(student.ID, 10),
			"First Name": student.FirstName,
			"Last Name":  student.LastName,
			"Address":    student.Address,
			"Gender":     string(student.Gender),
		})
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	switch format {
	case "csv":
		payload, err := h.csvExporter.Render(data)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-roster.csv"`, course.CourseCode))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		title := fmt.Sprintf("%s %s roster", course.CourseCode, course.CourseName)
		payload, err := h.pdfExporter.Render(data, title)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-roster.pdf"`, course.CourseCode))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
