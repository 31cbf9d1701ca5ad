package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles every endpoint group for route registration.
type Handlers struct {
	Students      *StudentHandler
	Instructors   *InstructorHandler
	Courses       *CourseHandler
	ExceptionLogs *ExceptionLogHandler
}

// RegisterRoutes mounts the API surface under the given group.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	students := api.Group("/students")
	{
		students.GET("", h.Students.List)
		students.GET("/:studentId", h.Students.Get)
		students.POST("", h.Students.Create)
		students.PUT("/:studentId", h.Students.Update)
		students.DELETE("", h.Students.Delete)
		students.DELETE("/:studentId", h.Students.DeleteByID)
	}

	instructors := api.Group("/instructors")
	{
		instructors.GET("", h.Instructors.List)
		instructors.GET("/:instructorId", h.Instructors.Get)
		instructors.POST("/permanentInstructor", h.Instructors.CreatePermanent)
		instructors.POST("/visitingResearcher", h.Instructors.CreateVisiting)
		instructors.PUT("/permanentInstructor/:instructorId", h.Instructors.UpdatePermanent)
		instructors.PUT("/visitingResearcher/:instructorId", h.Instructors.UpdateVisiting)
		instructors.DELETE("/permanentInstructor", h.Instructors.DeletePermanent)
		instructors.DELETE("/visitingResearcher", h.Instructors.DeleteVisiting)
		instructors.DELETE("/:instructorId", h.Instructors.DeleteByID)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", h.Courses.List)
		courses.GET("/:courseId", h.Courses.Get)
		courses.POST("", h.Courses.Create)
		courses.PUT("/:courseId", h.Courses.Update)
		courses.DELETE("", h.Courses.Delete)
		courses.DELETE("/:courseId", h.Courses.DeleteByID)
		courses.GET("/:courseId/export", h.Courses.Export)
	}

	api.GET("/exceptionLogs", h.ExceptionLogs.Query)
}
