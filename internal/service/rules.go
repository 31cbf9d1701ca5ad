package service

import (
	"time"

	"github.com/campusworks/tuition-api/internal/models"
)

const (
	minStudentAge = 18
	maxStudentAge = 40
)

// wholeYearsBetween returns the number of completed years from birth to
// today, date precision.
func wholeYearsBetween(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}

// studentAgeWithinRange reports whether the student is between 18 and 40
// years old, inclusive, as of today.
func studentAgeWithinRange(birth, today time.Time) bool {
	age := wholeYearsBetween(birth, today)
	return age >= minStudentAge && age <= maxStudentAge
}

// enrollmentWithinLimit reports whether a course with n students stays within
// the enrollment cap.
func enrollmentWithinLimit(n int) bool {
	return n <= models.MaxCourseStudents
}
