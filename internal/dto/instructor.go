package dto

import "github.com/campusworks/tuition-api/internal/models"

// InstructorDTO is the wire shape shared by both instructor variants. The
// Type tag picks the variant; exactly one salary field accompanies it
// (fixedSalary for permanent instructors, hourlySalary for visiting
// researchers).
type InstructorDTO struct {
	ID           int64                 `json:"id"`
	Type         models.InstructorKind `json:"type"`
	FirstName    string                `json:"firstName" validate:"required"`
	LastName     string                `json:"lastName" validate:"required"`
	Address      string                `json:"address" validate:"required"`
	PhoneNumber  string                `json:"phoneNumber" validate:"required"`
	FixedSalary  *float64              `json:"fixedSalary,omitempty"`
	HourlySalary *float64              `json:"hourlySalary,omitempty"`
}

// FromInstructor maps a stored instructor to the DTO of its variant.
func FromInstructor(instructor models.Instructor) InstructorDTO {
	d := InstructorDTO{
		ID:          instructor.ID,
		Type:        instructor.Kind,
		FirstName:   instructor.FirstName,
		LastName:    instructor.LastName,
		Address:     instructor.Address,
		PhoneNumber: instructor.PhoneNumber,
	}
	switch instructor.Kind {
	case models.KindPermanentInstructor:
		d.FixedSalary = instructor.FixedSalary
	case models.KindVisitingResearcher:
		d.HourlySalary = instructor.HourlySalary
	}
	return d
}

// FromInstructors maps a slice of instructors, dispatching per variant.
func FromInstructors(instructors []models.Instructor) []InstructorDTO {
	result := make([]InstructorDTO, 0, len(instructors))
	for _, instructor := range instructors {
		result = append(result, FromInstructor(instructor))
	}
	return result
}

// ToInstructor maps a DTO to its entity form under the given kind. The kind
// comes from the endpoint, not the payload, so a stray type tag cannot
// switch variants. The salary field of the other variant is discarded.
func ToInstructor(d InstructorDTO, kind models.InstructorKind) models.Instructor {
	instructor := models.Instructor{
		ID:          d.ID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Address:     d.Address,
		PhoneNumber: d.PhoneNumber,
		Kind:        kind,
	}
	switch kind {
	case models.KindPermanentInstructor:
		instructor.FixedSalary = d.FixedSalary
	case models.KindVisitingResearcher:
		instructor.HourlySalary = d.HourlySalary
	}
	return instructor
}
