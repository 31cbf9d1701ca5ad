package dto

import (
	"time"

	"github.com/campusworks/tuition-api/internal/models"
)

// StudentDTO is the wire shape for students. Field names follow the legacy
// API contract. Course memberships are never accepted inbound; they are
// attached through course create/update only.
type StudentDTO struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"firstName" validate:"required"`
	LastName  string        `json:"lastName" validate:"required"`
	Address   string        `json:"address" validate:"required"`
	BirthDate time.Time     `json:"birthDate" validate:"required"`
	Gender    models.Gender `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
}

// FromStudent maps a stored student to its DTO.
func FromStudent(student models.Student) StudentDTO {
	return StudentDTO{
		ID:        student.ID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		Address:   student.Address,
		BirthDate: student.BirthDate,
		Gender:    student.Gender,
	}
}

// FromStudents maps a slice of students.
func FromStudents(students []models.Student) []StudentDTO {
	result := make([]StudentDTO, 0, len(students))
	for _, student := range students {
		result = append(result, FromStudent(student))
	}
	return result
}

// ToStudent maps a DTO to its entity form.
func ToStudent(d StudentDTO) models.Student {
	return models.Student{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Address:   d.Address,
		BirthDate: d.BirthDate,
		Gender:    d.Gender,
	}
}

// Key extracts the natural key used for delete-by-body requests.
func (d StudentDTO) Key() models.StudentKey {
	return models.StudentKey{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Address:   d.Address,
		Gender:    d.Gender,
	}
}
