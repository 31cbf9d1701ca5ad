package models

import "time"

// Gender enumerates the accepted gender values.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Valid reports whether the value is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Student represents a learner registered for tuition.
type Student struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Address   string    `db:"address" json:"address"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
	Gender    Gender    `db:"gender" json:"gender"`
}

// StudentKey is the natural key used when deleting a student without an id.
type StudentKey struct {
	FirstName string
	LastName  string
	Address   string
	Gender    Gender
}
