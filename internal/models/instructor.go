package models

// InstructorKind discriminates the two instructor variants stored in the
// shared instructors table.
type InstructorKind string

const (
	KindPermanentInstructor InstructorKind = "PermanentInstructor"
	KindVisitingResearcher  InstructorKind = "VisitingResearcher"
)

// Valid reports whether the kind is one of the known variants.
func (k InstructorKind) Valid() bool {
	return k == KindPermanentInstructor || k == KindVisitingResearcher
}

// Instructor represents either a permanent instructor or a visiting
// researcher. Exactly one of FixedSalary and HourlySalary is set, matching
// Kind.
type Instructor struct {
	ID           int64          `db:"id" json:"id"`
	FirstName    string         `db:"first_name" json:"first_name"`
	LastName     string         `db:"last_name" json:"last_name"`
	Address      string         `db:"address" json:"address"`
	PhoneNumber  string         `db:"phone_number" json:"phone_number"`
	Kind         InstructorKind `db:"kind" json:"kind"`
	FixedSalary  *float64       `db:"fixed_salary" json:"fixed_salary,omitempty"`
	HourlySalary *float64       `db:"hourly_salary" json:"hourly_salary,omitempty"`
}
