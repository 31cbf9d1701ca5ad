package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/tuition-api/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestFromInstructorVariantDispatch(t *testing.T) {
	permanent := FromInstructor(models.Instructor{
		ID: 1, FirstName: "Grace", LastName: "Hopper", Address: "Arlington",
		PhoneNumber: "555-0101", Kind: models.KindPermanentInstructor,
		FixedSalary: fp(4200), HourlySalary: fp(99),
	})
	assert.Equal(t, models.KindPermanentInstructor, permanent.Type)
	require.NotNil(t, permanent.FixedSalary)
	assert.Equal(t, 4200.0, *permanent.FixedSalary)
	assert.Nil(t, permanent.HourlySalary)

	visiting := FromInstructor(models.Instructor{
		ID: 2, FirstName: "Alan", LastName: "Kay", Address: "LA",
		PhoneNumber: "555-0102", Kind: models.KindVisitingResearcher,
		FixedSalary: fp(1), HourlySalary: fp(95),
	})
	assert.Equal(t, models.KindVisitingResearcher, visiting.Type)
	require.NotNil(t, visiting.HourlySalary)
	assert.Equal(t, 95.0, *visiting.HourlySalary)
	assert.Nil(t, visiting.FixedSalary)
}

func TestToInstructorKindFromEndpointNotPayload(t *testing.T) {
	// a stray type tag in the payload must not override the endpoint's kind
	d := InstructorDTO{
		Type: models.KindVisitingResearcher,
		FirstName: "Grace", LastName: "Hopper", Address: "Arlington",
		PhoneNumber: "555-0101", FixedSalary: fp(4200), HourlySalary: fp(95),
	}

	instructor := ToInstructor(d, models.KindPermanentInstructor)
	assert.Equal(t, models.KindPermanentInstructor, instructor.Kind)
	require.NotNil(t, instructor.FixedSalary)
	assert.Nil(t, instructor.HourlySalary)
}

func TestInstructorDTOOmitsAbsentSalary(t *testing.T) {
	d := FromInstructor(models.Instructor{
		ID: 1, FirstName: "Grace", LastName: "Hopper", Address: "Arlington",
		PhoneNumber: "555-0101", Kind: models.KindPermanentInstructor, FixedSalary: fp(4200),
	})

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"fixedSalary"`)
	assert.NotContains(t, string(raw), `"hourlySalary"`)
}
