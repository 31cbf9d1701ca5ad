package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/tuition-api/internal/models"
)

func instructorRows(instructors ...models.Instructor) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "address", "phone_number", "kind", "fixed_salary", "hourly_salary"})
	for _, in := range instructors {
		rows.AddRow(in.ID, in.FirstName, in.LastName, in.Address, in.PhoneNumber, in.Kind, in.FixedSalary, in.HourlySalary)
	}
	return rows
}

func TestInstructorRepositoryListBothVariants(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInstructorRepository(db)

	fixed := 4200.0
	hourly := 95.0
	mock.ExpectQuery(`SELECT .+ FROM instructors ORDER BY id`).
		WillReturnRows(instructorRows(
			models.Instructor{ID: 1, FirstName: "Grace", LastName: "Hopper", Address: "a", PhoneNumber: "555-0101", Kind: models.KindPermanentInstructor, FixedSalary: &fixed},
			models.Instructor{ID: 2, FirstName: "Alan", LastName: "Kay", Address: "b", PhoneNumber: "555-0102", Kind: models.KindVisitingResearcher, HourlySalary: &hourly},
		))

	instructors, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, instructors, 2)
	assert.Equal(t, models.KindPermanentInstructor, instructors[0].Kind)
	require.NotNil(t, instructors[0].FixedSalary)
	assert.Nil(t, instructors[0].HourlySalary)
	assert.Equal(t, models.KindVisitingResearcher, instructors[1].Kind)
	require.NotNil(t, instructors[1].HourlySalary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepositoryFindByPhone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInstructorRepository(db)

	fixed := 4200.0
	mock.ExpectQuery(`SELECT .+ FROM instructors WHERE phone_number = \$1`).
		WithArgs("555-0101").
		WillReturnRows(instructorRows(models.Instructor{
			ID: 1, FirstName: "Grace", LastName: "Hopper", Address: "a",
			PhoneNumber: "555-0101", Kind: models.KindPermanentInstructor, FixedSalary: &fixed,
		}))

	instructor, err := repo.FindByPhone(context.Background(), "555-0101")
	require.NoError(t, err)
	assert.Equal(t, int64(1), instructor.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepositoryExistsByPhone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInstructorRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM instructors WHERE phone_number = \$1 LIMIT 1`).
		WithArgs("555-0101").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByPhone(context.Background(), "555-0101", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepositoryExistsByPhoneExcludesID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInstructorRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM instructors WHERE phone_number = \$1 AND id <> \$2 LIMIT 1`).
		WithArgs("555-0101", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsByPhone(context.Background(), "555-0101", 3)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepositoryCreateAssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInstructorRepository(db)

	hourly := 95.0
	mock.ExpectQuery(`INSERT INTO instructors .+ RETURNING id`).
		WithArgs("Alan", "Kay", "b", "555-0102", models.KindVisitingResearcher, nil, &hourly).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	instructor := models.Instructor{
		FirstName: "Alan", LastName: "Kay", Address: "b", PhoneNumber: "555-0102",
		Kind: models.KindVisitingResearcher, HourlySalary: &hourly,
	}
	require.NoError(t, repo.Create(context.Background(), &instructor))
	assert.Equal(t, int64(5), instructor.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
