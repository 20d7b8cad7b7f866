package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
	"github.com/yossefc/emploi-du-temp-sub000/internal/timetable"
	appErrors "github.com/yossefc/emploi-du-temp-sub000/pkg/errors"
)

func slot(day, period int) timetable.Slot {
	return timetable.Slot{Day: day, Period: period}
}

func TestExtractAssignmentsResolvesPeriodWindows(t *testing.T) {
	cal := testCalendar(t)
	set := &CandidateSet{All: []Candidate{
		{ClassID: "c1", Slot: slot(1, 2), TeacherID: "t1", SubjectID: "math", RoomID: "r1"},
		{ClassID: "c1", Slot: slot(0, 0), TeacherID: "t2", SubjectID: "physics", RoomID: "r1"},
	}}

	assignments := extractAssignments([]int{0, 1}, set, cal)

	require.Len(t, assignments, 2)
	// Sorted by class, day, period regardless of search order.
	assert.Equal(t, 0, assignments[0].Day)
	assert.Equal(t, "08:00", assignments[0].StartTime)
	assert.Equal(t, "08:45", assignments[0].EndTime)
	assert.Equal(t, 1, assignments[1].Day)
	assert.Equal(t, "09:30", assignments[1].StartTime)
	assert.Equal(t, "10:15", assignments[1].EndTime)
}

func validCatalogAndAssignments() (*models.Catalog, []models.Assignment) {
	cat := scenarioACatalog()
	assignments := []models.Assignment{
		{ClassID: "c1", Day: 0, Period: 0, TeacherID: "t1", SubjectID: "math", RoomID: "r1"},
		{ClassID: "c1", Day: 0, Period: 1, TeacherID: "t1", SubjectID: "math", RoomID: "r1"},
		{ClassID: "c1", Day: 1, Period: 0, TeacherID: "t2", SubjectID: "physics", RoomID: "r1"},
		{ClassID: "c1", Day: 1, Period: 1, TeacherID: "t2", SubjectID: "physics", RoomID: "r1"},
	}
	return cat, assignments
}

func TestValidateAssignmentsAcceptsConsistentSchedule(t *testing.T) {
	cat, assignments := validCatalogAndAssignments()
	require.NoError(t, validateAssignments(assignments, cat))
	// The check is read-only and can run any number of times.
	require.NoError(t, validateAssignments(assignments, cat))
}

func TestValidateAssignmentsFlagsClassDoubleBooking(t *testing.T) {
	cat, assignments := validCatalogAndAssignments()
	assignments[1].Period = 0
	assignments[1].TeacherID = "t2"
	assignments[1].SubjectID = "physics"
	assignments[2].Day = 2
	assignments[3].Day = 2

	err := validateAssignments(assignments, cat)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSolverDefect.Code, appErrors.FromError(err).Code)
	assert.Contains(t, err.Error(), "class c1 double-booked")
}

func TestValidateAssignmentsFlagsTeacherDoubleBooking(t *testing.T) {
	cat := scenarioACatalog()
	cat.Classes = append(cat.Classes, models.ClassGroup{ID: "c2", StudentCount: 20, Active: true})
	cat.Requirements = []models.Requirement{
		{ClassID: "c1", SubjectID: "math", HoursPerWeek: 1},
		{ClassID: "c2", SubjectID: "math", HoursPerWeek: 1},
	}
	assignments := []models.Assignment{
		{ClassID: "c1", Day: 0, Period: 0, TeacherID: "t1", SubjectID: "math", RoomID: "r1"},
		{ClassID: "c2", Day: 0, Period: 0, TeacherID: "t1", SubjectID: "math", RoomID: "r2"},
	}

	err := validateAssignments(assignments, cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teacher t1 double-booked")
}

func TestValidateAssignmentsFlagsUnderScheduling(t *testing.T) {
	cat, assignments := validCatalogAndAssignments()

	err := validateAssignments(assignments[:3], cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduled 1 hours, requirement is 2")
}

func TestValidateAssignmentsFlagsOverScheduling(t *testing.T) {
	cat, assignments := validCatalogAndAssignments()
	assignments = append(assignments, models.Assignment{
		ClassID: "c1", Day: 2, Period: 0, TeacherID: "t1", SubjectID: "math", RoomID: "r1",
	})

	err := validateAssignments(assignments, cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduled 3 hours, requirement is 2")
}

func TestValidateAssignmentsFlagsTeacherOverload(t *testing.T) {
	cat, assignments := validCatalogAndAssignments()
	cat.Teachers[0].MaxHoursPerWeek = 1

	err := validateAssignments(assignments, cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teacher t1 assigned 2 hours, ceiling is 1")
}
