package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
)

func TestDiagnoseReportsNothingWhenSupplyCoversDemand(t *testing.T) {
	cal := testCalendar(t)
	cat := scenarioACatalog()
	set := buildCandidates(cat, cal)

	assert.Empty(t, diagnoseInfeasibility(cat, set, cal))
}

func TestDiagnoseCountsQualifiedTeacherSlotHours(t *testing.T) {
	cal := testCalendar(t)
	cat := scenarioACatalog()
	// t1 keeps exactly one free period, so math supply drops below two.
	cat.Teachers[0].Availability = []models.AvailabilityWindow{
		{Day: 0, StartTime: "08:45", EndTime: "18:00", Available: false},
		{Day: 1, StartTime: "08:00", EndTime: "18:00", Available: false},
		{Day: 2, StartTime: "08:00", EndTime: "18:00", Available: false},
		{Day: 3, StartTime: "08:00", EndTime: "18:00", Available: false},
		{Day: 4, StartTime: "08:00", EndTime: "18:00", Available: false},
	}
	set := buildCandidates(cat, cal)

	diags := diagnoseInfeasibility(cat, set, cal)
	require.Len(t, diags, 1)
	assert.Equal(t, models.DiagnosticInsufficientHours, diags[0].Kind)
	assert.Equal(t, "c1", diags[0].ClassID)
	assert.Equal(t, "math", diags[0].SubjectID)
	assert.Equal(t, 2, diags[0].Required)
	assert.Equal(t, 1, diags[0].Available)
}

func TestDiagnoseBoundsSupplyByDistinctSlots(t *testing.T) {
	cal := testCalendar(t)
	cat := scenarioACatalog()
	// Two qualified teachers sharing one free slot give two teacher-slot-hours,
	// but one class can only attend one lesson there.
	cat.Teachers = []models.Teacher{
		{ID: "t1", QualifiedSubjectIDs: []string{"math"}, Availability: blockAllButFirstSlot()},
		{ID: "t2", QualifiedSubjectIDs: []string{"math"}, Availability: blockAllButFirstSlot()},
	}
	cat.Subjects = cat.Subjects[:1]
	cat.Requirements = []models.Requirement{{ClassID: "c1", SubjectID: "math", HoursPerWeek: 2}}
	set := buildCandidates(cat, cal)

	diags := diagnoseInfeasibility(cat, set, cal)
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Required)
	assert.Equal(t, 1, diags[0].Available, "a class attends at most one lesson per slot")
}

func TestDiagnoseOrdersDeterministically(t *testing.T) {
	cal := testCalendar(t)
	cat := scenarioACatalog()
	for i := range cat.Teachers {
		for day := 0; day < 5; day++ {
			cat.Teachers[i].Availability = append(cat.Teachers[i].Availability, models.AvailabilityWindow{
				Day: day, StartTime: "08:00", EndTime: "18:00", Available: false,
			})
		}
	}
	set := buildCandidates(cat, cal)

	diags := diagnoseInfeasibility(cat, set, cal)
	require.Len(t, diags, 2)
	assert.Equal(t, "math", diags[0].SubjectID)
	assert.Equal(t, "physics", diags[1].SubjectID)
	assert.Zero(t, diags[0].Available)
	assert.Zero(t, diags[1].Available)
}

// blockAllButFirstSlot blocks every period of the week except day 0 period 0.
func blockAllButFirstSlot() []models.AvailabilityWindow {
	windows := make([]models.AvailabilityWindow, 0, 6)
	for d := 0; d < 5; d++ {
		windows = append(windows, models.AvailabilityWindow{
			Day: d, StartTime: "08:00", EndTime: "18:00", Available: false,
		})
	}
	return append(windows, models.AvailabilityWindow{
		Day: 0, StartTime: "08:00", EndTime: "08:45", Available: true,
	})
}
