package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
)

func TestBuildCandidatesEnumeratesAdmissibleTuples(t *testing.T) {
	cal := testCalendar(t)
	set := buildCandidates(scenarioACatalog(), cal)

	// Each teacher pairs with exactly one subject and the single room over 18
	// slots (4 full days of 4 periods plus a short day of 2).
	require.Len(t, set.All, 36)
	assert.Len(t, set.ByClassSubject[pairKey{ClassID: "c1", SubjectID: "math"}], 18)
	assert.Len(t, set.ByClassSubject[pairKey{ClassID: "c1", SubjectID: "physics"}], 18)

	for _, c := range set.All {
		assert.Equal(t, "c1", c.ClassID)
		assert.Equal(t, "r1", c.RoomID)
		assert.True(t, cal.Contains(c.Slot.Day, c.Slot.Period), "slot %v outside the grid", c.Slot)
	}
}

func TestBuildCandidatesSkipsUnqualifiedPairings(t *testing.T) {
	set := buildCandidates(scenarioACatalog(), testCalendar(t))

	for _, c := range set.All {
		switch c.TeacherID {
		case "t1":
			assert.Equal(t, "math", c.SubjectID)
		case "t2":
			assert.Equal(t, "physics", c.SubjectID)
		default:
			t.Fatalf("unexpected teacher %s", c.TeacherID)
		}
	}
}

func TestBuildCandidatesPrunesBlockedTeacherSlots(t *testing.T) {
	cat := scenarioACatalog()
	cat.Teachers[0].Availability = []models.AvailabilityWindow{
		{TeacherID: "t1", Day: 2, StartTime: "08:00", EndTime: "18:00", Available: false},
	}

	set := buildCandidates(cat, testCalendar(t))
	for _, c := range set.All {
		if c.TeacherID == "t1" {
			assert.NotEqual(t, 2, c.Slot.Day, "blocked day must not yield candidates")
		}
	}
	// t1 loses the 4 periods of day 2, t2 is untouched.
	assert.Len(t, set.ByClassSubject[pairKey{ClassID: "c1", SubjectID: "math"}], 14)
	assert.Len(t, set.ByClassSubject[pairKey{ClassID: "c1", SubjectID: "physics"}], 18)
}

func TestBuildCandidatesReopensSlotsInsideBlockedWindows(t *testing.T) {
	cat := scenarioACatalog()
	// The later, narrower window re-opens one period inside the blocked day.
	cat.Teachers[0].Availability = []models.AvailabilityWindow{
		{TeacherID: "t1", Day: 2, StartTime: "08:00", EndTime: "18:00", Available: false},
		{TeacherID: "t1", Day: 2, StartTime: "08:45", EndTime: "09:30", Available: true},
	}

	set := buildCandidates(cat, testCalendar(t))
	var day2Periods []int
	for _, c := range set.All {
		if c.TeacherID == "t1" && c.Slot.Day == 2 {
			day2Periods = append(day2Periods, c.Slot.Period)
		}
	}
	assert.Equal(t, []int{1}, day2Periods)
}

func TestBuildCandidatesPrunesUnavailableRooms(t *testing.T) {
	cat := scenarioACatalog()
	cat.Rooms[0].Unavailability = []models.UnavailabilityWindow{
		{Day: 0, StartTime: "08:00", EndTime: "08:45"},
	}

	set := buildCandidates(cat, testCalendar(t))
	for _, c := range set.All {
		assert.False(t, c.Slot.Day == 0 && c.Slot.Period == 0, "room is closed in that slot")
	}
}

func TestBuildCandidatesEnforcesRoomCapability(t *testing.T) {
	cat := scenarioACatalog()
	cat.Subjects[1].RequiresLab = true
	cat.Rooms = append(cat.Rooms, models.Room{ID: "lab1", Capacity: 30, Type: models.RoomTypeLab})

	set := buildCandidates(cat, testCalendar(t))
	for _, c := range set.All {
		if c.SubjectID == "physics" {
			assert.Equal(t, "lab1", c.RoomID, "lab subjects only fit lab rooms")
		}
	}
}

func TestBuildCandidatesEnforcesRoomCapacity(t *testing.T) {
	cat := scenarioACatalog()
	cat.Rooms = append(cat.Rooms, models.Room{ID: "small", Capacity: 10, Type: models.RoomTypeStandard})

	set := buildCandidates(cat, testCalendar(t))
	for _, c := range set.All {
		assert.NotEqual(t, "small", c.RoomID, "room below class size must be pruned")
	}
}

func TestBuildCandidatesIgnoresOutOfGridWindows(t *testing.T) {
	cat := scenarioACatalog()
	cat.Teachers[0].Availability = []models.AvailabilityWindow{
		{TeacherID: "t1", Day: 9, StartTime: "08:00", EndTime: "18:00", Available: false},
	}

	set := buildCandidates(cat, testCalendar(t))
	assert.Len(t, set.ByClassSubject[pairKey{ClassID: "c1", SubjectID: "math"}], 18)
}

func TestBuildCandidatesIndexesAgree(t *testing.T) {
	set := buildCandidates(scenarioACatalog(), testCalendar(t))

	counted := 0
	for key, bucket := range set.ByTeacherSlot {
		counted += len(bucket)
		for _, idx := range bucket {
			assert.Equal(t, key.ID, set.All[idx].TeacherID)
			assert.Equal(t, key.Slot, set.All[idx].Slot)
		}
	}
	assert.Equal(t, len(set.All), counted, "every candidate sits in exactly one teacher-slot bucket")
}

func TestSlotsHaveNoCandidatesAfterSubjectRemoval(t *testing.T) {
	cat := scenarioACatalog()
	cat.Teachers[0].QualifiedSubjectIDs = []string{"ghost"}

	set := buildCandidates(cat, testCalendar(t))
	for _, c := range set.All {
		assert.NotEqual(t, "t1", c.TeacherID, "unknown subject ids yield no tuples")
	}
}
