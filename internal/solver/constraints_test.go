package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
)

func TestPostConstraintsRecordsExactHours(t *testing.T) {
	cat := scenarioACatalog()
	set := buildCandidates(cat, testCalendar(t))

	cons := postConstraints(cat, set)

	assert.Equal(t, 2, cons.ExactHours[pairKey{ClassID: "c1", SubjectID: "math"}])
	assert.Equal(t, 2, cons.ExactHours[pairKey{ClassID: "c1", SubjectID: "physics"}])
}

func TestPostConstraintsSkipsZeroCeilings(t *testing.T) {
	cat := scenarioACatalog()
	cat.Teachers[0].MaxHoursPerWeek = 18
	cat.Teachers[0].MaxHoursPerDay = 4

	cons := postConstraints(cat, buildCandidates(cat, testCalendar(t)))

	assert.Equal(t, 18, cons.TeacherWeekly["t1"])
	assert.Equal(t, 4, cons.TeacherDaily["t1"])
	_, capped := cons.TeacherWeekly["t2"]
	assert.False(t, capped, "zero means no ceiling")
	_, capped = cons.TeacherDaily["t2"]
	assert.False(t, capped)
}

func TestPostConstraintsCapsSubjectPerDay(t *testing.T) {
	cat := scenarioACatalog()
	cat.Subjects[0].MaxHoursPerDay = 1

	cons := postConstraints(cat, buildCandidates(cat, testCalendar(t)))

	assert.Equal(t, 1, cons.SubjectDaily[pairKey{ClassID: "c1", SubjectID: "math"}])
	_, capped := cons.SubjectDaily[pairKey{ClassID: "c1", SubjectID: "physics"}]
	assert.False(t, capped)
}

func TestPostConstraintsCountsBuckets(t *testing.T) {
	cat := scenarioACatalog()
	set := buildCandidates(cat, testCalendar(t))

	cons := postConstraints(cat, set)

	// 18 class-slot buckets (both subjects share class c1's slots), 18 per
	// teacher times two teachers, 18 room-slot buckets, plus two exact-hours
	// constraints.
	expected := len(set.ByClassSlot) + len(set.ByTeacherSlot) + len(set.ByRoomSlot) + len(cat.Requirements)
	assert.Equal(t, expected, cons.Posted())
	assert.Equal(t, 18+36+18+2, cons.Posted())
}

func TestPostConstraintsIgnoresRequirementsForUnknownSubjects(t *testing.T) {
	cat := scenarioACatalog()
	cat.Requirements = append(cat.Requirements, models.Requirement{ClassID: "c1", SubjectID: "ghost", HoursPerWeek: 1})

	cons := postConstraints(cat, buildCandidates(cat, testCalendar(t)))

	// The exact-hours demand is still posted; feasibility is the search's
	// verdict, not the poster's.
	assert.Equal(t, 1, cons.ExactHours[pairKey{ClassID: "c1", SubjectID: "ghost"}])
	_, capped := cons.SubjectDaily[pairKey{ClassID: "c1", SubjectID: "ghost"}]
	assert.False(t, capped)
}
