package solver

import (
	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
)

// Constraints is the posted hard-constraint store the search honours.
// Exclusivity is implied by the candidate-set index buckets (at most one
// active candidate per class/teacher/room slot bucket); the remaining
// families are counting constraints keyed by entity.
type Constraints struct {
	// ExactHours demands the active-candidate count for each (class, subject)
	// equal the requirement exactly; under-scheduling is as invalid as
	// over-scheduling.
	ExactHours map[pairKey]int
	// TeacherWeekly caps active candidates per teacher across the week.
	// Zero means no ceiling.
	TeacherWeekly map[string]int
	// TeacherDaily caps active candidates per teacher and day.
	TeacherDaily map[string]int
	// SubjectDaily caps active candidates per (class, subject) and day.
	SubjectDaily map[pairKey]int

	posted int
}

// Posted returns the number of constraint buckets attached to the model.
func (c *Constraints) Posted() int {
	return c.posted
}

// postConstraints attaches the hard constraints to the candidate set.
func postConstraints(cat *models.Catalog, set *CandidateSet) *Constraints {
	cons := &Constraints{
		ExactHours:    make(map[pairKey]int, len(cat.Requirements)),
		TeacherWeekly: make(map[string]int, len(cat.Teachers)),
		TeacherDaily:  make(map[string]int, len(cat.Teachers)),
		SubjectDaily:  make(map[pairKey]int),
	}

	// One at-most-one bucket per occupied (class|teacher|room, slot) index.
	cons.posted += len(set.ByClassSlot) + len(set.ByTeacherSlot) + len(set.ByRoomSlot)

	for _, req := range cat.Requirements {
		cons.ExactHours[pairKey{ClassID: req.ClassID, SubjectID: req.SubjectID}] = req.HoursPerWeek
		cons.posted++
	}

	for _, teacher := range cat.Teachers {
		if teacher.MaxHoursPerWeek > 0 {
			cons.TeacherWeekly[teacher.ID] = teacher.MaxHoursPerWeek
			cons.posted++
		}
		if teacher.MaxHoursPerDay > 0 {
			cons.TeacherDaily[teacher.ID] = teacher.MaxHoursPerDay
			cons.posted++
		}
	}

	subjects := cat.SubjectByID()
	for _, req := range cat.Requirements {
		subject := subjects[req.SubjectID]
		if subject == nil || subject.MaxHoursPerDay <= 0 {
			continue
		}
		cons.SubjectDaily[pairKey{ClassID: req.ClassID, SubjectID: req.SubjectID}] = subject.MaxHoursPerDay
		cons.posted++
	}

	return cons
}
