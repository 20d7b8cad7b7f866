package solver

import (
	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
	"github.com/yossefc/emploi-du-temp-sub000/internal/timetable"
)

// Candidate is one locally admissible (class, slot, teacher, subject, room)
// tuple. The candidate set is exactly the search space: tuples failing any
// admissibility check are pruned here and never reconsidered.
type Candidate struct {
	ClassID   string
	Slot      timetable.Slot
	TeacherID string
	SubjectID string
	RoomID    string
}

type slotKey struct {
	ID   string
	Slot timetable.Slot
}

type pairKey struct {
	ClassID   string
	SubjectID string
}

// CandidateSet holds the admissible tuples plus the index buckets constraint
// posting works against. Candidate order follows roster order, so two builds
// over the same catalog are identical.
type CandidateSet struct {
	All            []Candidate
	ByClassSlot    map[slotKey][]int
	ByTeacherSlot  map[slotKey][]int
	ByRoomSlot     map[slotKey][]int
	ByClassSubject map[pairKey][]int
}

// buildCandidates enumerates the admissible decision space. Checks run
// cheapest-first: qualification, then requirement membership, then room
// capacity and capability, then per-slot availability.
func buildCandidates(cat *models.Catalog, cal *timetable.Calendar) *CandidateSet {
	required := make(map[pairKey]bool, len(cat.Requirements))
	for _, req := range cat.Requirements {
		required[pairKey{ClassID: req.ClassID, SubjectID: req.SubjectID}] = true
	}

	teacherFree := teacherAvailabilityGrid(cat, cal)
	roomFree := roomAvailabilityGrid(cat, cal)
	subjects := cat.SubjectByID()

	set := &CandidateSet{
		ByClassSlot:    make(map[slotKey][]int),
		ByTeacherSlot:  make(map[slotKey][]int),
		ByRoomSlot:     make(map[slotKey][]int),
		ByClassSubject: make(map[pairKey][]int),
	}

	for _, teacher := range cat.Teachers {
		for _, subjectID := range teacher.QualifiedSubjectIDs {
			subject := subjects[subjectID]
			if subject == nil {
				continue
			}
			for _, class := range cat.Classes {
				pair := pairKey{ClassID: class.ID, SubjectID: subjectID}
				if !required[pair] {
					continue
				}
				for _, room := range cat.Rooms {
					if room.Capacity < class.StudentCount || !room.Satisfies(*subject) {
						continue
					}
					for _, slot := range cal.Slots() {
						if !teacherFree[slotKey{ID: teacher.ID, Slot: slot}] || !roomFree[slotKey{ID: room.ID, Slot: slot}] {
							continue
						}
						idx := len(set.All)
						set.All = append(set.All, Candidate{
							ClassID:   class.ID,
							Slot:      slot,
							TeacherID: teacher.ID,
							SubjectID: subjectID,
							RoomID:    room.ID,
						})
						set.ByClassSlot[slotKey{ID: class.ID, Slot: slot}] = append(set.ByClassSlot[slotKey{ID: class.ID, Slot: slot}], idx)
						set.ByTeacherSlot[slotKey{ID: teacher.ID, Slot: slot}] = append(set.ByTeacherSlot[slotKey{ID: teacher.ID, Slot: slot}], idx)
						set.ByRoomSlot[slotKey{ID: room.ID, Slot: slot}] = append(set.ByRoomSlot[slotKey{ID: room.ID, Slot: slot}], idx)
						set.ByClassSubject[pair] = append(set.ByClassSubject[pair], idx)
					}
				}
			}
		}
	}

	return set
}

// teacherAvailabilityGrid expands availability exceptions into a per-slot
// free/blocked map. Teachers are available by default; exception windows
// override the covered periods in declaration order.
func teacherAvailabilityGrid(cat *models.Catalog, cal *timetable.Calendar) map[slotKey]bool {
	free := make(map[slotKey]bool)
	for _, teacher := range cat.Teachers {
		for _, slot := range cal.Slots() {
			free[slotKey{ID: teacher.ID, Slot: slot}] = true
		}
		for _, window := range teacher.Availability {
			if window.Day < 0 || window.Day >= cal.Days() {
				continue
			}
			for _, period := range cal.CoveredPeriods(window.Day, window.StartTime, window.EndTime) {
				free[slotKey{ID: teacher.ID, Slot: timetable.Slot{Day: window.Day, Period: period}}] = window.Available
			}
		}
	}
	return free
}

func roomAvailabilityGrid(cat *models.Catalog, cal *timetable.Calendar) map[slotKey]bool {
	free := make(map[slotKey]bool)
	for _, room := range cat.Rooms {
		for _, slot := range cal.Slots() {
			free[slotKey{ID: room.ID, Slot: slot}] = true
		}
		for _, window := range room.Unavailability {
			if window.Day < 0 || window.Day >= cal.Days() {
				continue
			}
			for _, period := range cal.CoveredPeriods(window.Day, window.StartTime, window.EndTime) {
				free[slotKey{ID: room.ID, Slot: timetable.Slot{Day: window.Day, Period: period}}] = false
			}
		}
	}
	return free
}
