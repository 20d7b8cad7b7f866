package solver

import (
	"fmt"
	"sort"

	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
	"github.com/yossefc/emploi-du-temp-sub000/internal/timetable"
	appErrors "github.com/yossefc/emploi-du-temp-sub000/pkg/errors"
)

// extractAssignments converts chosen candidates into the output contract,
// resolving period boundaries through the slot calendar's inverse mapping.
func extractAssignments(chosen []int, set *CandidateSet, cal *timetable.Calendar) []models.Assignment {
	assignments := make([]models.Assignment, 0, len(chosen))
	for _, idx := range chosen {
		c := set.All[idx]
		start, end := cal.PeriodWindow(c.Slot.Period)
		assignments = append(assignments, models.Assignment{
			ClassID:   c.ClassID,
			Day:       c.Slot.Day,
			Period:    c.Slot.Period,
			StartTime: start,
			EndTime:   end,
			TeacherID: c.TeacherID,
			SubjectID: c.SubjectID,
			RoomID:    c.RoomID,
		})
	}
	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.ClassID != b.ClassID {
			return a.ClassID < b.ClassID
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.Period < b.Period
	})
	return assignments
}

// validateAssignments re-verifies every hard constraint by direct enumeration
// of the output records, trusting nothing the search reported. A violation
// here is a defect in the constraint poster or the search, not an ordinary
// conflict: the result must be quarantined, never surfaced as a schedule.
func validateAssignments(assignments []models.Assignment, cat *models.Catalog) error {
	classSeen := make(map[string]bool)
	teacherSeen := make(map[string]bool)
	roomSeen := make(map[string]bool)
	hours := make(map[pairKey]int)
	teacherLoad := make(map[string]int)

	for _, a := range assignments {
		classKey := fmt.Sprintf("%s@%d.%d", a.ClassID, a.Day, a.Period)
		teacherKey := fmt.Sprintf("%s@%d.%d", a.TeacherID, a.Day, a.Period)
		roomKey := fmt.Sprintf("%s@%d.%d", a.RoomID, a.Day, a.Period)

		if classSeen[classKey] {
			return defect(fmt.Sprintf("class %s double-booked on day %d period %d", a.ClassID, a.Day, a.Period))
		}
		if teacherSeen[teacherKey] {
			return defect(fmt.Sprintf("teacher %s double-booked on day %d period %d", a.TeacherID, a.Day, a.Period))
		}
		if roomSeen[roomKey] {
			return defect(fmt.Sprintf("room %s double-booked on day %d period %d", a.RoomID, a.Day, a.Period))
		}
		classSeen[classKey] = true
		teacherSeen[teacherKey] = true
		roomSeen[roomKey] = true

		hours[pairKey{ClassID: a.ClassID, SubjectID: a.SubjectID}]++
		teacherLoad[a.TeacherID]++
	}

	for _, req := range cat.Requirements {
		got := hours[pairKey{ClassID: req.ClassID, SubjectID: req.SubjectID}]
		if got != req.HoursPerWeek {
			return defect(fmt.Sprintf("class %s subject %s scheduled %d hours, requirement is %d", req.ClassID, req.SubjectID, got, req.HoursPerWeek))
		}
	}

	for _, teacher := range cat.Teachers {
		if teacher.MaxHoursPerWeek > 0 && teacherLoad[teacher.ID] > teacher.MaxHoursPerWeek {
			return defect(fmt.Sprintf("teacher %s assigned %d hours, ceiling is %d", teacher.ID, teacherLoad[teacher.ID], teacher.MaxHoursPerWeek))
		}
	}

	return nil
}

func defect(message string) error {
	return appErrors.Clone(appErrors.ErrSolverDefect, message)
}
