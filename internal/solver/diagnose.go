package solver

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
	"github.com/yossefc/emploi-du-temp-sub000/internal/timetable"
)

// diagnoseInfeasibility explains, per requirement, how much supply actually
// exists against the owed hours. Supply is the lesser of the qualified
// teacher-slot-hours and the distinct slots holding at least one admissible
// candidate, since a class can attend at most one lesson per slot. This is a
// best-effort heuristic: tightly coupled infeasible instances may under-report
// their causes.
func diagnoseInfeasibility(cat *models.Catalog, set *CandidateSet, cal *timetable.Calendar) []models.Diagnostic {
	teacherFree := teacherAvailabilityGrid(cat, cal)

	freeSlots := make(map[string]int, len(cat.Teachers))
	for _, teacher := range cat.Teachers {
		freeSlots[teacher.ID] = lo.CountBy(cal.Slots(), func(slot timetable.Slot) bool {
			return teacherFree[slotKey{ID: teacher.ID, Slot: slot}]
		})
	}

	var diags []models.Diagnostic
	for _, req := range cat.Requirements {
		pair := pairKey{ClassID: req.ClassID, SubjectID: req.SubjectID}

		teacherSlotHours := lo.SumBy(cat.Teachers, func(teacher models.Teacher) int {
			if !lo.Contains(teacher.QualifiedSubjectIDs, req.SubjectID) {
				return 0
			}
			return freeSlots[teacher.ID]
		})

		candidateSlots := lo.Uniq(lo.Map(set.ByClassSubject[pair], func(idx int, _ int) timetable.Slot {
			return set.All[idx].Slot
		}))

		available := teacherSlotHours
		if len(candidateSlots) < available {
			available = len(candidateSlots)
		}
		if available < req.HoursPerWeek {
			diags = append(diags, models.Diagnostic{
				Kind:      models.DiagnosticInsufficientHours,
				ClassID:   req.ClassID,
				SubjectID: req.SubjectID,
				Message:   fmt.Sprintf("class %s subject %s needs %d hours but only %d teacher-slot-hours are available", req.ClassID, req.SubjectID, req.HoursPerWeek, available),
				Required:  req.HoursPerWeek,
				Available: available,
			})
		}
	}

	sort.Slice(diags, func(i, j int) bool {
		if diags[i].ClassID != diags[j].ClassID {
			return diags[i].ClassID < diags[j].ClassID
		}
		return diags[i].SubjectID < diags[j].SubjectID
	})
	return diags
}
