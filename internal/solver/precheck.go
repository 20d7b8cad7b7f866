package solver

import (
	"fmt"

	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
)

// precheck validates structural solvability before any model construction.
// Every requirement needs at least one qualified teacher and every class group
// needs at least one room large enough. Any finding aborts the run as
// invalid-data so the search budget is never spent on a catalog that is
// unsolvable for non-combinatorial reasons.
func precheck(cat *models.Catalog) []models.Diagnostic {
	var diags []models.Diagnostic

	qualified := make(map[string]int, len(cat.Subjects))
	for _, teacher := range cat.Teachers {
		for _, subjectID := range teacher.QualifiedSubjectIDs {
			qualified[subjectID]++
		}
	}

	for _, req := range cat.Requirements {
		if qualified[req.SubjectID] == 0 {
			diags = append(diags, models.Diagnostic{
				Kind:      models.DiagnosticUnqualifiedSubject,
				ClassID:   req.ClassID,
				SubjectID: req.SubjectID,
				Message:   fmt.Sprintf("no teacher is qualified for subject %s required by class %s", req.SubjectID, req.ClassID),
			})
		}
	}

	maxCapacity := 0
	for _, room := range cat.Rooms {
		if room.Capacity > maxCapacity {
			maxCapacity = room.Capacity
		}
	}
	for _, class := range cat.Classes {
		if class.StudentCount > maxCapacity {
			diags = append(diags, models.Diagnostic{
				Kind:      models.DiagnosticInsufficientCapacity,
				ClassID:   class.ID,
				Message:   fmt.Sprintf("no room can hold class %s (%d students, largest room holds %d)", class.ID, class.StudentCount, maxCapacity),
				Required:  class.StudentCount,
				Available: maxCapacity,
			})
		}
	}

	return diags
}
