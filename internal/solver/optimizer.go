package solver

// gapObjective sums, over all (teacher, day) pairs, the span between the
// teacher's first and last taught period minus the periods actually taught.
// Zero means no teacher ever idles between lessons, the provable floor of the
// objective.
func (s *searchState) gapObjective() int {
	type window struct {
		first, last, taught int
	}
	spans := make(map[dayKey]*window)
	for _, idx := range s.chosen {
		c := s.set.All[idx]
		key := dayKey{ID: c.TeacherID, Day: c.Slot.Day}
		w, ok := spans[key]
		if !ok {
			spans[key] = &window{first: c.Slot.Period, last: c.Slot.Period, taught: 1}
			continue
		}
		if c.Slot.Period < w.first {
			w.first = c.Slot.Period
		}
		if c.Slot.Period > w.last {
			w.last = c.Slot.Period
		}
		w.taught++
	}

	total := 0
	for _, w := range spans {
		total += w.last - w.first + 1 - w.taught
	}
	return total
}

// minimizeGaps runs a bounded hill-climb over single-assignment moves: each
// chosen candidate may be swapped for an alternative from its own requirement
// bucket when doing so lowers the objective. Hard constraints are enforced
// through the same occupancy checks the search uses, so no move can invalidate
// the solution. Returns the final objective value.
func (s *searchState) minimizeGaps() int {
	best := s.gapObjective()
	maxPasses := 4 * (len(s.chosen) + 1)

	for pass := 0; pass < maxPasses && best > 0; pass++ {
		if s.expired() {
			break
		}
		improved := false

		for ci := 0; ci < len(s.chosen) && !improved; ci++ {
			idx := s.chosen[ci]
			c := s.set.All[idx]
			order := s.bucketOrder[pairKey{ClassID: c.ClassID, SubjectID: c.SubjectID}]

			s.undo(idx)
			for _, alt := range order {
				if alt == idx || !s.admissibleNow(alt) {
					continue
				}
				s.apply(alt)
				s.chosen[ci] = alt
				if obj := s.gapObjective(); obj < best {
					best = obj
					improved = true
					break
				}
				s.undo(alt)
				s.chosen[ci] = idx
			}
			if !improved {
				s.apply(idx)
			}
		}

		if !improved {
			break
		}
	}

	return best
}
