package solver

import (
	"context"
	"math/rand"
	"sort"
	"time"
)

type searchOutcome int

const (
	searchFound searchOutcome = iota
	searchExhausted
	searchTimeout
)

type dayKey struct {
	ID  string
	Day int
}

type subjectDayKey struct {
	Pair pairKey
	Day  int
}

// lesson is one hour of one requirement awaiting placement.
type lesson struct {
	pair  pairKey
	first bool
}

// searchState drives a depth-first search over the candidate set with forward
// checking against the occupancy maps. All state is local to one solve run.
type searchState struct {
	set  *CandidateSet
	cons *Constraints

	ctx      context.Context
	deadline time.Time
	timedOut bool

	lessons     []lesson
	bucketOrder map[pairKey][]int

	classBusy   map[slotKey]bool
	teacherBusy map[slotKey]bool
	roomBusy    map[slotKey]bool
	teacherWeek map[string]int
	teacherDay  map[dayKey]int
	subjectDay  map[subjectDayKey]int

	chosen   []int
	branches int64
}

func newSearchState(ctx context.Context, set *CandidateSet, cons *Constraints, deadline time.Time, seed int64) *searchState {
	s := &searchState{
		set:         set,
		cons:        cons,
		ctx:         ctx,
		deadline:    deadline,
		bucketOrder: make(map[pairKey][]int, len(set.ByClassSubject)),
		classBusy:   make(map[slotKey]bool),
		teacherBusy: make(map[slotKey]bool),
		roomBusy:    make(map[slotKey]bool),
		teacherWeek: make(map[string]int),
		teacherDay:  make(map[dayKey]int),
		subjectDay:  make(map[subjectDayKey]int),
	}

	// Stable iteration order over the pair buckets keeps seeded shuffling and
	// the most-constrained-first ordering reproducible.
	pairs := make([]pairKey, 0, len(cons.ExactHours))
	for pair := range cons.ExactHours {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].ClassID != pairs[j].ClassID {
			return pairs[i].ClassID < pairs[j].ClassID
		}
		return pairs[i].SubjectID < pairs[j].SubjectID
	})

	rng := rand.New(rand.NewSource(seed))
	for _, pair := range pairs {
		order := append([]int(nil), set.ByClassSubject[pair]...)
		if seed != 0 {
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		s.bucketOrder[pair] = order
	}

	// Most-constrained-first: requirements with the fewest candidates per
	// owed hour are placed before looser ones.
	sort.SliceStable(pairs, func(i, j int) bool {
		li, hi := len(s.bucketOrder[pairs[i]]), cons.ExactHours[pairs[i]]
		lj, hj := len(s.bucketOrder[pairs[j]]), cons.ExactHours[pairs[j]]
		return li*hj < lj*hi
	})

	for _, pair := range pairs {
		for h := 0; h < cons.ExactHours[pair]; h++ {
			s.lessons = append(s.lessons, lesson{pair: pair, first: h == 0})
		}
	}

	return s
}

// run executes the search. On searchFound s.chosen holds one candidate index
// per lesson; on searchExhausted the space was fully explored without a
// solution, which is a proof of infeasibility.
func (s *searchState) run() searchOutcome {
	// A bucket smaller than the owed hours can never satisfy exactness.
	for pair, hours := range s.cons.ExactHours {
		if len(s.bucketOrder[pair]) < hours {
			return searchExhausted
		}
	}
	return s.place(0, 0)
}

// place assigns lesson i. startPos enforces increasing bucket positions for
// consecutive hours of the same requirement, which breaks permutation
// symmetry without losing any distinct solution.
func (s *searchState) place(i, startPos int) searchOutcome {
	if s.expired() {
		return searchTimeout
	}
	if i == len(s.lessons) {
		return searchFound
	}

	current := s.lessons[i]
	if current.first {
		startPos = 0
	}
	order := s.bucketOrder[current.pair]

	for pos := startPos; pos < len(order); pos++ {
		idx := order[pos]
		s.branches++
		if !s.admissibleNow(idx) {
			continue
		}

		s.apply(idx)
		s.chosen = append(s.chosen, idx)

		outcome := s.place(i+1, pos+1)
		if outcome != searchExhausted {
			return outcome
		}

		s.chosen = s.chosen[:len(s.chosen)-1]
		s.undo(idx)
	}

	return searchExhausted
}

// admissibleNow checks candidate idx against the current occupancy state and
// the posted counting constraints.
func (s *searchState) admissibleNow(idx int) bool {
	c := s.set.All[idx]
	if s.classBusy[slotKey{ID: c.ClassID, Slot: c.Slot}] ||
		s.teacherBusy[slotKey{ID: c.TeacherID, Slot: c.Slot}] ||
		s.roomBusy[slotKey{ID: c.RoomID, Slot: c.Slot}] {
		return false
	}
	if limit, ok := s.cons.TeacherWeekly[c.TeacherID]; ok && s.teacherWeek[c.TeacherID]+1 > limit {
		return false
	}
	if limit, ok := s.cons.TeacherDaily[c.TeacherID]; ok && s.teacherDay[dayKey{ID: c.TeacherID, Day: c.Slot.Day}]+1 > limit {
		return false
	}
	pair := pairKey{ClassID: c.ClassID, SubjectID: c.SubjectID}
	if limit, ok := s.cons.SubjectDaily[pair]; ok && s.subjectDay[subjectDayKey{Pair: pair, Day: c.Slot.Day}]+1 > limit {
		return false
	}
	return true
}

func (s *searchState) apply(idx int) {
	c := s.set.All[idx]
	s.classBusy[slotKey{ID: c.ClassID, Slot: c.Slot}] = true
	s.teacherBusy[slotKey{ID: c.TeacherID, Slot: c.Slot}] = true
	s.roomBusy[slotKey{ID: c.RoomID, Slot: c.Slot}] = true
	s.teacherWeek[c.TeacherID]++
	s.teacherDay[dayKey{ID: c.TeacherID, Day: c.Slot.Day}]++
	pair := pairKey{ClassID: c.ClassID, SubjectID: c.SubjectID}
	s.subjectDay[subjectDayKey{Pair: pair, Day: c.Slot.Day}]++
}

func (s *searchState) undo(idx int) {
	c := s.set.All[idx]
	delete(s.classBusy, slotKey{ID: c.ClassID, Slot: c.Slot})
	delete(s.teacherBusy, slotKey{ID: c.TeacherID, Slot: c.Slot})
	delete(s.roomBusy, slotKey{ID: c.RoomID, Slot: c.Slot})
	s.teacherWeek[c.TeacherID]--
	s.teacherDay[dayKey{ID: c.TeacherID, Day: c.Slot.Day}]--
	pair := pairKey{ClassID: c.ClassID, SubjectID: c.SubjectID}
	s.subjectDay[subjectDayKey{Pair: pair, Day: c.Slot.Day}]--
}

// expired implements cooperative cancellation: the search degrades to a
// timeout outcome instead of leaving the model inconsistent.
func (s *searchState) expired() bool {
	if s.timedOut {
		return true
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		s.timedOut = true
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.timedOut = true
		return true
	}
	return false
}
