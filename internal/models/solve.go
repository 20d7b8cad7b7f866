package models

// Solve statuses reported to callers.
const (
	StatusOptimal     = "optimal"
	StatusFeasible    = "feasible"
	StatusInfeasible  = "infeasible"
	StatusInvalidData = "invalid-data"
	StatusUnknown     = "unknown"
)

// Diagnostic kinds emitted by the pre-checker and the infeasibility analyzer.
const (
	DiagnosticUnqualifiedSubject   = "unqualified-subject"
	DiagnosticInsufficientCapacity = "insufficient-capacity"
	DiagnosticInsufficientHours    = "insufficient-hours"
	DiagnosticNoCandidates         = "no-candidates"
	DiagnosticLoadFailure          = "load-failure"
)

// Assignment is one finalized (class, slot, teacher, subject, room) record.
type Assignment struct {
	ClassID   string `json:"class_id"`
	Day       int    `json:"day"`
	Period    int    `json:"period"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	TeacherID string `json:"teacher_id"`
	SubjectID string `json:"subject_id"`
	RoomID    string `json:"room_id"`
}

// Diagnostic explains why a requirement cannot be satisfied.
type Diagnostic struct {
	Kind      string `json:"kind"`
	ClassID   string `json:"class_id,omitempty"`
	SubjectID string `json:"subject_id,omitempty"`
	Message   string `json:"message"`
	Required  int    `json:"required,omitempty"`
	Available int    `json:"available,omitempty"`
}

// Statistics summarises the search effort of one solve run.
type Statistics struct {
	VariablesCreated  int   `json:"variables_created"`
	ConstraintsPosted int   `json:"constraints_posted"`
	BranchesExplored  int64 `json:"branches_explored"`
}

// SolveResult is the complete output contract of one solve run.
type SolveResult struct {
	RunID            string       `json:"run_id"`
	Status           string       `json:"status"`
	SolveTimeSeconds float64      `json:"solve_time_seconds"`
	Assignments      []Assignment `json:"assignments"`
	Diagnostics      []Diagnostic `json:"diagnostics,omitempty"`
	Statistics       Statistics   `json:"statistics"`
}
