package dto

// SolveRequest instructs the engine to build a timetable for the loaded
// catalog. The time limit is optional; zero falls back to the configured
// default budget.
type SolveRequest struct {
	TimeLimitSeconds int   `json:"time_limit_seconds" validate:"omitempty,min=1,max=3600"`
	Seed             int64 `json:"seed" validate:"omitempty,min=0"`
}
