// Package solver implements the timetable constraint-scheduling engine: it
// prunes the admissible decision space, posts the hard constraints, runs a
// time-bounded backtracking search and re-validates whatever the search
// produces before handing it to the caller.
package solver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
	"github.com/yossefc/emploi-du-temp-sub000/internal/timetable"
)

// Options governs one solve run.
type Options struct {
	// TimeLimit bounds the wall-clock search budget. Zero means unbounded.
	TimeLimit time.Duration
	// Seed drives candidate-order tie-breaking. Zero keeps roster order.
	Seed int64
}

// Engine runs a single logical solve per invocation. An instance owns no
// state shared across calls; hosts running concurrent solves use independent
// instances.
type Engine struct {
	cal    *timetable.Calendar
	opts   Options
	logger *zap.Logger
}

// NewEngine builds an engine over an immutable slot calendar.
func NewEngine(cal *timetable.Calendar, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cal: cal, opts: opts, logger: logger}
}

// Solve executes the full pipeline: pre-check, model construction, constraint
// posting, search, gap optimization, extraction and validation. The returned
// result is complete and immutable; callers never observe an intermediate
// state. The only returned error is an internal consistency defect, in which
// case the assignments are withheld.
func (e *Engine) Solve(ctx context.Context, cat *models.Catalog) (*models.SolveResult, error) {
	started := time.Now()
	result := &models.SolveResult{
		RunID:  uuid.NewString(),
		Status: models.StatusUnknown,
	}
	defer func() {
		result.SolveTimeSeconds = time.Since(started).Seconds()
	}()

	if diags := precheck(cat); len(diags) > 0 {
		result.Status = models.StatusInvalidData
		result.Diagnostics = diags
		e.logger.Info("solve_finished",
			zap.String("run_id", result.RunID),
			zap.String("status", result.Status),
			zap.Int("diagnostics", len(diags)))
		return result, nil
	}

	set := buildCandidates(cat, e.cal)
	result.Statistics.VariablesCreated = len(set.All)

	if len(set.All) > 0 {
		cons := postConstraints(cat, set)
		result.Statistics.ConstraintsPosted = cons.Posted()

		var deadline time.Time
		if e.opts.TimeLimit > 0 {
			deadline = started.Add(e.opts.TimeLimit)
		}

		state := newSearchState(ctx, set, cons, deadline, e.opts.Seed)
		outcome := state.run()
		result.Statistics.BranchesExplored = state.branches

		switch outcome {
		case searchFound:
			objective := state.minimizeGaps()
			if objective == 0 {
				result.Status = models.StatusOptimal
			} else {
				result.Status = models.StatusFeasible
			}
			assignments := extractAssignments(state.chosen, set, e.cal)
			if err := validateAssignments(assignments, cat); err != nil {
				e.logger.Error("solve_defect",
					zap.String("run_id", result.RunID),
					zap.Error(err))
				result.Status = models.StatusUnknown
				return result, err
			}
			result.Assignments = assignments
		case searchExhausted:
			result.Status = models.StatusInfeasible
			result.Diagnostics = diagnoseInfeasibility(cat, set, e.cal)
		case searchTimeout:
			result.Status = models.StatusUnknown
		}
	} else {
		result.Status = models.StatusInfeasible
		result.Diagnostics = append([]models.Diagnostic{{
			Kind:    models.DiagnosticNoCandidates,
			Message: "no admissible (class, slot, teacher, subject, room) tuple survived pruning",
		}}, diagnoseInfeasibility(cat, set, e.cal)...)
	}

	e.logger.Info("solve_finished",
		zap.String("run_id", result.RunID),
		zap.String("status", result.Status),
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("variables", result.Statistics.VariablesCreated),
		zap.Int("constraints", result.Statistics.ConstraintsPosted),
		zap.Int64("branches", result.Statistics.BranchesExplored),
		zap.Duration("elapsed", time.Since(started)))

	return result, nil
}
