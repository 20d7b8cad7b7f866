package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yossefc/emploi-du-temp-sub000/internal/dto"
	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
	"github.com/yossefc/emploi-du-temp-sub000/internal/solver"
	"github.com/yossefc/emploi-du-temp-sub000/internal/timetable"
	appErrors "github.com/yossefc/emploi-du-temp-sub000/pkg/errors"
)

type teacherRosterFetcher interface {
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
}

type subjectRosterFetcher interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
}

type roomRosterFetcher interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
}

type classGroupFetcher interface {
	ListActiveClassGroups(ctx context.Context) ([]models.ClassGroup, error)
}

type requirementFetcher interface {
	ListRequirements(ctx context.Context) ([]models.Requirement, error)
}

type solveEngine interface {
	Solve(ctx context.Context, cat *models.Catalog) (*models.SolveResult, error)
}

type solveObserver interface {
	ObserveSolve(status string, duration time.Duration, candidates, branches int64)
}

// SolveService orchestrates one timetable solve: it validates the request,
// loads the catalog through the roster fetchers and runs an engine instance
// owned exclusively by that call.
type SolveService struct {
	teachers     teacherRosterFetcher
	subjects     subjectRosterFetcher
	rooms        roomRosterFetcher
	classes      classGroupFetcher
	requirements requirementFetcher
	newEngine    func(opts solver.Options) solveEngine
	validator    *validator.Validate
	logger       *zap.Logger
	metrics      solveObserver
	defaults     solver.Options
}

// NewSolveService wires solver dependencies.
func NewSolveService(
	teachers teacherRosterFetcher,
	subjects subjectRosterFetcher,
	rooms roomRosterFetcher,
	classes classGroupFetcher,
	requirements requirementFetcher,
	cal *timetable.Calendar,
	defaults solver.Options,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics solveObserver,
) *SolveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SolveService{
		teachers:     teachers,
		subjects:     subjects,
		rooms:        rooms,
		classes:      classes,
		requirements: requirements,
		newEngine: func(opts solver.Options) solveEngine {
			return solver.NewEngine(cal, opts, logger)
		},
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		defaults:  defaults,
	}
}

// Solve runs the full pipeline for one request and returns the complete,
// immutable result. Data-loading failures surface as INVALID_DATA with the
// underlying cause attached; retry policy belongs to the caller.
func (s *SolveService) Solve(ctx context.Context, req dto.SolveRequest) (*models.SolveResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid solve request payload")
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	opts := s.defaults
	if req.TimeLimitSeconds > 0 {
		opts.TimeLimit = time.Duration(req.TimeLimitSeconds) * time.Second
	}
	if req.Seed > 0 {
		opts.Seed = req.Seed
	}

	s.logger.Info("solve_started",
		zap.Int("teachers", len(catalog.Teachers)),
		zap.Int("subjects", len(catalog.Subjects)),
		zap.Int("rooms", len(catalog.Rooms)),
		zap.Int("classes", len(catalog.Classes)),
		zap.Int("requirements", len(catalog.Requirements)),
		zap.Duration("time_limit", opts.TimeLimit))

	started := time.Now()
	result, err := s.newEngine(opts).Solve(ctx, catalog)
	if err != nil {
		// Internal consistency defect: the assignment is quarantined.
		if s.metrics != nil && result != nil {
			s.metrics.ObserveSolve(result.Status, time.Since(started), int64(result.Statistics.VariablesCreated), result.Statistics.BranchesExplored)
		}
		return nil, appErrors.FromError(err)
	}

	if s.metrics != nil {
		s.metrics.ObserveSolve(result.Status, time.Since(started), int64(result.Statistics.VariablesCreated), result.Statistics.BranchesExplored)
	}
	return result, nil
}

func (s *SolveService) loadCatalog(ctx context.Context) (*models.Catalog, error) {
	teachers, err := s.teachers.ListTeachers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidData.Code, appErrors.ErrInvalidData.Status, "failed to load teacher roster")
	}
	subjects, err := s.subjects.ListSubjects(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidData.Code, appErrors.ErrInvalidData.Status, "failed to load subject roster")
	}
	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidData.Code, appErrors.ErrInvalidData.Status, "failed to load room roster")
	}
	classes, err := s.classes.ListActiveClassGroups(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidData.Code, appErrors.ErrInvalidData.Status, "failed to load class groups")
	}
	requirements, err := s.requirements.ListRequirements(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidData.Code, appErrors.ErrInvalidData.Status, "failed to load requirements")
	}

	return &models.Catalog{
		Teachers:     teachers,
		Subjects:     subjects,
		Rooms:        rooms,
		Classes:      classes,
		Requirements: requirements,
	}, nil
}
