package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/yossefc/emploi-du-temp-sub000/internal/dto"
	"github.com/yossefc/emploi-du-temp-sub000/internal/repository"
	"github.com/yossefc/emploi-du-temp-sub000/internal/service"
	"github.com/yossefc/emploi-du-temp-sub000/internal/solver"
	"github.com/yossefc/emploi-du-temp-sub000/internal/timetable"
	"github.com/yossefc/emploi-du-temp-sub000/pkg/config"
	"github.com/yossefc/emploi-du-temp-sub000/pkg/database"
	"github.com/yossefc/emploi-du-temp-sub000/pkg/logger"
	"github.com/yossefc/emploi-du-temp-sub000/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	cal, err := timetable.New(timetable.Config{
		DaysPerWeek:       cfg.Timetable.DaysPerWeek,
		PeriodsPerDay:     cfg.Timetable.PeriodsPerDay,
		PeriodsOnShortDay: cfg.Timetable.PeriodsOnShortDay,
		ShortDayIndex:     cfg.Timetable.ShortDayIndex,
		StartTime:         cfg.Timetable.StartTime,
		PeriodMinutes:     cfg.Timetable.PeriodMinutes,
	})
	if err != nil {
		log.Fatalf("failed to build slot calendar: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	catalog := repository.NewCatalogRepository(db)
	svc := service.NewSolveService(
		catalog, catalog, catalog, catalog, catalog,
		cal,
		solver.Options{TimeLimit: cfg.Solver.TimeLimit, Seed: cfg.Solver.Seed},
		nil,
		logr,
		metrics.NewSolveMetrics(),
	)

	result, err := svc.Solve(context.Background(), dto.SolveRequest{})
	if err != nil {
		logr.Sugar().Errorw("solve failed", "error", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logr.Sugar().Errorw("failed to encode result", "error", err)
		os.Exit(1)
	}
}
