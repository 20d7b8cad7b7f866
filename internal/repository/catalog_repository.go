package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
)

// CatalogRepository loads the read-only solve-run rosters. It owns the
// reconciliation of upstream naming drift (legacy French columns such as
// capacite and effectif) so nothing downstream has to duck-type between
// field spellings.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs a CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type teacherSubjectRow struct {
	TeacherID string `db:"teacher_id"`
	SubjectID string `db:"subject_id"`
}

// ListTeachers returns the teacher roster with qualifications and
// availability exceptions attached.
func (r *CatalogRepository) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, full_name, COALESCE(max_hours_per_week, 0) AS max_hours_per_week, COALESCE(max_hours_per_day, 0) AS max_hours_per_day FROM teachers ORDER BY id`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	const qualQuery = `SELECT teacher_id, subject_id FROM teacher_subjects ORDER BY teacher_id, subject_id`
	var quals []teacherSubjectRow
	if err := r.db.SelectContext(ctx, &quals, qualQuery); err != nil {
		return nil, fmt.Errorf("list teacher qualifications: %w", err)
	}

	const availQuery = `SELECT teacher_id, day, start_time, end_time, available FROM teacher_availability_exceptions ORDER BY teacher_id, day, start_time`
	var windows []models.AvailabilityWindow
	if err := r.db.SelectContext(ctx, &windows, availQuery); err != nil {
		return nil, fmt.Errorf("list teacher availability exceptions: %w", err)
	}

	qualsByTeacher := make(map[string][]string)
	for _, row := range quals {
		qualsByTeacher[row.TeacherID] = append(qualsByTeacher[row.TeacherID], row.SubjectID)
	}
	windowsByTeacher := make(map[string][]models.AvailabilityWindow)
	for _, window := range windows {
		windowsByTeacher[window.TeacherID] = append(windowsByTeacher[window.TeacherID], window)
	}

	for i := range teachers {
		teachers[i].QualifiedSubjectIDs = qualsByTeacher[teachers[i].ID]
		teachers[i].Availability = windowsByTeacher[teachers[i].ID]
	}
	return teachers, nil
}

// ListSubjects returns the subject roster.
func (r *CatalogRepository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	const query = `SELECT id, name, requires_lab, requires_special_room, COALESCE(max_hours_per_day, 0) AS max_hours_per_day FROM subjects ORDER BY id`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// ListRooms returns the room roster with unavailability exceptions attached.
func (r *CatalogRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	const query = `SELECT id, COALESCE(capacity, capacite, 0) AS capacity, COALESCE(type, 'standard') AS type FROM rooms ORDER BY id`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	const windowQuery = `SELECT room_id, day, start_time, end_time FROM room_unavailability_exceptions ORDER BY room_id, day, start_time`
	var windows []models.UnavailabilityWindow
	if err := r.db.SelectContext(ctx, &windows, windowQuery); err != nil {
		return nil, fmt.Errorf("list room unavailability exceptions: %w", err)
	}

	windowsByRoom := make(map[string][]models.UnavailabilityWindow)
	for _, window := range windows {
		windowsByRoom[window.RoomID] = append(windowsByRoom[window.RoomID], window)
	}
	for i := range rooms {
		rooms[i].Unavailability = windowsByRoom[rooms[i].ID]
	}
	return rooms, nil
}

// ListActiveClassGroups returns the class-group roster. Inactive cohorts never
// reach the engine.
func (r *CatalogRepository) ListActiveClassGroups(ctx context.Context) ([]models.ClassGroup, error) {
	const query = `SELECT id, name, COALESCE(student_count, effectif, 0) AS student_count, active FROM class_groups WHERE active = TRUE ORDER BY id`
	var classes []models.ClassGroup
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list class groups: %w", err)
	}
	return classes, nil
}

// ListRequirements returns the weekly-hours requirements.
func (r *CatalogRepository) ListRequirements(ctx context.Context) ([]models.Requirement, error) {
	const query = `SELECT class_id, subject_id, hours_per_week FROM requirements WHERE hours_per_week > 0 ORDER BY class_id, subject_id`
	var requirements []models.Requirement
	if err := r.db.SelectContext(ctx, &requirements, query); err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	return requirements, nil
}
