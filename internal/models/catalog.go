package models

// Teacher represents a staff member who may teach.
type Teacher struct {
	ID                  string               `db:"id" json:"id"`
	FullName            string               `db:"full_name" json:"full_name"`
	MaxHoursPerWeek     int                  `db:"max_hours_per_week" json:"max_hours_per_week"`
	MaxHoursPerDay      int                  `db:"max_hours_per_day" json:"max_hours_per_day"`
	QualifiedSubjectIDs []string             `db:"-" json:"qualified_subject_ids"`
	Availability        []AvailabilityWindow `db:"-" json:"availability_exceptions,omitempty"`
}

// AvailabilityWindow marks a teacher as available or blocked for part of a day.
/// Times are clock strings ("HH:MM"); the slot calendar owns the conversion to
// period indexes.
type AvailabilityWindow struct {
	TeacherID string `db:"teacher_id" json:"-"`
	Day       int    `db:"day" json:"day"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
	Available bool   `db:"available" json:"available"`
}

// Subject represents a course offering.
type Subject struct {
	ID                  string `db:"id" json:"id"`
	Name                string `db:"name" json:"name"`
	RequiresLab         bool   `db:"requires_lab" json:"requires_lab"`
	RequiresSpecialRoom bool   `db:"requires_special_room" json:"requires_special_room"`
	MaxHoursPerDay      int    `db:"max_hours_per_day" json:"max_hours_per_day"`
}

// Room types the engine distinguishes for subject capability matching.
const (
	RoomTypeStandard = "standard"
	RoomTypeLab      = "lab"
)

// Room represents a physical space.
type Room struct {
	ID             string                 `db:"id" json:"id"`
	Capacity       int                    `db:"capacity" json:"capacity"`
	Type           string                 `db:"type" json:"type"`
	Unavailability []UnavailabilityWindow `db:"-" json:"unavailability_exceptions,omitempty"`
}

// Satisfies reports whether the room meets a subject's capability needs.
func (r Room) Satisfies(s Subject) bool {
	if s.RequiresLab {
		return r.Type == RoomTypeLab
	}
	if s.RequiresSpecialRoom {
		return r.Type != RoomTypeStandard
	}
	return true
}

// UnavailabilityWindow blocks a room for part of a day.
type UnavailabilityWindow struct {
	RoomID    string `db:"room_id" json:"-"`
	Day       int    `db:"day" json:"day"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

// ClassGroup represents a cohort of students.
type ClassGroup struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	StudentCount int    `db:"student_count" json:"student_count"`
	Active       bool   `db:"active" json:"active"`
}

// Requirement states the weekly hours a class group owes a subject.
type Requirement struct {
	ClassID      string `db:"class_id" json:"class_id"`
	SubjectID    string `db:"subject_id" json:"subject_id"`
	HoursPerWeek int    `db:"hours_per_week" json:"hours_per_week"`
}

// Catalog bundles one solve run's read-only input rosters.
type Catalog struct {
	Teachers     []Teacher
	Subjects     []Subject
	Rooms        []Room
	Classes      []ClassGroup
	Requirements []Requirement
}

// TeacherByID returns a lookup map over the roster.
func (c *Catalog) TeacherByID() map[string]*Teacher {
	m := make(map[string]*Teacher, len(c.Teachers))
	for i := range c.Teachers {
		m[c.Teachers[i].ID] = &c.Teachers[i]
	}
	return m
}

// SubjectByID returns a lookup map over the roster.
func (c *Catalog) SubjectByID() map[string]*Subject {
	m := make(map[string]*Subject, len(c.Subjects))
	for i := range c.Subjects {
		m[c.Subjects[i].ID] = &c.Subjects[i]
	}
	return m
}

// RoomByID returns a lookup map over the roster.
func (c *Catalog) RoomByID() map[string]*Room {
	m := make(map[string]*Room, len(c.Rooms))
	for i := range c.Rooms {
		m[c.Rooms[i].ID] = &c.Rooms[i]
	}
	return m
}

// ClassByID returns a lookup map over the roster.
func (c *Catalog) ClassByID() map[string]*ClassGroup {
	m := make(map[string]*ClassGroup, len(c.Classes))
	for i := range c.Classes {
		m[c.Classes[i].ID] = &c.Classes[i]
	}
	return m
}
