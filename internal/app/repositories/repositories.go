package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ProfileRepository            *ProfileRepository
	TokenRepository              *TokenRepository
	CourseRepository             *CourseRepository
	CourseMemberRepository       *CourseMemberRepository
	NoteRepository               *NoteRepository
	ViewRepository               *ViewRepository
	GroupRepository              *GroupRepository
	ScaffoldRepository           *ScaffoldRepository
	NotificationRepository       *NotificationRepository
	TeacherApplicationRepository *TeacherApplicationRepository
	AIInteractionRepository      *AIInteractionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ProfileRepository:            NewProfileRepository(db),
		TokenRepository:              NewTokenRepository(db),
		CourseRepository:             NewCourseRepository(db),
		CourseMemberRepository:       NewCourseMemberRepository(db),
		NoteRepository:               NewNoteRepository(db),
		ViewRepository:               NewViewRepository(db),
		GroupRepository:              NewGroupRepository(db),
		ScaffoldRepository:           NewScaffoldRepository(db),
		NotificationRepository:       NewNotificationRepository(db),
		TeacherApplicationRepository: NewTeacherApplicationRepository(db),
		AIInteractionRepository:      NewAIInteractionRepository(db),
	}
}
