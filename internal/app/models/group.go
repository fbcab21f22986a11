package models

import "time"

// Group is a collaboration group within a course based on the 'groups' table
type Group struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	GroupType   GroupType `json:"groupType" db:"group_type"`
	MaxMembers  int       `json:"maxMembers" db:"max_members"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// GroupMember links a profile to a group based on the 'group_members' table.
// (group_id, profile_id) is unique.
type GroupMember struct {
	ID        int64     `json:"id" db:"id"`
	GroupID   int64     `json:"groupId" db:"group_id"`
	ProfileID int64     `json:"profileId" db:"profile_id"`
	Role      GroupRole `json:"role" db:"role"`
	JoinedAt  time.Time `json:"joinedAt" db:"joined_at"`

	User *Profile `json:"user,omitempty"`
}
