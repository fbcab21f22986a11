package models

// Role is the closed set of account roles. Authorization decisions switch
// exhaustively over this type.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// CourseStatus is the lifecycle state of a course.
type CourseStatus string

const (
	CourseActive   CourseStatus = "active"
	CourseArchived CourseStatus = "archived"
	CourseDeleted  CourseStatus = "deleted"
)

// MemberRole is the role of a profile within a course.
type MemberRole string

const (
	MemberRoleMember    MemberRole = "member"
	MemberRoleAssistant MemberRole = "assistant"
)

// NoteType classifies a note within the knowledge-construction flow.
type NoteType string

const (
	NoteStandard  NoteType = "standard"
	NoteResponse  NoteType = "response"
	NoteSynthesis NoteType = "synthesis"
)

// Valid reports whether t is a known note type.
func (t NoteType) Valid() bool {
	switch t {
	case NoteStandard, NoteResponse, NoteSynthesis:
		return true
	}
	return false
}

// GroupType controls how members join a group.
type GroupType string

const (
	GroupOpen     GroupType = "open"
	GroupClosed   GroupType = "closed"
	GroupAssigned GroupType = "assigned"
)

// Valid reports whether t is a known group type.
func (t GroupType) Valid() bool {
	switch t {
	case GroupOpen, GroupClosed, GroupAssigned:
		return true
	}
	return false
}

// GroupRole is the role of a profile within a group.
type GroupRole string

const (
	GroupRoleLeader GroupRole = "leader"
	GroupRoleMember GroupRole = "member"
)

// ApplicationStatus is the review state of a teacher application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)
