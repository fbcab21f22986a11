package dto

import (
	"time"

	"github.com/hakif/knowforum/internal/app/models"
)

// CreateGroupRequest represents the group creation payload
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	GroupType   string `json:"groupType" binding:"required,oneof=open closed assigned"`
	MaxMembers  int    `json:"maxMembers" binding:"omitempty,min=1,max=100"`
}

// AddGroupMemberRequest adds a profile to a closed or assigned group
type AddGroupMemberRequest struct {
	ProfileID int64  `json:"profileId" binding:"required,min=1"`
	Role      string `json:"role" binding:"omitempty,oneof=leader member"`
}

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"courseId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   int64     `json:"createdBy"`
	GroupType   string    `json:"groupType"`
	MaxMembers  int       `json:"maxMembers"`
	MemberCount int64     `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromGroup converts a models.Group to a GroupResponse
func FromGroup(g *models.Group, memberCount int64) GroupResponse {
	return GroupResponse{
		ID:          g.ID,
		CourseID:    g.CourseID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		GroupType:   string(g.GroupType),
		MaxMembers:  g.MaxMembers,
		MemberCount: memberCount,
		CreatedAt:   g.CreatedAt,
	}
}

// GroupMemberResponse represents a group membership row
type GroupMemberResponse struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"groupId"`
	ProfileID int64     `json:"profileId"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
}
