package services

import (
	"context"

	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/app/repositories"
	"github.com/rs/zerolog"
)

// NotificationService handles a profile's own notification feed.
// Notifications are created by other services as side effects; this service
// only reads and marks them.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo *repositories.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// GetNotifications lists the actor's notifications, newest first.
func (s *NotificationService) GetNotifications(ctx context.Context, actorID int64, unreadOnly bool, page, size int) ([]dto.NotificationResponse, dto.PaginationInfo, error) {
	notifications, pagination, err := s.notificationRepo.GetNotifications(ctx, actorID, unreadOnly, page, size)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.FromNotification(n))
	}
	return responses, pagination, nil
}

// MarkRead marks one of the actor's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, actorID, notificationID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, actorID)
}

// MarkAllRead marks every unread notification of the actor as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, actorID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, actorID)
}

// CountUnread returns the actor's unread notification count.
func (s *NotificationService) CountUnread(ctx context.Context, actorID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, actorID)
}
