package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/app/models/dto"
	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/hakif/knowforum/internal/pkg/helpers"
	"github.com/hakif/knowforum/internal/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository handles database operations for notifications.
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateNotification inserts a notification and returns its ID.
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	sql, args, err := r.sb.Insert("notifications").
		Columns("profile_id", "type", "title", "content", "related_id", "related_type").
		Values(n.ProfileID, n.Type, n.Title, n.Content, n.RelatedID, n.RelatedType).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create notification SQL")
		return 0, fmt.Errorf("failed to build create notification query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", n.ProfileID).Msg("Error executing create notification query")
		return 0, fmt.Errorf("error creating notification: %w", err)
	}

	return id, nil
}

// GetNotifications lists a profile's notifications, newest first. With
// unreadOnly set, read notifications are skipped.
func (r *NotificationRepository) GetNotifications(ctx context.Context, profileID int64, unreadOnly bool, page, size int) ([]*models.Notification, dto.PaginationInfo, error) {
	countBuilder := r.sb.Select("count(*)").From("notifications").Where(squirrel.Eq{"profile_id": profileID})
	sqlBuilder := r.sb.Select("id", "profile_id", "type", "title", "content", "related_id", "related_type", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"profile_id": profileID})

	if unreadOnly {
		countBuilder = countBuilder.Where(squirrel.Eq{"is_read": false})
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"is_read": false})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count notifications SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count notifications query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Notification{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sql, args, err := sqlBuilder.
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get notifications SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", profileID).Msg("Error executing get notifications query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.ProfileID, &n.Type, &n.Title, &n.Content, &n.RelatedID, &n.RelatedType, &n.IsRead, &n.CreatedAt)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning notification row")
			return nil, dto.PaginationInfo{}, err
		}
		notifications = append(notifications, &n)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating notification rows")
		return nil, dto.PaginationInfo{}, err
	}

	return notifications, pagination, nil
}

// MarkRead marks one notification as read. Scoped to the owning profile so a
// user cannot touch another user's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, profileID int64) error {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "profile_id": profileID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark notification read SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error executing mark notification read query")
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of a profile's notifications as read and returns the
// number updated.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, profileID int64) (int64, error) {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"profile_id": profileID, "is_read": false}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark all notifications read SQL")
		return 0, err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", profileID).Msg("Error executing mark all notifications read query")
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// CountUnread returns the number of unread notifications for a profile.
func (r *NotificationRepository) CountUnread(ctx context.Context, profileID int64) (int64, error) {
	sql, args, err := r.sb.Select("count(*)").
		From("notifications").
		Where(squirrel.Eq{"profile_id": profileID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("profileID", profileID).Msg("Error counting unread notifications")
		return 0, err
	}
	return count, nil
}
