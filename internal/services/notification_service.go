package services

import (
	"context"

	"github.com/kumarharsh-connect/talehaven/internal/apperrors"
	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/kumarharsh-connect/talehaven/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService owns reading and deleting notifications.
type NotificationService struct {
	notifs repositories.NotificationRepository
	users  repositories.UserRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifs repositories.NotificationRepository, users repositories.UserRepository) *NotificationService {
	return &NotificationService{notifs: notifs, users: users}
}

// ListForRecipient returns the recipient's notifications newest first, actors
// expanded to summaries. The response carries the pre-read flags; fetching
// marks every unread notification as read.
func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID string) ([]models.NotificationView, error) {
	notifications, err := s.notifs.GetByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	ids := []primitive.ObjectID{}
	for _, n := range notifications {
		if seen[n.FromID] {
			continue
		}
		seen[n.FromID] = true
		if id, err := primitive.ObjectIDFromHex(n.FromID); err == nil {
			ids = append(ids, id)
		}
	}
	summaries, err := s.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	byHex := map[string]models.UserSummary{}
	for _, summary := range summaries {
		byHex[summary.ID.Hex()] = summary
	}

	views := make([]models.NotificationView, len(notifications))
	for i, n := range notifications {
		views[i] = models.NotificationView{
			Notification: n,
			From:         byHex[n.FromID],
		}
	}

	if err := s.notifs.MarkAllRead(ctx, recipientID); err != nil {
		return nil, err
	}
	return views, nil
}

// DeleteAll removes every notification addressed to the recipient. Deleting
// none is not an error.
func (s *NotificationService) DeleteAll(ctx context.Context, recipientID string) error {
	return s.notifs.DeleteAllForRecipient(ctx, recipientID)
}

// DeleteOne removes a single notification after checking it belongs to the
// recipient.
func (s *NotificationService) DeleteOne(ctx context.Context, recipientID string, id uint) error {
	notification, err := s.notifs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification.ToID != recipientID {
		return apperrors.Forbidden("you are not allowed to delete this notification")
	}
	return s.notifs.DeleteOne(ctx, id)
}
