package services

import (
	"context"
	"strings"

	"github.com/kumarharsh-connect/talehaven/internal/apperrors"
	"github.com/kumarharsh-connect/talehaven/internal/metrics"
	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/kumarharsh-connect/talehaven/internal/repositories"
)

const defaultSuggestionCount = 4

// GraphService owns the follow graph: toggling edges, suggestions and
// follower/following listings.
type GraphService struct {
	users  repositories.UserRepository
	notifs repositories.NotificationRepository
}

// NewGraphService creates a new GraphService.
func NewGraphService(users repositories.UserRepository, notifs repositories.NotificationRepository) *GraphService {
	return &GraphService{users: users, notifs: notifs}
}

// ToggleFollow flips the follow state between actor and target. Both edges
// change as one unit; a follow transition fans out a notification. Returns the
// resulting now-following state.
func (s *GraphService) ToggleFollow(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, apperrors.InvalidOperation("you can't follow or unfollow yourself")
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return false, err
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}

	following := actor.IsFollowing(target.ID)
	if err := s.users.ToggleFollowEdges(ctx, actor.ID, target.ID, !following); err != nil {
		return false, err
	}

	if following {
		metrics.FollowToggles.WithLabelValues("unfollow").Inc()
		return false, nil
	}

	metrics.FollowToggles.WithLabelValues("follow").Inc()
	notification := &models.Notification{
		Type:   models.NotificationFollow,
		FromID: actor.ID.Hex(),
		ToID:   target.ID.Hex(),
	}
	if err := s.notifs.Create(ctx, notification); err != nil {
		return true, err
	}
	metrics.NotificationsCreated.WithLabelValues(string(models.NotificationFollow)).Inc()
	return true, nil
}

// SuggestUsers returns up to count users drawn uniformly at random, excluding
// the caller and everyone already followed. Fewer eligible users than count is
// not an error.
func (s *GraphService) SuggestUsers(ctx context.Context, actorID string, count int) ([]models.User, error) {
	if count <= 0 {
		count = defaultSuggestionCount
	}
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.users.SampleSuggestions(ctx, actor.ID, actor.Following, count)
	if err != nil {
		return nil, err
	}
	for i := range suggestions {
		suggestions[i].Password = ""
	}
	return suggestions, nil
}

// ListFollowers expands the followers of the named user to summaries.
func (s *GraphService) ListFollowers(ctx context.Context, username string) ([]models.UserSummary, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.users.GetSummaries(ctx, user.Followers)
}

// ListFollowing expands the following set of the named user to summaries.
func (s *GraphService) ListFollowing(ctx context.Context, username string) ([]models.UserSummary, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.users.GetSummaries(ctx, user.Following)
}

// SearchUsers matches username or full name case-insensitively. An empty
// query returns an empty result, not an error.
func (s *GraphService) SearchUsers(ctx context.Context, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.UserSummary{}, nil
	}
	return s.users.Search(ctx, query, 20)
}
