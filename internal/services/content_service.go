package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/kumarharsh-connect/talehaven/internal/apperrors"
	"github.com/kumarharsh-connect/talehaven/internal/media"
	"github.com/kumarharsh-connect/talehaven/internal/metrics"
	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/kumarharsh-connect/talehaven/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mediaTimeout bounds calls into the media hosting collaborator.
const mediaTimeout = 30 * time.Second

// ContentService owns post creation/deletion, comments and like toggles.
type ContentService struct {
	posts    repositories.PostRepository
	users    repositories.UserRepository
	notifs   repositories.NotificationRepository
	uploader media.Uploader
}

// NewContentService creates a new ContentService.
func NewContentService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	notifs repositories.NotificationRepository,
	uploader media.Uploader,
) *ContentService {
	return &ContentService{posts: posts, users: users, notifs: notifs, uploader: uploader}
}

func isRemoteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// CreatePost persists a new post for the author. At least one of text/image
// is required. Inline image payloads are hosted first; an upload failure
// aborts the whole operation.
func (s *ContentService) CreatePost(ctx context.Context, authorID string, req models.CreatePostRequest) (*models.Post, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	image := req.Image
	if text == "" && image == "" {
		return nil, apperrors.InvalidArgument("post must have either text or image")
	}

	if image != "" && !isRemoteURL(image) {
		payload, contentType, err := media.DecodePayload(image)
		if err != nil {
			return nil, err
		}
		mctx, cancel := context.WithTimeout(ctx, mediaTimeout)
		defer cancel()
		url, err := s.uploader.Upload(mctx, payload, contentType)
		if err != nil {
			return nil, apperrors.Dependency("media upload failed", err)
		}
		image = url
	}

	post := &models.Post{
		AuthorID: author.ID,
		Text:     text,
		Image:    image,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	metrics.PostsCreated.Inc()
	return post, nil
}

// DeletePost removes a post after an ownership check. Associated media is
// destroyed best-effort: a hosting failure is logged but never blocks the
// metadata deletion.
func (s *ContentService) DeletePost(ctx context.Context, callerID, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID.Hex() != callerID {
		return apperrors.Forbidden("you are not authorized to delete this post")
	}

	if post.Image != "" {
		mctx, cancel := context.WithTimeout(ctx, mediaTimeout)
		if err := s.uploader.Destroy(mctx, post.Image); err != nil {
			log.Printf("best-effort media cleanup failed for post %s: %v", postID, err)
		}
		cancel()
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	metrics.PostsDeleted.Inc()
	return nil
}

// AddComment appends an immutable comment and returns the post's full comment
// sequence with authors expanded to summaries.
func (s *ContentService) AddComment(ctx context.Context, postID, authorID, text string) ([]models.CommentView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.InvalidArgument("comment text is required")
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		AuthorID:  author.ID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.posts.AddComment(ctx, post.ID, comment); err != nil {
		return nil, err
	}
	// Response reflects the snapshot read above plus this comment; concurrent
	// writers show up on the next read.
	return s.commentViews(ctx, append(post.Comments, comment))
}

// ToggleLike flips the actor's like on a post. Post-side and user-side state
// change as one unit; a like transition on another user's post fans out a
// notification. Returns the resulting like set.
func (s *ContentService) ToggleLike(ctx context.Context, postID, actorID string) ([]primitive.ObjectID, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := post.LikedBy(actor.ID)
	if err := s.posts.ToggleLike(ctx, post.ID, actor.ID, !liked); err != nil {
		return nil, err
	}

	if liked {
		metrics.LikeToggles.WithLabelValues("unlike").Inc()
		likes := make([]primitive.ObjectID, 0, len(post.Likes))
		for _, id := range post.Likes {
			if id != actor.ID {
				likes = append(likes, id)
			}
		}
		return likes, nil
	}

	metrics.LikeToggles.WithLabelValues("like").Inc()
	if actor.ID != post.AuthorID {
		notification := &models.Notification{
			Type:   models.NotificationLike,
			FromID: actor.ID.Hex(),
			ToID:   post.AuthorID.Hex(),
		}
		if err := s.notifs.Create(ctx, notification); err != nil {
			return nil, err
		}
		metrics.NotificationsCreated.WithLabelValues(string(models.NotificationLike)).Inc()
	}
	// Like set from the snapshot read above plus the actor, not a re-fetch.
	return append(post.Likes, actor.ID), nil
}

func (s *ContentService) commentViews(ctx context.Context, comments []models.Comment) ([]models.CommentView, error) {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}
	}
	summaries, err := s.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := map[primitive.ObjectID]models.UserSummary{}
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}

	views := make([]models.CommentView, len(comments))
	for i, c := range comments {
		views[i] = models.CommentView{
			Author:    byID[c.AuthorID],
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
	}
	return views, nil
}
