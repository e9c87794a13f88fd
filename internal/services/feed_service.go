package services

import (
	"context"

	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/kumarharsh-connect/talehaven/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedService assembles the four read-only feed projections. Every projection
// is computed from current store state, newest first, with author and comment
// author identities expanded to summaries.
type FeedService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(posts repositories.PostRepository, users repositories.UserRepository) *FeedService {
	return &FeedService{posts: posts, users: users}
}

// Global returns all posts.
func (s *FeedService) Global(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.posts.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts)
}

// Following returns posts authored by anyone the caller follows.
func (s *FeedService) Following(ctx context.Context, callerID string) ([]models.PostView, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.GetByAuthors(ctx, caller.Following)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts)
}

// ByAuthor returns posts authored by the named user.
func (s *FeedService) ByAuthor(ctx context.Context, username string) ([]models.PostView, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.GetByAuthors(ctx, []primitive.ObjectID{author.ID})
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts)
}

// LikedBy returns the posts in the user's liked set. Post deletion does not
// cascade into liked sets, so ids that no longer resolve are filtered out
// here rather than surfaced as stale references.
func (s *FeedService) LikedBy(ctx context.Context, userID string) ([]models.PostView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.GetByIDs(ctx, user.LikedPosts)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts)
}

func (s *FeedService) assemble(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	collect := func(id primitive.ObjectID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, p := range posts {
		collect(p.AuthorID)
		for _, c := range p.Comments {
			collect(c.AuthorID)
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

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		comments := make([]models.CommentView, len(p.Comments))
		for j, c := range p.Comments {
			comments[j] = models.CommentView{
				Author:    byID[c.AuthorID],
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
			}
		}
		likes := p.Likes
		if likes == nil {
			likes = []primitive.ObjectID{}
		}
		views[i] = models.PostView{
			ID:        p.ID,
			Author:    byID[p.AuthorID],
			Text:      p.Text,
			Image:     p.Image,
			Likes:     likes,
			Comments:  comments,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
	}
	return views, nil
}
