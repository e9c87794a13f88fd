package services

import (
	"context"
	"testing"

	"github.com/kumarharsh-connect/talehaven/internal/apperrors"
	"github.com/kumarharsh-connect/talehaven/internal/models"
)

func TestFeedProjections(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustCreateUser("alice")
	bob := env.mustCreateUser("bob")
	carol := env.mustCreateUser("carol")

	if _, err := env.graph.ToggleFollow(ctx, alice.ID.Hex(), bob.ID.Hex()); err != nil {
		t.Fatalf("ToggleFollow: %v", err)
	}

	bobPost, err := env.content.CreatePost(ctx, bob.ID.Hex(), models.CreatePostRequest{Text: "from bob"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	carolPost, err := env.content.CreatePost(ctx, carol.ID.Hex(), models.CreatePostRequest{Text: "from carol"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if _, err := env.content.AddComment(ctx, bobPost.ID.Hex(), carol.ID.Hex(), "nice"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	// Global: everything, newest first, authors expanded.
	global, err := env.feed.Global(ctx)
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if len(global) != 2 {
		t.Fatalf("global feed has %d posts, want 2", len(global))
	}
	if global[0].ID != carolPost.ID || global[1].ID != bobPost.ID {
		t.Error("global feed not newest first")
	}
	if global[1].Author.Username != "bob" {
		t.Errorf("author not expanded: %+v", global[1].Author)
	}
	if len(global[1].Comments) != 1 || global[1].Comments[0].Author.Username != "carol" {
		t.Errorf("comment author not expanded: %+v", global[1].Comments)
	}

	// Following: only authors alice follows.
	followingFeed, err := env.feed.Following(ctx, alice.ID.Hex())
	if err != nil {
		t.Fatalf("Following: %v", err)
	}
	if len(followingFeed) != 1 || followingFeed[0].ID != bobPost.ID {
		t.Fatalf("unexpected following feed: %+v", followingFeed)
	}

	// ByAuthor.
	byCarol, err := env.feed.ByAuthor(ctx, "carol")
	if err != nil {
		t.Fatalf("ByAuthor: %v", err)
	}
	if len(byCarol) != 1 || byCarol[0].ID != carolPost.ID {
		t.Fatalf("unexpected byAuthor feed: %+v", byCarol)
	}
	if _, err := env.feed.ByAuthor(ctx, "nobody"); !apperrors.Is(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown author, got %v", err)
	}
}

func TestLikedByFiltersDeletedPosts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustCreateUser("alice")
	bob := env.mustCreateUser("bob")

	kept, err := env.content.CreatePost(ctx, bob.ID.Hex(), models.CreatePostRequest{Text: "kept"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	doomed, err := env.content.CreatePost(ctx, bob.ID.Hex(), models.CreatePostRequest{Text: "doomed"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	for _, p := range []string{kept.ID.Hex(), doomed.ID.Hex()} {
		if _, err := env.content.ToggleLike(ctx, p, alice.ID.Hex()); err != nil {
			t.Fatalf("ToggleLike: %v", err)
		}
	}

	// Deleting a post does not cascade into liked sets; the projection must
	// hide the dangling reference.
	if err := env.content.DeletePost(ctx, bob.ID.Hex(), doomed.ID.Hex()); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	liked, err := env.feed.LikedBy(ctx, alice.ID.Hex())
	if err != nil {
		t.Fatalf("LikedBy: %v", err)
	}
	if len(liked) != 1 || liked[0].ID != kept.ID {
		t.Fatalf("unexpected liked feed: %+v", liked)
	}
}

func TestFeedsEmptyWhenNoPosts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustCreateUser("alice")

	global, err := env.feed.Global(ctx)
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if len(global) != 0 {
		t.Fatalf("expected empty global feed, got %d", len(global))
	}

	followingFeed, err := env.feed.Following(ctx, alice.ID.Hex())
	if err != nil {
		t.Fatalf("Following: %v", err)
	}
	if len(followingFeed) != 0 {
		t.Fatalf("expected empty following feed, got %d", len(followingFeed))
	}
}
