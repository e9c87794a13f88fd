package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kumarharsh-connect/talehaven/internal/apperrors"
	"github.com/kumarharsh-connect/talehaven/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They keep the same pairing semantics as the
// Mongo implementations: follow edges and like state always change both sides
// within one call.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func copyIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Following = copyIDs(u.Following)
	c.Followers = copyIDs(u.Followers)
	c.LikedPosts = copyIDs(u.LikedPosts)
	return &c
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperrors.Conflict("username or email already taken")
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.LikedPosts == nil {
		user.LikedPosts = []primitive.ObjectID{}
	}
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("user")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[objID]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	return copyUser(user), nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *fakeUserRepo) UsernameTaken(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) EmailTaken(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return apperrors.NotFound("user")
	}
	for id, other := range r.users {
		if id != user.ID && (other.Username == user.Username || other.Email == user.Email) {
			return apperrors.Conflict("username or email already taken")
		}
	}
	updated := copyUser(user)
	updated.Following = stored.Following
	updated.Followers = stored.Followers
	updated.LikedPosts = stored.LikedPosts
	r.users[user.ID] = updated
	return nil
}

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

func pull(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, existing := range set {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func (r *fakeUserRepo) ToggleFollowEdges(_ context.Context, actorID, targetID primitive.ObjectID, follow bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	actor, ok := r.users[actorID]
	if !ok {
		return apperrors.NotFound("user")
	}
	target, ok := r.users[targetID]
	if !ok {
		return apperrors.NotFound("user")
	}
	if follow {
		actor.Following = addToSet(actor.Following, targetID)
		target.Followers = addToSet(target.Followers, actorID)
	} else {
		actor.Following = pull(actor.Following, targetID)
		target.Followers = pull(target.Followers, actorID)
	}
	return nil
}

func (r *fakeUserRepo) SampleSuggestions(_ context.Context, selfID primitive.ObjectID, excluding []primitive.ObjectID, count int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	excluded := map[primitive.ObjectID]bool{selfID: true}
	for _, id := range excluding {
		excluded[id] = true
	}
	eligible := []models.User{}
	for _, user := range r.users {
		if !excluded[user.ID] {
			c := copyUser(user)
			c.Password = ""
			eligible = append(eligible, *c)
		}
	}
	rand.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if len(eligible) > count {
		eligible = eligible[:count]
	}
	return eligible, nil
}

func (r *fakeUserRepo) GetSummaries(_ context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summaries := []models.UserSummary{}
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			summaries = append(summaries, user.Summary())
		}
	}
	return summaries, nil
}

func (r *fakeUserRepo) Search(_ context.Context, query string, limit int) ([]models.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	summaries := []models.UserSummary{}
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.Username), q) ||
			strings.Contains(strings.ToLower(user.FullName), q) {
			summaries = append(summaries, user.Summary())
			if len(summaries) == limit {
				break
			}
		}
	}
	return summaries, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post
	users *fakeUserRepo
	seq   int
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]*models.Post{}, users: users}
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	c.Likes = copyIDs(p.Likes)
	c.Comments = append([]models.Comment{}, p.Comments...)
	return &c
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Unix(0, 0).Add(time.Duration(r.seq) * time.Second)
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.posts[post.ID] = copyPost(post)
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("post")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[objID]
	if !ok {
		return nil, apperrors.NotFound("post")
	}
	return copyPost(post), nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("post")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[objID]; !ok {
		return apperrors.NotFound("post")
	}
	delete(r.posts, objID)
	return nil
}

func (r *fakePostRepo) AddComment(_ context.Context, postID primitive.ObjectID, comment models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return apperrors.NotFound("post")
	}
	post.Comments = append(post.Comments, comment)
	return nil
}

func (r *fakePostRepo) ToggleLike(_ context.Context, postID, userID primitive.ObjectID, like bool) error {
	r.mu.Lock()
	post, ok := r.posts[postID]
	if !ok {
		r.mu.Unlock()
		return apperrors.NotFound("post")
	}
	if like {
		post.Likes = addToSet(post.Likes, userID)
	} else {
		post.Likes = pull(post.Likes, userID)
	}
	r.mu.Unlock()

	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	user, ok := r.users.users[userID]
	if !ok {
		return apperrors.NotFound("user")
	}
	if like {
		user.LikedPosts = addToSet(user.LikedPosts, postID)
	} else {
		user.LikedPosts = pull(user.LikedPosts, postID)
	}
	return nil
}

func (r *fakePostRepo) sorted(match func(*models.Post) bool) []models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts := []models.Post{}
	for _, post := range r.posts {
		if match(post) {
			posts = append(posts, *copyPost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

func (r *fakePostRepo) GetAll(_ context.Context) ([]models.Post, error) {
	return r.sorted(func(*models.Post) bool { return true }), nil
}

func (r *fakePostRepo) GetByAuthors(_ context.Context, authorIDs []primitive.ObjectID) ([]models.Post, error) {
	wanted := map[primitive.ObjectID]bool{}
	for _, id := range authorIDs {
		wanted[id] = true
	}
	return r.sorted(func(p *models.Post) bool { return wanted[p.AuthorID] }), nil
}

func (r *fakePostRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	wanted := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	return r.sorted(func(p *models.Post) bool { return wanted[p.ID] }), nil
}

type fakeNotifRepo struct {
	mu    sync.Mutex
	seq   uint
	items []*models.Notification
}

func newFakeNotifRepo() *fakeNotifRepo {
	return &fakeNotifRepo{}
}

func (r *fakeNotifRepo) Create(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	notification.ID = r.seq
	notification.CreatedAt = time.Unix(0, 0).Add(time.Duration(r.seq) * time.Second)
	stored := *notification
	r.items = append(r.items, &stored)
	return nil
}

func (r *fakeNotifRepo) GetByRecipient(_ context.Context, recipientID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Notification{}
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].ToID == recipientID {
			out = append(out, *r.items[i])
		}
	}
	return out, nil
}

func (r *fakeNotifRepo) MarkAllRead(_ context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ToID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotifRepo) GetByID(_ context.Context, id uint) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id {
			c := *n
			return &c, nil
		}
	}
	return nil, apperrors.NotFound("notification")
}

func (r *fakeNotifRepo) DeleteOne(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.items {
		if n.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("notification")
}

func (r *fakeNotifRepo) DeleteAllForRecipient(_ context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, n := range r.items {
		if n.ToID != recipientID {
			kept = append(kept, n)
		}
	}
	r.items = kept
	return nil
}

type fakeUploader struct {
	mu          sync.Mutex
	uploads     int
	destroyed   []string
	failUpload  bool
	failDestroy bool
}

func (u *fakeUploader) Upload(_ context.Context, payload []byte, contentType string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failUpload {
		return "", errors.New("hoster unavailable")
	}
	u.uploads++
	return fmt.Sprintf("https://media.test/%d", u.uploads), nil
}

func (u *fakeUploader) Destroy(_ context.Context, url string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failDestroy {
		return errors.New("hoster unavailable")
	}
	u.destroyed = append(u.destroyed, url)
	return nil
}

// testEnv bundles fakes and services for scenario tests.
type testEnv struct {
	users    *fakeUserRepo
	posts    *fakePostRepo
	notifs   *fakeNotifRepo
	uploader *fakeUploader

	auth    *AuthService
	graph   *GraphService
	content *ContentService
	feed    *FeedService
	inbox   *NotificationService
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	posts := newFakePostRepo(users)
	notifs := newFakeNotifRepo()
	uploader := &fakeUploader{}
	return &testEnv{
		users:    users,
		posts:    posts,
		notifs:   notifs,
		uploader: uploader,
		auth:     NewAuthService(users, uploader, "test-secret"),
		graph:    NewGraphService(users, notifs),
		content:  NewContentService(posts, users, notifs, uploader),
		feed:     NewFeedService(posts, users),
		inbox:    NewNotificationService(notifs, users),
	}
}

func (env *testEnv) mustCreateUser(username string) *models.User {
	user := &models.User{
		Username: username,
		FullName: username + " example",
		Email:    username + "@example.com",
		Password: "irrelevant-hash",
	}
	if err := env.users.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}
