package repositories

import (
	"context"
	"time"

	"github.com/kumarharsh-connect/talehaven/internal/apperrors"
	"github.com/kumarharsh-connect/talehaven/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations. ToggleLike
// pairs the post-side and user-side like state as one unit.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID, like bool) error
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) ([]models.Post, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
}

// MongoPostRepository implements PostRepository for MongoDB. It holds the
// users collection too: a like toggle touches both collections in one
// transaction.
type MongoPostRepository struct {
	posts *mongo.Collection
	users *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository.
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{
		posts: db.Collection("posts"),
		users: db.Collection("users"),
	}
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

// Create inserts a new post.
func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.posts.InsertOne(ctx, post)
	return err
}

// GetByID retrieves a post by hex identity.
func (r *MongoPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("post")
	}
	var post models.Post
	err = r.posts.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("post")
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post record. Liked-posts references on users are not
// cascaded; readers filter dangling ids.
func (r *MongoPostRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("post")
	}
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("post")
	}
	return nil
}

// AddComment appends a comment to the post's ordered sequence.
func (r *MongoPostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error {
	res, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("post")
	}
	return nil
}

// ToggleLike updates post.likes and the liker's liked_posts inside a session
// transaction so the pair commits or aborts together.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID, like bool) error {
	op := "$pull"
	if like {
		op = "$addToSet"
	}

	session, err := r.posts.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.posts.UpdateOne(sc,
			bson.M{"_id": postID},
			bson.M{op: bson.M{"likes": userID}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, apperrors.NotFound("post")
		}
		if _, err := r.users.UpdateOne(sc,
			bson.M{"_id": userID},
			bson.M{op: bson.M{"liked_posts": postID}},
		); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// GetAll returns every post, newest first.
func (r *MongoPostRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	return r.find(ctx, bson.M{})
}

// GetByAuthors returns posts by any of the given authors, newest first.
func (r *MongoPostRepository) GetByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}})
}

// GetByIDs returns the posts matching ids, newest first. Ids that no longer
// resolve are silently absent from the result.
func (r *MongoPostRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	cursor, err := r.posts.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
