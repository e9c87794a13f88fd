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

// UserRepository defines the interface for user data operations, including the
// follow-edge mutations that must hit both sides as one unit.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	ToggleFollowEdges(ctx context.Context, actorID, targetID primitive.ObjectID, follow bool) error
	SampleSuggestions(ctx context.Context, selfID primitive.ObjectID, excluding []primitive.ObjectID, count int) ([]models.User, error)
	GetSummaries(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error)
	Search(ctx context.Context, query string, limit int) ([]models.UserSummary, error)
}

// MongoUserRepository implements UserRepository for MongoDB.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique indexes on username and email. The index is
// the final arbiter for uniqueness; pre-insert lookups are only a fast path.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// Create inserts a new user. A duplicate username/email maps to Conflict.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
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
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("username or email already taken")
	}
	return err
}

// GetByID retrieves a user by hex identity.
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("user")
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

// GetByUsername retrieves a user by exact username.
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// GetByEmail retrieves a user by exact email.
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken reports whether the username already maps to an identity.
func (r *MongoUserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

// EmailTaken reports whether the email already maps to an identity.
func (r *MongoUserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists profile field changes. Renames hitting the unique indexes
// map to Conflict.
func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"username":    user.Username,
		"full_name":   user.FullName,
		"email":       user.Email,
		"password":    user.Password,
		"bio":         user.Bio,
		"link":        user.Link,
		"profile_img": user.ProfileImg,
		"cover_img":   user.CoverImg,
		"updated_at":  user.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("username or email already taken")
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("user")
	}
	return nil
}

// ToggleFollowEdges flips both sides of a follow edge in a single bulk write,
// so no reader observes one edge without the other.
func (r *MongoUserRepository) ToggleFollowEdges(ctx context.Context, actorID, targetID primitive.ObjectID, follow bool) error {
	actorOp := "$pull"
	targetOp := "$pull"
	if follow {
		actorOp = "$addToSet"
		targetOp = "$addToSet"
	}
	writes := []mongo.WriteModel{
		mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": actorID}).
			SetUpdate(bson.M{actorOp: bson.M{"following": targetID}}),
		mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": targetID}).
			SetUpdate(bson.M{targetOp: bson.M{"followers": actorID}}),
	}
	_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	return err
}

// SampleSuggestions draws up to count users uniformly at random, excluding the
// caller and everyone in excluding. Credentials are projected out server-side.
func (r *MongoUserRepository) SampleSuggestions(ctx context.Context, selfID primitive.ObjectID, excluding []primitive.ObjectID, count int) ([]models.User, error) {
	if excluding == nil {
		excluding = []primitive.ObjectID{}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$ne": selfID, "$nin": excluding}}}},
		{{Key: "$sample", Value: bson.M{"size": count}}},
		{{Key: "$project", Value: bson.M{"password": 0}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetSummaries expands a set of identities to credential-free summaries.
func (r *MongoUserRepository) GetSummaries(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	if len(ids) == 0 {
		return []models.UserSummary{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	summaries := make([]models.UserSummary, len(users))
	for i, u := range users {
		summaries[i] = u.Summary()
	}
	return summaries, nil
}

// Search matches username or full name case-insensitively.
func (r *MongoUserRepository) Search(ctx context.Context, query string, limit int) ([]models.UserSummary, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"full_name": bson.M{"$regex": query, "$options": "i"}},
	}}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	summaries := make([]models.UserSummary, len(users))
	for i, u := range users {
		summaries[i] = u.Summary()
	}
	return summaries, nil
}
