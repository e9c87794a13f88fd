package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in its post and immutable once created.
type Comment struct {
	AuthorID  primitive.ObjectID `json:"author_id" bson:"author_id"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Post represents a tale stored in MongoDB. At least one of Text/Image is set.
// Likes is a set of user identities; Comments keep insertion order.
type Post struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	AuthorID  primitive.ObjectID   `json:"author_id" bson:"author_id"`
	Text      string               `json:"text,omitempty" bson:"text,omitempty"`
	Image     string               `json:"image,omitempty" bson:"image,omitempty"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time            `json:"updated_at" bson:"updated_at"`
}

// LikedBy reports whether id is in the post's like set.
func (p *Post) LikedBy(id primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l == id {
			return true
		}
	}
	return false
}

// CommentView is a comment with its author expanded to a summary.
type CommentView struct {
	Author    UserSummary `json:"author"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

// PostView is a post with author and comment authors expanded to summaries.
type PostView struct {
	ID        primitive.ObjectID   `json:"id"`
	Author    UserSummary          `json:"author"`
	Text      string               `json:"text,omitempty"`
	Image     string               `json:"image,omitempty"`
	Likes     []primitive.ObjectID `json:"likes"`
	Comments  []CommentView        `json:"comments"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a post. Image may be
// a data URI or base64 payload (uploaded to media hosting) or an existing URL.
type CreatePostRequest struct {
	Text  string `json:"text,omitempty" validate:"omitempty,max=500"`
	Image string `json:"image,omitempty"`
}

// CreateCommentRequest defines the request body for commenting on a post.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}
