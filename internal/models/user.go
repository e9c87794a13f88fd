package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account stored in MongoDB. Follow edges and liked posts
// are embedded identity sets, updated only through the repository layer.
type User struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username   string               `json:"username" bson:"username"`
	FullName   string               `json:"fullName" bson:"full_name"`
	Email      string               `json:"email" bson:"email"`
	Password   string               `json:"-" bson:"password"` // bcrypt hash, never serialized
	Bio        string               `json:"bio,omitempty" bson:"bio,omitempty"`
	Link       string               `json:"link,omitempty" bson:"link,omitempty"`
	ProfileImg string               `json:"profileImg,omitempty" bson:"profile_img,omitempty"`
	CoverImg   string               `json:"coverImg,omitempty" bson:"cover_img,omitempty"`
	Following  []primitive.ObjectID `json:"following" bson:"following"`
	Followers  []primitive.ObjectID `json:"followers" bson:"followers"`
	LikedPosts []primitive.ObjectID `json:"likedPosts" bson:"liked_posts"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at" bson:"updated_at"`
}

// UserSummary is the identity projection embedded in feed, follower and
// notification responses. It never carries credentials.
type UserSummary struct {
	ID         primitive.ObjectID `json:"id"`
	Username   string             `json:"username"`
	FullName   string             `json:"fullName"`
	ProfileImg string             `json:"profileImg,omitempty"`
}

// Summary returns the credential-free projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		ProfileImg: u.ProfileImg,
	}
}

// IsFollowing reports whether id is in the user's following set.
func (u *User) IsFollowing(id primitive.ObjectID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}

// SignupRequest defines the request body for account registration.
type SignupRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for credential login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile edits. All fields
// are optional; password changes require both current and new password.
type UpdateProfileRequest struct {
	FullName        string `json:"fullName,omitempty" validate:"omitempty,min=2,max=50"`
	Username        string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Bio             string `json:"bio,omitempty" validate:"omitempty,max=300"`
	Link            string `json:"link,omitempty" validate:"omitempty,max=200"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
	ProfileImg      string `json:"profileImg,omitempty"`
	CoverImg        string `json:"coverImg,omitempty"`
}
