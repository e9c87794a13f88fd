package services

import (
	"context"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/kumarharsh-connect/talehaven/internal/apperrors"
	"github.com/kumarharsh-connect/talehaven/internal/media"
	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/kumarharsh-connect/talehaven/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the lifetime of issued session tokens.
const TokenTTL = 240 * time.Hour

const minPasswordLength = 6

// Claims are the JWT claims carried by session tokens.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService owns registration, credential login, token issuance and profile
// edits. The engine proper never sees credentials; everything password-shaped
// stays here.
type AuthService struct {
	users     repositories.UserRepository
	uploader  media.Uploader
	jwtSecret []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, uploader media.Uploader, jwtSecret string) *AuthService {
	return &AuthService{users: users, uploader: uploader, jwtSecret: []byte(jwtSecret)}
}

// Signup registers a new account. The username/email lookups are a fast path;
// the store's unique indexes are the final arbiter and also map to Conflict.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, string, error) {
	if taken, err := s.users.UsernameTaken(ctx, req.Username); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", apperrors.Conflict("this username is already taken")
	}
	if taken, err := s.users.EmailTaken(ctx, req.Email); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", apperrors.Conflict("this email is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by username and password. The error is uniform for
// unknown username and wrong password.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	invalid := apperrors.InvalidArgument("invalid username or password")

	user, err := s.users.GetByUsername(ctx, req.Username)
	if apperrors.Is(err, apperrors.CodeNotFound) {
		return nil, "", invalid
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, "", invalid
	}

	token, err := s.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginWithEmail issues a session for an already-verified external identity
// (the Firebase token-exchange path).
func (s *AuthService) LoginWithEmail(ctx context.Context, email string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	token, err := s.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me returns the caller's own record.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// GetProfile returns a user's public profile by username.
func (s *AuthService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// UpdateProfile applies profile edits: identity fields, password change with
// current-password verification, and image replacement through the media
// collaborator. A failed upload aborts the whole update.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if (req.CurrentPassword == "") != (req.NewPassword == "") {
		return nil, apperrors.InvalidArgument("please provide both current and new password")
	}
	if req.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
			return nil, apperrors.InvalidArgument("current password is incorrect")
		}
		if len(req.NewPassword) < minPasswordLength {
			return nil, apperrors.InvalidArgument("password must be at least 6 characters long")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if req.Username != "" && req.Username != user.Username {
		if taken, err := s.users.UsernameTaken(ctx, req.Username); err != nil {
			return nil, err
		} else if taken {
			return nil, apperrors.Conflict("this username is already taken")
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		if taken, err := s.users.EmailTaken(ctx, req.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, apperrors.Conflict("this email is already taken")
		}
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Link != "" {
		user.Link = req.Link
	}

	if req.ProfileImg != "" {
		url, err := s.replaceImage(ctx, req.ProfileImg, user.ProfileImg)
		if err != nil {
			return nil, err
		}
		user.ProfileImg = url
	}
	if req.CoverImg != "" {
		url, err := s.replaceImage(ctx, req.CoverImg, user.CoverImg)
		if err != nil {
			return nil, err
		}
		user.CoverImg = url
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// replaceImage hosts the new payload, then destroys the old asset
// best-effort. Upload failures abort; cleanup failures only log.
func (s *AuthService) replaceImage(ctx context.Context, payload, old string) (string, error) {
	if isRemoteURL(payload) {
		return payload, nil
	}
	raw, contentType, err := media.DecodePayload(payload)
	if err != nil {
		return "", err
	}
	mctx, cancel := context.WithTimeout(ctx, mediaTimeout)
	defer cancel()
	url, err := s.uploader.Upload(mctx, raw, contentType)
	if err != nil {
		return "", apperrors.Dependency("media upload failed", err)
	}
	if old != "" {
		if err := s.uploader.Destroy(mctx, old); err != nil {
			log.Printf("best-effort media cleanup failed for %s: %v", old, err)
		}
	}
	return url, nil
}

// GenerateToken signs a session token for the user.
func (s *AuthService) GenerateToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ParseToken validates a session token and returns the user identity.
func (s *AuthService) ParseToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Forbidden("invalid or expired token")
	}
	return claims.UserID, nil
}
