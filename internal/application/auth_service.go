package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	repo "github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
)

// AuthService logs back office users in and out. Sessions live in a redis hash
// keyed by user; without redis the signed token alone is trusted.
type AuthService struct {
	Users      repo.UserRepository
	Hasher     PasswordHasher
	JWT        *helpers.JWTManager
	Redis      *redis.Client
	SessionTTL time.Duration
	Observers
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, jwt *helpers.JWTManager, rdb *redis.Client, sessionTTL time.Duration, obs Observers) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, JWT: jwt, Redis: rdb, SessionTTL: sessionTTL, Observers: obs}
}

type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// Login verifies the credentials and issues an access token bound to a fresh session.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*UserView, AccessToken, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, AccessToken{}, ErrInvalidCredentials
		}
		return nil, AccessToken{}, err
	}
	if !s.Hasher.Compare(u.Password, password) {
		return nil, AccessToken{}, ErrInvalidCredentials
	}

	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, string(u.Role), sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, AccessToken{}, err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"role":       string(u.Role),
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, s.sessionTTL())
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, AccessToken{}, err
		}
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user logged in")
	}
	return toUserView(u), AccessToken{Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, helpers.SessionKey(userID)).Err()
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*UserView, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, EntityUser, userID)
	}
	return toUserView(u), nil
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 24 * time.Hour
}
