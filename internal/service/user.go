package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/storage"
)

const usersKey = "users"

func followersKey(userID string) string { return userID + "_followers" }
func followingKey(userID string) string { return userID + "_following" }

// UserService manages the demo accounts and the follow graph. Accounts have
// no password: signing in by email is enough.
type UserService struct {
	store  storage.Store
	tokens *TokenService
	logger *zap.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func NewUserService(store storage.Store, tokens *TokenService, logger *zap.Logger) *UserService {
	return &UserService{
		store:  store,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return "user-" + uuid.NewString() },
	}
}

func (s *UserService) load(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if _, err := storage.GetJSON(ctx, s.store, usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func findUser(users []model.User, match func(model.User) bool) int {
	for i, u := range users {
		if match(u) {
			return i
		}
	}
	return -1
}

// Register creates an account and signs it in.
func (s *UserService) Register(ctx context.Context, reg Registration) (*model.User, string, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	if err := validateStruct(reg); err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	if findUser(users, func(u model.User) bool { return strings.EqualFold(u.Email, reg.Email) }) >= 0 {
		return nil, "", ErrUserExists
	}

	u := model.User{
		ID:        s.newID(),
		Name:      reg.Name,
		Email:     reg.Email,
		CreatedAt: s.now().UTC(),
	}
	users = append(users, u)
	if err := storage.SetJSON(ctx, s.store, usersKey, users, 0); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("User registered", zap.String("user_id", u.ID))
	return &u, token, nil
}

// Login signs in the account registered under email.
func (s *UserService) Login(ctx context.Context, email string) (*model.User, string, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	email = strings.TrimSpace(email)
	i := findUser(users, func(u model.User) bool { return strings.EqualFold(u.Email, email) })
	if i < 0 {
		return nil, "", ErrUserNotFound
	}

	token, err := s.tokens.GenerateToken(users[i].ID)
	if err != nil {
		return nil, "", err
	}
	return &users[i], token, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := findUser(users, func(u model.User) bool { return u.ID == id })
	if i < 0 {
		return nil, ErrUserNotFound
	}
	return &users[i], nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// UpdateProfile applies the non-nil fields of upd. Recipes keep the author
// snapshot taken when they were created.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*model.User, error) {
	trim := func(p *string) {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	trim(upd.Name)
	trim(upd.Bio)
	trim(upd.Website)
	trim(upd.ProfileImageURL)
	if err := validateStruct(upd); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := findUser(users, func(u model.User) bool { return u.ID == id })
	if i < 0 {
		return nil, ErrUserNotFound
	}

	u := &users[i]
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Website != nil {
		u.Website = *upd.Website
	}
	if upd.ProfileImageURL != nil {
		u.ProfileImageURL = *upd.ProfileImageURL
	}
	if err := storage.SetJSON(ctx, s.store, usersKey, users, 0); err != nil {
		return nil, err
	}
	out := *u
	return &out, nil
}

// Follow makes followerID follow targetID. Following twice is a no-op.
func (s *UserService) Follow(ctx context.Context, followerID, targetID string) error {
	return s.setFollow(ctx, followerID, targetID, true)
}

func (s *UserService) Unfollow(ctx context.Context, followerID, targetID string) error {
	return s.setFollow(ctx, followerID, targetID, false)
}

func (s *UserService) setFollow(ctx context.Context, followerID, targetID string, follow bool) error {
	if followerID == targetID {
		return ErrSelfFollow
	}
	if _, err := s.Get(ctx, targetID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	update := func(key, id string) error {
		var ids []string
		if _, err := storage.GetJSON(ctx, s.store, key, &ids); err != nil {
			return err
		}
		has := contains(ids, id)
		switch {
		case follow && !has:
			ids = append(ids, id)
		case !follow && has:
			ids = without(ids, id)
		default:
			return nil
		}
		return storage.SetJSON(ctx, s.store, key, ids, 0)
	}

	if err := update(followingKey(followerID), targetID); err != nil {
		return err
	}
	return update(followersKey(targetID), followerID)
}

// IsFollowing reports whether followerID follows targetID.
func (s *UserService) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	var ids []string
	if _, err := storage.GetJSON(ctx, s.store, followingKey(followerID), &ids); err != nil {
		return false, err
	}
	return contains(ids, targetID), nil
}

func (s *UserService) FollowCounts(ctx context.Context, id string) (model.FollowStats, error) {
	var followers, following []string
	if _, err := storage.GetJSON(ctx, s.store, followersKey(id), &followers); err != nil {
		return model.FollowStats{}, err
	}
	if _, err := storage.GetJSON(ctx, s.store, followingKey(id), &following); err != nil {
		return model.FollowStats{}, err
	}
	return model.FollowStats{Followers: len(followers), Following: len(following)}, nil
}
