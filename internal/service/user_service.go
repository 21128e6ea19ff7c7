package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"gameboxd/backend/internal/models"
	"gameboxd/backend/internal/store"
	"gameboxd/backend/pkg/jwt"
)

// UserService owns user records, credentials and per-user aggregates.
type UserService struct {
	store     store.Store
	jwtSecret string
	tokenTTL  time.Duration
	catalog   Catalog
}

func NewUserService(st store.Store, jwtSecret string, tokenTTL time.Duration, catalog Catalog) *UserService {
	return &UserService{store: st, jwtSecret: jwtSecret, tokenTTL: tokenTTL, catalog: catalog}
}

// UpdateUserInput is the set of fields a user may change about themselves.
type UpdateUserInput struct {
	Name     *string
	Bio      *string
	Password *string
}

// UserStats aggregates a user's activity counts.
type UserStats struct {
	ReviewsCount    int64              `json:"reviews_count"`
	ListsCount      int64              `json:"lists_count"`
	LikedGamesCount int64              `json:"liked_games_count"`
	GamesCount      int64              `json:"games_count"`
	StatusCounts    store.StatusCounts `json:"status_counts"`
}

// PublicProfile is the outward-facing view of a user: recent reviews and
// public lists only, never the password hash.
type PublicProfile struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Bio           string          `json:"bio"`
	CreatedAt     time.Time       `json:"created_at"`
	RecentReviews []models.Review `json:"recent_reviews"`
	PublicLists   []models.List   `json:"public_lists"`
}

// Register creates a user with a bcrypt-hashed password and issues a session
// token.
func (s *UserService) Register(email, name, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || name == "" || len(password) < 8 {
		return nil, "", ErrInvalidInput
	}

	existing, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("check existing email failed: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password failed: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, "", fmt.Errorf("create user failed: %w", err)
	}

	token, err := jwt.GenerateToken(s.jwtSecret, s.tokenTTL, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token failed: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and issues a fresh session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("query user by email failed: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(s.jwtSecret, s.tokenTTL, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token failed: %w", err)
	}
	return user, token, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.store.GetUserByID(id)
	if err != nil {
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Update applies a partial update; a new password is re-hashed before
// storage.
func (s *UserService) Update(id uint, in UpdateUserInput) (*models.User, error) {
	patch := store.UserPatch{Bio: in.Bio}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		patch.Name = &name
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password failed: %w", err)
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	user, err := s.store.UpdateUser(id, patch)
	if err != nil {
		return nil, fmt.Errorf("update user failed: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Delete removes the account and, through cascade, everything it owns.
func (s *UserService) Delete(id uint) error {
	deleted, err := s.store.DeleteUser(id)
	if err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates activity counts across the four owned collections. The
// counts run concurrently; there is no snapshot guarantee across them.
func (s *UserService) Stats(ctx context.Context, userID uint) (*UserStats, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	var stats UserStats
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.store.CountReviewsByUser(userID)
		stats.ReviewsCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.store.CountListsByUser(userID)
		stats.ListsCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.store.CountLikedGames(userID)
		stats.LikedGamesCount = count
		return err
	})
	g.Go(func() error {
		counts, err := s.store.CountGameStatuses(userID)
		stats.StatusCounts = counts
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate user stats failed: %w", err)
	}

	stats.GamesCount = stats.StatusCounts.Playing + stats.StatusCounts.Completed + stats.StatusCounts.WantToPlay
	return &stats, nil
}

// PublicProfile returns the outward-facing profile: the ten most recent
// reviews, each joined with its game's minimal record, and public lists only.
func (s *UserService) PublicProfile(ctx context.Context, userID uint) (*PublicProfile, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	reviews, err := s.store.RecentReviewsByUser(userID, 10)
	if err != nil {
		return nil, fmt.Errorf("query recent reviews failed: %w", err)
	}
	lists, err := s.store.GetPublicListsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("query public lists failed: %w", err)
	}
	attachReviewGames(ctx, s.catalog, reviews)

	return &PublicProfile{
		ID:            user.ID,
		Name:          user.Name,
		Bio:           user.Bio,
		CreatedAt:     user.CreatedAt,
		RecentReviews: reviews,
		PublicLists:   lists,
	}, nil
}
