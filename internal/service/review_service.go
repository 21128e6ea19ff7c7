package service

import (
	"context"
	"fmt"
	"strings"

	"gameboxd/backend/internal/models"
	"gameboxd/backend/internal/store"
)

// ReviewService owns game reviews: a 0-10 rating plus a comment, at most one
// per (user, game).
type ReviewService struct {
	store   store.Store
	catalog Catalog
}

func NewReviewService(st store.Store, catalog Catalog) *ReviewService {
	return &ReviewService{store: st, catalog: catalog}
}

// UpdateReviewInput is the set of review fields the owner may change.
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

func validRating(rating int) bool {
	return rating >= 0 && rating <= 10
}

// Create persists a new review. The second review for the same (user, game)
// pair is rejected rather than upserted.
func (s *ReviewService) Create(userID uint, gameID string, rating int, comment string) (*models.Review, error) {
	comment = strings.TrimSpace(comment)
	if gameID == "" || comment == "" || !validRating(rating) {
		return nil, ErrInvalidInput
	}

	existing, err := s.store.GetReviewByUserAndGame(userID, gameID)
	if err != nil {
		return nil, fmt.Errorf("check existing review failed: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		UserID:  userID,
		GameID:  gameID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.store.CreateReview(review); err != nil {
		return nil, fmt.Errorf("create review failed: %w", err)
	}
	return review, nil
}

// ByGame returns the reviews for a game, each carrying the reviewer's public
// identity.
func (s *ReviewService) ByGame(gameID string) ([]models.Review, error) {
	reviews, err := s.store.GetReviewsByGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("query reviews by game failed: %w", err)
	}
	return reviews, nil
}

// ByUser returns the user's reviews, each carrying the reviewed game's
// minimal catalog record.
func (s *ReviewService) ByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	reviews, err := s.store.GetReviewsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("query reviews by user failed: %w", err)
	}
	attachReviewGames(ctx, s.catalog, reviews)
	return reviews, nil
}

// attachReviewGames stamps each review with its game's minimal record.
func attachReviewGames(ctx context.Context, catalog Catalog, reviews []models.Review) {
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.GameID)
	}
	refs := gameRefs(ctx, catalog, ids)
	for i := range reviews {
		reviews[i].Game = refs[reviews[i].GameID]
	}
}

func (s *ReviewService) ByID(id uint) (*models.Review, error) {
	review, err := s.store.GetReviewByID(id)
	if err != nil {
		return nil, fmt.Errorf("query review by id failed: %w", err)
	}
	if review == nil {
		return nil, ErrNotFound
	}
	return review, nil
}

// Update applies a partial edit, scoped to the owning user. A patch with no
// fields is rejected so an empty request cannot stamp updated_at.
func (s *ReviewService) Update(id, userID uint, in UpdateReviewInput) (*models.Review, error) {
	if in.Rating == nil && in.Comment == nil {
		return nil, ErrInvalidInput
	}
	patch := store.ReviewPatch{Rating: in.Rating}
	if in.Rating != nil && !validRating(*in.Rating) {
		return nil, ErrInvalidInput
	}
	if in.Comment != nil {
		comment := strings.TrimSpace(*in.Comment)
		if comment == "" {
			return nil, ErrInvalidInput
		}
		patch.Comment = &comment
	}

	review, err := s.store.UpdateReview(id, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("update review failed: %w", err)
	}
	if review == nil {
		return nil, ErrNotFound
	}
	return review, nil
}

// Delete removes a review, scoped to the owning user. A zero-row match is
// reported as not found.
func (s *ReviewService) Delete(id, userID uint) error {
	deleted, err := s.store.DeleteReview(id, userID)
	if err != nil {
		return fmt.Errorf("delete review failed: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// AverageRating returns the mean rating for a game on the authored 0-10
// scale, nil when the game has no reviews.
func (s *ReviewService) AverageRating(gameID string) (*float64, int64, error) {
	avg, count, err := s.store.AverageRating(gameID)
	if err != nil {
		return nil, 0, fmt.Errorf("average rating failed: %w", err)
	}
	return avg, count, nil
}
