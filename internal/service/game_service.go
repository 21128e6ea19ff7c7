package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gameboxd/backend/internal/models"
	"gameboxd/backend/internal/rawg"
	"gameboxd/backend/internal/store"
)

// GameService is the catalog gateway: it blends provider data with locally
// computed rating, like, status and list-membership state.
type GameService struct {
	store   store.Store
	catalog *rawg.Client
}

func NewGameService(st store.Store, catalog *rawg.Client) *GameService {
	return &GameService{store: st, catalog: catalog}
}

// GameSummary is a provider summary stamped with the viewer's liked flag.
type GameSummary struct {
	rawg.GameSummary
	Liked bool `json:"liked"`
}

// GamesPage is one page of summaries plus the provider's total count.
type GamesPage struct {
	Count   int64         `json:"count"`
	Results []GameSummary `json:"results"`
}

// GameDetails merges the provider's detail record with this site's own data.
// GameboxdRating is the review average shifted to the 0-5 display scale; the
// stored ratings stay on 0-10.
type GameDetails struct {
	rawg.GameDetails
	GameboxdRating      *float64           `json:"gameboxd_rating"`
	GameboxdRatingCount int64              `json:"gameboxd_rating_count"`
	Liked               bool               `json:"liked"`
	PlayStatus          *models.PlayStatus `json:"play_status,omitempty"`
	InLists             []uint             `json:"in_lists,omitempty"`
}

// Browse fetches one catalog page. viewerID may be zero for anonymous
// requests; liked flags are only stamped for authenticated viewers.
func (s *GameService) Browse(ctx context.Context, query rawg.GamesQuery, viewerID uint) (*GamesPage, error) {
	page, err := s.catalog.Games(ctx, query)
	if err != nil {
		return nil, err
	}

	liked := map[string]bool{}
	if viewerID != 0 {
		ids, err := s.store.LikedGameIDs(viewerID)
		if err != nil {
			return nil, fmt.Errorf("query liked games failed: %w", err)
		}
		for _, id := range ids {
			liked[id] = true
		}
	}

	results := make([]GameSummary, 0, len(page.Results))
	for _, game := range page.Results {
		results = append(results, GameSummary{
			GameSummary: game,
			Liked:       liked[fmt.Sprint(game.ID)],
		})
	}
	return &GamesPage{Count: page.Count, Results: results}, nil
}

// Details merges the provider record with the site rating and the viewer's
// like/status/list state. The sub-fetches run concurrently with no snapshot
// guarantee across them.
func (s *GameService) Details(ctx context.Context, gameID string, viewerID uint) (*GameDetails, error) {
	if gameID == "" {
		return nil, ErrInvalidInput
	}

	var (
		provider *rawg.GameDetails
		avg      *float64
		count    int64
		liked    bool
		status   *models.GameStatus
		listIDs  []uint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		provider, err = s.catalog.Game(gctx, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		avg, count, err = s.store.AverageRating(gameID)
		if err != nil {
			return fmt.Errorf("average rating failed: %w", err)
		}
		return nil
	})
	if viewerID != 0 {
		g.Go(func() error {
			var err error
			liked, err = s.store.HasLikedGame(viewerID, gameID)
			if err != nil {
				return fmt.Errorf("query liked state failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			status, err = s.store.GetGameStatus(viewerID, gameID)
			if err != nil {
				return fmt.Errorf("query play status failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			listIDs, err = s.store.ListIDsContainingGame(viewerID, gameID)
			if err != nil {
				return fmt.Errorf("query list membership failed: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	details := &GameDetails{
		GameDetails:         *provider,
		GameboxdRating:      displayRating(avg),
		GameboxdRatingCount: count,
		Liked:               liked,
		InLists:             listIDs,
	}
	if status != nil {
		details.PlayStatus = &status.Status
	}
	return details, nil
}

// displayRating converts a 0-10 average to the 0-5 display scale. The
// conversion happens only here, at the boundary; stored values never change
// scale.
func displayRating(avg *float64) *float64 {
	if avg == nil {
		return nil
	}
	rating := *avg / 2
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return &rating
}

// DLCs proxies the provider's additions list for a game.
func (s *GameService) DLCs(ctx context.Context, gameID string) ([]rawg.GameSummary, error) {
	if gameID == "" {
		return nil, ErrInvalidInput
	}
	return s.catalog.DLCs(ctx, gameID)
}

// Genres proxies the provider's genre catalog.
func (s *GameService) Genres(ctx context.Context) ([]rawg.Genre, error) {
	return s.catalog.Genres(ctx)
}

// ToggleLike flips the liked state for (user, game) and returns the
// resulting state.
func (s *GameService) ToggleLike(userID uint, gameID string) (bool, error) {
	if gameID == "" {
		return false, ErrInvalidInput
	}

	liked, err := s.store.HasLikedGame(userID, gameID)
	if err != nil {
		return false, fmt.Errorf("query liked state failed: %w", err)
	}
	if liked {
		if _, err := s.store.RemoveLikedGame(userID, gameID); err != nil {
			return false, fmt.Errorf("remove liked game failed: %w", err)
		}
		return false, nil
	}
	if err := s.store.AddLikedGame(&models.LikedGame{UserID: userID, GameID: gameID}); err != nil {
		return false, fmt.Errorf("add liked game failed: %w", err)
	}
	return true, nil
}

func (s *GameService) LikedGameIDs(userID uint) ([]string, error) {
	ids, err := s.store.LikedGameIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("query liked games failed: %w", err)
	}
	return ids, nil
}

// SetStatus records the user's play status for a game, replacing any
// existing status row for the pair.
func (s *GameService) SetStatus(userID uint, gameID string, status models.PlayStatus) (*models.GameStatus, error) {
	if gameID == "" || !status.Valid() {
		return nil, ErrInvalidInput
	}
	record, err := s.store.UpsertGameStatus(userID, gameID, status)
	if err != nil {
		return nil, fmt.Errorf("upsert game status failed: %w", err)
	}
	return record, nil
}

// RemoveStatus clears the user's play status for a game.
func (s *GameService) RemoveStatus(userID uint, gameID string) error {
	if gameID == "" {
		return ErrInvalidInput
	}
	removed, err := s.store.RemoveGameStatus(userID, gameID)
	if err != nil {
		return fmt.Errorf("remove game status failed: %w", err)
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

// StatusesByUser returns the user's statuses, narrowed to one status when a
// filter is given.
func (s *GameService) StatusesByUser(userID uint, filter *models.PlayStatus) ([]models.GameStatus, error) {
	if filter != nil && !filter.Valid() {
		return nil, ErrInvalidInput
	}
	statuses, err := s.store.GetGameStatuses(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("query game statuses failed: %w", err)
	}
	return statuses, nil
}
