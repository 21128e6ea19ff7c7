package store

import "gameboxd/backend/internal/models"

// UserPatch enumerates the user fields a caller may change. Nil fields are
// left untouched.
type UserPatch struct {
	Name         *string
	Bio          *string
	PasswordHash *string
}

// ReviewPatch enumerates the mutable review fields.
type ReviewPatch struct {
	Rating  *int
	Comment *string
}

// ListPatch enumerates the mutable list fields.
type ListPatch struct {
	Name     *string
	IsPublic *bool
}

// StatusCounts is the per-status breakdown of a user's game statuses.
type StatusCounts struct {
	Playing    int64 `json:"playing"`
	Completed  int64 `json:"completed"`
	WantToPlay int64 `json:"want_to_play"`
}

// Store defines persistence operations for users, reviews, lists, liked
// games and play statuses.
//
// Lookup methods return (nil, nil) when the row does not exist. Mutations
// scoped by an owner return false when no row matched the (id, owner) pair,
// so callers can conflate "missing" and "not yours" without a second query.
type Store interface {
	// users
	CreateUser(u *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	UpdateUser(id uint, patch UserPatch) (*models.User, error)
	DeleteUser(id uint) (bool, error)

	// reviews
	CreateReview(r *models.Review) error
	GetReviewByID(id uint) (*models.Review, error)
	GetReviewByUserAndGame(userID uint, gameID string) (*models.Review, error)
	GetReviewsByGame(gameID string) ([]models.Review, error)
	GetReviewsByUser(userID uint) ([]models.Review, error)
	RecentReviewsByUser(userID uint, limit int) ([]models.Review, error)
	UpdateReview(id, userID uint, patch ReviewPatch) (*models.Review, error)
	DeleteReview(id, userID uint) (bool, error)
	AverageRating(gameID string) (*float64, int64, error)
	CountReviewsByUser(userID uint) (int64, error)

	// lists
	CreateList(l *models.List) error
	GetListByID(id uint) (*models.List, error)
	GetListsByUser(userID uint) ([]models.List, error)
	GetPublicListsByUser(userID uint) ([]models.List, error)
	UpdateList(id, userID uint, patch ListPatch) (*models.List, error)
	DeleteList(id, userID uint) (bool, error)
	CountListsByUser(userID uint) (int64, error)
	AddListItem(item *models.ListItem) error
	HasListItem(listID uint, gameID string) (bool, error)
	DeleteListItem(listID, itemID uint) (bool, error)
	ListIDsContainingGame(userID uint, gameID string) ([]uint, error)

	// liked games
	AddLikedGame(lg *models.LikedGame) error
	RemoveLikedGame(userID uint, gameID string) (bool, error)
	HasLikedGame(userID uint, gameID string) (bool, error)
	LikedGameIDs(userID uint) ([]string, error)
	CountLikedGames(userID uint) (int64, error)

	// game statuses
	UpsertGameStatus(userID uint, gameID string, status models.PlayStatus) (*models.GameStatus, error)
	RemoveGameStatus(userID uint, gameID string) (bool, error)
	GetGameStatus(userID uint, gameID string) (*models.GameStatus, error)
	GetGameStatuses(userID uint, status *models.PlayStatus) ([]models.GameStatus, error)
	CountGameStatuses(userID uint) (StatusCounts, error)
}
